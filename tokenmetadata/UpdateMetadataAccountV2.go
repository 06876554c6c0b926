package tokenmetadata

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// UpdateMetadataAccountV2 updates an existing metadata account. Every
// parameter is optional; only the ones set are changed. The program rejects
// the instruction when the record was created immutable, and flipping
// IsMutable to false is irreversible.
type UpdateMetadataAccountV2 struct {
	Data                *DataV2
	NewUpdateAuthority  *solana.PublicKey
	PrimarySaleHappened *bool
	IsMutable           *bool

	Metadata        solana.PublicKey `bin:"-" borsh_skip:"true"`
	UpdateAuthority solana.PublicKey `bin:"-" borsh_skip:"true"`

	// [0] = [WRITE] Metadata
	// ··········· Metadata PDA of the mint
	//
	// [1] = [SIGNER] UpdateAuthority
	// ··········· Current update authority of the metadata record
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewUpdateMetadataAccountV2InstructionBuilder creates a new
// `UpdateMetadataAccountV2` instruction builder.
func NewUpdateMetadataAccountV2InstructionBuilder() *UpdateMetadataAccountV2 {
	nd := &UpdateMetadataAccountV2{}
	return nd
}

func (inst *UpdateMetadataAccountV2) SetData(data DataV2) *UpdateMetadataAccountV2 {
	inst.Data = &data
	return inst
}

func (inst *UpdateMetadataAccountV2) SetNewUpdateAuthority(newUpdateAuthority solana.PublicKey) *UpdateMetadataAccountV2 {
	inst.NewUpdateAuthority = &newUpdateAuthority
	return inst
}

func (inst *UpdateMetadataAccountV2) SetPrimarySaleHappened(primarySaleHappened bool) *UpdateMetadataAccountV2 {
	inst.PrimarySaleHappened = &primarySaleHappened
	return inst
}

func (inst *UpdateMetadataAccountV2) SetIsMutable(isMutable bool) *UpdateMetadataAccountV2 {
	inst.IsMutable = &isMutable
	return inst
}

func (inst *UpdateMetadataAccountV2) SetMetadataAccount(metadata solana.PublicKey) *UpdateMetadataAccountV2 {
	inst.Metadata = metadata
	return inst
}

func (inst *UpdateMetadataAccountV2) SetUpdateAuthority(updateAuthority solana.PublicKey) *UpdateMetadataAccountV2 {
	inst.UpdateAuthority = updateAuthority
	return inst
}

func (inst UpdateMetadataAccountV2) Build() *Instruction {

	keys := []*solana.AccountMeta{
		{
			PublicKey:  inst.Metadata,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  inst.UpdateAuthority,
			IsSigner:   true,
			IsWritable: false,
		},
	}

	inst.AccountMetaSlice = keys

	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: bin.TypeIDFromUint8(Instruction_UpdateMetadataAccountV2),
	}}
}

// ValidateAndBuild validates the instruction parameters and accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst UpdateMetadataAccountV2) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *UpdateMetadataAccountV2) Validate() error {
	if inst.Data != nil {
		if err := inst.Data.Validate(); err != nil {
			return err
		}
	}
	if inst.Metadata.IsZero() {
		return errors.New("Metadata not set")
	}
	if inst.UpdateAuthority.IsZero() {
		return errors.New("UpdateAuthority not set")
	}
	return nil
}

func (inst *UpdateMetadataAccountV2) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("UpdateMetadataAccountV2")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=4]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("               Data", inst.Data))
						paramsBranch.Child(format.Param(" NewUpdateAuthority", inst.NewUpdateAuthority))
						paramsBranch.Child(format.Param("PrimarySaleHappened", inst.PrimarySaleHappened))
						paramsBranch.Child(format.Param("          IsMutable", inst.IsMutable))
					})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=2]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("       metadata", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("updateAuthority", inst.AccountMetaSlice.Get(1)))
					})
				})
		})
}

func (inst UpdateMetadataAccountV2) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	// Data (optional)
	if inst.Data == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*inst.Data); err != nil {
			return err
		}
	}
	// NewUpdateAuthority (optional)
	if inst.NewUpdateAuthority == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*inst.NewUpdateAuthority); err != nil {
			return err
		}
	}
	// PrimarySaleHappened (optional)
	if inst.PrimarySaleHappened == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*inst.PrimarySaleHappened); err != nil {
			return err
		}
	}
	// IsMutable (optional)
	if inst.IsMutable == nil {
		return encoder.WriteBool(false)
	}
	if err = encoder.WriteBool(true); err != nil {
		return err
	}
	return encoder.Encode(*inst.IsMutable)
}

func (inst *UpdateMetadataAccountV2) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	// Data (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			inst.Data = new(DataV2)
			if err = decoder.Decode(inst.Data); err != nil {
				return err
			}
		}
	}
	// NewUpdateAuthority (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			inst.NewUpdateAuthority = new(solana.PublicKey)
			if err = decoder.Decode(inst.NewUpdateAuthority); err != nil {
				return err
			}
		}
	}
	// PrimarySaleHappened (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			inst.PrimarySaleHappened = new(bool)
			if err = decoder.Decode(inst.PrimarySaleHappened); err != nil {
				return err
			}
		}
	}
	// IsMutable (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			inst.IsMutable = new(bool)
			if err = decoder.Decode(inst.IsMutable); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetAccounts implements the AccountsGettable interface
func (inst UpdateMetadataAccountV2) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewUpdateMetadataAccountV2Instruction updates the data of an existing
// mutable metadata account. Pass nil for any parameter that should keep its
// current value.
func NewUpdateMetadataAccountV2Instruction(
	// Parameters:
	data *DataV2,
	newUpdateAuthority *solana.PublicKey,
	primarySaleHappened *bool,
	isMutable *bool,
	// Accounts:
	metadata solana.PublicKey,
	updateAuthority solana.PublicKey,
) *UpdateMetadataAccountV2 {
	nd := NewUpdateMetadataAccountV2InstructionBuilder().
		SetMetadataAccount(metadata).
		SetUpdateAuthority(updateAuthority)
	nd.Data = data
	nd.NewUpdateAuthority = newUpdateAuthority
	nd.PrimarySaleHappened = primarySaleHappened
	nd.IsMutable = isMutable
	return nd
}
