package tokenmetadata

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// CreateMetadataAccountV3 creates the metadata account of a mint.
type CreateMetadataAccountV3 struct {
	Data              DataV2
	IsMutable         bool
	CollectionDetails *CollectionDetails

	Metadata        solana.PublicKey `bin:"-" borsh_skip:"true"`
	Mint            solana.PublicKey `bin:"-" borsh_skip:"true"`
	MintAuthority   solana.PublicKey `bin:"-" borsh_skip:"true"`
	Payer           solana.PublicKey `bin:"-" borsh_skip:"true"`
	UpdateAuthority solana.PublicKey `bin:"-" borsh_skip:"true"`
	// UpdateAuthorityIsSigner marks the update authority as a required signer
	UpdateAuthorityIsSigner bool `bin:"-" borsh_skip:"true"`

	// [0] = [WRITE] Metadata
	// ··········· Metadata PDA of the mint
	//
	// [1] = [] Mint
	// ··········· Mint of the token asset
	//
	// [2] = [SIGNER] MintAuthority
	// ··········· Mint authority
	//
	// [3] = [WRITE, SIGNER] Payer
	// ··········· Payer funding the account creation
	//
	// [4] = [SIGNER?] UpdateAuthority
	// ··········· Update authority of the metadata record
	//
	// [5] = [] SystemProgram
	// ··········· System program ID
	//
	// [6] = [] SysVarRent
	// ··········· SysVarRentPubkey
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewCreateMetadataAccountV3InstructionBuilder creates a new
// `CreateMetadataAccountV3` instruction builder.
func NewCreateMetadataAccountV3InstructionBuilder() *CreateMetadataAccountV3 {
	nd := &CreateMetadataAccountV3{
		UpdateAuthorityIsSigner: true,
	}
	return nd
}

func (inst *CreateMetadataAccountV3) SetData(data DataV2) *CreateMetadataAccountV3 {
	inst.Data = data
	return inst
}

func (inst *CreateMetadataAccountV3) SetIsMutable(isMutable bool) *CreateMetadataAccountV3 {
	inst.IsMutable = isMutable
	return inst
}

func (inst *CreateMetadataAccountV3) SetCollectionDetails(details *CollectionDetails) *CreateMetadataAccountV3 {
	inst.CollectionDetails = details
	return inst
}

func (inst *CreateMetadataAccountV3) SetMetadataAccount(metadata solana.PublicKey) *CreateMetadataAccountV3 {
	inst.Metadata = metadata
	return inst
}

func (inst *CreateMetadataAccountV3) SetMintAccount(mint solana.PublicKey) *CreateMetadataAccountV3 {
	inst.Mint = mint
	return inst
}

func (inst *CreateMetadataAccountV3) SetMintAuthority(mintAuthority solana.PublicKey) *CreateMetadataAccountV3 {
	inst.MintAuthority = mintAuthority
	return inst
}

func (inst *CreateMetadataAccountV3) SetPayer(payer solana.PublicKey) *CreateMetadataAccountV3 {
	inst.Payer = payer
	return inst
}

func (inst *CreateMetadataAccountV3) SetUpdateAuthority(updateAuthority solana.PublicKey, isSigner bool) *CreateMetadataAccountV3 {
	inst.UpdateAuthority = updateAuthority
	inst.UpdateAuthorityIsSigner = isSigner
	return inst
}

func (inst CreateMetadataAccountV3) Build() *Instruction {

	keys := []*solana.AccountMeta{
		{
			PublicKey:  inst.Metadata,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  inst.Mint,
			IsSigner:   false,
			IsWritable: false,
		},
		{
			PublicKey:  inst.MintAuthority,
			IsSigner:   true,
			IsWritable: false,
		},
		{
			PublicKey:  inst.Payer,
			IsSigner:   true,
			IsWritable: true,
		},
		{
			PublicKey:  inst.UpdateAuthority,
			IsSigner:   inst.UpdateAuthorityIsSigner,
			IsWritable: false,
		},
		{
			PublicKey:  solana.SystemProgramID,
			IsSigner:   false,
			IsWritable: false,
		},
		{
			PublicKey:  solana.SysVarRentPubkey,
			IsSigner:   false,
			IsWritable: false,
		},
	}

	inst.AccountMetaSlice = keys

	return &Instruction{BaseVariant: bin.BaseVariant{
		Impl:   inst,
		TypeID: bin.TypeIDFromUint8(Instruction_CreateMetadataAccountV3),
	}}
}

// ValidateAndBuild validates the instruction parameters and accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst CreateMetadataAccountV3) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *CreateMetadataAccountV3) Validate() error {
	if err := inst.Data.Validate(); err != nil {
		return err
	}
	if inst.Metadata.IsZero() {
		return errors.New("Metadata not set")
	}
	if inst.Mint.IsZero() {
		return errors.New("Mint not set")
	}
	if inst.MintAuthority.IsZero() {
		return errors.New("MintAuthority not set")
	}
	if inst.Payer.IsZero() {
		return errors.New("Payer not set")
	}
	if inst.UpdateAuthority.IsZero() {
		return errors.New("UpdateAuthority not set")
	}
	return nil
}

func (inst *CreateMetadataAccountV3) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("CreateMetadataAccountV3")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=3]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("             Data", inst.Data))
						paramsBranch.Child(format.Param("        IsMutable", inst.IsMutable))
						paramsBranch.Child(format.Param("CollectionDetails", inst.CollectionDetails))
					})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=7]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("       metadata", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("           mint", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("  mintAuthority", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("          payer", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("updateAuthority", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("  systemProgram", inst.AccountMetaSlice.Get(5)))
						accountsBranch.Child(format.Meta("     sysVarRent", inst.AccountMetaSlice.Get(6)))
					})
				})
		})
}

func (inst CreateMetadataAccountV3) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.Encode(inst.Data); err != nil {
		return err
	}
	if err = encoder.Encode(inst.IsMutable); err != nil {
		return err
	}
	// CollectionDetails (optional)
	if inst.CollectionDetails == nil {
		return encoder.WriteBool(false)
	}
	if err = encoder.WriteBool(true); err != nil {
		return err
	}
	return encoder.Encode(*inst.CollectionDetails)
}

func (inst *CreateMetadataAccountV3) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = decoder.Decode(&inst.Data); err != nil {
		return err
	}
	if err = decoder.Decode(&inst.IsMutable); err != nil {
		return err
	}
	ok, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if ok {
		inst.CollectionDetails = new(CollectionDetails)
		return decoder.Decode(inst.CollectionDetails)
	}
	return nil
}

// GetAccounts implements the AccountsGettable interface
func (inst CreateMetadataAccountV3) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewCreateMetadataAccountV3Instruction creates a metadata account for a mint,
// holding its name, symbol, uri and royalty configuration.
func NewCreateMetadataAccountV3Instruction(
	// Parameters:
	data DataV2,
	isMutable bool,
	collectionDetails *CollectionDetails,
	// Accounts:
	metadata solana.PublicKey,
	mint solana.PublicKey,
	mintAuthority solana.PublicKey,
	payer solana.PublicKey,
	updateAuthority solana.PublicKey,
) *CreateMetadataAccountV3 {
	return NewCreateMetadataAccountV3InstructionBuilder().
		SetData(data).
		SetIsMutable(isMutable).
		SetCollectionDetails(collectionDetails).
		SetMetadataAccount(metadata).
		SetMintAccount(mint).
		SetMintAuthority(mintAuthority).
		SetPayer(payer).
		SetUpdateAuthority(updateAuthority, true)
}
