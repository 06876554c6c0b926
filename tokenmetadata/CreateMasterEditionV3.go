package tokenmetadata

import (
	"errors"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	format "github.com/gagliardetto/solana-go/text/format"
	treeout "github.com/gagliardetto/treeout"
)

// CreateMasterEditionV3 creates the master-edition account of a mint, marking
// it as the original, supply-capped edition. The mint must have zero decimals
// and a supply of exactly one. On success the program moves the mint and
// freeze authorities to the edition PDA, so no further units can ever be
// minted directly.
type CreateMasterEditionV3 struct {
	// MaxSupply caps the number of printable editions. 0 means no prints can
	// ever be made from this master; nil means unlimited prints.
	MaxSupply *uint64

	Edition         solana.PublicKey `bin:"-" borsh_skip:"true"`
	Mint            solana.PublicKey `bin:"-" borsh_skip:"true"`
	UpdateAuthority solana.PublicKey `bin:"-" borsh_skip:"true"`
	MintAuthority   solana.PublicKey `bin:"-" borsh_skip:"true"`
	Payer           solana.PublicKey `bin:"-" borsh_skip:"true"`
	Metadata        solana.PublicKey `bin:"-" borsh_skip:"true"`

	// [0] = [WRITE] Edition
	// ··········· Master-edition PDA of the mint
	//
	// [1] = [WRITE] Mint
	// ··········· Mint with zero decimals and supply of one
	//
	// [2] = [SIGNER] UpdateAuthority
	// ··········· Update authority of the metadata record
	//
	// [3] = [SIGNER] MintAuthority
	// ··········· Mint authority of the mint
	//
	// [4] = [WRITE, SIGNER] Payer
	// ··········· Payer funding the account creation
	//
	// [5] = [WRITE] Metadata
	// ··········· Metadata PDA of the mint
	//
	// [6] = [] TokenProgram
	// ··········· SPL Token program ID
	//
	// [7] = [] SystemProgram
	// ··········· System program ID
	//
	// [8] = [] SysVarRent
	// ··········· SysVarRentPubkey
	solana.AccountMetaSlice `bin:"-" borsh_skip:"true"`
}

// NewCreateMasterEditionV3InstructionBuilder creates a new
// `CreateMasterEditionV3` instruction builder.
func NewCreateMasterEditionV3InstructionBuilder() *CreateMasterEditionV3 {
	nd := &CreateMasterEditionV3{}
	return nd
}

func (inst *CreateMasterEditionV3) SetMaxSupply(maxSupply uint64) *CreateMasterEditionV3 {
	inst.MaxSupply = &maxSupply
	return inst
}

func (inst *CreateMasterEditionV3) SetEditionAccount(edition solana.PublicKey) *CreateMasterEditionV3 {
	inst.Edition = edition
	return inst
}

func (inst *CreateMasterEditionV3) SetMintAccount(mint solana.PublicKey) *CreateMasterEditionV3 {
	inst.Mint = mint
	return inst
}

func (inst *CreateMasterEditionV3) SetUpdateAuthority(updateAuthority solana.PublicKey) *CreateMasterEditionV3 {
	inst.UpdateAuthority = updateAuthority
	return inst
}

func (inst *CreateMasterEditionV3) SetMintAuthority(mintAuthority solana.PublicKey) *CreateMasterEditionV3 {
	inst.MintAuthority = mintAuthority
	return inst
}

func (inst *CreateMasterEditionV3) SetPayer(payer solana.PublicKey) *CreateMasterEditionV3 {
	inst.Payer = payer
	return inst
}

func (inst *CreateMasterEditionV3) SetMetadataAccount(metadata solana.PublicKey) *CreateMasterEditionV3 {
	inst.Metadata = metadata
	return inst
}

func (inst CreateMasterEditionV3) Build() *Instruction {

	keys := []*solana.AccountMeta{
		{
			PublicKey:  inst.Edition,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  inst.Mint,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  inst.UpdateAuthority,
			IsSigner:   true,
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
			PublicKey:  inst.Metadata,
			IsSigner:   false,
			IsWritable: true,
		},
		{
			PublicKey:  solana.TokenProgramID,
			IsSigner:   false,
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
		TypeID: bin.TypeIDFromUint8(Instruction_CreateMasterEditionV3),
	}}
}

// ValidateAndBuild validates the instruction accounts.
// If there is a validation error, return the error.
// Otherwise, build and return the instruction.
func (inst CreateMasterEditionV3) ValidateAndBuild() (*Instruction, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst.Build(), nil
}

func (inst *CreateMasterEditionV3) Validate() error {
	if inst.Edition.IsZero() {
		return errors.New("Edition not set")
	}
	if inst.Mint.IsZero() {
		return errors.New("Mint not set")
	}
	if inst.UpdateAuthority.IsZero() {
		return errors.New("UpdateAuthority not set")
	}
	if inst.MintAuthority.IsZero() {
		return errors.New("MintAuthority not set")
	}
	if inst.Payer.IsZero() {
		return errors.New("Payer not set")
	}
	if inst.Metadata.IsZero() {
		return errors.New("Metadata not set")
	}
	return nil
}

func (inst *CreateMasterEditionV3) EncodeToTree(parent treeout.Branches) {
	parent.Child(format.Program(ProgramName, ProgramID)).
		//
		ParentFunc(func(programBranch treeout.Branches) {
			programBranch.Child(format.Instruction("CreateMasterEditionV3")).
				//
				ParentFunc(func(instructionBranch treeout.Branches) {

					// Parameters of the instruction:
					instructionBranch.Child("Params[len=1]").ParentFunc(func(paramsBranch treeout.Branches) {
						paramsBranch.Child(format.Param("MaxSupply", inst.MaxSupply))
					})

					// Accounts of the instruction:
					instructionBranch.Child("Accounts[len=9]").ParentFunc(func(accountsBranch treeout.Branches) {
						accountsBranch.Child(format.Meta("        edition", inst.AccountMetaSlice.Get(0)))
						accountsBranch.Child(format.Meta("           mint", inst.AccountMetaSlice.Get(1)))
						accountsBranch.Child(format.Meta("updateAuthority", inst.AccountMetaSlice.Get(2)))
						accountsBranch.Child(format.Meta("  mintAuthority", inst.AccountMetaSlice.Get(3)))
						accountsBranch.Child(format.Meta("          payer", inst.AccountMetaSlice.Get(4)))
						accountsBranch.Child(format.Meta("       metadata", inst.AccountMetaSlice.Get(5)))
						accountsBranch.Child(format.Meta("   tokenProgram", inst.AccountMetaSlice.Get(6)))
						accountsBranch.Child(format.Meta("  systemProgram", inst.AccountMetaSlice.Get(7)))
						accountsBranch.Child(format.Meta("     sysVarRent", inst.AccountMetaSlice.Get(8)))
					})
				})
		})
}

func (inst CreateMasterEditionV3) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	// MaxSupply (optional)
	if inst.MaxSupply == nil {
		return encoder.WriteBool(false)
	}
	if err = encoder.WriteBool(true); err != nil {
		return err
	}
	return encoder.Encode(*inst.MaxSupply)
}

func (inst *CreateMasterEditionV3) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	ok, err := decoder.ReadBool()
	if err != nil {
		return err
	}
	if ok {
		inst.MaxSupply = new(uint64)
		return decoder.Decode(inst.MaxSupply)
	}
	return nil
}

// GetAccounts implements the AccountsGettable interface
func (inst CreateMasterEditionV3) GetAccounts() []*solana.AccountMeta {
	return inst.AccountMetaSlice
}

// NewCreateMasterEditionV3Instruction creates a master-edition account for a
// mint whose metadata account already exists.
func NewCreateMasterEditionV3Instruction(
	// Parameters:
	maxSupply uint64,
	// Accounts:
	edition solana.PublicKey,
	mint solana.PublicKey,
	updateAuthority solana.PublicKey,
	mintAuthority solana.PublicKey,
	payer solana.PublicKey,
	metadata solana.PublicKey,
) *CreateMasterEditionV3 {
	return NewCreateMasterEditionV3InstructionBuilder().
		SetMaxSupply(maxSupply).
		SetEditionAccount(edition).
		SetMintAccount(mint).
		SetUpdateAuthority(updateAuthority).
		SetMintAuthority(mintAuthority).
		SetPayer(payer).
		SetMetadataAccount(metadata)
}
