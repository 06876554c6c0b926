// Package tokenmetadata provides bindings for the Metaplex Token Metadata
// program: PDA derivation, instruction builders and account-state decoding for
// metadata and master-edition records.
package tokenmetadata

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
)

// ProgramName is the name of the Token Metadata program
const ProgramName = "TokenMetadata"

// ProgramID is the ID of the Token Metadata program
var ProgramID = solana.TokenMetadataProgramID

// Instruction discriminators of the MetadataInstruction enum.
// Only UpdateMetadataAccountV2, CreateMasterEditionV3 and
// CreateMetadataAccountV3 have builders in this package; the rest are listed
// so instruction data can be named when decoded.
const (
	Instruction_CreateMetadataAccount uint8 = iota
	Instruction_UpdateMetadataAccount
	Instruction_DeprecatedCreateMasterEdition
	Instruction_DeprecatedMintNewEditionFromMasterEditionViaPrintingToken
	Instruction_UpdatePrimarySaleHappenedViaToken
	Instruction_DeprecatedSetReservationList
	Instruction_DeprecatedCreateReservationList
	Instruction_SignMetadata
	Instruction_DeprecatedMintPrintingTokensViaToken
	Instruction_DeprecatedMintPrintingTokens
	Instruction_CreateMasterEdition
	Instruction_MintNewEditionFromMasterEditionViaToken
	Instruction_ConvertMasterEditionV1ToV2
	Instruction_MintNewEditionFromMasterEditionViaVaultProxy
	Instruction_PuffMetadata
	Instruction_UpdateMetadataAccountV2
	Instruction_CreateMetadataAccountV2
	Instruction_CreateMasterEditionV3
	Instruction_VerifyCollection
	Instruction_Utilize
	Instruction_ApproveUseAuthority
	Instruction_RevokeUseAuthority
	Instruction_UnverifyCollection
	Instruction_ApproveCollectionAuthority
	Instruction_RevokeCollectionAuthority
	Instruction_SetAndVerifyCollection
	Instruction_FreezeDelegatedAccount
	Instruction_ThawDelegatedAccount
	Instruction_RemoveCreatorVerification
	Instruction_BurnNft
	Instruction_VerifySizedCollectionItem
	Instruction_UnverifySizedCollectionItem
	Instruction_SetAndVerifySizedCollectionItem
	Instruction_CreateMetadataAccountV3
)

// InstructionIDToName returns the name of the instruction for the given id.
func InstructionIDToName(id uint8) string {
	switch id {
	case Instruction_CreateMetadataAccount:
		return "CreateMetadataAccount"
	case Instruction_UpdateMetadataAccount:
		return "UpdateMetadataAccount"
	case Instruction_DeprecatedCreateMasterEdition:
		return "DeprecatedCreateMasterEdition"
	case Instruction_DeprecatedMintNewEditionFromMasterEditionViaPrintingToken:
		return "DeprecatedMintNewEditionFromMasterEditionViaPrintingToken"
	case Instruction_UpdatePrimarySaleHappenedViaToken:
		return "UpdatePrimarySaleHappenedViaToken"
	case Instruction_DeprecatedSetReservationList:
		return "DeprecatedSetReservationList"
	case Instruction_DeprecatedCreateReservationList:
		return "DeprecatedCreateReservationList"
	case Instruction_SignMetadata:
		return "SignMetadata"
	case Instruction_DeprecatedMintPrintingTokensViaToken:
		return "DeprecatedMintPrintingTokensViaToken"
	case Instruction_DeprecatedMintPrintingTokens:
		return "DeprecatedMintPrintingTokens"
	case Instruction_CreateMasterEdition:
		return "CreateMasterEdition"
	case Instruction_MintNewEditionFromMasterEditionViaToken:
		return "MintNewEditionFromMasterEditionViaToken"
	case Instruction_ConvertMasterEditionV1ToV2:
		return "ConvertMasterEditionV1ToV2"
	case Instruction_MintNewEditionFromMasterEditionViaVaultProxy:
		return "MintNewEditionFromMasterEditionViaVaultProxy"
	case Instruction_PuffMetadata:
		return "PuffMetadata"
	case Instruction_UpdateMetadataAccountV2:
		return "UpdateMetadataAccountV2"
	case Instruction_CreateMetadataAccountV2:
		return "CreateMetadataAccountV2"
	case Instruction_CreateMasterEditionV3:
		return "CreateMasterEditionV3"
	case Instruction_VerifyCollection:
		return "VerifyCollection"
	case Instruction_Utilize:
		return "Utilize"
	case Instruction_ApproveUseAuthority:
		return "ApproveUseAuthority"
	case Instruction_RevokeUseAuthority:
		return "RevokeUseAuthority"
	case Instruction_UnverifyCollection:
		return "UnverifyCollection"
	case Instruction_ApproveCollectionAuthority:
		return "ApproveCollectionAuthority"
	case Instruction_RevokeCollectionAuthority:
		return "RevokeCollectionAuthority"
	case Instruction_SetAndVerifyCollection:
		return "SetAndVerifyCollection"
	case Instruction_FreezeDelegatedAccount:
		return "FreezeDelegatedAccount"
	case Instruction_ThawDelegatedAccount:
		return "ThawDelegatedAccount"
	case Instruction_RemoveCreatorVerification:
		return "RemoveCreatorVerification"
	case Instruction_BurnNft:
		return "BurnNft"
	case Instruction_VerifySizedCollectionItem:
		return "VerifySizedCollectionItem"
	case Instruction_UnverifySizedCollectionItem:
		return "UnverifySizedCollectionItem"
	case Instruction_SetAndVerifySizedCollectionItem:
		return "SetAndVerifySizedCollectionItem"
	case Instruction_CreateMetadataAccountV3:
		return "CreateMetadataAccountV3"
	default:
		return ""
	}
}

// Instruction is a Token Metadata program instruction.
type Instruction struct {
	bin.BaseVariant
}

func (inst *Instruction) ProgramID() solana.PublicKey {
	return ProgramID
}

func (inst *Instruction) Accounts() []*solana.AccountMeta {
	return inst.Impl.(solana.AccountsGettable).GetAccounts()
}

func (inst *Instruction) Data() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := bin.NewBorshEncoder(buf).Encode(inst); err != nil {
		return nil, fmt.Errorf("unable to encode instruction: %w", err)
	}
	return buf.Bytes(), nil
}

func (inst *Instruction) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(inst.TypeID.Uint8()); err != nil {
		return fmt.Errorf("unable to write variant type: %w", err)
	}
	return encoder.Encode(inst.Impl)
}

func (inst *Instruction) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	typeID, err := decoder.ReadUint8()
	if err != nil {
		return fmt.Errorf("unable to read variant type: %w", err)
	}
	inst.TypeID = bin.TypeIDFromUint8(typeID)

	var impl interface{}
	switch typeID {
	case Instruction_UpdateMetadataAccountV2:
		impl = new(UpdateMetadataAccountV2)
	case Instruction_CreateMasterEditionV3:
		impl = new(CreateMasterEditionV3)
	case Instruction_CreateMetadataAccountV3:
		impl = new(CreateMetadataAccountV3)
	default:
		if name := InstructionIDToName(typeID); name != "" {
			return fmt.Errorf("no decoder for instruction %s (%d)", name, typeID)
		}
		return fmt.Errorf("unknown instruction id: %d", typeID)
	}
	if err := decoder.Decode(impl); err != nil {
		return fmt.Errorf("unable to decode instruction impl: %w", err)
	}
	inst.Impl = impl
	return nil
}

// DecodeInstruction decodes a Token Metadata instruction from its account list
// and serialized data.
func DecodeInstruction(accounts []*solana.AccountMeta, data []byte) (*Instruction, error) {
	inst := new(Instruction)
	if err := bin.NewBorshDecoder(data).Decode(inst); err != nil {
		return nil, fmt.Errorf("unable to decode instruction: %w", err)
	}
	if v, ok := inst.Impl.(solana.AccountsSettable); ok {
		if err := v.SetAccounts(accounts); err != nil {
			return nil, fmt.Errorf("unable to set accounts for instruction: %w", err)
		}
	}
	return inst, nil
}
