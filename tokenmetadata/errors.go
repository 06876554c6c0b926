package tokenmetadata

import "fmt"

// Custom error codes returned by the Token Metadata program, in declaration
// order. Failed transactions surface these as the Custom value of an
// InstructionError.
const (
	ErrCode_InstructionUnpackError uint32 = iota
	ErrCode_InstructionPackError
	ErrCode_NotRentExempt
	ErrCode_AlreadyInitialized
	ErrCode_Uninitialized
	ErrCode_InvalidMetadataKey
	ErrCode_InvalidEditionKey
	ErrCode_UpdateAuthorityIncorrect
	ErrCode_UpdateAuthorityIsNotSigner
	ErrCode_NotMintAuthority
	ErrCode_InvalidMintAuthority
	ErrCode_NameTooLong
	ErrCode_SymbolTooLong
	ErrCode_UriTooLong
	ErrCode_UpdateAuthorityMustBeEqualToMetadataAuthorityAndSigner
	ErrCode_MintMismatch
	ErrCode_EditionsMustHaveExactlyOneToken
	ErrCode_MaxEditionsMintedAlready
	ErrCode_TokenMintToFailed
	ErrCode_MasterRecordMismatch
	ErrCode_DestinationMintMismatch
	ErrCode_EditionAlreadyMinted
)

// ErrorName resolves a custom program error code to its name, or
// "Unknown(n)" for codes this package does not mirror.
func ErrorName(code uint32) string {
	switch code {
	case ErrCode_InstructionUnpackError:
		return "InstructionUnpackError"
	case ErrCode_InstructionPackError:
		return "InstructionPackError"
	case ErrCode_NotRentExempt:
		return "NotRentExempt"
	case ErrCode_AlreadyInitialized:
		return "AlreadyInitialized"
	case ErrCode_Uninitialized:
		return "Uninitialized"
	case ErrCode_InvalidMetadataKey:
		return "InvalidMetadataKey"
	case ErrCode_InvalidEditionKey:
		return "InvalidEditionKey"
	case ErrCode_UpdateAuthorityIncorrect:
		return "UpdateAuthorityIncorrect"
	case ErrCode_UpdateAuthorityIsNotSigner:
		return "UpdateAuthorityIsNotSigner"
	case ErrCode_NotMintAuthority:
		return "NotMintAuthority"
	case ErrCode_InvalidMintAuthority:
		return "InvalidMintAuthority"
	case ErrCode_NameTooLong:
		return "NameTooLong"
	case ErrCode_SymbolTooLong:
		return "SymbolTooLong"
	case ErrCode_UriTooLong:
		return "UriTooLong"
	case ErrCode_UpdateAuthorityMustBeEqualToMetadataAuthorityAndSigner:
		return "UpdateAuthorityMustBeEqualToMetadataAuthorityAndSigner"
	case ErrCode_MintMismatch:
		return "MintMismatch"
	case ErrCode_EditionsMustHaveExactlyOneToken:
		return "EditionsMustHaveExactlyOneToken"
	case ErrCode_MaxEditionsMintedAlready:
		return "MaxEditionsMintedAlready"
	case ErrCode_TokenMintToFailed:
		return "TokenMintToFailed"
	case ErrCode_MasterRecordMismatch:
		return "MasterRecordMismatch"
	case ErrCode_DestinationMintMismatch:
		return "DestinationMintMismatch"
	case ErrCode_EditionAlreadyMinted:
		return "EditionAlreadyMinted"
	default:
		return fmt.Sprintf("Unknown(%d)", code)
	}
}
