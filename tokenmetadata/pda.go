package tokenmetadata

import (
	"github.com/gagliardetto/solana-go"
)

var seed = struct {
	Metadata []byte
	Edition  []byte
}{
	Metadata: []byte("metadata"),
	Edition:  []byte("edition"),
}

// DeriveMetadata derives the metadata PDA of a mint.
// The address is a pure function of the mint: re-deriving it always yields the
// same account.
func DeriveMetadata(mint solana.PublicKey) (solana.PublicKey, error) {
	pub, _, err := solana.FindProgramAddress([][]byte{
		seed.Metadata,
		ProgramID.Bytes(),
		mint.Bytes(),
	}, ProgramID)
	return pub, err
}

// DeriveMasterEdition derives the master-edition PDA of a mint.
func DeriveMasterEdition(mint solana.PublicKey) (solana.PublicKey, error) {
	pub, _, err := solana.FindProgramAddress([][]byte{
		seed.Metadata,
		ProgramID.Bytes(),
		mint.Bytes(),
		seed.Edition,
	}, ProgramID)
	return pub, err
}
