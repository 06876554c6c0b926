package tokenmetadata

import (
	"strings"
	"testing"

	solana "github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

func TestCreateMetadataAccountV3Data(t *testing.T) {
	metadata := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	inst, err := NewCreateMetadataAccountV3Instruction(
		DataV2{
			Name:   "Test NFT",
			Symbol: "TEST",
			Uri:    "https://arweave.net/your-nft-metadata",
		},
		true,
		nil,
		metadata,
		mint,
		authority,
		authority,
		authority,
	).ValidateAndBuild()
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)

	uri := "https://arweave.net/your-nft-metadata"
	expected := []byte{Instruction_CreateMetadataAccountV3}
	expected = append(expected, 8, 0, 0, 0)
	expected = append(expected, []byte("Test NFT")...)
	expected = append(expected, 4, 0, 0, 0)
	expected = append(expected, []byte("TEST")...)
	expected = append(expected, byte(len(uri)), 0, 0, 0)
	expected = append(expected, []byte(uri)...)
	expected = append(expected,
		0, 0, // seller fee basis points
		0, // creators: none
		0, // collection: none
		0, // uses: none
		1, // is mutable
		0, // collection details: none
	)
	require.Equal(t, expected, data)

	accounts := inst.Accounts()
	require.Len(t, accounts, 7)
	require.Equal(t, metadata, accounts[0].PublicKey)
	require.True(t, accounts[0].IsWritable)
	require.Equal(t, mint, accounts[1].PublicKey)
	require.True(t, accounts[2].IsSigner)
	require.True(t, accounts[3].IsSigner)
	require.True(t, accounts[3].IsWritable)
	require.Equal(t, solana.SystemProgramID, accounts[5].PublicKey)
	require.Equal(t, solana.SysVarRentPubkey, accounts[6].PublicKey)
}

func TestCreateMetadataAccountV3Validate(t *testing.T) {
	_, err := NewCreateMetadataAccountV3InstructionBuilder().ValidateAndBuild()
	require.ErrorContains(t, err, "Metadata not set")

	authority := solana.NewWallet().PublicKey()
	_, err = NewCreateMetadataAccountV3Instruction(
		DataV2{
			Name:   strings.Repeat("x", MAX_NAME_LENGTH+1),
			Symbol: "TEST",
			Uri:    "https://arweave.net/your-nft-metadata",
		},
		true,
		nil,
		solana.NewWallet().PublicKey(),
		solana.NewWallet().PublicKey(),
		authority,
		authority,
		authority,
	).ValidateAndBuild()
	require.ErrorIs(t, err, ErrNameTooLong)
}

func TestCreateMasterEditionV3Data(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	metadata, err := DeriveMetadata(mint)
	require.NoError(t, err)
	edition, err := DeriveMasterEdition(mint)
	require.NoError(t, err)

	inst, err := NewCreateMasterEditionV3Instruction(
		0,
		edition,
		mint,
		authority,
		authority,
		authority,
		metadata,
	).ValidateAndBuild()
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{
		Instruction_CreateMasterEditionV3,
		1, // max supply: some
		0, 0, 0, 0, 0, 0, 0, 0,
	}, data)

	accounts := inst.Accounts()
	require.Len(t, accounts, 9)
	require.Equal(t, edition, accounts[0].PublicKey)
	require.True(t, accounts[0].IsWritable)
	require.Equal(t, mint, accounts[1].PublicKey)
	require.True(t, accounts[1].IsWritable)
	require.Equal(t, metadata, accounts[5].PublicKey)
	require.Equal(t, solana.TokenProgramID, accounts[6].PublicKey)
	require.Equal(t, solana.SystemProgramID, accounts[7].PublicKey)
	require.Equal(t, solana.SysVarRentPubkey, accounts[8].PublicKey)
}

func TestCreateMasterEditionV3NoMaxSupply(t *testing.T) {
	inst := NewCreateMasterEditionV3InstructionBuilder().
		SetEditionAccount(solana.NewWallet().PublicKey()).
		SetMintAccount(solana.NewWallet().PublicKey()).
		SetUpdateAuthority(solana.NewWallet().PublicKey()).
		SetMintAuthority(solana.NewWallet().PublicKey()).
		SetPayer(solana.NewWallet().PublicKey()).
		SetMetadataAccount(solana.NewWallet().PublicKey()).
		Build()

	data, err := inst.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{
		Instruction_CreateMasterEditionV3,
		0, // max supply: none
	}, data)
}

func TestUpdateMetadataAccountV2Data(t *testing.T) {
	metadata := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	inst, err := NewUpdateMetadataAccountV2InstructionBuilder().
		SetIsMutable(false).
		SetMetadataAccount(metadata).
		SetUpdateAuthority(authority).
		ValidateAndBuild()
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)
	require.Equal(t, []byte{
		Instruction_UpdateMetadataAccountV2,
		0, // data: none
		0, // new update authority: none
		0, // primary sale happened: none
		1, 0, // is mutable: some(false)
	}, data)

	accounts := inst.Accounts()
	require.Len(t, accounts, 2)
	require.Equal(t, metadata, accounts[0].PublicKey)
	require.True(t, accounts[0].IsWritable)
	require.Equal(t, authority, accounts[1].PublicKey)
	require.True(t, accounts[1].IsSigner)
}

func TestDecodeInstruction(t *testing.T) {
	mint := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	metadata, err := DeriveMetadata(mint)
	require.NoError(t, err)

	creators := []Creator{{Address: authority, Verified: true, Share: 100}}
	inst, err := NewCreateMetadataAccountV3Instruction(
		DataV2{
			Name:                 "Test NFT",
			Symbol:               "TEST",
			Uri:                  "https://arweave.net/your-nft-metadata",
			SellerFeeBasisPoints: 500,
			Creators:             &creators,
		},
		true,
		nil,
		metadata,
		mint,
		authority,
		authority,
		authority,
	).ValidateAndBuild()
	require.NoError(t, err)

	data, err := inst.Data()
	require.NoError(t, err)

	decoded, err := DecodeInstruction(inst.Accounts(), data)
	require.NoError(t, err)
	require.Equal(t, Instruction_CreateMetadataAccountV3, decoded.TypeID.Uint8())

	impl, ok := decoded.Impl.(*CreateMetadataAccountV3)
	require.True(t, ok)
	require.Equal(t, "Test NFT", impl.Data.Name)
	require.Equal(t, "TEST", impl.Data.Symbol)
	require.Equal(t, uint16(500), impl.Data.SellerFeeBasisPoints)
	require.True(t, impl.IsMutable)
	require.NotNil(t, impl.Data.Creators)
	require.Equal(t, creators, *impl.Data.Creators)
	require.Equal(t, metadata, impl.GetAccounts()[0].PublicKey)
}

func TestInstructionIDToName(t *testing.T) {
	require.Equal(t, "CreateMetadataAccountV3", InstructionIDToName(Instruction_CreateMetadataAccountV3))
	require.Equal(t, "CreateMasterEditionV3", InstructionIDToName(Instruction_CreateMasterEditionV3))
	require.Equal(t, "UpdateMetadataAccountV2", InstructionIDToName(Instruction_UpdateMetadataAccountV2))
	require.Equal(t, "", InstructionIDToName(200))
}
