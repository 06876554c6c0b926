package tokenmetadata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	solana "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"
)

// Account discriminators stored in the first byte of every account the
// Token Metadata program owns.
const (
	Key_Uninitialized borsh.Enum = iota
	Key_EditionV1
	Key_MasterEditionV1
	Key_ReservationListV1
	Key_MetadataV1
	Key_ReservationListV2
	Key_MasterEditionV2
	Key_EditionMarker
)

// Allocated account sizes. Accounts are created at full size and zero padded,
// so decoded strings must be trimmed of trailing NULs.
const (
	MAX_METADATA_LEN       = 679
	MAX_MASTER_EDITION_LEN = 282
)

// TokenStandard values stored in a metadata account.
const (
	TokenStandard_NonFungible borsh.Enum = iota
	TokenStandard_FungibleAsset
	TokenStandard_Fungible
	TokenStandard_NonFungibleEdition
	TokenStandard_ProgrammableNonFungible
)

// Data is the metadata payload as stored on chain. It predates DataV2;
// collection and uses live directly on the Metadata account instead.
type Data struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
}

// ProgrammableConfig is present on programmable NFTs only.
type ProgrammableConfig struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   ProgrammableConfigV1
}

type ProgrammableConfigV1 struct {
	RuleSet *solana.PublicKey
}

// Metadata is the decoded state of a metadata account.
type Metadata struct {
	Key                 borsh.Enum
	UpdateAuthority     solana.PublicKey
	Mint                solana.PublicKey
	Data                Data
	PrimarySaleHappened bool
	IsMutable           bool
	EditionNonce        *uint8
	TokenStandard       *borsh.Enum
	Collection          *Collection
	Uses                *Uses
	CollectionDetails   *CollectionDetails
	ProgrammableConfig  *ProgrammableConfig
}

// DataV2 returns the record's payload in the shape UpdateMetadataAccountV2
// expects, carrying collection and uses over unchanged.
func (m *Metadata) DataV2() DataV2 {
	return DataV2{
		Name:                 m.Data.Name,
		Symbol:               m.Data.Symbol,
		Uri:                  m.Data.Uri,
		SellerFeeBasisPoints: m.Data.SellerFeeBasisPoints,
		Creators:             m.Data.Creators,
		Collection:           m.Collection,
		Uses:                 m.Uses,
	}
}

// MasterEditionV2 is the decoded state of a master edition account.
// Supply counts printed copies; MaxSupply nil means unlimited prints.
type MasterEditionV2 struct {
	Key       borsh.Enum
	Supply    uint64
	MaxSupply *uint64
}

// ParseMetadata decodes a metadata account. Records written by older program
// versions can be shorter than the current layout, so the buffer is padded
// before decoding; trailing options then read as absent.
func ParseMetadata(data []byte) (*Metadata, error) {
	if len(data) == 0 {
		return nil, errors.New("empty account data")
	}
	if data[0] != uint8(Key_MetadataV1) {
		return nil, fmt.Errorf("not a metadata account (key = %d)", data[0])
	}
	if len(data) < MAX_METADATA_LEN {
		buf := make([]byte, MAX_METADATA_LEN)
		copy(buf, data)
		data = buf
	}
	metadata := new(Metadata)
	if err := borsh.Deserialize(metadata, data); err != nil {
		return nil, err
	}
	metadata.Data.Name = strings.TrimRight(metadata.Data.Name, "\x00")
	metadata.Data.Symbol = strings.TrimRight(metadata.Data.Symbol, "\x00")
	metadata.Data.Uri = strings.TrimRight(metadata.Data.Uri, "\x00")
	return metadata, nil
}

// ParseMasterEdition decodes a master edition account.
func ParseMasterEdition(data []byte) (*MasterEditionV2, error) {
	if len(data) == 0 {
		return nil, errors.New("empty account data")
	}
	if data[0] != uint8(Key_MasterEditionV2) {
		return nil, fmt.Errorf("not a master edition account (key = %d)", data[0])
	}
	if len(data) < MAX_MASTER_EDITION_LEN {
		buf := make([]byte, MAX_MASTER_EDITION_LEN)
		copy(buf, data)
		data = buf
	}
	edition := new(MasterEditionV2)
	if err := borsh.Deserialize(edition, data); err != nil {
		return nil, err
	}
	return edition, nil
}

// GetMetadata fetches and decodes the metadata account of a mint.
//
// Example:
//
//	metadata, err := tokenmetadata.GetMetadata(ctx, rpcClient, mint)
//	if err != nil {
//		if errors.Is(err, rpc.ErrNotFound) {
//			// mint has no metadata account
//		}
//		return err
//	}
//	fmt.Println(metadata.Data.Name, metadata.Data.Uri)
func GetMetadata(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey) (*Metadata, error) {
	metadataAccount, err := DeriveMetadata(mint)
	if err != nil {
		return nil, err
	}
	resp, err := rpcClient.GetAccountInfoWithOpts(ctx, metadataAccount, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Value.Owner.Equals(ProgramID) {
		return nil, fmt.Errorf("account %s is not owned by the token metadata program", metadataAccount)
	}
	return ParseMetadata(resp.Value.Data.GetBinary())
}

// GetMasterEdition fetches and decodes the master edition account of a mint.
func GetMasterEdition(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey) (*MasterEditionV2, error) {
	editionAccount, err := DeriveMasterEdition(mint)
	if err != nil {
		return nil, err
	}
	resp, err := rpcClient.GetAccountInfoWithOpts(ctx, editionAccount, &rpc.GetAccountInfoOpts{
		Commitment: rpc.CommitmentFinalized,
	})
	if err != nil {
		return nil, err
	}
	if !resp.Value.Owner.Equals(ProgramID) {
		return nil, fmt.Errorf("account %s is not owned by the token metadata program", editionAccount)
	}
	return ParseMasterEdition(resp.Value.Data.GetBinary())
}
