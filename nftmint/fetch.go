package nftmint

import (
	"context"
	"fmt"

	solanago "github.com/krazyTry/metaplex-go/solana"
	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// NFT aggregates the on-chain state of one minted token.
type NFT struct {
	Mint            solana.PublicKey
	Supply          uint64
	Decimals        uint8
	MintAuthority   *solana.PublicKey
	FreezeAuthority *solana.PublicKey

	MetadataAddress solana.PublicKey
	Metadata        *tokenmetadata.Metadata

	EditionAddress solana.PublicKey
	// Edition is nil when the mint carries metadata but no master edition.
	Edition *tokenmetadata.MasterEditionV2

	// TokenAccount is the authority's associated token account for the mint.
	// Balance is 0 after the NFT has been transferred away.
	TokenAccount solana.PublicKey
	Balance      uint64
}

// GetNFT fetches the mint, metadata, master edition and holding account of an
// NFT in a single batched account read. It returns ErrNFTNotFound when the
// mint does not exist or carries no metadata record.
func (m *Minter) GetNFT(ctx context.Context, mint solana.PublicKey) (*NFT, error) {
	metadataAccount, err := tokenmetadata.DeriveMetadata(mint)
	if err != nil {
		return nil, err
	}

	editionAccount, err := tokenmetadata.DeriveMasterEdition(mint)
	if err != nil {
		return nil, err
	}

	tokenAccount, _, err := solana.FindAssociatedTokenAddress(m.authority.PublicKey(), mint)
	if err != nil {
		return nil, err
	}

	out, err := solanago.GetMultipleAccountInfo(ctx, m.rpcClient, []solana.PublicKey{
		mint,
		metadataAccount,
		editionAccount,
		tokenAccount,
	})
	if err != nil {
		if err == rpc.ErrNotFound {
			return nil, fmt.Errorf("%w: mint %s", ErrNFTNotFound, mint)
		}
		return nil, err
	}
	if len(out.Value) != 4 {
		return nil, fmt.Errorf("getMultipleAccounts returned %d accounts, want 4", len(out.Value))
	}

	mintAccount := out.Value[0]
	if mintAccount == nil {
		return nil, fmt.Errorf("%w: mint %s", ErrNFTNotFound, mint)
	}
	mintState, err := new(solanago.TokenLayout).Decode(mintAccount.Data.GetBinary())
	if err != nil {
		return nil, err
	}

	metadataValue := out.Value[1]
	if metadataValue == nil {
		return nil, fmt.Errorf("%w: mint %s has no metadata", ErrNFTNotFound, mint)
	}
	if !metadataValue.Owner.Equals(tokenmetadata.ProgramID) {
		return nil, fmt.Errorf("account %s is not owned by the token metadata program", metadataAccount)
	}
	metadata, err := tokenmetadata.ParseMetadata(metadataValue.Data.GetBinary())
	if err != nil {
		return nil, err
	}

	var edition *tokenmetadata.MasterEditionV2
	if editionValue := out.Value[2]; editionValue != nil {
		if !editionValue.Owner.Equals(tokenmetadata.ProgramID) {
			return nil, fmt.Errorf("account %s is not owned by the token metadata program", editionAccount)
		}
		if edition, err = tokenmetadata.ParseMasterEdition(editionValue.Data.GetBinary()); err != nil {
			return nil, err
		}
	}

	var balance uint64
	if holding := out.Value[3]; holding != nil {
		account, err := new(solanago.AccountLayout).Decode(holding.Data.GetBinary())
		if err != nil {
			return nil, err
		}
		balance = account.Amount
	}

	return &NFT{
		Mint:            mint,
		Supply:          mintState.Supply,
		Decimals:        mintState.Decimals,
		MintAuthority:   mintState.MintAuthority,
		FreezeAuthority: mintState.FreezeAuthority,
		MetadataAddress: metadataAccount,
		Metadata:        metadata,
		EditionAddress:  editionAccount,
		Edition:         edition,
		TokenAccount:    tokenAccount,
		Balance:         balance,
	}, nil
}
