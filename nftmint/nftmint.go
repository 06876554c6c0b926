// Package nftmint issues non-fungible tokens on Solana by composing three
// deployed programs: SPL Token, the Associated Token Account program and the
// Token Metadata program. One transaction creates a zero-decimals mint, mints
// the single unit into the holding account, attaches the name/symbol/uri
// metadata record and caps supply with a master edition.
package nftmint

import (
	"errors"

	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/ws"
)

var (
	ErrMintAlreadyInitialized = errors.New("mint already initialized")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrNFTNotFound            = errors.New("nft not found")

	// Field validation errors, aliased so callers can check the whole
	// taxonomy against this package alone.
	ErrNameTooLong   = tokenmetadata.ErrNameTooLong
	ErrSymbolTooLong = tokenmetadata.ErrSymbolTooLong
	ErrURITooLong    = tokenmetadata.ErrURITooLong

	transferFee = uint64(5000) // 0.000005 SOL
)

// MintEvent is the "NFT minted" notification delivered after a mint confirms.
type MintEvent struct {
	Mint      solana.PublicKey
	Recipient solana.PublicKey
	Metadata  solana.PublicKey
}

type Minter struct {
	rpcClient *rpc.Client
	wsClient  *ws.Client
	authority *solana.Wallet

	sellerFeeBasisPoints uint16
	creators             []tokenmetadata.Creator
	immutableMetadata    bool
	onMinted             func(MintEvent)
}

// NewMinter creates a minting client. The authority wallet pays rent and fees,
// signs as mint and update authority, and holds the minted unit.
//
// Example:
//
//	minter, _ := nftmint.NewMinter(rpcClient, wsClient, ownerWallet)
//
//	nft, _ := minter.Mint(ctx, "Test NFT", "TEST", "https://arweave.net/your-nft-metadata")
//
//	minter.Transfer(ctx, nft.Mint, recipient)
func NewMinter(
	rpcClient *rpc.Client,
	wsClient *ws.Client,
	authority *solana.Wallet,
	opts ...Option,
) (*Minter, error) {
	if rpcClient == nil {
		return nil, errors.New("rpc client is required")
	}
	if authority == nil {
		return nil, errors.New("authority wallet is required")
	}

	m := &Minter{
		rpcClient: rpcClient,
		wsClient:  wsClient,
		authority: authority,
	}
	for _, fn := range opts {
		fn(m)
	}
	if m.creators == nil {
		m.creators = []tokenmetadata.Creator{{
			Address:  authority.PublicKey(),
			Verified: true,
			Share:    100,
		}}
	}
	return m, nil
}

type Option func(*Minter)

// WithSellerFeeBasisPoints sets the royalty recorded in new metadata records.
// 100 basis points = 1%.
func WithSellerFeeBasisPoints(bps uint16) Option {
	return func(m *Minter) {
		m.sellerFeeBasisPoints = bps
	}
}

// WithCreators overrides the creator list recorded in new metadata records.
// By default the authority is the sole verified creator with share 100.
// The program rejects Verified on any creator that does not sign the mint.
func WithCreators(creators []tokenmetadata.Creator) Option {
	return func(m *Minter) {
		m.creators = creators
	}
}

// WithImmutableMetadata makes new metadata records immutable from the start.
// Immutable records reject every later update.
func WithImmutableMetadata() Option {
	return func(m *Minter) {
		m.immutableMetadata = true
	}
}

// WithMintedCallback registers a callback invoked after each confirmed mint.
func WithMintedCallback(fn func(MintEvent)) Option {
	return func(m *Minter) {
		m.onMinted = fn
	}
}
