package metaplex

import (
	"github.com/krazyTry/metaplex-go/nftmint"
)

// NewMinter creates a new NFT minting client.
//
// Example:
//
// minter, _ := NewMinter(rpcClient, wsClient, ownerWallet)
//
// nft, _ := minter.Mint(ctx1, "Test NFT", "TEST", "https://arweave.net/your-nft-metadata")
//
// minter.Transfer(ctx1, nft.Mint, recipient)
var NewMinter = nftmint.NewMinter
