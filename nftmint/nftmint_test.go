package nftmint

import (
	"testing"

	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/require"
)

func TestNewMinterDefaults(t *testing.T) {
	authority := solana.NewWallet()

	m, err := NewMinter(rpc.New(rpc.DevNet_RPC), nil, authority)
	require.NoError(t, err)

	require.Equal(t, uint16(0), m.sellerFeeBasisPoints)
	require.False(t, m.immutableMetadata)
	require.Len(t, m.creators, 1)
	require.Equal(t, authority.PublicKey(), m.creators[0].Address)
	require.True(t, m.creators[0].Verified)
	require.Equal(t, uint8(100), m.creators[0].Share)
}

func TestNewMinterValidation(t *testing.T) {
	_, err := NewMinter(nil, nil, solana.NewWallet())
	require.Error(t, err)

	_, err = NewMinter(rpc.New(rpc.DevNet_RPC), nil, nil)
	require.Error(t, err)
}

func TestNewMinterOptions(t *testing.T) {
	authority := solana.NewWallet()
	other := solana.NewWallet().PublicKey()

	var got MintEvent
	m, err := NewMinter(
		rpc.New(rpc.DevNet_RPC),
		nil,
		authority,
		WithSellerFeeBasisPoints(250),
		WithCreators([]tokenmetadata.Creator{
			{Address: authority.PublicKey(), Verified: true, Share: 60},
			{Address: other, Share: 40},
		}),
		WithImmutableMetadata(),
		WithMintedCallback(func(ev MintEvent) { got = ev }),
	)
	require.NoError(t, err)

	require.Equal(t, uint16(250), m.sellerFeeBasisPoints)
	require.True(t, m.immutableMetadata)
	require.Len(t, m.creators, 2)
	require.Equal(t, other, m.creators[1].Address)
	require.Equal(t, uint8(40), m.creators[1].Share)

	require.NotNil(t, m.onMinted)
	m.onMinted(MintEvent{Mint: other})
	require.Equal(t, other, got.Mint)
}
