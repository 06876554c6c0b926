package nftmint

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

// testRPCServer serves canned JSON-RPC results so client behavior can be
// checked without a validator.
func testRPCServer(t *testing.T, handle func(req rpcRequest) string) *rpc.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode rpc request: %v", err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%s,"result":%s}`, req.ID, handle(req))
	}))
	t.Cleanup(server.Close)
	return rpc.New(server.URL)
}

func testAccountJSON(owner solana.PublicKey, data []byte) string {
	return fmt.Sprintf(`{"lamports":1461600,"owner":%q,"data":[%q,"base64"],"executable":false,"rentEpoch":0}`,
		owner.String(), base64.StdEncoding.EncodeToString(data))
}

// testMintData lays out an 82-byte SPL mint account the way the token program
// stores it: COption authorities, supply 1, decimals 0, initialized.
func testMintData(authority solana.PublicKey) []byte {
	data := make([]byte, 0, 82)
	// mint authority: some
	data = append(data, 1, 0, 0, 0)
	data = append(data, authority.Bytes()...)
	// supply 1, decimals 0, initialized
	data = append(data, 1, 0, 0, 0, 0, 0, 0, 0)
	data = append(data, 0)
	data = append(data, 1)
	// freeze authority: some
	data = append(data, 1, 0, 0, 0)
	data = append(data, authority.Bytes()...)
	return data
}

// testTokenAccountData lays out a 165-byte SPL token account holding one unit.
func testTokenAccountData(mint, owner solana.PublicKey) []byte {
	data := make([]byte, 0, 165)
	data = append(data, mint.Bytes()...)
	data = append(data, owner.Bytes()...)
	// amount 1
	data = append(data, 1, 0, 0, 0, 0, 0, 0, 0)
	// delegate: none
	data = append(data, 0, 0, 0, 0)
	data = append(data, make([]byte, 32)...)
	// state initialized, not native
	data = append(data, 1)
	data = append(data, 0, 0, 0, 0)
	data = append(data, make([]byte, 8)...)
	// delegated amount 0, close authority: none
	data = append(data, make([]byte, 8)...)
	data = append(data, 0, 0, 0, 0)
	data = append(data, make([]byte, 32)...)
	return data
}

func testMetadataData(t *testing.T, mint, authority solana.PublicKey) []byte {
	t.Helper()
	creators := []tokenmetadata.Creator{{Address: authority, Verified: true, Share: 100}}
	raw, err := borsh.Serialize(tokenmetadata.Metadata{
		Key:             tokenmetadata.Key_MetadataV1,
		UpdateAuthority: authority,
		Mint:            mint,
		Data: tokenmetadata.Data{
			Name:                 "Test NFT",
			Symbol:               "TEST",
			Uri:                  "https://arweave.net/your-nft-metadata",
			SellerFeeBasisPoints: 500,
			Creators:             &creators,
		},
		IsMutable: true,
	})
	require.NoError(t, err)
	return raw
}

func testEditionData(t *testing.T) []byte {
	t.Helper()
	maxSupply := uint64(0)
	raw, err := borsh.Serialize(tokenmetadata.MasterEditionV2{
		Key:       tokenmetadata.Key_MasterEditionV2,
		Supply:    0,
		MaxSupply: &maxSupply,
	})
	require.NoError(t, err)
	return raw
}

// GetNFT must read the mint, metadata, master edition and holding account in
// one getMultipleAccounts call.
func TestGetNFTBatchesAccountReads(t *testing.T) {
	authority := solana.NewWallet()
	mint := solana.NewWallet().PublicKey()

	metadataAccount, err := tokenmetadata.DeriveMetadata(mint)
	require.NoError(t, err)
	editionAccount, err := tokenmetadata.DeriveMasterEdition(mint)
	require.NoError(t, err)
	tokenAccount, _, err := solana.FindAssociatedTokenAddress(authority.PublicKey(), mint)
	require.NoError(t, err)

	response := fmt.Sprintf(`{"context":{"slot":1},"value":[%s,%s,%s,%s]}`,
		testAccountJSON(solana.TokenProgramID, testMintData(authority.PublicKey())),
		testAccountJSON(tokenmetadata.ProgramID, testMetadataData(t, mint, authority.PublicKey())),
		testAccountJSON(tokenmetadata.ProgramID, testEditionData(t)),
		testAccountJSON(solana.TokenProgramID, testTokenAccountData(mint, authority.PublicKey())),
	)

	requests := make(chan rpcRequest, 8)
	rpcClient := testRPCServer(t, func(req rpcRequest) string {
		requests <- req
		return response
	})

	m, err := NewMinter(rpcClient, nil, authority)
	require.NoError(t, err)

	nft, err := m.GetNFT(context.Background(), mint)
	require.NoError(t, err)

	require.Len(t, requests, 1)
	req := <-requests
	require.Equal(t, "getMultipleAccounts", req.Method)

	var params []json.RawMessage
	require.NoError(t, json.Unmarshal(req.Params, &params))
	var addresses []string
	require.NoError(t, json.Unmarshal(params[0], &addresses))
	require.Equal(t, []string{
		mint.String(),
		metadataAccount.String(),
		editionAccount.String(),
		tokenAccount.String(),
	}, addresses)

	require.Equal(t, uint64(1), nft.Supply)
	require.Equal(t, uint8(0), nft.Decimals)
	require.NotNil(t, nft.MintAuthority)
	require.Equal(t, authority.PublicKey(), *nft.MintAuthority)
	require.Equal(t, "Test NFT", nft.Metadata.Data.Name)
	require.Equal(t, "TEST", nft.Metadata.Data.Symbol)
	require.Equal(t, "https://arweave.net/your-nft-metadata", nft.Metadata.Data.Uri)
	require.NotNil(t, nft.Edition)
	require.Equal(t, uint64(0), *nft.Edition.MaxSupply)
	require.Equal(t, uint64(1), nft.Balance)
	require.Equal(t, metadataAccount, nft.MetadataAddress)
	require.Equal(t, editionAccount, nft.EditionAddress)
	require.Equal(t, tokenAccount, nft.TokenAccount)
}

// Missing batch entries mean absent accounts: no mint or no metadata is
// ErrNFTNotFound, while a missing edition or holding account is tolerated.
func TestGetNFTMissingAccounts(t *testing.T) {
	authority := solana.NewWallet()
	mint := solana.NewWallet().PublicKey()

	mintJSON := testAccountJSON(solana.TokenProgramID, testMintData(authority.PublicKey()))
	metadataJSON := testAccountJSON(tokenmetadata.ProgramID, testMetadataData(t, mint, authority.PublicKey()))

	newTestMinter := func(value string) *Minter {
		rpcClient := testRPCServer(t, func(req rpcRequest) string {
			return fmt.Sprintf(`{"context":{"slot":1},"value":[%s]}`, value)
		})
		m, err := NewMinter(rpcClient, nil, authority)
		require.NoError(t, err)
		return m
	}

	t.Run("mint missing", func(t *testing.T) {
		m := newTestMinter(`null,null,null,null`)
		_, err := m.GetNFT(context.Background(), mint)
		require.ErrorIs(t, err, ErrNFTNotFound)
	})

	t.Run("metadata missing", func(t *testing.T) {
		m := newTestMinter(mintJSON + `,null,null,null`)
		_, err := m.GetNFT(context.Background(), mint)
		require.ErrorIs(t, err, ErrNFTNotFound)
	})

	t.Run("edition and holding missing", func(t *testing.T) {
		m := newTestMinter(mintJSON + `,` + metadataJSON + `,null,null`)
		nft, err := m.GetNFT(context.Background(), mint)
		require.NoError(t, err)
		require.Nil(t, nft.Edition)
		require.Equal(t, uint64(0), nft.Balance)
		require.Equal(t, uint64(1), nft.Supply)
	})
}
