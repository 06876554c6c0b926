package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
)

// Token represents a Solana token with mint information and owner
type Token struct {
	token.Mint
	// Owner account of the token
	Owner solana.PublicKey
}

// TokenLayout provides methods for decoding token data
type TokenLayout struct {
}

func (l *TokenLayout) Decode(data []byte) (*Token, error) {
	mint := token.Mint{}

	if err := mint.Decode(data); err != nil {
		return nil, err
	}
	return &Token{Mint: mint}, nil
}

// GetMint fetches and decodes a token mint.
func GetMint(ctx context.Context, rpcClient *rpc.Client, mint solana.PublicKey) (*Token, error) {
	out, err := GetAccountInfo(ctx, rpcClient, mint)
	if err != nil {
		return nil, err
	}

	tokenMint, err := new(TokenLayout).Decode(out.Value.Data.GetBinary())
	if err != nil {
		return nil, err
	}
	tokenMint.Owner = out.Value.Owner
	return tokenMint, nil
}
