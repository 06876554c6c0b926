package nftmint

import (
	"context"
	"fmt"
	"math/big"

	solanago "github.com/krazyTry/metaplex-go/solana"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
)

// TransferInstruction builds a checked transfer of the single unit from the
// sender's token account to the recipient's, creating the recipient's
// associated token account when absent.
func TransferInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	sender solana.PublicKey,
	recipient solana.PublicKey,
	mint solana.PublicKey,
) ([]solana.Instruction, error) {
	return solanago.TransferInstruction(ctx, rpcClient, payer, sender, recipient, mint, 0, big.NewInt(1))
}

// Transfer moves the NFT from the authority to the recipient.
func (m *Minter) Transfer(ctx context.Context, mint solana.PublicKey, recipient solana.PublicKey) (string, error) {
	payer := m.authority

	instructions, err := TransferInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		payer.PublicKey(),
		recipient,
		mint,
	)
	if err != nil {
		return "", err
	}

	// every instruction before the transfer itself is an ATA create, each of
	// which debits one token account's rent from the payer
	need := transferFee
	if creates := uint64(len(instructions) - 1); creates > 0 {
		rent, err := solanago.GetRentExempt(ctx, m.rpcClient)
		if err != nil {
			return "", err
		}
		need += creates * rent
	}

	balance, err := solanago.SOLBalance(ctx, m.rpcClient, payer.PublicKey())
	if err != nil {
		return "", err
	}
	if balance < need {
		return "", fmt.Errorf("%w: balance %s SOL, need %s SOL",
			ErrInsufficientFunds,
			decimal.New(int64(balance), -9),
			decimal.New(int64(need), -9),
		)
	}

	sig, err := solanago.SendTransaction(
		ctx,
		m.rpcClient,
		m.wsClient,
		instructions,
		payer.PublicKey(),
		func(key solana.PublicKey) *solana.PrivateKey {
			switch {
			case key.Equals(payer.PublicKey()):
				return &payer.PrivateKey
			default:
				return nil
			}
		},
	)
	if err != nil {
		return "", err
	}
	return sig.String(), nil
}
