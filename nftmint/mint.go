package nftmint

import (
	"context"
	"fmt"

	solanago "github.com/krazyTry/metaplex-go/solana"
	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
)

// MintResult reports the accounts created by a confirmed mint.
type MintResult struct {
	Signature     solana.Signature
	Mint          solana.PublicKey
	Recipient     solana.PublicKey
	TokenAccount  solana.PublicKey
	Metadata      solana.PublicKey
	MasterEdition solana.PublicKey
}

// MintInstruction builds the instruction sequence that issues one NFT:
//
//  1. create the mint account and initialize it with decimals 0
//  2. create the owner's associated token account if it does not exist
//  3. mint exactly one unit into it
//  4. create the metadata account
//  5. create the master edition with max supply 0
//
// All five run in one transaction, so a failure in any step leaves no account
// behind. payer funds the accounts and becomes mint, freeze and update
// authority; owner receives the unit. The mint must be a fresh keypair whose
// account does not exist yet.
func MintInstruction(
	ctx context.Context,
	rpcClient *rpc.Client,
	payer solana.PublicKey,
	owner solana.PublicKey,
	mint solana.PublicKey,
	data tokenmetadata.DataV2,
	isMutable bool,
) ([]solana.Instruction, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}

	if _, err := solanago.GetAccountInfo(ctx, rpcClient, mint); err == nil {
		return nil, fmt.Errorf("%w: mint %s", ErrMintAlreadyInitialized, mint)
	} else if err != rpc.ErrNotFound {
		return nil, err
	}

	lamports, err := rpcClient.GetMinimumBalanceForRentExemption(
		ctx,
		uint64(token.MINT_SIZE),
		rpc.CommitmentFinalized,
	)
	if err != nil {
		return nil, err
	}

	metadata, err := tokenmetadata.DeriveMetadata(mint)
	if err != nil {
		return nil, err
	}

	edition, err := tokenmetadata.DeriveMasterEdition(mint)
	if err != nil {
		return nil, err
	}

	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(
			lamports,
			token.MINT_SIZE,
			solana.TokenProgramID,
			payer,
			mint,
		).Build(),
		token.NewInitializeMint2InstructionBuilder().
			SetDecimals(0).
			SetMintAuthority(payer).
			SetFreezeAuthority(payer).
			SetMintAccount(mint).Build(),
	}

	tokenATA, err := solanago.PrepareTokenATA(ctx, rpcClient, owner, mint, payer, &instructions)
	if err != nil {
		return nil, err
	}

	instructions = append(instructions,
		token.NewMintToInstruction(
			1,
			mint,
			tokenATA,
			payer,
			nil,
		).Build(),
		tokenmetadata.NewCreateMetadataAccountV3Instruction(
			data,
			isMutable,
			nil,
			metadata,
			mint,
			payer,
			payer,
			payer,
		).Build(),
		tokenmetadata.NewCreateMasterEditionV3Instruction(
			0,
			edition,
			mint,
			payer,
			payer,
			payer,
			metadata,
		).Build(),
	)

	return instructions, nil
}

// Mint issues a new NFT with a fresh mint keypair and delivers it to the
// authority.
func (m *Minter) Mint(ctx context.Context, name, symbol, uri string) (*MintResult, error) {
	return m.MintWithKeypair(ctx, solana.NewWallet(), name, symbol, uri)
}

// MintWithKeypair issues a new NFT using the given mint keypair, which lets
// callers bring a vanity address. The keypair must not have been used before.
func (m *Minter) MintWithKeypair(ctx context.Context, mint *solana.Wallet, name, symbol, uri string) (*MintResult, error) {
	payer := m.authority

	data := tokenmetadata.DataV2{
		Name:                 name,
		Symbol:               symbol,
		Uri:                  uri,
		SellerFeeBasisPoints: m.sellerFeeBasisPoints,
	}
	if len(m.creators) > 0 {
		creators := make([]tokenmetadata.Creator, len(m.creators))
		copy(creators, m.creators)
		data.Creators = &creators
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	lamportsSOL, err := solanago.SOLBalance(ctx, m.rpcClient, payer.PublicKey())
	if err != nil {
		return nil, err
	}

	need, err := mintCost(ctx, m.rpcClient)
	if err != nil {
		return nil, err
	}

	if lamportsSOL < need {
		return nil, fmt.Errorf("%w: balance %s SOL, need %s SOL",
			ErrInsufficientFunds,
			decimal.New(int64(lamportsSOL), -9),
			decimal.New(int64(need), -9),
		)
	}

	instructions, err := MintInstruction(
		ctx,
		m.rpcClient,
		payer.PublicKey(),
		payer.PublicKey(),
		mint.PublicKey(),
		data,
		!m.immutableMetadata,
	)
	if err != nil {
		return nil, err
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
			case key.Equals(mint.PublicKey()):
				return &mint.PrivateKey
			default:
				return nil
			}
		},
	)
	if err != nil {
		return nil, err
	}

	tokenAccount, _, err := solana.FindAssociatedTokenAddress(payer.PublicKey(), mint.PublicKey())
	if err != nil {
		return nil, err
	}

	metadata, err := tokenmetadata.DeriveMetadata(mint.PublicKey())
	if err != nil {
		return nil, err
	}

	edition, err := tokenmetadata.DeriveMasterEdition(mint.PublicKey())
	if err != nil {
		return nil, err
	}

	if m.onMinted != nil {
		m.onMinted(MintEvent{
			Mint:      mint.PublicKey(),
			Recipient: payer.PublicKey(),
			Metadata:  metadata,
		})
	}

	return &MintResult{
		Signature:     sig,
		Mint:          mint.PublicKey(),
		Recipient:     payer.PublicKey(),
		TokenAccount:  tokenAccount,
		Metadata:      metadata,
		MasterEdition: edition,
	}, nil
}

// mintCost totals the rent of the four accounts a mint creates plus the
// transaction fee.
func mintCost(ctx context.Context, rpcClient *rpc.Client) (uint64, error) {
	// the holding account
	total, err := solanago.GetRentExempt(ctx, rpcClient)
	if err != nil {
		return 0, err
	}

	for _, size := range []uint64{
		token.MINT_SIZE,
		tokenmetadata.MAX_METADATA_LEN,
		tokenmetadata.MAX_MASTER_EDITION_LEN,
	} {
		lamports, err := rpcClient.GetMinimumBalanceForRentExemption(ctx, size, rpc.CommitmentFinalized)
		if err != nil {
			return 0, err
		}
		total += lamports
	}
	return total + transferFee, nil
}
