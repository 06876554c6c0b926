package nftmint

import (
	"context"
	"errors"
	"fmt"

	solanago "github.com/krazyTry/metaplex-go/solana"
	"github.com/krazyTry/metaplex-go/tokenmetadata"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// UpdateParams stages the changes of one metadata update. The data starts out
// as a copy of the on-chain record, so untouched fields keep their values.
type UpdateParams struct {
	data                tokenmetadata.DataV2
	dataChanged         bool
	newUpdateAuthority  *solana.PublicKey
	primarySaleHappened *bool
	isMutable           *bool
}

type Update func(*UpdateParams)

// UpdateName replaces the metadata name.
func UpdateName(name string) Update {
	return func(p *UpdateParams) {
		p.data.Name = name
		p.dataChanged = true
	}
}

// UpdateSymbol replaces the metadata symbol.
func UpdateSymbol(symbol string) Update {
	return func(p *UpdateParams) {
		p.data.Symbol = symbol
		p.dataChanged = true
	}
}

// UpdateURI replaces the metadata URI.
func UpdateURI(uri string) Update {
	return func(p *UpdateParams) {
		p.data.Uri = uri
		p.dataChanged = true
	}
}

// UpdateData replaces the whole metadata record.
func UpdateData(data tokenmetadata.DataV2) Update {
	return func(p *UpdateParams) {
		p.data = data
		p.dataChanged = true
	}
}

// UpdateAuthority hands the update authority to another account.
func UpdateAuthority(newAuthority solana.PublicKey) Update {
	return func(p *UpdateParams) {
		p.newUpdateAuthority = &newAuthority
	}
}

// UpdatePrimarySaleHappened sets the primary-sale flag.
func UpdatePrimarySaleHappened(v bool) Update {
	return func(p *UpdateParams) {
		p.primarySaleHappened = &v
	}
}

// UpdateImmutable makes the record immutable. The program never allows the
// reverse, so there is no mutable counterpart.
func UpdateImmutable() Update {
	return func(p *UpdateParams) {
		isMutable := false
		p.isMutable = &isMutable
	}
}

// UpdateMetadata applies the given updates to the metadata record of a mint.
// The authority must be the record's update authority; updates on immutable
// records are rejected by the program.
func (m *Minter) UpdateMetadata(ctx context.Context, mint solana.PublicKey, updates ...Update) (string, error) {
	if len(updates) == 0 {
		return "", errors.New("no updates specified")
	}

	payer := m.authority

	metadata, err := tokenmetadata.GetMetadata(ctx, m.rpcClient, mint)
	if err != nil {
		if err == rpc.ErrNotFound {
			return "", fmt.Errorf("%w: mint %s has no metadata", ErrNFTNotFound, mint)
		}
		return "", err
	}

	params := &UpdateParams{data: metadata.DataV2()}
	for _, fn := range updates {
		fn(params)
	}

	var data *tokenmetadata.DataV2
	if params.dataChanged {
		if err := params.data.Validate(); err != nil {
			return "", err
		}
		data = &params.data
	}

	metadataAccount, err := tokenmetadata.DeriveMetadata(mint)
	if err != nil {
		return "", err
	}

	updateIx := tokenmetadata.NewUpdateMetadataAccountV2Instruction(
		data,
		params.newUpdateAuthority,
		params.primarySaleHappened,
		params.isMutable,
		metadataAccount,
		payer.PublicKey(),
	).Build()

	sig, err := solanago.SendTransaction(
		ctx,
		m.rpcClient,
		m.wsClient,
		[]solana.Instruction{updateIx},
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
