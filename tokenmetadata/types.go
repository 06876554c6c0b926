package tokenmetadata

import (
	"errors"
	"fmt"

	bin "github.com/gagliardetto/binary"
	solana "github.com/gagliardetto/solana-go"
	"github.com/near/borsh-go"
)

// Field limits enforced by the Token Metadata program. Lengths are in bytes.
const (
	MAX_NAME_LENGTH   = 32
	MAX_SYMBOL_LENGTH = 10
	MAX_URI_LENGTH    = 200
	MAX_CREATOR_LIMIT = 5
)

var (
	ErrNameTooLong       = errors.New("name too long")
	ErrSymbolTooLong     = errors.New("symbol too long")
	ErrURITooLong        = errors.New("uri too long")
	ErrTooManyCreators   = errors.New("too many creators")
	ErrCreatorShareTotal = errors.New("creator shares must total 100")
	ErrDuplicateCreator  = errors.New("duplicate creator address")
)

// Creator is a royalty recipient recorded in a metadata account.
type Creator struct {
	Address solana.PublicKey
	// Verified can only be set to true by the creator itself signing
	Verified bool
	// Share is a percentage, all creator shares must total 100
	Share uint8
}

// Collection points a metadata record at the mint of its collection NFT.
type Collection struct {
	Verified bool
	Key      solana.PublicKey
}

// UseMethod variants of the Uses configuration.
const (
	UseMethodBurn borsh.Enum = iota
	UseMethodMultiple
	UseMethodSingle
)

// Uses configures the utility-use counter of an NFT.
type Uses struct {
	UseMethod borsh.Enum
	Remaining uint64
	Total     uint64
}

// CollectionDetails marks a metadata record as a sized collection parent.
// Only the V1 variant exists in the program versions this package targets.
type CollectionDetails struct {
	Enum borsh.Enum `borsh_enum:"true"`
	V1   CollectionDetailsV1
}

type CollectionDetailsV1 struct {
	Size uint64
}

func (obj CollectionDetails) MarshalWithEncoder(encoder *bin.Encoder) error {
	if err := encoder.WriteUint8(uint8(obj.Enum)); err != nil {
		return err
	}
	switch obj.Enum {
	case 0:
		return encoder.Encode(obj.V1)
	default:
		return fmt.Errorf("unknown collection details variant: %d", obj.Enum)
	}
}

func (obj *CollectionDetails) UnmarshalWithDecoder(decoder *bin.Decoder) error {
	v, err := decoder.ReadUint8()
	if err != nil {
		return err
	}
	obj.Enum = borsh.Enum(v)
	switch v {
	case 0:
		return decoder.Decode(&obj.V1)
	default:
		return fmt.Errorf("unknown collection details variant: %d", v)
	}
}

// DataV2 is the metadata payload of CreateMetadataAccountV3 and
// UpdateMetadataAccountV2.
type DataV2 struct {
	Name                 string
	Symbol               string
	Uri                  string
	SellerFeeBasisPoints uint16
	Creators             *[]Creator
	Collection           *Collection
	Uses                 *Uses
}

// Validate mirrors the field checks the program performs on chain, so a bad
// payload is rejected before a transaction is built.
func (obj DataV2) Validate() error {
	if len(obj.Name) > MAX_NAME_LENGTH {
		return fmt.Errorf("%w: %d bytes, max %d", ErrNameTooLong, len(obj.Name), MAX_NAME_LENGTH)
	}
	if len(obj.Symbol) > MAX_SYMBOL_LENGTH {
		return fmt.Errorf("%w: %d bytes, max %d", ErrSymbolTooLong, len(obj.Symbol), MAX_SYMBOL_LENGTH)
	}
	if len(obj.Uri) > MAX_URI_LENGTH {
		return fmt.Errorf("%w: %d bytes, max %d", ErrURITooLong, len(obj.Uri), MAX_URI_LENGTH)
	}
	if obj.Creators == nil {
		return nil
	}
	creators := *obj.Creators
	if len(creators) > MAX_CREATOR_LIMIT {
		return fmt.Errorf("%w: %d, max %d", ErrTooManyCreators, len(creators), MAX_CREATOR_LIMIT)
	}
	total := 0
	for i, creator := range creators {
		for _, prev := range creators[:i] {
			if creator.Address.Equals(prev.Address) {
				return fmt.Errorf("%w: %s", ErrDuplicateCreator, creator.Address)
			}
		}
		total += int(creator.Share)
	}
	if total != 100 {
		return fmt.Errorf("%w: got %d", ErrCreatorShareTotal, total)
	}
	return nil
}

func (obj DataV2) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.Encode(obj.Name); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Symbol); err != nil {
		return err
	}
	if err = encoder.Encode(obj.Uri); err != nil {
		return err
	}
	if err = encoder.Encode(obj.SellerFeeBasisPoints); err != nil {
		return err
	}
	// Creators (optional)
	if obj.Creators == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*obj.Creators); err != nil {
			return err
		}
	}
	// Collection (optional)
	if obj.Collection == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*obj.Collection); err != nil {
			return err
		}
	}
	// Uses (optional)
	if obj.Uses == nil {
		if err = encoder.WriteBool(false); err != nil {
			return err
		}
	} else {
		if err = encoder.WriteBool(true); err != nil {
			return err
		}
		if err = encoder.Encode(*obj.Uses); err != nil {
			return err
		}
	}
	return nil
}

func (obj *DataV2) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = decoder.Decode(&obj.Name); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Symbol); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.Uri); err != nil {
		return err
	}
	if err = decoder.Decode(&obj.SellerFeeBasisPoints); err != nil {
		return err
	}
	// Creators (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			obj.Creators = new([]Creator)
			if err = decoder.Decode(obj.Creators); err != nil {
				return err
			}
		}
	}
	// Collection (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			obj.Collection = new(Collection)
			if err = decoder.Decode(obj.Collection); err != nil {
				return err
			}
		}
	}
	// Uses (optional)
	{
		ok, err := decoder.ReadBool()
		if err != nil {
			return err
		}
		if ok {
			obj.Uses = new(Uses)
			if err = decoder.Decode(obj.Uses); err != nil {
				return err
			}
		}
	}
	return nil
}
