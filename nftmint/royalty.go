package nftmint

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RoyaltyBasisPoints converts a royalty percentage to the basis points stored
// in metadata records. 2.5% becomes 250 bps.
func RoyaltyBasisPoints(percent decimal.Decimal) (uint16, error) {
	if percent.IsNegative() {
		return 0, errors.New("royalty percent cannot be negative")
	}
	if percent.GreaterThan(hundred) {
		return 0, errors.New("royalty percent cannot exceed 100")
	}
	bps := percent.Mul(hundred)
	if !bps.IsInteger() {
		return 0, fmt.Errorf("royalty percent %s is finer than one basis point", percent)
	}
	return uint16(bps.IntPart()), nil
}

// RoyaltyPercent renders basis points as a percentage.
func RoyaltyPercent(bps uint16) decimal.Decimal {
	return decimal.New(int64(bps), -2)
}
