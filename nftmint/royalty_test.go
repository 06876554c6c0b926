package nftmint

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRoyaltyBasisPoints(t *testing.T) {
	for _, tc := range []struct {
		percent string
		bps     uint16
	}{
		{"0", 0},
		{"1", 100},
		{"2.5", 250},
		{"0.01", 1},
		{"100", 10000},
	} {
		percent, err := decimal.NewFromString(tc.percent)
		require.NoError(t, err)

		bps, err := RoyaltyBasisPoints(percent)
		require.NoError(t, err, tc.percent)
		require.Equal(t, tc.bps, bps, tc.percent)
	}

	for _, bad := range []string{"-1", "100.01", "0.005"} {
		percent, err := decimal.NewFromString(bad)
		require.NoError(t, err)

		_, err = RoyaltyBasisPoints(percent)
		require.Error(t, err, bad)
	}
}

func TestRoyaltyPercent(t *testing.T) {
	require.Equal(t, "2.5", RoyaltyPercent(250).String())
	require.Equal(t, "0", RoyaltyPercent(0).String())
	require.Equal(t, "100", RoyaltyPercent(10000).String())
}
