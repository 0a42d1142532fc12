package decimals

import (
	"testing"

	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnits(t *testing.T) {
	type testCase struct {
		name     string
		value    string
		decimals uint16
		expected string
		err      error
	}

	testCases := []testCase{
		{name: "integer", value: "100", decimals: 0, expected: "100"},
		{name: "whole tokens", value: "3", decimals: 18, expected: "3000000000000000000"},
		{name: "fraction", value: "1.5", decimals: 18, expected: "1500000000000000000"},
		{name: "smallest unit", value: "0.000001", decimals: 6, expected: "1"},
		{name: "trailing zeros", value: "2.500", decimals: 1, expected: "25"},
		{name: "whitespace", value: " 7 ", decimals: 2, expected: "700"},
		{name: "zero", value: "0", decimals: 18, expected: "0"},
		{name: "too many places", value: "0.0000001", decimals: 6, err: errs.InvalidInput},
		{name: "negative", value: "-1", decimals: 0, err: errs.InvalidInput},
		{name: "not a number", value: "abc", decimals: 0, err: errs.InvalidInput},
		{name: "empty", value: "", decimals: 0, err: errs.InvalidInput},
		{name: "decimals too large", value: "1", decimals: 78, err: errs.InvalidInput},
		{name: "overflow", value: "115792089237316195423570985008687907853269984665640564039457584007913129639936", decimals: 0, err: errs.OverflowUint256},
		{name: "max uint256", value: "115792089237316195423570985008687907853269984665640564039457584007913129639935", decimals: 0, expected: "115792089237316195423570985008687907853269984665640564039457584007913129639935"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := ParseUnits(tc.value, tc.decimals)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, actual.Dec())
		})
	}
}

func TestFormatUnits(t *testing.T) {
	type testCase struct {
		amount   *uint256.Int
		decimals uint16
		expected string
	}

	testCases := []testCase{
		{amount: uint256.NewInt(1500000000000000000), decimals: 18, expected: "1.5"},
		{amount: uint256.NewInt(1), decimals: 6, expected: "0.000001"},
		{amount: uint256.NewInt(100), decimals: 0, expected: "100"},
		{amount: uint256.NewInt(0), decimals: 18, expected: "0"},
		{amount: nil, decimals: 18, expected: "0"},
		{amount: new(uint256.Int).SetAllOne(), decimals: 18, expected: "115792089237316195423570985008687907853269984665640564039457.584007913129639935"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatUnits(tc.amount, tc.decimals))
		})
	}

	t.Run("round trip", func(t *testing.T) {
		for _, value := range []string{"0.1", "12.345678", "1000000"} {
			amount, err := ParseUnits(value, 18)
			require.NoError(t, err)
			assert.Equal(t, value, FormatUnits(amount, 18))
		}
	})
}
