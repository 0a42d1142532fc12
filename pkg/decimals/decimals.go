package decimals

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest unit exponent a uint256 amount can carry.
const MaxDecimals = 77

// ParseUnits converts a human readable amount (e.g. "1.5") to base units of a
// token with the given decimals (e.g. 1500000000000000000 for 18 decimals).
func ParseUnits(value string, decimals uint16) (*uint256.Int, error) {
	if decimals > MaxDecimals {
		return nil, errors.Wrapf(errs.InvalidInput, "decimals %d exceeds %d", decimals, MaxDecimals)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, errors.Wrapf(errs.InvalidInput, "invalid amount %q", value)
	}
	if d.IsNegative() {
		return nil, errors.Wrapf(errs.InvalidInput, "negative amount %q", value)
	}

	d = d.Shift(int32(decimals))
	if !d.IsInteger() {
		return nil, errors.Wrapf(errs.InvalidInput, "amount %q has more than %d decimal places", value, decimals)
	}

	result, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, errors.Wrapf(errs.OverflowUint256, "amount %q", value)
	}
	return result, nil
}

// MustParseUnits is like ParseUnits but panics on error.
func MustParseUnits(value string, decimals uint16) *uint256.Int {
	result, err := ParseUnits(value, decimals)
	if err != nil {
		panic(err)
	}
	return result
}

// ToDecimal converts base units to a decimal amount of a token with the given decimals.
func ToDecimal(amount *uint256.Int, decimals uint16) decimal.Decimal {
	if amount == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(amount.ToBig(), -int32(decimals))
}

// FormatUnits is the inverse of ParseUnits. Trailing zeros are dropped.
func FormatUnits(amount *uint256.Int, decimals uint16) string {
	return ToDecimal(amount, decimals).String()
}
