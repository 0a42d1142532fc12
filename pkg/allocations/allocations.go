// Package allocations loads whitelist allocation lists from local files or S3 objects.
//
// Supported formats are CSV (address,amount rows with an optional header),
// JSON (an array of {"address", "amount"} objects) and parquet.
package allocations

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/decimals"
	"github.com/gaze-network/launchpad/pkg/merkle"
	"github.com/holiman/uint256"
)

type Format string

const (
	FormatAuto    Format = ""
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

func (f Format) IsSupported() bool {
	switch f {
	case FormatAuto, FormatCSV, FormatJSON, FormatParquet:
		return true
	}
	return false
}

// formatOf infers the format of uri from its extension.
func formatOf(uri string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), ".")); ext {
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	case "parquet", "pq":
		return FormatParquet, nil
	default:
		return "", errors.Wrapf(errs.Unsupported, "can't infer allocation format of %q", uri)
	}
}

type Options struct {
	// Format of every source. Inferred from each source extension when empty.
	Format Format

	// Decimals converts human readable amounts into base units. Zero means amounts are already in base units.
	Decimals uint16
}

// record is one allocation row before address and amount parsing.
type record struct {
	Address string `json:"address" parquet:"name=address, type=BYTE_ARRAY, convertedtype=UTF8"`
	Amount  string `json:"amount" parquet:"name=amount, type=BYTE_ARRAY, convertedtype=UTF8"`
}

func (r record) toAllocation(decimalPlaces uint16) (merkle.Allocation, error) {
	address := strings.TrimSpace(r.Address)
	if !common.IsHexAddress(address) {
		return merkle.Allocation{}, errors.Wrapf(errs.InvalidInput, "invalid address %q", r.Address)
	}

	var amount *uint256.Int
	if decimalPlaces > 0 {
		parsed, err := decimals.ParseUnits(r.Amount, decimalPlaces)
		if err != nil {
			return merkle.Allocation{}, errors.Wrapf(err, "invalid amount of %s", address)
		}
		amount = parsed
	} else {
		parsed, err := uint256.FromDecimal(strings.TrimSpace(r.Amount))
		if err != nil {
			return merkle.Allocation{}, errors.Wrapf(errs.InvalidInput, "invalid amount %q of %s: %v", r.Amount, address, err)
		}
		amount = parsed
	}

	return merkle.Allocation{
		Address: common.HexToAddress(address),
		Amount:  amount,
	}, nil
}

// Decode parses raw allocation data of the given format.
func Decode(data []byte, format Format, decimalPlaces uint16) ([]merkle.Allocation, error) {
	var (
		records []record
		err     error
	)
	switch format {
	case FormatCSV:
		records, err = decodeCSV(data)
	case FormatJSON:
		records, err = decodeJSON(data)
	case FormatParquet:
		records, err = decodeParquet(data)
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q allocation format is not supported", format)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	allocations := make([]merkle.Allocation, 0, len(records))
	for i, r := range records {
		allocation, err := r.toAllocation(decimalPlaces)
		if err != nil {
			return nil, errors.Wrapf(err, "record #%d", i)
		}
		allocations = append(allocations, allocation)
	}
	return allocations, nil
}

// Merge concatenates allocation lists in order, rejecting an address listed twice.
func Merge(lists ...[]merkle.Allocation) ([]merkle.Allocation, error) {
	var size int
	for _, list := range lists {
		size += len(list)
	}

	seen := make(map[common.Address]struct{}, size)
	merged := make([]merkle.Allocation, 0, size)
	for _, list := range lists {
		for _, allocation := range list {
			if _, ok := seen[allocation.Address]; ok {
				return nil, errors.Wrapf(errs.InvalidInput, "duplicate allocation for %s", allocation.Address.Hex())
			}
			seen[allocation.Address] = struct{}{}
			merged = append(merged, allocation)
		}
	}
	return merged, nil
}
