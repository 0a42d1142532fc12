package common

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
)

// ZeroAddress is the empty wallet identity.
var ZeroAddress = common.Address{}

// ZeroHash is the empty merkle root. A sale with this root has no whitelist.
var ZeroHash = common.Hash{}

// ParseAddress parses a 0x-prefixed hex wallet address.
func ParseAddress(s string) (common.Address, error) {
	s = strings.TrimSpace(s)
	if !common.IsHexAddress(s) {
		return common.Address{}, errors.Wrapf(errs.InvalidInput, "invalid address %q", s)
	}
	return common.HexToAddress(s), nil
}

// IsZeroAddress reports whether addr is the zero identity.
func IsZeroAddress(addr common.Address) bool {
	return addr == ZeroAddress
}
