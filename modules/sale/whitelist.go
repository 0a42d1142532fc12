package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/pkg/merkle"
	"github.com/holiman/uint256"
)

// CheckWhitelist reports whether (wallet, allocation) is in the sale's whitelist.
// It is true for every wallet when no whitelist is set.
func (s *Sale) CheckWhitelist(wallet common.Address, proof []common.Hash, allocation *uint256.Int) (bool, error) {
	ok, err := merkle.Verify(s.whitelistRoot, proof, wallet, allocation)
	if err != nil {
		return false, errors.WithStack(err)
	}
	return ok, nil
}

// allocationOf returns the allocation wallet may use, nil meaning unbounded.
//
// A proven allocation wins. Wallets outside the whitelist fall back to the
// public allocation when one is set.
func (s *Sale) allocationOf(wallet common.Address, proof []common.Hash, declared *uint256.Int) (*uint256.Int, error) {
	if declared == nil {
		declared = new(uint256.Int)
	}
	if s.whitelistRoot == (common.Hash{}) {
		if wallet == (common.Address{}) {
			return nil, errors.Wrap(errs.InvalidInput, "wallet is zero")
		}
		if !s.publicAllocation.IsZero() {
			return s.publicAllocation.Clone(), nil
		}
		return nil, nil
	}

	ok, err := merkle.Verify(s.whitelistRoot, proof, wallet, declared)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if ok {
		return declared.Clone(), nil
	}
	if !s.publicAllocation.IsZero() {
		return s.publicAllocation.Clone(), nil
	}
	return nil, errors.Wrapf(errs.NotWhitelisted, "wallet %s with allocation %s", wallet.Hex(), declared.Dec())
}
