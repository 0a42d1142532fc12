// Package merkle verifies and builds allocation whitelists.
//
// A leaf is keccak256(address ‖ uint256 amount), the packed encoding of
// (address, uint256). Inner nodes hash their two children in sorted order, so
// proofs carry no left/right flags.
package merkle

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
)

// Leaf returns the leaf hash of an (address, amount) allocation.
func Leaf(addr common.Address, amount *uint256.Int) (common.Hash, error) {
	if addr == (common.Address{}) {
		return common.Hash{}, errors.Wrap(errs.InvalidInput, "allocation address is zero")
	}
	if amount == nil {
		amount = new(uint256.Int)
	}
	amountBytes := amount.Bytes32()
	return crypto.Keccak256Hash(addr.Bytes(), amountBytes[:]), nil
}

// HashPair hashes two nodes after ordering them.
func HashPair(a, b common.Hash) common.Hash {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	return crypto.Keccak256Hash(a[:], b[:])
}

// ProcessProof folds proof into leaf and returns the resulting root.
func ProcessProof(proof []common.Hash, leaf common.Hash) common.Hash {
	computed := leaf
	for _, p := range proof {
		computed = HashPair(computed, p)
	}
	return computed
}

// Verify reports whether (addr, amount) is a member of the set committed by root.
// A zero root disables the whitelist and accepts every allocation.
func Verify(root common.Hash, proof []common.Hash, addr common.Address, amount *uint256.Int) (bool, error) {
	leaf, err := Leaf(addr, amount)
	if err != nil {
		return false, errors.WithStack(err)
	}
	if root == (common.Hash{}) {
		return true, nil
	}
	return ProcessProof(proof, leaf) == root, nil
}
