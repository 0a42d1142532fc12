package merkle

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
)

// Allocation is one whitelist entry.
type Allocation struct {
	Address common.Address
	Amount  *uint256.Int
}

// Tree is a sorted-pair merkle tree. An odd node at the end of a level is
// promoted to the next level unchanged.
type Tree struct {
	levels [][]common.Hash
	index  map[common.Hash]int
}

// NewTree builds a tree over allocations, keeping their order as leaf order.
func NewTree(allocations []Allocation) (*Tree, error) {
	leaves := make([]common.Hash, 0, len(allocations))
	for i, a := range allocations {
		leaf, err := Leaf(a.Address, a.Amount)
		if err != nil {
			return nil, errors.Wrapf(err, "allocation #%d", i)
		}
		leaves = append(leaves, leaf)
	}
	return NewTreeFromLeaves(leaves)
}

func NewTreeFromLeaves(leaves []common.Hash) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, errors.Wrap(errs.InvalidInput, "no leaves")
	}

	index := make(map[common.Hash]int, len(leaves))
	for i, leaf := range leaves {
		if _, ok := index[leaf]; !ok {
			index[leaf] = i
		}
	}

	levels := [][]common.Hash{append([]common.Hash(nil), leaves...)}
	for current := levels[0]; len(current) > 1; {
		next := make([]common.Hash, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 == len(current) {
				next = append(next, current[i])
				continue
			}
			next = append(next, HashPair(current[i], current[i+1]))
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{levels: levels, index: index}, nil
}

func (t *Tree) Root() common.Hash {
	return t.levels[len(t.levels)-1][0]
}

func (t *Tree) Len() int {
	return len(t.levels[0])
}

func (t *Tree) Leaf(i int) common.Hash {
	return t.levels[0][i]
}

// Proof returns the sibling path of the i-th leaf.
func (t *Tree) Proof(i int) ([]common.Hash, error) {
	if i < 0 || i >= t.Len() {
		return nil, errors.Wrapf(errs.InvalidRange, "leaf index %d out of [0, %d)", i, t.Len())
	}
	proof := make([]common.Hash, 0, len(t.levels)-1)
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := i ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		i /= 2
	}
	return proof, nil
}

// ProofFor returns the proof of the (addr, amount) allocation.
func (t *Tree) ProofFor(addr common.Address, amount *uint256.Int) ([]common.Hash, error) {
	leaf, err := Leaf(addr, amount)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	i, ok := t.index[leaf]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "allocation %s of %s is not in the tree", amount.Dec(), addr.Hex())
	}
	return t.Proof(i)
}
