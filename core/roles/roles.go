// Package roles maps the closed set of sale roles to wallet addresses.
package roles

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
)

type Role uint8

const (
	Owner Role = iota + 1
	Casher
	Funder
	WhitelistSetter
	Operator
)

var roleNames = map[Role]string{
	Owner:           "owner",
	Casher:          "casher",
	Funder:          "funder",
	WhitelistSetter: "whitelist_setter",
	Operator:        "operator",
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Registry holds role grants of one sale. It is not safe for concurrent use;
// sales are mutated by a single writer.
type Registry struct {
	grants map[Role]map[common.Address]struct{}
}

func NewRegistry() *Registry {
	return &Registry{grants: make(map[Role]map[common.Address]struct{})}
}

func (r *Registry) Grant(role Role, addr common.Address) error {
	if !role.Valid() {
		return errors.Wrapf(errs.InvalidInput, "unknown role %d", role)
	}
	if addr == (common.Address{}) {
		return errors.Wrapf(errs.ZeroAddress, "grant %s", role)
	}
	holders, ok := r.grants[role]
	if !ok {
		holders = make(map[common.Address]struct{})
		r.grants[role] = holders
	}
	holders[addr] = struct{}{}
	return nil
}

func (r *Registry) Revoke(role Role, addr common.Address) {
	delete(r.grants[role], addr)
}

// Set replaces every holder of role with addr.
func (r *Registry) Set(role Role, addr common.Address) error {
	if !role.Valid() {
		return errors.Wrapf(errs.InvalidInput, "unknown role %d", role)
	}
	if addr == (common.Address{}) {
		return errors.Wrapf(errs.ZeroAddress, "set %s", role)
	}
	r.grants[role] = map[common.Address]struct{}{addr: {}}
	return nil
}

func (r *Registry) Has(role Role, addr common.Address) bool {
	_, ok := r.grants[role][addr]
	return ok
}

// HasAny reports whether addr holds at least one of the given roles.
func (r *Registry) HasAny(addr common.Address, roles ...Role) bool {
	for _, role := range roles {
		if r.Has(role, addr) {
			return true
		}
	}
	return false
}

// Holder returns the single holder of role, or the zero address.
// When several addresses hold the role the lowest one is returned.
func (r *Registry) Holder(role Role) common.Address {
	holders := r.Holders(role)
	if len(holders) == 0 {
		return common.Address{}
	}
	return holders[0]
}

// Holders returns the holders of role sorted by address.
func (r *Registry) Holders(role Role) []common.Address {
	holders := make([]common.Address, 0, len(r.grants[role]))
	for addr := range r.grants[role] {
		holders = append(holders, addr)
	}
	sort.Slice(holders, func(i, j int) bool {
		return holders[i].Cmp(holders[j]) < 0
	})
	return holders
}
