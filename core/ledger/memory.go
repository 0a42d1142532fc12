package ledger

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/holiman/uint256"
)

var _ Ledger = (*Memory)(nil)

type balanceKey struct {
	token   common.Address
	account common.Address
}

// Memory is an in-memory Ledger.
type Memory struct {
	mu       sync.RWMutex
	balances map[balanceKey]*uint256.Int
}

func NewMemory() *Memory {
	return &Memory{
		balances: make(map[balanceKey]*uint256.Int),
	}
}

func (m *Memory) BalanceOf(token, account common.Address) *uint256.Int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.balances[balanceKey{token, account}]; ok {
		return b.Clone()
	}
	return uint256.NewInt(0)
}

func (m *Memory) Transfer(token, from, to common.Address, amount *uint256.Int) error {
	if amount == nil {
		return errors.Wrap(errs.InvalidInput, "nil transfer amount")
	}
	if token == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "transfer of zero token")
	}
	if to == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "transfer to zero address")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	fromKey, toKey := balanceKey{token, from}, balanceKey{token, to}
	fromBalance := m.balances[fromKey]
	if fromBalance == nil {
		fromBalance = uint256.NewInt(0)
	}
	if fromBalance.Lt(amount) {
		return errors.Wrapf(errs.InsufficientBalance, "balance %s of %s is lower than %s", fromBalance.Dec(), from.Hex(), amount.Dec())
	}
	if amount.IsZero() || from == to {
		return nil
	}

	toBalance := m.balances[toKey]
	if toBalance == nil {
		toBalance = uint256.NewInt(0)
	}
	newTo, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return errors.Wrapf(errs.OverflowUint256, "balance of %s", to.Hex())
	}

	m.balances[fromKey] = new(uint256.Int).Sub(fromBalance, amount)
	m.balances[toKey] = newTo
	return nil
}

func (m *Memory) Mint(token, account common.Address, amount *uint256.Int) error {
	if amount == nil {
		return errors.Wrap(errs.InvalidInput, "nil mint amount")
	}
	if token == (common.Address{}) || account == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "mint to zero token or account")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	key := balanceKey{token, account}
	balance := m.balances[key]
	if balance == nil {
		balance = uint256.NewInt(0)
	}
	newBalance, overflow := new(uint256.Int).AddOverflow(balance, amount)
	if overflow {
		return errors.Wrapf(errs.OverflowUint256, "balance of %s", account.Hex())
	}
	m.balances[key] = newBalance
	return nil
}
