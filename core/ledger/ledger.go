// Package ledger holds token balances for sale accounts and wallets.
//
// The ledger stands in for the chain: sales never hold balances themselves,
// they move tokens between accounts through a Ledger.
package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Ledger is a token balance book with atomic transfers.
type Ledger interface {
	// BalanceOf returns a copy of the balance of account for token.
	BalanceOf(token, account common.Address) *uint256.Int

	// Transfer moves amount of token from one account to another.
	// It fails with errs.InsufficientBalance and leaves balances untouched
	// when from does not hold enough.
	Transfer(token, from, to common.Address, amount *uint256.Int) error

	// Mint credits amount of token to account. It models deposits from outside the ledger.
	Mint(token, account common.Address, amount *uint256.Int) error
}
