package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// Fund deposits sale tokens from the funder into the sale.
func (s *Sale) Fund(caller common.Address, amount *uint256.Int, now uint64) error {
	if err := s.onlyFunder(caller); err != nil {
		return err
	}
	if now > s.endTime {
		return errors.Wrapf(errs.SaleNotActive, "sale ended at %d", s.endTime)
	}
	if amount == nil || amount.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero fund amount")
	}
	newAmount, overflow := new(uint256.Int).AddOverflow(s.saleAmount, amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint256, "sale amount")
	}
	if err := s.ledger.Transfer(s.saleToken, caller, s.account, amount); err != nil {
		return errors.Wrap(err, "failed to transfer sale token")
	}
	s.saleAmount = newAmount
	s.events.Emit(events.Fund{Funder: caller, Amount: amount.Clone()})
	return nil
}

// Cash sends the payment tokens and the unsold sale tokens to the caller.
// Sale tokens still owed to buyers stay in the sale.
func (s *Sale) Cash(caller common.Address, now uint64) error {
	if err := s.onlyCasherOrOwner(caller); err != nil {
		return err
	}
	if now < s.WithdrawTime() {
		return errors.Wrapf(errs.TooEarly, "cash opens at %d, now is %d", s.WithdrawTime(), now)
	}
	if s.hasCashed {
		return errors.WithStack(errs.AlreadyCashed)
	}

	paymentAmount := new(uint256.Int)
	if !s.IsGiveaway() {
		paymentAmount = s.ledger.BalanceOf(s.paymentToken, s.account)
	}
	saleTokenAmount := s.ledger.BalanceOf(s.saleToken, s.account)
	if outstanding := s.outstanding(); saleTokenAmount.Gt(outstanding) {
		saleTokenAmount.Sub(saleTokenAmount, outstanding)
	} else {
		saleTokenAmount.Clear()
	}

	if !paymentAmount.IsZero() {
		if err := s.ledger.Transfer(s.paymentToken, s.account, caller, paymentAmount); err != nil {
			return errors.Wrap(err, "failed to transfer payment token")
		}
	}
	if !saleTokenAmount.IsZero() {
		if err := s.ledger.Transfer(s.saleToken, s.account, caller, saleTokenAmount); err != nil {
			return errors.Wrap(err, "failed to transfer sale token")
		}
	}

	s.hasCashed = true
	s.events.Emit(events.Cash{Casher: caller, PaymentAmount: paymentAmount, SaleTokenAmount: saleTokenAmount})
	return nil
}

// CashPaymentToken sends amount of payment token to the caller. It may be called any number of times.
func (s *Sale) CashPaymentToken(caller common.Address, amount *uint256.Int) error {
	if err := s.onlyCasherOrOwner(caller); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero cash amount")
	}
	if balance := s.ledger.BalanceOf(s.paymentToken, s.account); balance.Lt(amount) {
		return errors.Wrapf(errs.InsufficientBalance, "not enough payment token to cash: %s < %s", balance.Dec(), amount.Dec())
	}
	if err := s.ledger.Transfer(s.paymentToken, s.account, caller, amount); err != nil {
		return errors.Wrap(err, "failed to transfer payment token")
	}
	s.events.Emit(events.Cash{Casher: caller, PaymentAmount: amount.Clone(), SaleTokenAmount: new(uint256.Int)})
	return nil
}

// EmergencyTokenRetrieve sends the sale's whole balance of an unrelated token to the owner.
func (s *Sale) EmergencyTokenRetrieve(caller, token common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if token == s.paymentToken || token == s.saleToken {
		return errors.Wrap(errs.InvalidInput, "cannot retrieve payment or sale token")
	}
	amount := s.ledger.BalanceOf(token, s.account)
	if err := s.ledger.Transfer(token, s.account, caller, amount); err != nil {
		return errors.Wrap(err, "failed to transfer token")
	}
	s.events.Emit(events.EmergencyTokenRetrieve{Token: token, Amount: amount})
	return nil
}

// outstanding is the amount of sale token bought but not withdrawn yet.
func (s *Sale) outstanding() *uint256.Int {
	if s.saleTokenPurchased.Lt(s.totalWithdrawn) {
		return new(uint256.Int)
	}
	return new(uint256.Int).Sub(s.saleTokenPurchased, s.totalWithdrawn)
}
