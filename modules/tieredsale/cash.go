package tieredsale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// cashTime is the latest end time of the sale and its tiers.
func (s *TieredSale) cashTime() uint64 {
	end := s.endTime
	for _, tier := range s.tiers {
		if tier.EndTime > end {
			end = tier.EndTime
		}
	}
	return end
}

// Cash sends the sale tokens not purchased in any tier to the owner, once every tier has ended.
func (s *TieredSale) Cash(caller common.Address, now uint64) (*uint256.Int, error) {
	if err := s.onlyOwner(caller); err != nil {
		return nil, err
	}
	if end := s.cashTime(); now <= end {
		return nil, errors.Wrapf(errs.TooEarly, "cash opens after %d, now is %d", end, now)
	}
	if s.hasCashed {
		return nil, errors.WithStack(errs.AlreadyCashed)
	}

	amount := s.ledger.BalanceOf(s.saleToken, s.account)
	purchased := uint256.MustFromBig(s.totalPurchased.Big())
	if amount.Gt(purchased) {
		amount.Sub(amount, purchased)
	} else {
		amount.Clear()
	}
	if !amount.IsZero() {
		if err := s.ledger.Transfer(s.saleToken, s.account, caller, amount); err != nil {
			return nil, errors.Wrap(err, "failed to transfer sale token")
		}
	}
	s.hasCashed = true
	s.events.Emit(events.Cash{Casher: caller, PaymentAmount: new(uint256.Int), SaleTokenAmount: amount.Clone()})
	return amount, nil
}

// CashPaymentToken sends amount of payment token to the owner. Pending referral rewards stay reserved.
func (s *TieredSale) CashPaymentToken(caller common.Address, amount *uint256.Int) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if amount == nil || amount.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero cash amount")
	}
	available := s.ledger.BalanceOf(s.paymentToken, s.account)
	if available.Gt(s.pendingRewards) {
		available.Sub(available, s.pendingRewards)
	} else {
		available.Clear()
	}
	if available.Lt(amount) {
		return errors.Wrapf(errs.InsufficientBalance, "only %s payment token is free of referral rewards, want %s", available.Dec(), amount.Dec())
	}
	if err := s.ledger.Transfer(s.paymentToken, s.account, caller, amount); err != nil {
		return errors.Wrap(err, "failed to transfer payment token")
	}
	s.events.Emit(events.Cash{Casher: caller, PaymentAmount: amount.Clone(), SaleTokenAmount: new(uint256.Int)})
	return nil
}

// EmergencyTokenRetrieve sends the engine's whole balance of an unrelated token to the owner.
func (s *TieredSale) EmergencyTokenRetrieve(caller, token common.Address) error {
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
