package tieredsale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// WithdrawPromoCodeRewards pays the caller's pending earnings on code, as its owner, master or both.
func (s *TieredSale) WithdrawPromoCodeRewards(caller common.Address, code string) (*uint256.Int, error) {
	p, ok := s.promoCodes.codes[code]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "promo code %q", code)
	}
	if caller != p.Owner && caller != p.Master {
		return nil, errors.Wrapf(errs.NotAuthorized, "caller is not a party to promo code %q", code)
	}
	amount := s.pendingOf(caller, p)
	if amount.IsZero() {
		return nil, errors.WithStack(errs.NoRewardsAvailable)
	}
	if err := s.payRewards(caller, amount, []*PromoCode{p}); err != nil {
		return nil, err
	}
	s.events.Emit(events.ReferralRewardWithdrawn{Recipient: caller, Amount: amount.Clone(), Code: p.Code})
	return amount, nil
}

// WithdrawReferralRewards pays the caller's pending earnings across every promo code.
func (s *TieredSale) WithdrawReferralRewards(caller common.Address) (*uint256.Int, error) {
	amount := new(uint256.Int)
	var codes []*PromoCode
	for _, code := range s.promoCodes.order {
		p := s.promoCodes.codes[code]
		if pending := s.pendingOf(caller, p); !pending.IsZero() {
			amount.Add(amount, pending)
			codes = append(codes, p)
		}
	}
	if amount.IsZero() {
		return nil, errors.WithStack(errs.NoRewardsAvailable)
	}
	if err := s.payRewards(caller, amount, codes); err != nil {
		return nil, err
	}
	s.events.Emit(events.ReferralRewardWithdrawn{Recipient: caller, Amount: amount.Clone()})
	return amount, nil
}

// PendingRewards returns what wallet can withdraw across every promo code.
func (s *TieredSale) PendingRewards(wallet common.Address) *uint256.Int {
	amount := new(uint256.Int)
	for _, code := range s.promoCodes.order {
		amount.Add(amount, s.pendingOf(wallet, s.promoCodes.codes[code]))
	}
	return amount
}

func (s *TieredSale) pendingOf(wallet common.Address, p *PromoCode) *uint256.Int {
	amount := new(uint256.Int)
	if wallet == p.Owner {
		amount.Add(amount, p.pendingOwner())
	}
	if wallet == p.Master {
		amount.Add(amount, p.pendingMaster())
	}
	return amount
}

func (s *TieredSale) payRewards(wallet common.Address, amount *uint256.Int, codes []*PromoCode) error {
	if err := s.ledger.Transfer(s.paymentToken, s.account, wallet, amount); err != nil {
		return errors.Wrap(err, "failed to transfer referral rewards")
	}
	for _, p := range codes {
		if wallet == p.Owner {
			p.OwnerWithdrawn = p.OwnerEarnings.Clone()
		}
		if wallet == p.Master {
			p.MasterWithdrawn = p.MasterEarnings.Clone()
		}
	}
	s.pendingRewards.Sub(s.pendingRewards, amount)
	return nil
}
