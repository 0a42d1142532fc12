package tieredsale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/pkg/merkle"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

var hundred = uint256.NewInt(100)

// WhitelistedPurchaseInTier buys amount units in the tier at the tier price.
// allocation is the wallet's whitelisted units and is only checked when the tier has a whitelist.
func (s *TieredSale) WhitelistedPurchaseInTier(caller common.Address, tierID string, amount uint128.Uint128, proof []common.Hash, allocation uint128.Uint128, now uint64) error {
	return s.purchase(caller, tierID, amount, proof, allocation, "", now)
}

// WhitelistedPurchaseInTierWithCode is WhitelistedPurchaseInTier with a promo code discount.
// The discounted payment is split into referral rewards for the code's owner and master.
func (s *TieredSale) WhitelistedPurchaseInTierWithCode(caller common.Address, tierID string, amount uint128.Uint128, proof []common.Hash, code string, allocation uint128.Uint128, now uint64) error {
	if code == "" {
		return errors.Wrap(errs.InvalidPromoCode, "empty code")
	}
	return s.purchase(caller, tierID, amount, proof, allocation, code, now)
}

type split struct {
	payment *uint256.Int
	owner   *uint256.Int
	master  *uint256.Int
}

func (s *TieredSale) purchase(caller common.Address, tierID string, amount uint128.Uint128, proof []common.Hash, allocation uint128.Uint128, code string, now uint64) error {
	tier, err := s.tier(tierID)
	if err != nil {
		return err
	}
	if now < tier.StartTime || now > tier.EndTime {
		return errors.Wrapf(errs.TierNotActive, "tier %q runs from %d to %d, now is %d", tier.ID, tier.StartTime, tier.EndTime, now)
	}
	if tier.IsHalt {
		return errors.Wrapf(errs.PurchaseHalted, "tier %q", tier.ID)
	}
	if amount.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero amount")
	}

	walletPurchased := s.Purchased(tierID, caller)
	newWalletPurchased, overflow := walletPurchased.AddOverflow(amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint128, "wallet purchased")
	}
	if tier.WhitelistRoot != (common.Hash{}) {
		ok, err := merkle.Verify(tier.WhitelistRoot, proof, caller, uint256.MustFromBig(allocation.Big()))
		if err != nil {
			return errors.WithStack(err)
		}
		if !ok {
			return errors.Wrapf(errs.NotWhitelisted, "wallet %s with allocation %s in tier %q", caller.Hex(), allocation, tier.ID)
		}
		if newWalletPurchased.Cmp(allocation) > 0 {
			return errors.Wrapf(errs.ExceedsAllocation, "purchase of %s exceeds whitelisted allocation %s", newWalletPurchased, allocation)
		}
	}
	if !tier.MaxAllocationPerWallet.IsZero() && newWalletPurchased.Cmp(tier.MaxAllocationPerWallet) > 0 {
		return errors.Wrapf(errs.ExceedsAllocation, "purchase of %s exceeds wallet's maximum allocation %s for tier %q", newWalletPurchased, tier.MaxAllocationPerWallet, tier.ID)
	}
	newTierPurchased, overflow := tier.Purchased.AddOverflow(amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint128, "tier purchased")
	}
	if !tier.MaxTotalPurchasable.IsZero() && newTierPurchased.Cmp(tier.MaxTotalPurchasable) > 0 {
		return errors.Wrapf(errs.ExceedsCap, "tier %q total %s exceeds max total purchasable %s", tier.ID, newTierPurchased, tier.MaxTotalPurchasable)
	}
	newTotal, overflow := s.totalPurchased.AddOverflow(amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint128, "total purchased")
	}
	supply := s.ledger.BalanceOf(s.saleToken, s.account)
	if uint256.MustFromBig(newTotal.Big()).Gt(supply) {
		return errors.Wrapf(errs.ExceedsCap, "total purchased %s exceeds sale token supply %s", newTotal, supply.Dec())
	}

	var (
		promo   *PromoCode
		created bool
	)
	if code != "" {
		promo, created, err = s.resolvePromoCode(tier, caller, code)
		if err != nil {
			return err
		}
	}
	amounts, err := price(tier, amount, promo)
	if err != nil {
		return err
	}

	if err := s.ledger.Transfer(s.paymentToken, caller, s.account, amounts.payment); err != nil {
		return errors.Wrap(err, "failed to transfer payment")
	}

	tier.Purchased = newTierPurchased
	s.purchased[tierID][caller] = newWalletPurchased
	s.totalPurchased = newTotal
	if promo != nil {
		if created {
			s.registerPromoCode(promo)
		}
		promo.OwnerEarnings.Add(promo.OwnerEarnings, amounts.owner)
		promo.MasterEarnings.Add(promo.MasterEarnings, amounts.master)
		promo.TotalPayment.Add(promo.TotalPayment, amounts.payment)
		s.pendingRewards.Add(s.pendingRewards, amounts.owner)
		s.pendingRewards.Add(s.pendingRewards, amounts.master)
		s.promoCodes.markUsed(caller, promo)
		code = promo.Code
	}

	s.events.Emit(events.TierPurchase{
		TierID:  tier.ID,
		Wallet:  caller,
		Amount:  amount.String(),
		Payment: amounts.payment,
		Code:    code,
	})
	return nil
}

// price returns the payment for amount units and the referral rewards carved out of it.
func price(tier *Tier, amount uint128.Uint128, promo *PromoCode) (split, error) {
	cost, overflow := new(uint256.Int).MulOverflow(tier.Price, uint256.MustFromBig(amount.Big()))
	if overflow {
		return split{}, errors.Wrap(errs.OverflowUint256, "purchase cost")
	}
	if promo == nil {
		return split{payment: cost, owner: new(uint256.Int), master: new(uint256.Int)}, nil
	}

	payment, overflow := new(uint256.Int).MulDivOverflow(cost, uint256.NewInt(uint64(100-promo.DiscountPercent)), hundred)
	if overflow {
		return split{}, errors.Wrap(errs.OverflowUint256, "discounted cost")
	}
	ownerPercent := uint64(promo.BaseOwnerPercent) + uint64(tier.BonusPercent)
	masterPercent := uint64(promo.MasterOwnerPercent)
	// rewards never exceed the payment
	if ownerPercent+masterPercent > 100 {
		ownerPercent = 100 - masterPercent
	}
	owner, _ := new(uint256.Int).MulDivOverflow(payment, uint256.NewInt(ownerPercent), hundred)
	master, _ := new(uint256.Int).MulDivOverflow(payment, uint256.NewInt(masterPercent), hundred)
	return split{payment: payment, owner: owner, master: master}, nil
}
