package sale

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// Purchase pays amount of payment token for sale tokens at the sale price.
func (s *Sale) Purchase(caller common.Address, amount *uint256.Int, now uint64) error {
	return s.purchase(caller, amount, now, nil, "")
}

// WhitelistedPurchase is Purchase bounded by the wallet's whitelist allocation,
// expressed in sale tokens.
func (s *Sale) WhitelistedPurchase(caller common.Address, amount *uint256.Int, proof []common.Hash, allocation *uint256.Int, now uint64) error {
	alloc, err := s.allocationOf(caller, proof, allocation)
	if err != nil {
		return errors.WithStack(err)
	}
	return s.purchase(caller, amount, now, alloc, "")
}

// PurchaseWithCode is Purchase with a free-text referral code recorded against the wallet.
func (s *Sale) PurchaseWithCode(caller common.Address, amount *uint256.Int, code string, now uint64) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.Wrap(errs.InvalidPromoCode, "empty code")
	}
	return s.purchase(caller, amount, now, nil, code)
}

func (s *Sale) purchase(caller common.Address, amount *uint256.Int, now uint64, allocation *uint256.Int, code string) error {
	if s.IsGiveaway() {
		return errors.Wrap(errs.NotAGiveaway, "cannot purchase in a zero price sale")
	}
	if now < s.startTime || now > s.endTime {
		return errors.Wrapf(errs.SaleNotActive, "sale runs from %d to %d, now is %d", s.startTime, s.endTime, now)
	}
	if s.isPurchaseHalted {
		return errors.WithStack(errs.PurchaseHalted)
	}
	if amount == nil || amount.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero payment")
	}
	if !s.minTotalPayment.IsZero() && amount.Lt(s.minTotalPayment) {
		return errors.Wrapf(errs.BelowMinPayment, "payment %s is below %s", amount.Dec(), s.minTotalPayment.Dec())
	}
	if s.isIntegerSale && !new(uint256.Int).Mod(amount, s.salePrice).IsZero() {
		return errors.Wrapf(errs.NonIntegerAmount, "payment %s is not a multiple of %s", amount.Dec(), s.salePrice.Dec())
	}

	p := s.peek(caller)
	newPayment, overflow := new(uint256.Int).AddOverflow(p.PaymentReceived, amount)
	if overflow {
		return errors.Wrap(errs.OverflowUint256, "payment received")
	}
	paymentCap := s.maxTotalPayment
	if allocation != nil {
		allocationCap, overflow := new(uint256.Int).MulDivOverflow(allocation, s.salePrice, PriceScale)
		if overflow {
			return errors.Wrap(errs.OverflowUint256, "allocation payment cap")
		}
		if allocationCap.Lt(paymentCap) {
			paymentCap = allocationCap
		}
	}
	if newPayment.Gt(paymentCap) {
		return errors.Wrapf(errs.CapExceeded, "payment %s exceeds max payment %s", newPayment.Dec(), paymentCap.Dec())
	}

	newOwed := s.owedFor(newPayment)
	newPurchased := new(uint256.Int).Sub(s.saleTokenPurchased, p.SaleTokenOwed)
	newPurchased.Add(newPurchased, newOwed)
	if !s.maxTotalPurchasable.IsZero() && newPurchased.Gt(s.maxTotalPurchasable) {
		return errors.Wrapf(errs.CapExceeded, "sale tokens purchased %s exceeds max total purchasable %s", newPurchased.Dec(), s.maxTotalPurchasable.Dec())
	}
	if newPurchased.Gt(s.saleAmount) {
		return errors.Wrapf(errs.CapExceeded, "sale tokens purchased %s exceeds funded %s", newPurchased.Dec(), s.saleAmount.Dec())
	}

	if err := s.ledger.Transfer(s.paymentToken, caller, s.account, amount); err != nil {
		return errors.Wrap(err, "failed to transfer payment")
	}

	p = s.participant(caller)
	if !p.hasPurchased {
		p.hasPurchased = true
		s.purchaserCount++
	}
	p.PaymentReceived = newPayment
	p.SaleTokenOwed = newOwed
	s.saleTokenPurchased = newPurchased
	s.totalPaymentReceived.Add(s.totalPaymentReceived, amount)
	if code != "" {
		p.PaymentReceivedWithCode.Add(p.PaymentReceivedWithCode, amount)
		s.codes.record(caller, code, amount)
	}

	s.events.Emit(events.Purchase{Wallet: caller, Payment: amount.Clone(), Code: code})
	return nil
}
