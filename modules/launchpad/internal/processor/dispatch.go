package processor

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/gaze-network/launchpad/modules/sale"
	"github.com/gaze-network/launchpad/modules/tieredsale"
	"github.com/gaze-network/uint128"
)

func (p *Processor) applySale(s *sale.Sale, cmd *entity.Command) error {
	caller, now := cmd.Caller, cmd.Time
	switch cmd.Action {
	case ActionSalePurchase:
		payload, err := decode[AmountPayload](cmd)
		if err != nil {
			return err
		}
		return s.Purchase(caller, payload.Amount, now)
	case ActionSaleWhitelistedPurchase:
		payload, err := decode[WhitelistedPurchasePayload](cmd)
		if err != nil {
			return err
		}
		return s.WhitelistedPurchase(caller, payload.Amount, payload.Proof, payload.Allocation, now)
	case ActionSalePurchaseWithCode:
		payload, err := decode[PurchaseWithCodePayload](cmd)
		if err != nil {
			return err
		}
		return s.PurchaseWithCode(caller, payload.Amount, payload.Code, now)
	case ActionSaleWithdraw:
		_, err := s.Withdraw(caller, now)
		return err
	case ActionSaleWithdrawGiveaway:
		payload, err := decode[GiveawayPayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.WithdrawGiveaway(caller, payload.Proof, payload.Allocation, now)
		return err
	case ActionSaleWithdrawGiveawayVested:
		payload, err := decode[GiveawayPayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.WithdrawGiveawayVested(caller, payload.Proof, payload.Allocation, now)
		return err
	case ActionSaleFund:
		payload, err := decode[AmountPayload](cmd)
		if err != nil {
			return err
		}
		return s.Fund(caller, payload.Amount, now)
	case ActionSaleCash:
		return s.Cash(caller, now)
	case ActionSaleCashPaymentToken:
		payload, err := decode[AmountPayload](cmd)
		if err != nil {
			return err
		}
		return s.CashPaymentToken(caller, payload.Amount)
	case ActionSaleEmergencyTokenRetrieve:
		payload, err := decode[TokenPayload](cmd)
		if err != nil {
			return err
		}
		return s.EmergencyTokenRetrieve(caller, payload.Token)
	case ActionSaleSetCasher, ActionSaleSetWhitelistSetter, ActionSaleSetFunder, ActionSaleTransferOwnership:
		payload, err := decode[AccountPayload](cmd)
		if err != nil {
			return err
		}
		switch cmd.Action {
		case ActionSaleSetCasher:
			return s.SetCasher(caller, payload.Account)
		case ActionSaleSetWhitelistSetter:
			return s.SetWhitelistSetter(caller, payload.Account)
		case ActionSaleSetFunder:
			return s.SetFunder(caller, payload.Account)
		default:
			return s.TransferOwnership(caller, payload.Account)
		}
	case ActionSaleRenounceOwnership:
		return s.RenounceOwnership(caller)
	case ActionSaleSetWithdrawDelay:
		payload, err := decode[TimePayload](cmd)
		if err != nil {
			return err
		}
		return s.SetWithdrawDelay(caller, payload.Time, now)
	case ActionSaleSetLinearVestingEndTime:
		payload, err := decode[TimePayload](cmd)
		if err != nil {
			return err
		}
		return s.SetLinearVestingEndTime(caller, payload.Time, now)
	case ActionSaleSetCliffPeriod:
		payload, err := decode[CliffPeriodPayload](cmd)
		if err != nil {
			return err
		}
		return s.SetCliffPeriod(caller, payload.UnlockTimes, payload.Percentages, now)
	case ActionSaleSetIsPurchaseHalted, ActionSaleSetIsIntegerSale, ActionSaleSetVestedGiveaway:
		payload, err := decode[FlagPayload](cmd)
		if err != nil {
			return err
		}
		switch cmd.Action {
		case ActionSaleSetIsPurchaseHalted:
			return s.SetIsPurchaseHalted(caller, payload.Value)
		case ActionSaleSetIsIntegerSale:
			return s.SetIsIntegerSale(caller, payload.Value)
		default:
			return s.SetVestedGiveaway(caller, payload.Value)
		}
	case ActionSaleSetMinTotalPayment, ActionSaleSetMaxTotalPurchasable, ActionSaleSetPublicAllocation:
		payload, err := decode[AmountPayload](cmd)
		if err != nil {
			return err
		}
		switch cmd.Action {
		case ActionSaleSetMinTotalPayment:
			return s.SetMinTotalPayment(caller, payload.Amount)
		case ActionSaleSetMaxTotalPurchasable:
			return s.SetMaxTotalPurchasable(caller, payload.Amount)
		default:
			return s.SetPublicAllocation(caller, payload.Amount)
		}
	case ActionSaleSetWhitelist:
		payload, err := decode[RootPayload](cmd)
		if err != nil {
			return err
		}
		return s.SetWhitelist(caller, payload.Root)
	}
	return errors.Wrapf(errs.Unsupported, "action %q on sale %q", cmd.Action, cmd.SaleID)
}

func (p *Processor) applyTiered(s *tieredsale.TieredSale, cmd *entity.Command) error {
	caller, now := cmd.Caller, cmd.Time
	switch cmd.Action {
	case ActionTieredAddOperator, ActionTieredRemoveOperator, ActionTieredTransferOwnership:
		payload, err := decode[AccountPayload](cmd)
		if err != nil {
			return err
		}
		switch cmd.Action {
		case ActionTieredAddOperator:
			return s.AddOperator(caller, payload.Account)
		case ActionTieredRemoveOperator:
			return s.RemoveOperator(caller, payload.Account)
		default:
			return s.TransferOwnership(caller, payload.Account)
		}
	case ActionTieredSetTier:
		payload, err := decode[SetTierPayload](cmd)
		if err != nil {
			return err
		}
		tier, err := payload.toTier()
		if err != nil {
			return err
		}
		return s.SetTier(caller, tier)
	case ActionTieredUpdateIsHalt:
		payload, err := decode[TierFlagPayload](cmd)
		if err != nil {
			return err
		}
		return s.UpdateIsHalt(caller, payload.TierID, payload.Value)
	case ActionTieredUpdateWhitelist:
		payload, err := decode[TierRootPayload](cmd)
		if err != nil {
			return err
		}
		return s.UpdateWhitelist(caller, payload.TierID, payload.Root)
	case ActionTieredAddPromoCode:
		payload, err := decode[AddPromoCodePayload](cmd)
		if err != nil {
			return err
		}
		return s.AddPromoCode(caller, tieredsale.PromoCodeConfig{
			Code:               payload.Code,
			DiscountPercent:    payload.DiscountPercent,
			Owner:              payload.Owner,
			Master:             payload.Master,
			BaseOwnerPercent:   payload.BaseOwnerPercent,
			MasterOwnerPercent: payload.MasterOwnerPercent,
		})
	case ActionTieredPurchase:
		payload, err := decode[TierPurchasePayload](cmd)
		if err != nil {
			return err
		}
		amount, err := parseUnits("amount", payload.Amount)
		if err != nil {
			return err
		}
		allocation, err := parseUnits("allocation", payload.Allocation)
		if err != nil {
			return err
		}
		if payload.Code == "" {
			return s.WhitelistedPurchaseInTier(caller, payload.TierID, amount, payload.Proof, allocation, now)
		}
		return s.WhitelistedPurchaseInTierWithCode(caller, payload.TierID, amount, payload.Proof, payload.Code, allocation, now)
	case ActionTieredWithdrawPromoCodeRewards:
		payload, err := decode[CodePayload](cmd)
		if err != nil {
			return err
		}
		_, err = s.WithdrawPromoCodeRewards(caller, payload.Code)
		return err
	case ActionTieredWithdrawReferralRewards:
		_, err := s.WithdrawReferralRewards(caller)
		return err
	case ActionTieredCash:
		_, err := s.Cash(caller, now)
		return err
	case ActionTieredCashPaymentToken:
		payload, err := decode[AmountPayload](cmd)
		if err != nil {
			return err
		}
		return s.CashPaymentToken(caller, payload.Amount)
	case ActionTieredEmergencyTokenRetrieve:
		payload, err := decode[TokenPayload](cmd)
		if err != nil {
			return err
		}
		return s.EmergencyTokenRetrieve(caller, payload.Token)
	}
	return errors.Wrapf(errs.Unsupported, "action %q on tiered sale %q", cmd.Action, cmd.SaleID)
}

func (p SetTierPayload) toTier() (tieredsale.Tier, error) {
	maxTotal, err := parseUnits("maxTotalPurchasable", p.MaxTotalPurchasable)
	if err != nil {
		return tieredsale.Tier{}, err
	}
	maxPerWallet, err := parseUnits("maxAllocationPerWallet", p.MaxAllocationPerWallet)
	if err != nil {
		return tieredsale.Tier{}, err
	}
	return tieredsale.Tier{
		ID:                     p.TierID,
		Price:                  p.Price,
		MaxTotalPurchasable:    maxTotal,
		MaxAllocationPerWallet: maxPerWallet,
		WhitelistRoot:          p.WhitelistRoot,
		BonusPercent:           p.BonusPercent,
		IsHalt:                 p.IsHalt,
		AllowPromoCode:         p.AllowPromoCode,
		AllowWalletPromoCode:   p.AllowWalletPromoCode,
		StartTime:              p.StartTime,
		EndTime:                p.EndTime,
	}, nil
}

// parseUnits parses a decimal unit quantity. Empty means zero.
func parseUnits(field, value string) (uint128.Uint128, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uint128.Zero, nil
	}
	u, err := uint128.FromString(value)
	if err != nil {
		return uint128.Zero, errors.Wrapf(errs.InvalidInput, "invalid %s %q", field, value)
	}
	return u, nil
}
