package processor

import "github.com/gaze-network/launchpad/modules/launchpad/internal/entity"

const (
	ActionLedgerMint     entity.Action = "ledger.mint"
	ActionLedgerTransfer entity.Action = "ledger.transfer"

	ActionSaleDeploy                  entity.Action = "sale.deploy"
	ActionSalePurchase                entity.Action = "sale.purchase"
	ActionSaleWhitelistedPurchase     entity.Action = "sale.whitelisted_purchase"
	ActionSalePurchaseWithCode        entity.Action = "sale.purchase_with_code"
	ActionSaleWithdraw                entity.Action = "sale.withdraw"
	ActionSaleWithdrawGiveaway        entity.Action = "sale.withdraw_giveaway"
	ActionSaleWithdrawGiveawayVested  entity.Action = "sale.withdraw_giveaway_vested"
	ActionSaleFund                    entity.Action = "sale.fund"
	ActionSaleCash                    entity.Action = "sale.cash"
	ActionSaleCashPaymentToken        entity.Action = "sale.cash_payment_token"
	ActionSaleEmergencyTokenRetrieve  entity.Action = "sale.emergency_token_retrieve"
	ActionSaleSetCasher               entity.Action = "sale.set_casher"
	ActionSaleSetWhitelistSetter      entity.Action = "sale.set_whitelist_setter"
	ActionSaleSetFunder               entity.Action = "sale.set_funder"
	ActionSaleTransferOwnership       entity.Action = "sale.transfer_ownership"
	ActionSaleRenounceOwnership       entity.Action = "sale.renounce_ownership"
	ActionSaleSetWithdrawDelay        entity.Action = "sale.set_withdraw_delay"
	ActionSaleSetLinearVestingEndTime entity.Action = "sale.set_linear_vesting_end_time"
	ActionSaleSetCliffPeriod          entity.Action = "sale.set_cliff_period"
	ActionSaleSetIsPurchaseHalted     entity.Action = "sale.set_is_purchase_halted"
	ActionSaleSetIsIntegerSale        entity.Action = "sale.set_is_integer_sale"
	ActionSaleSetVestedGiveaway       entity.Action = "sale.set_vested_giveaway"
	ActionSaleSetMinTotalPayment      entity.Action = "sale.set_min_total_payment"
	ActionSaleSetMaxTotalPurchasable  entity.Action = "sale.set_max_total_purchasable"
	ActionSaleSetWhitelist            entity.Action = "sale.set_whitelist"
	ActionSaleSetPublicAllocation     entity.Action = "sale.set_public_allocation"

	ActionTieredDeploy                   entity.Action = "tiered.deploy"
	ActionTieredAddOperator              entity.Action = "tiered.add_operator"
	ActionTieredRemoveOperator           entity.Action = "tiered.remove_operator"
	ActionTieredTransferOwnership        entity.Action = "tiered.transfer_ownership"
	ActionTieredSetTier                  entity.Action = "tiered.set_tier"
	ActionTieredUpdateIsHalt             entity.Action = "tiered.update_is_halt"
	ActionTieredUpdateWhitelist          entity.Action = "tiered.update_whitelist"
	ActionTieredAddPromoCode             entity.Action = "tiered.add_promo_code"
	ActionTieredPurchase                 entity.Action = "tiered.purchase"
	ActionTieredWithdrawPromoCodeRewards entity.Action = "tiered.withdraw_promo_code_rewards"
	ActionTieredWithdrawReferralRewards  entity.Action = "tiered.withdraw_referral_rewards"
	ActionTieredCash                     entity.Action = "tiered.cash"
	ActionTieredCashPaymentToken         entity.Action = "tiered.cash_payment_token"
	ActionTieredEmergencyTokenRetrieve   entity.Action = "tiered.emergency_token_retrieve"
)
