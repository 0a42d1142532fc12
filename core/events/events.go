// Package events defines the notifications emitted by sale engines for external indexers.
package events

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Event is a notification emitted after a successful sale operation.
type Event interface {
	EventName() string
}

const (
	NamePurchase                = "Purchase"
	NameWithdraw                = "Withdraw"
	NameWithdrawGiveaway        = "WithdrawGiveaway"
	NameCash                    = "Cash"
	NameFund                    = "Fund"
	NameEmergencyTokenRetrieve  = "EmergencyTokenRetrieve"
	NameOwnershipTransferred    = "OwnershipTransferred"
	NameRoleSet                 = "RoleSet"
	NameConfigChanged           = "ConfigChanged"
	NameTierSet                 = "TierSet"
	NameTierPurchase            = "TierPurchase"
	NamePromoCodeAdded          = "PromoCodeAdded"
	NameReferralRewardWithdrawn = "ReferralRewardWithdrawn"
	NameTransfer                = "Transfer"
)

type Purchase struct {
	Wallet  common.Address `json:"wallet"`
	Payment *uint256.Int   `json:"payment"`
	Code    string         `json:"code,omitempty"`
}

func (Purchase) EventName() string { return NamePurchase }

type Withdraw struct {
	Wallet common.Address `json:"wallet"`
	Amount *uint256.Int   `json:"amount"`
}

func (Withdraw) EventName() string { return NameWithdraw }

type WithdrawGiveaway struct {
	Wallet common.Address `json:"wallet"`
	Amount *uint256.Int   `json:"amount"`
	Vested bool           `json:"vested"`
}

func (WithdrawGiveaway) EventName() string { return NameWithdrawGiveaway }

// Cash is emitted when the casher takes payment tokens and unsold sale tokens out of a sale.
type Cash struct {
	Casher          common.Address `json:"casher"`
	PaymentAmount   *uint256.Int   `json:"paymentAmount"`
	SaleTokenAmount *uint256.Int   `json:"saleTokenAmount"`
}

func (Cash) EventName() string { return NameCash }

type Fund struct {
	Funder common.Address `json:"funder"`
	Amount *uint256.Int   `json:"amount"`
}

func (Fund) EventName() string { return NameFund }

type EmergencyTokenRetrieve struct {
	Token  common.Address `json:"token"`
	Amount *uint256.Int   `json:"amount"`
}

func (EmergencyTokenRetrieve) EventName() string { return NameEmergencyTokenRetrieve }

type OwnershipTransferred struct {
	PreviousOwner common.Address `json:"previousOwner"`
	NewOwner      common.Address `json:"newOwner"`
}

func (OwnershipTransferred) EventName() string { return NameOwnershipTransferred }

type RoleSet struct {
	Role    string         `json:"role"`
	Account common.Address `json:"account"`
	Granted bool           `json:"granted"`
}

func (RoleSet) EventName() string { return NameRoleSet }

// ConfigChanged is emitted by administrative setters.
type ConfigChanged struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (ConfigChanged) EventName() string { return NameConfigChanged }

type TierSet struct {
	TierID string `json:"tierId"`
}

func (TierSet) EventName() string { return NameTierSet }

type TierPurchase struct {
	TierID  string         `json:"tierId"`
	Wallet  common.Address `json:"wallet"`
	Amount  string         `json:"amount"`
	Payment *uint256.Int   `json:"payment"`
	Code    string         `json:"code,omitempty"`
}

func (TierPurchase) EventName() string { return NameTierPurchase }

type PromoCodeAdded struct {
	Code            string         `json:"code"`
	DiscountPercent uint8          `json:"discountPercent"`
	Owner           common.Address `json:"owner"`
	Master          common.Address `json:"master"`
}

func (PromoCodeAdded) EventName() string { return NamePromoCodeAdded }

type ReferralRewardWithdrawn struct {
	Recipient common.Address `json:"recipient"`
	Amount    *uint256.Int   `json:"amount"`
	Code      string         `json:"code,omitempty"`
}

func (ReferralRewardWithdrawn) EventName() string { return NameReferralRewardWithdrawn }

// Transfer is emitted for ledger deposits and wallet transfers. From is zero for deposits.
type Transfer struct {
	Token  common.Address `json:"token"`
	From   common.Address `json:"from"`
	To     common.Address `json:"to"`
	Amount *uint256.Int   `json:"amount"`
}

func (Transfer) EventName() string { return NameTransfer }
