package sale

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/core/roles"
	"github.com/gaze-network/launchpad/modules/sale/vesting"
	"github.com/holiman/uint256"
)

// Info is a read-only snapshot of a sale.
type Info struct {
	SalePrice       *uint256.Int   `json:"salePrice"`
	PaymentToken    common.Address `json:"paymentToken"`
	SaleToken       common.Address `json:"saleToken"`
	Account         common.Address `json:"account"`
	Owner           common.Address `json:"owner"`
	Casher          common.Address `json:"casher"`
	Funder          common.Address `json:"funder"`
	WhitelistSetter common.Address `json:"whitelistSetter"`

	StartTime            uint64          `json:"startTime"`
	EndTime              uint64          `json:"endTime"`
	WithdrawDelay        uint64          `json:"withdrawDelay"`
	WithdrawTime         uint64          `json:"withdrawTime"`
	LinearVestingEndTime uint64          `json:"linearVestingEndTime"`
	Cliffs               []vesting.Cliff `json:"cliffPeriod"`

	MaxTotalPayment     *uint256.Int `json:"maxTotalPayment"`
	MinTotalPayment     *uint256.Int `json:"minTotalPayment"`
	MaxTotalPurchasable *uint256.Int `json:"maxTotalPurchasable"`
	PublicAllocation    *uint256.Int `json:"publicAllocation"`
	WhitelistRootHash   common.Hash  `json:"whitelistRootHash"`

	IsPurchaseHalted bool `json:"isPurchaseHalted"`
	IsIntegerSale    bool `json:"isIntegerSale"`
	VestedGiveaway   bool `json:"vestedGiveaway"`
	HasCashed        bool `json:"hasCashed"`

	SaleAmount           *uint256.Int `json:"saleAmount"`
	TotalPaymentReceived *uint256.Int `json:"totalPaymentReceived"`
	SaleTokenPurchased   *uint256.Int `json:"saleTokenPurchased"`
	TotalWithdrawn       *uint256.Int `json:"totalWithdrawn"`
	PurchaserCount       uint64       `json:"purchaserCount"`
	WithdrawerCount      uint64       `json:"withdrawerCount"`
}

func (s *Sale) Info() Info {
	return Info{
		SalePrice:            s.salePrice.Clone(),
		PaymentToken:         s.paymentToken,
		SaleToken:            s.saleToken,
		Account:              s.account,
		Owner:                s.roles.Holder(roles.Owner),
		Casher:               s.roles.Holder(roles.Casher),
		Funder:               s.roles.Holder(roles.Funder),
		WhitelistSetter:      s.roles.Holder(roles.WhitelistSetter),
		StartTime:            s.startTime,
		EndTime:              s.endTime,
		WithdrawDelay:        s.withdrawDelay,
		WithdrawTime:         s.WithdrawTime(),
		LinearVestingEndTime: s.linearVestingEndTime,
		Cliffs:               append([]vesting.Cliff(nil), s.cliffs...),
		MaxTotalPayment:      s.maxTotalPayment.Clone(),
		MinTotalPayment:      s.minTotalPayment.Clone(),
		MaxTotalPurchasable:  s.maxTotalPurchasable.Clone(),
		PublicAllocation:     s.publicAllocation.Clone(),
		WhitelistRootHash:    s.whitelistRoot,
		IsPurchaseHalted:     s.isPurchaseHalted,
		IsIntegerSale:        s.isIntegerSale,
		VestedGiveaway:       s.vestedGiveaway,
		HasCashed:            s.hasCashed,
		SaleAmount:           s.saleAmount.Clone(),
		TotalPaymentReceived: s.totalPaymentReceived.Clone(),
		SaleTokenPurchased:   s.saleTokenPurchased.Clone(),
		TotalWithdrawn:       s.totalWithdrawn.Clone(),
		PurchaserCount:       s.purchaserCount,
		WithdrawerCount:      s.withdrawerCount,
	}
}

// Participant returns a copy of wallet's state. Unknown wallets get a zero state.
func (s *Sale) Participant(wallet common.Address) *Participant {
	return s.peek(wallet).clone()
}

func (s *Sale) PurchaserCount() uint64 {
	return s.purchaserCount
}

func (s *Sale) WithdrawerCount() uint64 {
	return s.withdrawerCount
}
