package processor

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Amounts are JSON decimal strings. Tier unit quantities are decimal strings too.

type MintPayload struct {
	Token   common.Address `json:"token"`
	Account common.Address `json:"account"`
	Amount  *uint256.Int   `json:"amount"`
}

type TransferPayload struct {
	Token  common.Address `json:"token"`
	To     common.Address `json:"to"`
	Amount *uint256.Int   `json:"amount"`
}

type DeploySalePayload struct {
	SalePrice       *uint256.Int   `json:"salePrice"`
	Seller          common.Address `json:"seller"`
	PaymentToken    common.Address `json:"paymentToken"`
	SaleToken       common.Address `json:"saleToken"`
	StartTime       uint64         `json:"startTime"`
	EndTime         uint64         `json:"endTime"`
	MaxTotalPayment *uint256.Int   `json:"maxTotalPayment"`
}

type AmountPayload struct {
	Amount *uint256.Int `json:"amount"`
}

type WhitelistedPurchasePayload struct {
	Amount     *uint256.Int  `json:"amount"`
	Proof      []common.Hash `json:"proof"`
	Allocation *uint256.Int  `json:"allocation"`
}

type PurchaseWithCodePayload struct {
	Amount *uint256.Int `json:"amount"`
	Code   string       `json:"code"`
}

type GiveawayPayload struct {
	Proof      []common.Hash `json:"proof"`
	Allocation *uint256.Int  `json:"allocation"`
}

type TokenPayload struct {
	Token common.Address `json:"token"`
}

type AccountPayload struct {
	Account common.Address `json:"account"`
}

type TimePayload struct {
	Time uint64 `json:"time"`
}

type CliffPeriodPayload struct {
	UnlockTimes []uint64 `json:"unlockTimes"`
	Percentages []uint8  `json:"percentages"`
}

type FlagPayload struct {
	Value bool `json:"value"`
}

type RootPayload struct {
	Root common.Hash `json:"root"`
}

type DeployTieredSalePayload struct {
	PaymentToken common.Address `json:"paymentToken"`
	SaleToken    common.Address `json:"saleToken"`
	StartTime    uint64         `json:"startTime"`
	EndTime      uint64         `json:"endTime"`
}

type SetTierPayload struct {
	TierID                 string       `json:"tierId"`
	Price                  *uint256.Int `json:"price"`
	MaxTotalPurchasable    string       `json:"maxTotalPurchasable"`
	MaxAllocationPerWallet string       `json:"maxAllocationPerWallet"`
	WhitelistRoot          common.Hash  `json:"whitelistRootHash"`
	BonusPercent           uint8        `json:"bonusPercentage"`
	IsHalt                 bool         `json:"isHalt"`
	AllowPromoCode         bool         `json:"allowPromoCode"`
	AllowWalletPromoCode   bool         `json:"allowWalletPromoCode"`
	StartTime              uint64       `json:"startTime"`
	EndTime                uint64       `json:"endTime"`
}

type TierFlagPayload struct {
	TierID string `json:"tierId"`
	Value  bool   `json:"value"`
}

type TierRootPayload struct {
	TierID string      `json:"tierId"`
	Root   common.Hash `json:"root"`
}

type AddPromoCodePayload struct {
	Code               string         `json:"code"`
	DiscountPercent    uint8          `json:"discountPercentage"`
	Owner              common.Address `json:"owner"`
	Master             common.Address `json:"master"`
	BaseOwnerPercent   *uint8         `json:"baseOwnerPercentage,omitempty"`
	MasterOwnerPercent *uint8         `json:"masterOwnerPercentage,omitempty"`
}

type TierPurchasePayload struct {
	TierID     string        `json:"tierId"`
	Amount     string        `json:"amount"`
	Proof      []common.Hash `json:"proof"`
	Allocation string        `json:"allocation"`
	Code       string        `json:"code,omitempty"`
}

type CodePayload struct {
	Code string `json:"code"`
}
