package tieredsale

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

// Tier is one sale configuration. Quantities are whole sale-token units and
// Price is the payment for one unit. Zero caps are unlimited.
type Tier struct {
	ID                     string          `json:"tierId"`
	Price                  *uint256.Int    `json:"price"`
	MaxTotalPurchasable    uint128.Uint128 `json:"maxTotalPurchasable"`
	MaxAllocationPerWallet uint128.Uint128 `json:"maxAllocationPerWallet"`
	WhitelistRoot          common.Hash     `json:"whitelistRootHash"`
	BonusPercent           uint8           `json:"bonusPercentage"`
	IsHalt                 bool            `json:"isHalt"`
	AllowPromoCode         bool            `json:"allowPromoCode"`
	AllowWalletPromoCode   bool            `json:"allowWalletPromoCode"`
	StartTime              uint64          `json:"startTime"`
	EndTime                uint64          `json:"endTime"`

	// Purchased is the total bought in the tier. It survives SetTier.
	Purchased uint128.Uint128 `json:"purchased"`
}

// IsActive reports whether purchases are open at now. A halted tier is never active.
func (t *Tier) IsActive(now uint64) bool {
	return !t.IsHalt && now >= t.StartTime && now <= t.EndTime
}

func (t *Tier) validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.Wrap(errs.InvalidInput, "empty tier id")
	}
	if t.Price == nil || t.Price.IsZero() {
		return errors.Wrap(errs.InvalidInput, "zero tier price")
	}
	if t.StartTime > t.EndTime {
		return errors.Wrapf(errs.InvalidInput, "tier start time %d is after end time %d", t.StartTime, t.EndTime)
	}
	if t.BonusPercent > 100 {
		return errors.Wrapf(errs.InvalidInput, "bonus percentage %d is over 100", t.BonusPercent)
	}
	return nil
}

func (t *Tier) clone() *Tier {
	c := *t
	c.Price = t.Price.Clone()
	return &c
}

// SetTier creates or replaces tier config.ID. Purchases already made in the tier are kept.
func (s *TieredSale) SetTier(caller common.Address, config Tier) error {
	if err := s.onlyOperator(caller); err != nil {
		return err
	}
	if err := config.validate(); err != nil {
		return errors.WithStack(err)
	}
	tier := config.clone()
	tier.Purchased = uint128.Zero
	if existing, ok := s.tiers[tier.ID]; ok {
		tier.Purchased = existing.Purchased
	} else {
		s.tierOrder = append(s.tierOrder, tier.ID)
		s.purchased[tier.ID] = make(map[common.Address]uint128.Uint128)
	}
	s.tiers[tier.ID] = tier
	s.events.Emit(events.TierSet{TierID: tier.ID})
	return nil
}

func (s *TieredSale) UpdateIsHalt(caller common.Address, tierID string, halt bool) error {
	if err := s.onlyOperator(caller); err != nil {
		return err
	}
	tier, err := s.tier(tierID)
	if err != nil {
		return err
	}
	tier.IsHalt = halt
	s.events.Emit(events.TierSet{TierID: tierID})
	return nil
}

// UpdateWhitelist replaces the tier's merkle root. The zero root opens the tier to everyone.
func (s *TieredSale) UpdateWhitelist(caller common.Address, tierID string, root common.Hash) error {
	if err := s.onlyOperator(caller); err != nil {
		return err
	}
	tier, err := s.tier(tierID)
	if err != nil {
		return err
	}
	tier.WhitelistRoot = root
	s.events.Emit(events.TierSet{TierID: tierID})
	return nil
}

// Tier returns a copy of the tier.
func (s *TieredSale) Tier(tierID string) (*Tier, error) {
	tier, err := s.tier(tierID)
	if err != nil {
		return nil, err
	}
	return tier.clone(), nil
}

// Tiers returns copies of every tier in creation order.
func (s *TieredSale) Tiers() []*Tier {
	tiers := make([]*Tier, 0, len(s.tierOrder))
	for _, id := range s.tierOrder {
		tiers = append(tiers, s.tiers[id].clone())
	}
	return tiers
}

// Purchased returns the units wallet bought in the tier.
func (s *TieredSale) Purchased(tierID string, wallet common.Address) uint128.Uint128 {
	amount, ok := s.purchased[tierID][wallet]
	if !ok {
		return uint128.Zero
	}
	return amount
}

func (s *TieredSale) TotalPurchased() uint128.Uint128 {
	return s.totalPurchased
}

func (s *TieredSale) tier(tierID string) (*Tier, error) {
	tier, ok := s.tiers[tierID]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "tier %q", tierID)
	}
	return tier, nil
}
