package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/modules/tieredsale"
	"github.com/gaze-network/uint128"
)

func (u *Usecase) GetTieredSale(ctx context.Context, saleID string) (*tieredsale.Info, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.TieredSale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	info := s.Info()
	return &info, nil
}

func (u *Usecase) GetTier(ctx context.Context, saleID, tierID string) (*tieredsale.Tier, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.TieredSale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tier, err := s.Tier(tierID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return tier, nil
}

// GetTierPurchase returns the units wallet bought in the tier.
func (u *Usecase) GetTierPurchase(ctx context.Context, saleID, tierID string, wallet common.Address) (uint128.Uint128, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.TieredSale(saleID)
	if err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	if _, err := s.Tier(tierID); err != nil {
		return uint128.Zero, errors.WithStack(err)
	}
	return s.Purchased(tierID, wallet), nil
}

func (u *Usecase) GetPromoCode(ctx context.Context, saleID, code string) (*tieredsale.PromoCode, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.TieredSale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	promo, err := s.PromoCode(code)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return promo, nil
}

// GetPromoCodes returns the promo codes at creation positions [start, end).
// A nil end means every code from start.
func (u *Usecase) GetPromoCodes(ctx context.Context, saleID string, start uint64, end *uint64) ([]*tieredsale.PromoCode, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	s, err := u.processor.TieredSale(saleID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	last := uint64(s.PromoCodeCount())
	if end != nil {
		last = *end
	}
	codes, err := s.AllPromoCodeInfo(start, last)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return codes, nil
}
