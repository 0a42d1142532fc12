package tieredsale

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/holiman/uint256"
)

// PromoCode discounts purchases and earns its owner and master a share of the discounted payment.
type PromoCode struct {
	Code               string         `json:"code"`
	DiscountPercent    uint8          `json:"discountPercentage"`
	Owner              common.Address `json:"promoCodeOwnerAddress"`
	Master             common.Address `json:"masterOwnerAddress"`
	BaseOwnerPercent   uint8          `json:"baseOwnerPercentage"`
	MasterOwnerPercent uint8          `json:"masterOwnerPercentage"`
	IsWalletCode       bool           `json:"isWalletCode"`

	OwnerEarnings   *uint256.Int `json:"promoCodeOwnerEarnings"`
	MasterEarnings  *uint256.Int `json:"masterOwnerEarnings"`
	OwnerWithdrawn  *uint256.Int `json:"promoCodeOwnerWithdrawn"`
	MasterWithdrawn *uint256.Int `json:"masterOwnerWithdrawn"`
	TotalPayment    *uint256.Int `json:"totalPayment"`
	UniqueUseCount  uint64       `json:"uniqueUseCount"`
}

// PromoCodeConfig is the input of AddPromoCode. Nil percentages take the defaults.
type PromoCodeConfig struct {
	Code               string
	DiscountPercent    uint8
	Owner              common.Address
	Master             common.Address
	BaseOwnerPercent   *uint8
	MasterOwnerPercent *uint8
}

func (p *PromoCode) pendingOwner() *uint256.Int {
	return new(uint256.Int).Sub(p.OwnerEarnings, p.OwnerWithdrawn)
}

func (p *PromoCode) pendingMaster() *uint256.Int {
	return new(uint256.Int).Sub(p.MasterEarnings, p.MasterWithdrawn)
}

func (p *PromoCode) clone() *PromoCode {
	c := *p
	c.OwnerEarnings = p.OwnerEarnings.Clone()
	c.MasterEarnings = p.MasterEarnings.Clone()
	c.OwnerWithdrawn = p.OwnerWithdrawn.Clone()
	c.MasterWithdrawn = p.MasterWithdrawn.Clone()
	c.TotalPayment = p.TotalPayment.Clone()
	return &c
}

// promoBook keeps promo codes in creation order and which codes each wallet used.
type promoBook struct {
	codes  map[string]*PromoCode
	order  []string
	usedBy map[common.Address][]string
	used   map[common.Address]map[string]struct{}
}

func newPromoBook() *promoBook {
	return &promoBook{
		codes:  make(map[string]*PromoCode),
		usedBy: make(map[common.Address][]string),
		used:   make(map[common.Address]map[string]struct{}),
	}
}

func (b *promoBook) len() int {
	return len(b.order)
}

func (b *promoBook) add(p *PromoCode) {
	b.codes[p.Code] = p
	b.order = append(b.order, p.Code)
}

// markUsed counts wallet once per code.
func (b *promoBook) markUsed(wallet common.Address, p *PromoCode) {
	set, ok := b.used[wallet]
	if !ok {
		set = make(map[string]struct{})
		b.used[wallet] = set
	}
	if _, ok := set[p.Code]; ok {
		return
	}
	set[p.Code] = struct{}{}
	b.usedBy[wallet] = append(b.usedBy[wallet], p.Code)
	p.UniqueUseCount++
}

// AddPromoCode registers a promo code.
func (s *TieredSale) AddPromoCode(caller common.Address, config PromoCodeConfig) error {
	if err := s.onlyOperator(caller); err != nil {
		return err
	}
	code := strings.TrimSpace(config.Code)
	if code == "" {
		return errors.Wrap(errs.InvalidPromoCode, "empty code")
	}
	if config.DiscountPercent > 100 {
		return errors.Wrapf(errs.InvalidDiscount, "discount %d is over 100", config.DiscountPercent)
	}
	if config.Owner == (common.Address{}) || config.Master == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "promo code owner and master must be set")
	}
	if _, ok := s.promoCodes.codes[code]; ok {
		return errors.Wrapf(errs.PromoCodeExists, "code %q", code)
	}

	base, master := uint8(DefaultBaseOwnerPercent), uint8(DefaultMasterOwnerPercent)
	if config.BaseOwnerPercent != nil {
		base = *config.BaseOwnerPercent
	}
	if config.MasterOwnerPercent != nil {
		master = *config.MasterOwnerPercent
	}
	if uint(base)+uint(master) > 100 {
		return errors.Wrapf(errs.InvalidInput, "owner %d and master %d percentages sum over 100", base, master)
	}

	s.registerPromoCode(&PromoCode{
		Code:               code,
		DiscountPercent:    config.DiscountPercent,
		Owner:              config.Owner,
		Master:             config.Master,
		BaseOwnerPercent:   base,
		MasterOwnerPercent: master,
	})
	return nil
}

func (s *TieredSale) registerPromoCode(p *PromoCode) {
	p.OwnerEarnings = new(uint256.Int)
	p.MasterEarnings = new(uint256.Int)
	p.OwnerWithdrawn = new(uint256.Int)
	p.MasterWithdrawn = new(uint256.Int)
	p.TotalPayment = new(uint256.Int)
	s.promoCodes.add(p)
	s.events.Emit(events.PromoCodeAdded{
		Code:            p.Code,
		DiscountPercent: p.DiscountPercent,
		Owner:           p.Owner,
		Master:          p.Master,
	})
}

// resolvePromoCode returns the code usable by buyer in tier. Unknown codes that
// are wallet addresses become wallet codes when the tier allows them; the new
// code is returned with created set and is not registered yet.
func (s *TieredSale) resolvePromoCode(tier *Tier, buyer common.Address, code string) (p *PromoCode, created bool, err error) {
	code = strings.TrimSpace(code)
	p, ok := s.promoCodes.codes[code]
	if !ok {
		if !tier.AllowWalletPromoCode || !common.IsHexAddress(code) {
			return nil, false, errors.Wrapf(errs.InvalidPromoCode, "unknown code %q", code)
		}
		owner := common.HexToAddress(code)
		if owner == (common.Address{}) {
			return nil, false, errors.Wrap(errs.InvalidPromoCode, "zero address code")
		}
		p = &PromoCode{
			Code:               owner.Hex(),
			Owner:              owner,
			Master:             s.Owner(),
			BaseOwnerPercent:   DefaultBaseOwnerPercent,
			MasterOwnerPercent: DefaultMasterOwnerPercent,
			IsWalletCode:       true,
		}
		if existing, ok := s.promoCodes.codes[p.Code]; ok {
			p = existing
		} else {
			created = true
		}
	}

	switch {
	case p.IsWalletCode && !tier.AllowWalletPromoCode:
		return nil, false, errors.Wrapf(errs.InvalidPromoCode, "tier %q does not accept wallet codes", tier.ID)
	case !p.IsWalletCode && !tier.AllowPromoCode:
		return nil, false, errors.Wrapf(errs.InvalidPromoCode, "tier %q does not accept promo codes", tier.ID)
	case p.IsWalletCode && p.Owner == buyer:
		return nil, false, errors.Wrap(errs.InvalidPromoCode, "cannot refer yourself")
	}
	return p, created, nil
}

// PromoCode returns a copy of the promo code.
func (s *TieredSale) PromoCode(code string) (*PromoCode, error) {
	p, ok := s.promoCodes.codes[code]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "promo code %q", code)
	}
	return p.clone(), nil
}

// AllPromoCodeInfo returns the promo codes at creation positions [start, end).
func (s *TieredSale) AllPromoCodeInfo(start, end uint64) ([]*PromoCode, error) {
	if start > end || end > uint64(s.promoCodes.len()) {
		return nil, errors.Wrapf(errs.InvalidRange, "range [%d, %d) of %d promo codes", start, end, s.promoCodes.len())
	}
	result := make([]*PromoCode, 0, end-start)
	for _, code := range s.promoCodes.order[start:end] {
		result = append(result, s.promoCodes.codes[code].clone())
	}
	return result, nil
}

// CodesUsedBy returns the codes wallet purchased with, in order of first use.
func (s *TieredSale) CodesUsedBy(wallet common.Address) []string {
	return append([]string(nil), s.promoCodes.usedBy[wallet]...)
}

func (s *TieredSale) PromoCodeCount() int {
	return s.promoCodes.len()
}
