// Package tieredsale implements a sale split into independently configured tiers,
// with promo codes that discount purchases and split a referral reward.
package tieredsale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/core/ledger"
	"github.com/gaze-network/launchpad/core/roles"
	"github.com/gaze-network/uint128"
	"github.com/holiman/uint256"
)

// Default reward split of a promo code, in percent of the discounted payment.
const (
	DefaultBaseOwnerPercent   = 8
	DefaultMasterOwnerPercent = 2
)

// TieredSale sells one sale token for one payment token through many tiers.
// All tiers share the sale-token supply held by the engine account and one cash-out.
type TieredSale struct {
	ledger  ledger.Ledger
	roles   *roles.Registry
	events  events.Recorder
	account common.Address

	paymentToken common.Address
	saleToken    common.Address
	startTime    uint64
	endTime      uint64

	tiers     map[string]*Tier
	tierOrder []string
	purchased map[string]map[common.Address]uint128.Uint128

	totalPurchased uint128.Uint128
	pendingRewards *uint256.Int
	hasCashed      bool

	promoCodes *promoBook
}

func New(l ledger.Ledger, owner, paymentToken, saleToken common.Address, startTime, endTime uint64, account common.Address) (*TieredSale, error) {
	if paymentToken == saleToken {
		return nil, errors.WithStack(errs.TokenCollision)
	}
	if paymentToken == (common.Address{}) || saleToken == (common.Address{}) {
		return nil, errors.Wrap(errs.ZeroAddress, "token")
	}
	if account == (common.Address{}) {
		return nil, errors.Wrap(errs.ZeroAddress, "sale account")
	}
	if startTime > endTime {
		return nil, errors.Wrapf(errs.InvalidInput, "start time %d is after end time %d", startTime, endTime)
	}
	registry := roles.NewRegistry()
	if err := registry.Set(roles.Owner, owner); err != nil {
		return nil, errors.WithStack(err)
	}
	return &TieredSale{
		ledger:         l,
		roles:          registry,
		account:        account,
		paymentToken:   paymentToken,
		saleToken:      saleToken,
		startTime:      startTime,
		endTime:        endTime,
		tiers:          make(map[string]*Tier),
		purchased:      make(map[string]map[common.Address]uint128.Uint128),
		totalPurchased: uint128.Zero,
		pendingRewards: new(uint256.Int),
		promoCodes:     newPromoBook(),
	}, nil
}

// DrainEvents returns the events emitted since the last call.
func (s *TieredSale) DrainEvents() []events.Event {
	return s.events.Drain()
}

func (s *TieredSale) Owner() common.Address {
	return s.roles.Holder(roles.Owner)
}

func (s *TieredSale) IsOperator(addr common.Address) bool {
	return s.roles.Has(roles.Operator, addr)
}

func (s *TieredSale) AddOperator(caller, operator common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if err := s.roles.Grant(roles.Operator, operator); err != nil {
		return errors.WithStack(err)
	}
	s.events.Emit(events.RoleSet{Role: roles.Operator.String(), Account: operator, Granted: true})
	return nil
}

func (s *TieredSale) RemoveOperator(caller, operator common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if !s.roles.Has(roles.Operator, operator) {
		return errors.Wrapf(errs.NotFound, "operator %s", operator)
	}
	s.roles.Revoke(roles.Operator, operator)
	s.events.Emit(events.RoleSet{Role: roles.Operator.String(), Account: operator, Granted: false})
	return nil
}

// TransferOwnership hands the owner role to newOwner.
func (s *TieredSale) TransferOwnership(caller, newOwner common.Address) error {
	if err := s.onlyOwner(caller); err != nil {
		return err
	}
	if err := s.roles.Set(roles.Owner, newOwner); err != nil {
		return errors.WithStack(err)
	}
	s.events.Emit(events.OwnershipTransferred{PreviousOwner: caller, NewOwner: newOwner})
	return nil
}

// RenounceOwnership always fails. A sale must keep an owner.
func (s *TieredSale) RenounceOwnership(common.Address) error {
	return errors.WithStack(errs.OwnershipRenunciationDisabled)
}

func (s *TieredSale) onlyOwner(caller common.Address) error {
	if !s.roles.Has(roles.Owner, caller) {
		return errors.WithStack(errs.NotOwner)
	}
	return nil
}

func (s *TieredSale) onlyOperator(caller common.Address) error {
	if !s.roles.HasAny(caller, roles.Owner, roles.Operator) {
		return errors.WithStack(errs.NotOperator)
	}
	return nil
}

// Info is a read-only snapshot of a tiered sale.
type Info struct {
	Owner          common.Address   `json:"owner"`
	Operators      []common.Address `json:"operators"`
	Account        common.Address   `json:"account"`
	PaymentToken   common.Address   `json:"paymentToken"`
	SaleToken      common.Address   `json:"saleToken"`
	StartTime      uint64           `json:"startTime"`
	EndTime        uint64           `json:"endTime"`
	CashTime       uint64           `json:"cashTime"`
	TierIDs        []string         `json:"tierIds"`
	TotalPurchased uint128.Uint128  `json:"totalPurchased"`
	PendingRewards *uint256.Int     `json:"pendingRewards"`
	PromoCodeCount int              `json:"promoCodeCount"`
	HasCashed      bool             `json:"hasCashed"`
}

func (s *TieredSale) Info() Info {
	return Info{
		Owner:          s.Owner(),
		Operators:      s.roles.Holders(roles.Operator),
		Account:        s.account,
		PaymentToken:   s.paymentToken,
		SaleToken:      s.saleToken,
		StartTime:      s.startTime,
		EndTime:        s.endTime,
		CashTime:       s.cashTime(),
		TierIDs:        append([]string(nil), s.tierOrder...),
		TotalPurchased: s.totalPurchased,
		PendingRewards: s.pendingRewards.Clone(),
		PromoCodeCount: s.promoCodes.len(),
		HasCashed:      s.hasCashed,
	}
}
