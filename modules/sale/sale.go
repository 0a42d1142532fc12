// Package sale implements the fixed-price allocation sale accountant.
//
// A Sale tracks payments, sale-token entitlements and withdrawals of its
// participants, and moves tokens through a ledger.Ledger. Every operation
// validates first and mutates after, so a rejected operation leaves the sale
// and the ledger untouched. Time is always supplied by the caller.
package sale

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/core/ledger"
	"github.com/gaze-network/launchpad/core/roles"
	"github.com/gaze-network/launchpad/modules/sale/vesting"
	"github.com/holiman/uint256"
)

// PriceScale is the fixed-point scale of SalePrice: payment-token wei per 1e18 sale-token wei.
var PriceScale = uint256.NewInt(1e18)

type Config struct {
	SalePrice       *uint256.Int
	Seller          common.Address
	PaymentToken    common.Address
	SaleToken       common.Address
	StartTime       uint64
	EndTime         uint64
	MaxTotalPayment *uint256.Int

	// Account is the ledger account holding the sale's tokens.
	Account common.Address
}

type Sale struct {
	salePrice       *uint256.Int
	paymentToken    common.Address
	saleToken       common.Address
	account         common.Address
	startTime       uint64
	endTime         uint64
	maxTotalPayment *uint256.Int

	roles  *roles.Registry
	ledger ledger.Ledger
	events events.Recorder

	funderSet            bool
	withdrawDelay        uint64
	linearVestingEndTime uint64
	cliffs               []vesting.Cliff
	isPurchaseHalted     bool
	isIntegerSale        bool
	vestedGiveaway       bool
	minTotalPayment      *uint256.Int
	maxTotalPurchasable  *uint256.Int
	whitelistRoot        common.Hash
	publicAllocation     *uint256.Int

	saleAmount           *uint256.Int
	totalPaymentReceived *uint256.Int
	saleTokenPurchased   *uint256.Int
	totalWithdrawn       *uint256.Int
	purchaserCount       uint64
	withdrawerCount      uint64
	hasCashed            bool

	participants map[common.Address]*Participant
	codes        *codeBook
}

// New creates a sale owned by owner. The seller starts as the funder.
func New(l ledger.Ledger, owner common.Address, cfg Config) (*Sale, error) {
	if err := cfg.validate(); err != nil {
		return nil, errors.WithStack(err)
	}
	if owner == (common.Address{}) {
		return nil, errors.Wrap(errs.ZeroAddress, "owner")
	}

	registry := roles.NewRegistry()
	if err := registry.Set(roles.Owner, owner); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := registry.Set(roles.Funder, cfg.Seller); err != nil {
		return nil, errors.WithStack(err)
	}

	return &Sale{
		salePrice:            cfg.SalePrice.Clone(),
		paymentToken:         cfg.PaymentToken,
		saleToken:            cfg.SaleToken,
		account:              cfg.Account,
		startTime:            cfg.StartTime,
		endTime:              cfg.EndTime,
		maxTotalPayment:      cfg.MaxTotalPayment.Clone(),
		roles:                registry,
		ledger:               l,
		minTotalPayment:      new(uint256.Int),
		maxTotalPurchasable:  new(uint256.Int),
		publicAllocation:     new(uint256.Int),
		saleAmount:           new(uint256.Int),
		totalPaymentReceived: new(uint256.Int),
		saleTokenPurchased:   new(uint256.Int),
		totalWithdrawn:       new(uint256.Int),
		participants:         make(map[common.Address]*Participant),
		codes:                newCodeBook(),
	}, nil
}

func (cfg *Config) validate() error {
	if cfg.SalePrice == nil {
		cfg.SalePrice = new(uint256.Int)
	}
	if cfg.MaxTotalPayment == nil {
		cfg.MaxTotalPayment = new(uint256.Int)
	}
	if cfg.SaleToken == cfg.PaymentToken {
		return errors.WithStack(errs.TokenCollision)
	}
	if !cfg.SalePrice.IsZero() && (cfg.PaymentToken == (common.Address{}) || cfg.MaxTotalPayment.IsZero()) {
		return errors.WithStack(errs.ZeroInputAtZeroPrice)
	}
	if cfg.Seller == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "seller")
	}
	if cfg.SaleToken == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "sale token")
	}
	if cfg.Account == (common.Address{}) {
		return errors.Wrap(errs.ZeroAddress, "sale account")
	}
	if cfg.StartTime > cfg.EndTime {
		return errors.Wrapf(errs.InvalidInput, "start time %d is after end time %d", cfg.StartTime, cfg.EndTime)
	}
	return nil
}

// IsGiveaway reports whether the sale has a zero price.
func (s *Sale) IsGiveaway() bool {
	return s.salePrice.IsZero()
}

// WithdrawTime is the time withdrawals and cash-out unlock.
func (s *Sale) WithdrawTime() uint64 {
	return s.endTime + s.withdrawDelay
}

func (s *Sale) Schedule() vesting.Schedule {
	return vesting.Schedule{
		Start:     s.WithdrawTime(),
		LinearEnd: s.linearVestingEndTime,
		Cliffs:    s.cliffs,
	}
}

// DrainEvents returns the events emitted since the last call.
func (s *Sale) DrainEvents() []events.Event {
	return s.events.Drain()
}

func (s *Sale) participant(wallet common.Address) *Participant {
	p, ok := s.participants[wallet]
	if !ok {
		p = newParticipant()
		s.participants[wallet] = p
	}
	return p
}

// peek returns the participant without registering it.
func (s *Sale) peek(wallet common.Address) *Participant {
	if p, ok := s.participants[wallet]; ok {
		return p
	}
	return newParticipant()
}

// owedFor returns the sale tokens bought by payment at the sale price.
func (s *Sale) owedFor(payment *uint256.Int) *uint256.Int {
	if s.IsGiveaway() {
		return new(uint256.Int)
	}
	owed, _ := new(uint256.Int).MulDivOverflow(payment, PriceScale, s.salePrice)
	return owed
}

func (s *Sale) onlyOwner(caller common.Address) error {
	if !s.roles.Has(roles.Owner, caller) {
		return errors.WithStack(errs.NotOwner)
	}
	return nil
}

func (s *Sale) onlyCasherOrOwner(caller common.Address) error {
	if !s.roles.HasAny(caller, roles.Owner, roles.Casher) {
		return errors.WithStack(errs.NotCasherOrOwner)
	}
	return nil
}

func (s *Sale) onlyWhitelistSetterOrOwner(caller common.Address) error {
	if !s.roles.HasAny(caller, roles.Owner, roles.WhitelistSetter) {
		return errors.WithStack(errs.NotWhitelistSetterOrOwner)
	}
	return nil
}

func (s *Sale) onlyFunder(caller common.Address) error {
	if !s.roles.Has(roles.Funder, caller) {
		return errors.WithStack(errs.NotFunder)
	}
	return nil
}
