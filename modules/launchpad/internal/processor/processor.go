// Package processor applies launchpad commands to the in-memory ledger and sale engines.
package processor

import (
	"encoding/json"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/core/ledger"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/gaze-network/launchpad/modules/sale"
	"github.com/gaze-network/launchpad/modules/tieredsale"
)

const accountPrefix = "launchpad/sale/"

// SaleAccount derives the ledger account holding the tokens of saleID.
func SaleAccount(saleID string) common.Address {
	return common.BytesToAddress(crypto.Keccak256([]byte(accountPrefix + saleID))[12:])
}

// Processor owns the launchpad state. It is not safe for concurrent use.
type Processor struct {
	ledger *ledger.Memory
	sales  map[string]*sale.Sale
	tiered map[string]*tieredsale.TieredSale
	clock  uint64
}

func New() *Processor {
	return &Processor{
		ledger: ledger.NewMemory(),
		sales:  make(map[string]*sale.Sale),
		tiered: make(map[string]*tieredsale.TieredSale),
	}
}

// Apply runs cmd and returns the events it emitted. A rejected command leaves the state untouched.
func (p *Processor) Apply(cmd *entity.Command) ([]events.Event, error) {
	if cmd.Time < p.clock {
		return nil, errors.Wrapf(errs.InvalidInput, "command time %d is before %d", cmd.Time, p.clock)
	}

	var (
		emitted []events.Event
		err     error
	)
	switch {
	case cmd.Action == ActionLedgerMint || cmd.Action == ActionLedgerTransfer:
		emitted, err = p.applyLedger(cmd)
	case cmd.Action == ActionSaleDeploy:
		err = p.deploySale(cmd)
	case cmd.Action == ActionTieredDeploy:
		err = p.deployTieredSale(cmd)
	default:
		if s, ok := p.sales[cmd.SaleID]; ok {
			err = p.applySale(s, cmd)
			emitted = s.DrainEvents()
		} else if s, ok := p.tiered[cmd.SaleID]; ok {
			err = p.applyTiered(s, cmd)
			emitted = s.DrainEvents()
		} else {
			err = errors.Wrapf(errs.NotFound, "sale %q", cmd.SaleID)
		}
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	p.clock = cmd.Time
	return emitted, nil
}

func (p *Processor) Clock() uint64 {
	return p.clock
}

func (p *Processor) Ledger() ledger.Ledger {
	return p.ledger
}

func (p *Processor) Sale(saleID string) (*sale.Sale, error) {
	s, ok := p.sales[saleID]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "sale %q", saleID)
	}
	return s, nil
}

func (p *Processor) TieredSale(saleID string) (*tieredsale.TieredSale, error) {
	s, ok := p.tiered[saleID]
	if !ok {
		return nil, errors.Wrapf(errs.NotFound, "tiered sale %q", saleID)
	}
	return s, nil
}

// SaleIDs returns the IDs of fixed and tiered sales, sorted.
func (p *Processor) SaleIDs() []string {
	ids := make([]string, 0, len(p.sales)+len(p.tiered))
	for id := range p.sales {
		ids = append(ids, id)
	}
	for id := range p.tiered {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (p *Processor) saleExists(saleID string) bool {
	_, fixed := p.sales[saleID]
	_, tiered := p.tiered[saleID]
	return fixed || tiered
}

func decode[T any](cmd *entity.Command) (T, error) {
	var payload T
	if len(cmd.Payload) == 0 {
		return payload, nil
	}
	if err := json.Unmarshal(cmd.Payload, &payload); err != nil {
		return payload, errors.Wrapf(errs.InvalidInput, "invalid %s payload: %v", cmd.Action, err)
	}
	return payload, nil
}

func (p *Processor) applyLedger(cmd *entity.Command) ([]events.Event, error) {
	switch cmd.Action {
	case ActionLedgerMint:
		payload, err := decode[MintPayload](cmd)
		if err != nil {
			return nil, err
		}
		if err := p.ledger.Mint(payload.Token, payload.Account, payload.Amount); err != nil {
			return nil, errors.WithStack(err)
		}
		return []events.Event{events.Transfer{Token: payload.Token, To: payload.Account, Amount: payload.Amount.Clone()}}, nil
	default:
		payload, err := decode[TransferPayload](cmd)
		if err != nil {
			return nil, err
		}
		if err := p.ledger.Transfer(payload.Token, cmd.Caller, payload.To, payload.Amount); err != nil {
			return nil, errors.WithStack(err)
		}
		return []events.Event{events.Transfer{Token: payload.Token, From: cmd.Caller, To: payload.To, Amount: payload.Amount.Clone()}}, nil
	}
}

func (p *Processor) deploySale(cmd *entity.Command) error {
	if err := p.checkNewSaleID(cmd.SaleID); err != nil {
		return err
	}
	payload, err := decode[DeploySalePayload](cmd)
	if err != nil {
		return err
	}
	s, err := sale.New(p.ledger, cmd.Caller, sale.Config{
		SalePrice:       payload.SalePrice,
		Seller:          payload.Seller,
		PaymentToken:    payload.PaymentToken,
		SaleToken:       payload.SaleToken,
		StartTime:       payload.StartTime,
		EndTime:         payload.EndTime,
		MaxTotalPayment: payload.MaxTotalPayment,
		Account:         SaleAccount(cmd.SaleID),
	})
	if err != nil {
		return errors.WithStack(err)
	}
	p.sales[cmd.SaleID] = s
	return nil
}

func (p *Processor) deployTieredSale(cmd *entity.Command) error {
	if err := p.checkNewSaleID(cmd.SaleID); err != nil {
		return err
	}
	payload, err := decode[DeployTieredSalePayload](cmd)
	if err != nil {
		return err
	}
	s, err := tieredsale.New(p.ledger, cmd.Caller, payload.PaymentToken, payload.SaleToken, payload.StartTime, payload.EndTime, SaleAccount(cmd.SaleID))
	if err != nil {
		return errors.WithStack(err)
	}
	p.tiered[cmd.SaleID] = s
	return nil
}

func (p *Processor) checkNewSaleID(saleID string) error {
	if saleID == "" {
		return errors.Wrap(errs.InvalidInput, "empty sale id")
	}
	if p.saleExists(saleID) {
		return errors.Wrapf(errs.InvalidInput, "sale %q already exists", saleID)
	}
	return nil
}
