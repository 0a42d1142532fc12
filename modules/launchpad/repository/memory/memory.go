// Package memory is a volatile LaunchpadDataGateway. State is lost on restart.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/datagateway"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
)

var _ datagateway.LaunchpadDataGateway = (*Repository)(nil)

var ErrTxInProgress = errors.New("launchpad transaction in progress, commit or roll it back first")

type store struct {
	mu       sync.RWMutex
	commands []*entity.Command
	events   []*entity.Event
}

// Repository writes straight to the store outside a transaction. Inside one,
// writes are staged and applied by Commit.
type Repository struct {
	store *store

	inTx     bool
	commands []*entity.Command
	events   []*entity.Event
}

func NewRepository() *Repository {
	return &Repository{
		store: &store{},
	}
}

func (r *Repository) BeginLaunchpadTx(ctx context.Context) (datagateway.LaunchpadDataGatewayWithTx, error) {
	if r.inTx {
		return nil, errors.WithStack(ErrTxInProgress)
	}
	return &Repository{
		store: r.store,
		inTx:  true,
	}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if !r.inTx {
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.commands = append(r.store.commands, r.commands...)
	r.store.events = append(r.store.events, r.events...)
	r.reset()
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if !r.inTx {
		return nil
	}
	r.reset()
	return nil
}

func (r *Repository) reset() {
	r.inTx = false
	r.commands = nil
	r.events = nil
}

func (r *Repository) CreateCommand(ctx context.Context, command *entity.Command) (int64, error) {
	if command == nil {
		return 0, errors.Wrap(errs.InvalidInput, "nil command")
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// IDs are assigned at staging time so events can reference them before Commit.
	id := int64(len(r.store.commands)+len(r.commands)) + 1
	c := *command
	c.ID = id
	c.Payload = append([]byte(nil), command.Payload...)
	if r.inTx {
		r.commands = append(r.commands, &c)
	} else {
		r.store.commands = append(r.store.commands, &c)
	}
	return id, nil
}

func (r *Repository) CreateEvents(ctx context.Context, events []*entity.Event) error {
	copied := make([]*entity.Event, 0, len(events))
	for _, event := range events {
		e := *event
		e.Payload = append([]byte(nil), event.Payload...)
		copied = append(copied, &e)
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.inTx {
		r.events = append(r.events, copied...)
	} else {
		r.store.events = append(r.store.events, copied...)
	}
	return nil
}

func (r *Repository) GetCommands(ctx context.Context, fromID int64, limit int32) ([]*entity.Command, error) {
	if limit < 0 {
		return nil, errors.Wrapf(errs.InvalidInput, "negative limit %d", limit)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	start := sort.Search(len(r.store.commands), func(i int) bool {
		return r.store.commands[i].ID > fromID
	})
	end := min(start+int(limit), len(r.store.commands))
	result := make([]*entity.Command, 0, end-start)
	for _, command := range r.store.commands[start:end] {
		c := *command
		result = append(result, &c)
	}
	return result, nil
}

func (r *Repository) GetEventsBySaleID(ctx context.Context, saleID string, limit int32, offset int32) ([]*entity.Event, error) {
	if limit < 0 || offset < 0 {
		return nil, errors.Wrapf(errs.InvalidInput, "negative limit %d or offset %d", limit, offset)
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	result := make([]*entity.Event, 0)
	skipped := int32(0)
	for _, event := range r.store.events {
		if event.SaleID != saleID {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if int32(len(result)) >= limit {
			break
		}
		e := *event
		result = append(result, &e)
	}
	return result, nil
}
