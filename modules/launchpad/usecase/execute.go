package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/core/events"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
)

type ExecuteResult struct {
	Command *entity.Command
	Events  []*entity.Event
}

// Execute applies cmd and journals it with its events. A rejected command is
// not journaled and leaves every sale untouched.
func (u *Usecase) Execute(ctx context.Context, cmd *entity.Command) (*ExecuteResult, error) {
	if cmd == nil {
		return nil, errors.Wrap(errs.InvalidInput, "nil command")
	}
	cmd.SaleID = strings.TrimSpace(cmd.SaleID)
	if cmd.Action == "" {
		return nil, errors.Wrap(errs.InvalidInput, "empty action")
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	ctx = logger.WithContext(ctx,
		slogx.String("saleId", cmd.SaleID),
		slogx.String("action", string(cmd.Action)),
		slogx.Stringer("caller", cmd.Caller),
		slogx.Uint64("time", cmd.Time),
	)

	emitted, err := u.processor.Apply(cmd)
	if err != nil {
		logger.DebugContext(ctx, "Command rejected", slogx.Error(err))
		return nil, errors.Wrap(err, "command rejected")
	}

	if cmd.CreatedAt.IsZero() {
		cmd.CreatedAt = time.Now().UTC()
	}
	result, err := u.journal(ctx, cmd, emitted)
	if err != nil {
		// the processor already moved on, rebuild it from what was committed
		logger.ErrorContext(ctx, "Failed to journal command, reloading state", err)
		if restoreErr := u.restore(ctx); restoreErr != nil {
			logger.ErrorContext(ctx, "Failed to reload state from journal", restoreErr)
			return nil, errors.Wrap(errors.CombineErrors(err, restoreErr), "failed to journal command")
		}
		return nil, errors.Wrap(err, "failed to journal command")
	}

	logger.InfoContext(ctx, "Command executed", slogx.Int64("commandId", result.Command.ID), slogx.Int("events", len(result.Events)))
	return result, nil
}

func (u *Usecase) journal(ctx context.Context, cmd *entity.Command, emitted []events.Event) (result *ExecuteResult, err error) {
	records, err := toEventRecords(cmd, emitted)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	tx, err := u.launchpadDg.BeginLaunchpadTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin transaction")
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			logger.WarnContext(ctx, "Failed to rollback transaction", slogx.Error(rollbackErr))
		}
	}()

	id, err := tx.CreateCommand(ctx, cmd)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create command")
	}
	cmd.ID = id
	for _, record := range records {
		record.CommandID = id
	}
	if len(records) > 0 {
		if err := tx.CreateEvents(ctx, records); err != nil {
			return nil, errors.Wrap(err, "failed to create events")
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to commit transaction")
	}
	return &ExecuteResult{Command: cmd, Events: records}, nil
}

func toEventRecords(cmd *entity.Command, emitted []events.Event) ([]*entity.Event, error) {
	records := make([]*entity.Event, 0, len(emitted))
	for i, event := range emitted {
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal %s event", event.EventName())
		}
		records = append(records, &entity.Event{
			SaleID:  cmd.SaleID,
			Index:   int32(i),
			Name:    event.EventName(),
			Payload: payload,
			Time:    cmd.Time,
		})
	}
	return records, nil
}
