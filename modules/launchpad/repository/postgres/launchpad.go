package postgres

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/jackc/pgx/v5"
)

const createCommand = `INSERT INTO launchpad_commands (sale_id, action, caller, time, payload, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

func (r *Repository) CreateCommand(ctx context.Context, command *entity.Command) (int64, error) {
	params, err := mapCommandTypeToParams(command)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	var id int64
	err = r.queries().QueryRow(ctx, createCommand,
		params.SaleID,
		params.Action,
		params.Caller,
		params.Time,
		params.Payload,
		params.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, errors.Wrap(err, "error during exec")
	}
	return id, nil
}

const getCommands = `SELECT id, sale_id, action, caller, time, payload, created_at FROM launchpad_commands
WHERE id > $1
ORDER BY id
LIMIT $2`

func (r *Repository) GetCommands(ctx context.Context, fromID int64, limit int32) ([]*entity.Command, error) {
	rows, err := r.queries().Query(ctx, getCommands, fromID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[commandModel])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan commands")
	}
	commands := make([]*entity.Command, 0, len(models))
	for _, model := range models {
		command, err := mapCommandModelToType(model)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse command %d", model.ID)
		}
		commands = append(commands, command)
	}
	return commands, nil
}

const createEvent = `INSERT INTO launchpad_events (command_id, idx, sale_id, name, payload, time)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *Repository) CreateEvents(ctx context.Context, events []*entity.Event) error {
	batch := &pgx.Batch{}
	for _, event := range events {
		if event.Time > math.MaxInt64 {
			return errors.Wrapf(errs.OverflowUint64, "event time %d", event.Time)
		}
		batch.Queue(createEvent,
			event.CommandID,
			event.Index,
			event.SaleID,
			event.Name,
			[]byte(event.Payload),
			int64(event.Time),
		)
	}
	results := r.queries().SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			return errors.Wrap(err, "error during exec")
		}
	}
	return nil
}

const getEventsBySaleID = `SELECT command_id, idx, sale_id, name, payload, time FROM launchpad_events
WHERE sale_id = $1
ORDER BY command_id, idx
LIMIT $2 OFFSET $3`

func (r *Repository) GetEventsBySaleID(ctx context.Context, saleID string, limit int32, offset int32) ([]*entity.Event, error) {
	rows, err := r.queries().Query(ctx, getEventsBySaleID, saleID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	models, err := pgx.CollectRows(rows, pgx.RowToStructByPos[eventModel])
	if err != nil {
		return nil, errors.Wrap(err, "failed to scan events")
	}
	events := make([]*entity.Event, 0, len(models))
	for _, model := range models {
		events = append(events, mapEventModelToType(model))
	}
	return events, nil
}
