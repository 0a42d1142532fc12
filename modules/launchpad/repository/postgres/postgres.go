package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/internal/postgres"
	"github.com/gaze-network/launchpad/modules/launchpad/datagateway"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/jackc/pgx/v5"
)

var _ datagateway.LaunchpadDataGateway = (*Repository)(nil)

// Repository journals launchpad commands and events in Postgres.
type Repository struct {
	db postgres.DB
	tx pgx.Tx
}

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

var ErrTxInProgress = errors.New("launchpad transaction in progress, commit or roll it back first")

func (r *Repository) BeginLaunchpadTx(ctx context.Context) (datagateway.LaunchpadDataGatewayWithTx, error) {
	if r.tx != nil {
		return nil, errors.WithStack(ErrTxInProgress)
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to begin launchpad transaction")
	}
	return &Repository{db: r.db, tx: tx}, nil
}

func (r *Repository) Commit(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	if err := r.tx.Commit(ctx); err != nil {
		return errors.Wrap(err, "failed to commit launchpad transaction")
	}
	r.tx = nil
	return nil
}

func (r *Repository) Rollback(ctx context.Context) error {
	if r.tx == nil {
		return nil
	}
	switch err := r.tx.Rollback(ctx); {
	case err == nil:
		logger.DebugContext(ctx, "Rolled back launchpad transaction")
	case !errors.Is(err, pgx.ErrTxClosed):
		return errors.Wrap(err, "failed to rollback launchpad transaction")
	}
	r.tx = nil
	return nil
}

// queries runs on the open transaction, if any.
func (r *Repository) queries() postgres.Queryable {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}
