package usecase

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/processor"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
)

// Restore rebuilds every sale by replaying the journal.
func (u *Usecase) Restore(ctx context.Context) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.restore(ctx)
}

func (u *Usecase) restore(ctx context.Context) error {
	start := time.Now()
	p := processor.New()

	var (
		fromID   int64
		replayed int
	)
	for {
		commands, err := u.launchpadDg.GetCommands(ctx, fromID, u.replayPageSize)
		if err != nil {
			return errors.Wrapf(err, "failed to get commands after %d", fromID)
		}
		for _, cmd := range commands {
			if _, err := p.Apply(cmd); err != nil {
				return errors.Wrapf(err, "failed to replay command %d", cmd.ID)
			}
			fromID = cmd.ID
		}
		replayed += len(commands)
		if len(commands) < int(u.replayPageSize) {
			break
		}
	}

	u.processor = p
	logger.InfoContext(ctx, "Restored launchpad state from journal",
		slogx.Int("commands", replayed),
		slogx.Int64("lastCommandId", fromID),
		slogx.Duration("duration", time.Since(start)),
	)
	return nil
}
