package usecase

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
)

func (u *Usecase) GetEvents(ctx context.Context, saleID string, limit, offset int32) ([]*entity.Event, error) {
	events, err := u.launchpadDg.GetEventsBySaleID(ctx, saleID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "error during GetEventsBySaleID")
	}
	return events, nil
}
