package datagateway

import (
	"context"

	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
)

type LaunchpadDataGateway interface {
	LaunchpadReaderDataGateway
	LaunchpadWriterDataGateway

	// BeginLaunchpadTx returns a new LaunchpadDataGateway with transaction enabled. All write operations performed in this datagateway must be committed to persist changes.
	BeginLaunchpadTx(ctx context.Context) (LaunchpadDataGatewayWithTx, error)
}

type LaunchpadDataGatewayWithTx interface {
	LaunchpadDataGateway
	Tx
}

type LaunchpadReaderDataGateway interface {
	// GetCommands returns up to limit journaled commands with ID greater than fromID, in ID order.
	GetCommands(ctx context.Context, fromID int64, limit int32) ([]*entity.Command, error)
	GetEventsBySaleID(ctx context.Context, saleID string, limit int32, offset int32) ([]*entity.Event, error)
}

type LaunchpadWriterDataGateway interface {
	// CreateCommand journals the command and returns its assigned ID.
	CreateCommand(ctx context.Context, command *entity.Command) (int64, error)
	CreateEvents(ctx context.Context, events []*entity.Event) error
}
