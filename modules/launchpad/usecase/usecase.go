package usecase

import (
	"sync"

	"github.com/gaze-network/launchpad/modules/launchpad/datagateway"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/processor"
)

const DefaultReplayPageSize = 1000

type Usecase struct {
	// mu serialises commands. Reads share it with each other.
	mu             sync.RWMutex
	launchpadDg    datagateway.LaunchpadDataGateway
	processor      *processor.Processor
	replayPageSize int32
}

func New(launchpadDg datagateway.LaunchpadDataGateway, replayPageSize int32) *Usecase {
	if replayPageSize <= 0 {
		replayPageSize = DefaultReplayPageSize
	}
	return &Usecase{
		launchpadDg:    launchpadDg,
		processor:      processor.New(),
		replayPageSize: replayPageSize,
	}
}
