package postgres

import (
	"encoding/json"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
)

type commandModel struct {
	ID        int64
	SaleID    string
	Action    string
	Caller    string
	Time      int64
	Payload   []byte
	CreatedAt time.Time
}

type eventModel struct {
	CommandID int64
	Idx       int32
	SaleID    string
	Name      string
	Payload   []byte
	Time      int64
}

func mapCommandTypeToParams(src *entity.Command) (commandModel, error) {
	if src.Time > math.MaxInt64 {
		return commandModel{}, errors.Wrapf(errs.OverflowUint64, "command time %d", src.Time)
	}
	var payload []byte
	if len(src.Payload) > 0 {
		payload = []byte(src.Payload)
	}
	return commandModel{
		SaleID:    src.SaleID,
		Action:    string(src.Action),
		Caller:    src.Caller.Hex(),
		Time:      int64(src.Time),
		Payload:   payload,
		CreatedAt: src.CreatedAt,
	}, nil
}

func mapCommandModelToType(src commandModel) (*entity.Command, error) {
	if !common.IsHexAddress(src.Caller) {
		return nil, errors.Wrapf(errs.InternalError, "invalid caller address %q", src.Caller)
	}
	if src.Time < 0 {
		return nil, errors.Wrapf(errs.InternalError, "negative command time %d", src.Time)
	}
	return &entity.Command{
		ID:        src.ID,
		SaleID:    src.SaleID,
		Action:    entity.Action(src.Action),
		Caller:    common.HexToAddress(src.Caller),
		Time:      uint64(src.Time),
		Payload:   json.RawMessage(src.Payload),
		CreatedAt: src.CreatedAt,
	}, nil
}

func mapEventModelToType(src eventModel) *entity.Event {
	return &entity.Event{
		CommandID: src.CommandID,
		SaleID:    src.SaleID,
		Index:     src.Idx,
		Name:      src.Name,
		Payload:   json.RawMessage(src.Payload),
		Time:      uint64(src.Time),
	}
}
