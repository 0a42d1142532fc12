package httphandler

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type getEventsRequest struct {
	paginationRequest
	SaleID string `params:"saleId"`
}

func (r getEventsRequest) Validate() error {
	var errList []error
	if err := r.paginationRequest.Validate(); err != nil {
		errList = append(errList, err)
	}
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type event struct {
	CommandID int64           `json:"commandId"`
	Index     int32           `json:"index"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	Time      uint64          `json:"time"`
}

type getEventsResult struct {
	List []event `json:"list"`
}

type getEventsResponse = pkgcommon.HttpResponse[getEventsResult]

func (h *HttpHandler) GetEvents(ctx *fiber.Ctx) (err error) {
	var req getEventsRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}
	req.ParseDefault()

	events, err := h.usecase.GetEvents(ctx.UserContext(), req.SaleID, req.Limit, req.Offset)
	if err != nil {
		return errors.Wrap(err, "error during GetEvents")
	}

	resp := getEventsResponse{
		Result: &getEventsResult{
			List: lo.Map(events, func(e *entity.Event, _ int) event {
				return event{
					CommandID: e.CommandID,
					Index:     e.Index,
					Name:      e.Name,
					Payload:   e.Payload,
					Time:      e.Time,
				}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
