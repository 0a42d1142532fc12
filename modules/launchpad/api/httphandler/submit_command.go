package httphandler

import (
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/internal/entity"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
)

type submitCommandRequest struct {
	SaleID  string          `json:"saleId"`
	Action  string          `json:"action"`
	Caller  string          `json:"caller"`
	Time    uint64          `json:"time"`
	Payload json.RawMessage `json:"payload"`
}

func (r submitCommandRequest) Validate() error {
	var errList []error
	if strings.TrimSpace(r.Action) == "" {
		errList = append(errList, errors.New("'action' is required"))
	}
	errList = validateAddress(errList, "caller", r.Caller)
	if len(r.Payload) > 0 && !json.Valid(r.Payload) {
		errList = append(errList, errors.New("'payload' is not valid json"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type commandEvent struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

type submitCommandResult struct {
	CommandID int64          `json:"commandId"`
	Events    []commandEvent `json:"events"`
}

type submitCommandResponse = pkgcommon.HttpResponse[submitCommandResult]

func (h *HttpHandler) SubmitCommand(ctx *fiber.Ctx) (err error) {
	var req submitCommandRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	result, err := h.usecase.Execute(ctx.UserContext(), &entity.Command{
		SaleID:  req.SaleID,
		Action:  entity.Action(strings.TrimSpace(req.Action)),
		Caller:  common.HexToAddress(req.Caller),
		Time:    req.Time,
		Payload: req.Payload,
	})
	if err != nil {
		return errors.Wrap(err, "error during Execute")
	}

	resp := submitCommandResponse{
		Result: &submitCommandResult{
			CommandID: result.Command.ID,
			Events: lo.Map(result.Events, func(e *entity.Event, _ int) commandEvent {
				return commandEvent{Name: e.Name, Payload: e.Payload}
			}),
		},
	}
	return errors.WithStack(ctx.JSON(resp))
}
