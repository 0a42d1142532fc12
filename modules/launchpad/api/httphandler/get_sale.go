package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/launchpad/usecase"
	"github.com/gaze-network/launchpad/modules/sale"
	"github.com/gofiber/fiber/v2"
)

type getSaleRequest struct {
	SaleID string `params:"saleId"`
}

func (r getSaleRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getSaleResponse = pkgcommon.HttpResponse[sale.Info]

func (h *HttpHandler) GetSale(ctx *fiber.Ctx) (err error) {
	var req getSaleRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	info, err := h.usecase.GetSale(ctx.UserContext(), req.SaleID)
	if err != nil {
		return errors.Wrap(err, "error during GetSale")
	}
	return errors.WithStack(ctx.JSON(getSaleResponse{Result: info}))
}

type getParticipantRequest struct {
	SaleID string `params:"saleId"`
	Wallet string `params:"wallet"`
}

func (r getParticipantRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	errList = validateAddress(errList, "wallet", r.Wallet)
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getParticipantResponse = pkgcommon.HttpResponse[usecase.Participant]

func (h *HttpHandler) GetParticipant(ctx *fiber.Ctx) (err error) {
	var req getParticipantRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	participant, err := h.usecase.GetParticipant(ctx.UserContext(), req.SaleID, common.HexToAddress(req.Wallet))
	if err != nil {
		return errors.Wrap(err, "error during GetParticipant")
	}
	return errors.WithStack(ctx.JSON(getParticipantResponse{Result: participant}))
}
