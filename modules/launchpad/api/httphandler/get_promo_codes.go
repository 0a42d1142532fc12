package httphandler

import (
	"github.com/cockroachdb/errors"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/tieredsale"
	"github.com/gofiber/fiber/v2"
)

type getPromoCodesRequest struct {
	SaleID string  `params:"saleId"`
	Start  uint64  `query:"start"`
	End    *uint64 `query:"end"`
}

func (r getPromoCodesRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	if r.End != nil && *r.End < r.Start {
		errList = append(errList, errors.New("'end' must not be less than 'start'"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getPromoCodesResult struct {
	List []*tieredsale.PromoCode `json:"list"`
}

type getPromoCodesResponse = pkgcommon.HttpResponse[getPromoCodesResult]

func (h *HttpHandler) GetPromoCodes(ctx *fiber.Ctx) (err error) {
	var req getPromoCodesRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := ctx.QueryParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	codes, err := h.usecase.GetPromoCodes(ctx.UserContext(), req.SaleID, req.Start, req.End)
	if err != nil {
		return errors.Wrap(err, "error during GetPromoCodes")
	}
	return errors.WithStack(ctx.JSON(getPromoCodesResponse{Result: &getPromoCodesResult{List: codes}}))
}

type getPromoCodeRequest struct {
	SaleID string `params:"saleId"`
	Code   string `params:"code"`
}

func (r getPromoCodeRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	if r.Code == "" {
		errList = append(errList, errors.New("'code' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getPromoCodeResponse = pkgcommon.HttpResponse[tieredsale.PromoCode]

func (h *HttpHandler) GetPromoCode(ctx *fiber.Ctx) (err error) {
	var req getPromoCodeRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	code, err := h.usecase.GetPromoCode(ctx.UserContext(), req.SaleID, req.Code)
	if err != nil {
		return errors.Wrap(err, "error during GetPromoCode")
	}
	return errors.WithStack(ctx.JSON(getPromoCodeResponse{Result: code}))
}
