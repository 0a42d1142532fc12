package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
)

type verifyWhitelistRequest struct {
	SaleID     string        `json:"-"`
	Wallet     string        `json:"wallet"`
	Allocation *uint256.Int  `json:"allocation"`
	Proof      []common.Hash `json:"proof"`
}

func (r verifyWhitelistRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	errList = validateAddress(errList, "wallet", r.Wallet)
	if r.Allocation == nil {
		errList = append(errList, errors.New("'allocation' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type verifyWhitelistResult struct {
	Valid bool `json:"valid"`
}

type verifyWhitelistResponse = pkgcommon.HttpResponse[verifyWhitelistResult]

func (h *HttpHandler) VerifyWhitelist(ctx *fiber.Ctx) (err error) {
	var req verifyWhitelistRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errs.WithPublicMessage(err, "invalid request body")
	}
	req.SaleID = ctx.Params("saleId")
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	valid, err := h.usecase.CheckWhitelist(ctx.UserContext(), req.SaleID, common.HexToAddress(req.Wallet), req.Proof, req.Allocation)
	if err != nil {
		return errors.Wrap(err, "error during CheckWhitelist")
	}
	return errors.WithStack(ctx.JSON(verifyWhitelistResponse{Result: &verifyWhitelistResult{Valid: valid}}))
}
