package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
)

type getBalanceRequest struct {
	Token  string `params:"token"`
	Wallet string `params:"wallet"`
}

func (r getBalanceRequest) Validate() error {
	var errList []error
	errList = validateAddress(errList, "token", r.Token)
	errList = validateAddress(errList, "wallet", r.Wallet)
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getBalanceResult struct {
	Token  common.Address `json:"token"`
	Wallet common.Address `json:"wallet"`
	Amount *uint256.Int   `json:"amount"`
}

type getBalanceResponse = pkgcommon.HttpResponse[getBalanceResult]

func (h *HttpHandler) GetBalance(ctx *fiber.Ctx) (err error) {
	var req getBalanceRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	token, wallet := common.HexToAddress(req.Token), common.HexToAddress(req.Wallet)
	return errors.WithStack(ctx.JSON(getBalanceResponse{Result: &getBalanceResult{
		Token:  token,
		Wallet: wallet,
		Amount: h.usecase.GetBalance(ctx.UserContext(), token, wallet),
	}}))
}
