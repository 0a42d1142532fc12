package httphandler

import (
	"github.com/cockroachdb/errors"
	"github.com/ethereum/go-ethereum/common"
	pkgcommon "github.com/gaze-network/launchpad/common"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/modules/tieredsale"
	"github.com/gaze-network/uint128"
	"github.com/gofiber/fiber/v2"
)

type getTieredSaleRequest struct {
	SaleID string `params:"saleId"`
}

func (r getTieredSaleRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTieredSaleResult struct {
	tieredsale.Info
	Tiers []*tieredsale.Tier `json:"tiers"`
}

type getTieredSaleResponse = pkgcommon.HttpResponse[getTieredSaleResult]

func (h *HttpHandler) GetTieredSale(ctx *fiber.Ctx) (err error) {
	var req getTieredSaleRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	info, err := h.usecase.GetTieredSale(ctx.UserContext(), req.SaleID)
	if err != nil {
		return errors.Wrap(err, "error during GetTieredSale")
	}
	tiers := make([]*tieredsale.Tier, 0, len(info.TierIDs))
	for _, id := range info.TierIDs {
		tier, err := h.usecase.GetTier(ctx.UserContext(), req.SaleID, id)
		if err != nil {
			return errors.Wrapf(err, "error during GetTier %q", id)
		}
		tiers = append(tiers, tier)
	}
	return errors.WithStack(ctx.JSON(getTieredSaleResponse{Result: &getTieredSaleResult{Info: *info, Tiers: tiers}}))
}

type getTierRequest struct {
	SaleID string `params:"saleId"`
	TierID string `params:"tierId"`
}

func (r getTierRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	if r.TierID == "" {
		errList = append(errList, errors.New("'tierId' is required"))
	}
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTierResponse = pkgcommon.HttpResponse[tieredsale.Tier]

func (h *HttpHandler) GetTier(ctx *fiber.Ctx) (err error) {
	var req getTierRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	tier, err := h.usecase.GetTier(ctx.UserContext(), req.SaleID, req.TierID)
	if err != nil {
		return errors.Wrap(err, "error during GetTier")
	}
	return errors.WithStack(ctx.JSON(getTierResponse{Result: tier}))
}

type getTierPurchaseRequest struct {
	SaleID string `params:"saleId"`
	TierID string `params:"tierId"`
	Wallet string `params:"wallet"`
}

func (r getTierPurchaseRequest) Validate() error {
	var errList []error
	if r.SaleID == "" {
		errList = append(errList, errors.New("'saleId' is required"))
	}
	if r.TierID == "" {
		errList = append(errList, errors.New("'tierId' is required"))
	}
	errList = validateAddress(errList, "wallet", r.Wallet)
	return errs.WithPublicMessage(errors.Join(errList...), "validation error")
}

type getTierPurchaseResult struct {
	TierID    string          `json:"tierId"`
	Wallet    common.Address  `json:"wallet"`
	Purchased uint128.Uint128 `json:"purchased"`
}

type getTierPurchaseResponse = pkgcommon.HttpResponse[getTierPurchaseResult]

func (h *HttpHandler) GetTierPurchase(ctx *fiber.Ctx) (err error) {
	var req getTierPurchaseRequest
	if err := ctx.ParamsParser(&req); err != nil {
		return errors.WithStack(err)
	}
	if err := req.Validate(); err != nil {
		return errors.WithStack(err)
	}

	wallet := common.HexToAddress(req.Wallet)
	purchased, err := h.usecase.GetTierPurchase(ctx.UserContext(), req.SaleID, req.TierID, wallet)
	if err != nil {
		return errors.Wrap(err, "error during GetTierPurchase")
	}
	return errors.WithStack(ctx.JSON(getTierPurchaseResponse{Result: &getTierPurchaseResult{
		TierID:    req.TierID,
		Wallet:    wallet,
		Purchased: purchased,
	}}))
}
