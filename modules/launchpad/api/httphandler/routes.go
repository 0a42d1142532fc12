package httphandler

import (
	"github.com/gofiber/fiber/v2"
)

func (h *HttpHandler) Mount(router fiber.Router) error {
	r := router.Group("/v1/launchpad")

	r.Post("/commands", h.SubmitCommand)
	r.Get("/sales/:saleId", h.GetSale)
	r.Get("/sales/:saleId/participants/:wallet", h.GetParticipant)
	r.Post("/sales/:saleId/whitelist/verify", h.VerifyWhitelist)
	r.Get("/sales/:saleId/events", h.GetEvents)
	r.Get("/tiered/:saleId", h.GetTieredSale)
	r.Get("/tiered/:saleId/tiers/:tierId", h.GetTier)
	r.Get("/tiered/:saleId/tiers/:tierId/purchases/:wallet", h.GetTierPurchase)
	r.Get("/tiered/:saleId/promocodes", h.GetPromoCodes)
	r.Get("/tiered/:saleId/promocodes/:code", h.GetPromoCode)
	r.Get("/balances/:token/:wallet", h.GetBalance)
	return nil
}
