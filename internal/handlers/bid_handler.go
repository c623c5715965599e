package handlers

import (
	"subasta/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// bidRequest carries the only mutable bid field.
type bidRequest struct {
	Price decimal.Decimal `json:"price"`
}

// BidHandler handles HTTP requests for bids scoped to an auction.
type BidHandler struct {
	service *services.BidService
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(service *services.BidService) *BidHandler {
	return &BidHandler{
		service: service,
	}
}

// RegisterRoutes registers the bid routes with the Fiber app. The winning
// route is registered before the parameterized one so it matches first.
func (h *BidHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/auctions/:auctionID/bids")
	routes.Get("/", h.HandleList)
	routes.Get("/winning", h.HandleWinning)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", requireAuth, h.HandleCreate)
	routes.Put("/:id", requireAuth, h.HandleUpdate)
	routes.Delete("/:id", requireAuth, h.HandleDelete)
}

// HandleList retrieves all bids for an auction, highest price first.
func (h *BidHandler) HandleList(c *fiber.Ctx) error {
	bids, err := h.service.ListBids(c.Params("auctionID"))
	if err != nil {
		return respondError(c, err, "Could not retrieve bids")
	}
	return c.JSON(bids)
}

// HandleWinning retrieves the current highest bid for an auction.
func (h *BidHandler) HandleWinning(c *fiber.Ctx) error {
	bid, err := h.service.HighestBid(c.Params("auctionID"))
	if err != nil {
		return respondError(c, err, "No winning bid found")
	}
	return c.JSON(bid)
}

// HandleGet retrieves a single bid.
func (h *BidHandler) HandleGet(c *fiber.Ctx) error {
	bid, err := h.service.GetBid(c.Params("auctionID"), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve bid")
	}
	return c.JSON(bid)
}

// HandleCreate places a bid by the authenticated user.
func (h *BidHandler) HandleCreate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req bidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	bid, err := h.service.PlaceBid(principal, c.Params("auctionID"), req.Price)
	if err != nil {
		log.Warnf("error placing bid on auction %s by user %s: %v", c.Params("auctionID"), principal.ID, err)
		return respondError(c, err, "Could not place bid")
	}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

// HandleUpdate changes a bid's price (bid owner or admin only).
func (h *BidHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req bidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	bid, err := h.service.UpdateBid(principal, c.Params("auctionID"), c.Params("id"), req.Price)
	if err != nil {
		return respondError(c, err, "Could not update bid")
	}
	return c.JSON(bid)
}

// HandleDelete removes a bid (bid owner or admin only).
func (h *BidHandler) HandleDelete(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.DeleteBid(principal, c.Params("auctionID"), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete bid")
	}
	return c.JSON(fiber.Map{
		"message": "Bid deleted successfully",
	})
}
