package handlers

import (
	"subasta/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ratingRequest carries the only mutable rating field.
type ratingRequest struct {
	Value int `json:"value"`
}

// RatingHandler handles HTTP requests for ratings scoped to an auction.
type RatingHandler struct {
	service *services.RatingService
}

// NewRatingHandler creates a new RatingHandler.
func NewRatingHandler(service *services.RatingService) *RatingHandler {
	return &RatingHandler{
		service: service,
	}
}

// RegisterRoutes registers the rating routes with the Fiber app.
func (h *RatingHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/auctions/:auctionID/ratings")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", requireAuth, h.HandleCreate)
	routes.Put("/:id", requireAuth, h.HandleUpdate)
	routes.Delete("/:id", requireAuth, h.HandleDelete)
}

// HandleList retrieves all ratings for an auction.
func (h *RatingHandler) HandleList(c *fiber.Ctx) error {
	ratings, err := h.service.ListRatings(c.Params("auctionID"))
	if err != nil {
		return respondError(c, err, "Could not retrieve ratings")
	}
	return c.JSON(ratings)
}

// HandleGet retrieves a single rating.
func (h *RatingHandler) HandleGet(c *fiber.Ctx) error {
	rating, err := h.service.GetRating(c.Params("auctionID"), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve rating")
	}
	return c.JSON(rating)
}

// HandleCreate submits the authenticated user's rating of an auction.
func (h *RatingHandler) HandleCreate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ratingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	rating, err := h.service.SubmitRating(principal, c.Params("auctionID"), req.Value)
	if err != nil {
		return respondError(c, err, "Could not submit rating")
	}
	return c.Status(fiber.StatusCreated).JSON(rating)
}

// HandleUpdate changes a rating's value (rating owner or admin only).
func (h *RatingHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req ratingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	rating, err := h.service.UpdateRating(principal, c.Params("auctionID"), c.Params("id"), req.Value)
	if err != nil {
		return respondError(c, err, "Could not update rating")
	}
	return c.JSON(rating)
}

// HandleDelete removes a rating (rating owner or admin only).
func (h *RatingHandler) HandleDelete(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.DeleteRating(principal, c.Params("auctionID"), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete rating")
	}
	return c.JSON(fiber.Map{
		"message": "Rating deleted successfully",
	})
}
