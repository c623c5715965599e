package handlers

import (
	"subasta/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the authenticated user's own auctions, ratings and
// comments.
type UserHandler struct {
	auctions *services.AuctionService
	ratings  *services.RatingService
	comments *services.CommentService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(auctions *services.AuctionService, ratings *services.RatingService, comments *services.CommentService) *UserHandler {
	return &UserHandler{
		auctions: auctions,
		ratings:  ratings,
		comments: comments,
	}
}

// RegisterRoutes registers the current-user routes; all require auth.
func (h *UserHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/users/me", requireAuth)
	routes.Get("/auctions", h.HandleMyAuctions)
	routes.Get("/ratings", h.HandleMyRatings)
	routes.Get("/comments", h.HandleMyComments)
}

// HandleMyAuctions lists the auctions owned by the authenticated user.
func (h *UserHandler) HandleMyAuctions(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}
	auctions, err := h.auctions.ListByOwner(principal)
	if err != nil {
		return respondError(c, err, "Could not retrieve auctions")
	}
	return c.JSON(auctions)
}

// HandleMyRatings lists the ratings submitted by the authenticated user.
func (h *UserHandler) HandleMyRatings(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}
	ratings, err := h.ratings.ListByUser(principal)
	if err != nil {
		return respondError(c, err, "Could not retrieve ratings")
	}
	return c.JSON(ratings)
}

// HandleMyComments lists the comments written by the authenticated user.
func (h *UserHandler) HandleMyComments(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}
	comments, err := h.comments.ListByUser(principal)
	if err != nil {
		return respondError(c, err, "Could not retrieve comments")
	}
	return c.JSON(comments)
}
