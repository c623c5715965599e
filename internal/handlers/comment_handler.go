package handlers

import (
	"subasta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// commentRequest carries the mutable comment fields.
type commentRequest struct {
	Title string `json:"title" validate:"required,max=50"`
	Body  string `json:"body" validate:"required"`
}

// CommentHandler handles HTTP requests for comments scoped to an auction.
type CommentHandler struct {
	service  *services.CommentService
	validate *validator.Validate
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the comment routes with the Fiber app.
func (h *CommentHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/auctions/:auctionID/comments")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", requireAuth, h.HandleCreate)
	routes.Put("/:id", requireAuth, h.HandleUpdate)
	routes.Delete("/:id", requireAuth, h.HandleDelete)
}

// HandleList retrieves all comments for an auction.
func (h *CommentHandler) HandleList(c *fiber.Ctx) error {
	comments, err := h.service.ListComments(c.Params("auctionID"))
	if err != nil {
		return respondError(c, err, "Could not retrieve comments")
	}
	return c.JSON(comments)
}

// HandleGet retrieves a single comment.
func (h *CommentHandler) HandleGet(c *fiber.Ctx) error {
	comment, err := h.service.GetComment(c.Params("auctionID"), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve comment")
	}
	return c.JSON(comment)
}

// HandleCreate records the authenticated user's comment on an auction.
func (h *CommentHandler) HandleCreate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	comment, err := h.service.CreateComment(principal, c.Params("auctionID"), req.Title, req.Body)
	if err != nil {
		return respondError(c, err, "Could not create comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleUpdate changes a comment (comment owner or admin only).
func (h *CommentHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	comment, err := h.service.UpdateComment(principal, c.Params("auctionID"), c.Params("id"), req.Title, req.Body)
	if err != nil {
		return respondError(c, err, "Could not update comment")
	}
	return c.JSON(comment)
}

// HandleDelete removes a comment (comment owner or admin only).
func (h *CommentHandler) HandleDelete(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.DeleteComment(principal, c.Params("auctionID"), c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete comment")
	}
	return c.JSON(fiber.Map{
		"message": "Comment deleted successfully",
	})
}
