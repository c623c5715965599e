package handlers

import (
	"subasta/internal/models"
	"subasta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes. Reads are public; mutation
// requires authentication and, in the service, the admin role.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/categories")
	routes.Get("/", h.HandleList)
	routes.Get("/:id", h.HandleGet)
	routes.Post("/", requireAuth, h.HandleCreate)
	routes.Put("/:id", requireAuth, h.HandleUpdate)
	routes.Delete("/:id", requireAuth, h.HandleDelete)
}

// HandleList retrieves all categories.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Errorf("error getting all categories: %v", err)
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

// HandleGet retrieves a single category by its ID.
func (h *CategoryHandler) HandleGet(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return respondError(c, err, "Could not retrieve category")
	}
	return c.JSON(category)
}

// HandleCreate creates a new category (admin only).
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(category); err != nil {
		return respondValidationErrors(c, err)
	}

	if err := h.service.CreateCategory(principal, &category); err != nil {
		return respondError(c, err, "Could not create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate updates a category's name (admin only).
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var body struct {
		Name string `json:"name" validate:"required,min=1,max=50"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(body); err != nil {
		return respondValidationErrors(c, err)
	}

	category, err := h.service.UpdateCategory(principal, c.Params("id"), body.Name)
	if err != nil {
		return respondError(c, err, "Could not update category")
	}
	return c.JSON(category)
}

// HandleDelete removes a category and everything under it (admin only).
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.DeleteCategory(principal, c.Params("id")); err != nil {
		return respondError(c, err, "Could not delete category")
	}
	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
