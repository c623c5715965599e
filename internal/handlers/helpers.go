package handlers

import (
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/middleware"
	"subasta/internal/permissions"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// respondError maps the error taxonomy to HTTP statuses: validation 400,
// permission 403, not-found 404, conflict 409, anything else 500.
func respondError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	switch auctionerrors.KindOf(err) {
	case auctionerrors.KindValidation:
		status = fiber.StatusBadRequest
	case auctionerrors.KindPermission:
		status = fiber.StatusForbidden
	case auctionerrors.KindNotFound:
		status = fiber.StatusNotFound
	case auctionerrors.KindConflict:
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}

// respondValidationErrors renders field-level validator failures.
func respondValidationErrors(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}

// requirePrincipal fetches the principal stored by the auth middleware.
// Routes registered behind AuthRequired always have one; the ok result
// guards against misconfigured route wiring.
func requirePrincipal(c *fiber.Ctx) (permissions.Principal, bool) {
	return middleware.PrincipalFromCtx(c)
}

// unauthenticated is the fallback response when no principal is present.
func unauthenticated(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Authentication required",
	})
}
