package handlers

import (
	"strconv"
	"strings"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// auctionRequest is the mutable auction payload. The rating pointer
// distinguishes "seed rating supplied" from "omitted".
type auctionRequest struct {
	Title       string          `json:"title" validate:"required,max=150"`
	Description string          `json:"description" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"required,gte=1"`
	Brand       string          `json:"brand" validate:"required,max=100"`
	Category    string          `json:"category" validate:"required"`
	Thumbnail   string          `json:"thumbnail" validate:"required,url"`
	ClosingDate time.Time       `json:"closing_date" validate:"required"`
	Rating      *int            `json:"rating" validate:"omitempty,gte=1,lte=5"`
}

// auctionResponse augments the stored auction with the derived open flag
// and the rating average. The list view reports the average unrounded; the
// detail view rounds it to 2 decimals.
type auctionResponse struct {
	models.Auction
	IsOpen    bool    `json:"is_open"`
	AvgRating float64 `json:"avg_rating"`
}

// AuctionHandler handles HTTP requests for auctions.
type AuctionHandler struct {
	service  *services.AuctionService
	ratings  *services.RatingService
	validate *validator.Validate
	now      func() time.Time
}

// NewAuctionHandler creates a new AuctionHandler.
func NewAuctionHandler(service *services.AuctionService, ratings *services.RatingService, now func() time.Time) *AuctionHandler {
	return &AuctionHandler{
		service:  service,
		ratings:  ratings,
		validate: validator.New(),
		now:      now,
	}
}

// RegisterRoutes registers the auction routes with the Fiber app.
func (h *AuctionHandler) RegisterRoutes(router fiber.Router, requireAuth fiber.Handler) {
	routes := router.Group("/auctions")
	routes.Get("/", h.HandleList)
	routes.Get("/:auctionID", h.HandleGet)
	routes.Post("/", requireAuth, h.HandleCreate)
	routes.Put("/:auctionID", requireAuth, h.HandleUpdate)
	routes.Delete("/:auctionID", requireAuth, h.HandleDelete)
}

// parseQuery converts the raw listing parameters; numeric parse failures
// surface as validation errors before the service sees them.
func parseQuery(c *fiber.Ctx) (services.AuctionQuery, error) {
	query := services.AuctionQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if raw := c.Query("priceMin"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return query, auctionerrors.ErrInvalidInput
		}
		query.PriceMin = &v
	}
	if raw := c.Query("priceMax"); raw != "" {
		v, err := decimal.NewFromString(raw)
		if err != nil {
			return query, auctionerrors.ErrInvalidInput
		}
		query.PriceMax = &v
	}
	if raw := c.Query("rating"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return query, auctionerrors.ErrInvalidInput
		}
		query.MinRating = &v
	}
	if raw := c.Query("is_open"); raw != "" {
		// Anything other than "true" counts as false, as the listing
		// endpoint has always behaved.
		v := strings.EqualFold(raw, "true")
		query.IsOpen = &v
	}
	return query, nil
}

// toResponse builds the response shape shared by list and detail views.
func (h *AuctionHandler) toResponse(auction models.Auction, avg float64) auctionResponse {
	return auctionResponse{
		Auction:   auction,
		IsOpen:    services.IsOpen(&auction, h.now()),
		AvgRating: avg,
	}
}

// HandleList retrieves auctions matching the query filters.
func (h *AuctionHandler) HandleList(c *fiber.Ctx) error {
	query, err := parseQuery(c)
	if err != nil {
		return respondError(c, err, "Invalid query parameters")
	}

	auctions, err := h.service.ListAuctions(query)
	if err != nil {
		return respondError(c, err, "Could not retrieve auctions")
	}

	resp := lo.Map(auctions, func(auction models.Auction, _ int) auctionResponse {
		avg, avgErr := h.ratings.AverageRating(auction.ID)
		if avgErr != nil {
			log.Warnf("failed to compute average rating for auction %s: %v", auction.ID, avgErr)
			avg = 1.0
		}
		return h.toResponse(auction, avg)
	})
	return c.JSON(resp)
}

// HandleGet retrieves a single auction with its rounded rating average.
func (h *AuctionHandler) HandleGet(c *fiber.Ctx) error {
	auction, err := h.service.GetAuction(c.Params("auctionID"))
	if err != nil {
		return respondError(c, err, "Could not retrieve auction")
	}

	avg, err := h.ratings.AverageRatingRounded(auction.ID)
	if err != nil {
		log.Warnf("failed to compute average rating for auction %s: %v", auction.ID, err)
		avg = 1.0
	}
	return c.JSON(h.toResponse(*auction, avg))
}

// HandleCreate creates a new auction owned by the authenticated user.
func (h *AuctionHandler) HandleCreate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req auctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	auction := &models.Auction{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Brand:       req.Brand,
		CategoryID:  req.Category,
		Thumbnail:   req.Thumbnail,
		ClosingDate: req.ClosingDate,
	}
	created, err := h.service.CreateAuction(principal, auction, req.Rating)
	if err != nil {
		log.Warnf("error creating auction: %v", err)
		return respondError(c, err, "Could not create auction")
	}

	avg, err := h.ratings.AverageRatingRounded(created.ID)
	if err != nil {
		avg = 1.0
	}
	return c.Status(fiber.StatusCreated).JSON(h.toResponse(*created, avg))
}

// HandleUpdate updates an auction (owner or admin only).
func (h *AuctionHandler) HandleUpdate(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	var req auctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidationErrors(c, err)
	}

	updated, err := h.service.UpdateAuction(principal, c.Params("auctionID"), &models.Auction{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Brand:       req.Brand,
		CategoryID:  req.Category,
		Thumbnail:   req.Thumbnail,
		ClosingDate: req.ClosingDate,
	})
	if err != nil {
		return respondError(c, err, "Could not update auction")
	}

	avg, err := h.ratings.AverageRatingRounded(updated.ID)
	if err != nil {
		avg = 1.0
	}
	return c.JSON(h.toResponse(*updated, avg))
}

// HandleDelete removes an auction (owner or admin only).
func (h *AuctionHandler) HandleDelete(c *fiber.Ctx) error {
	principal, ok := requirePrincipal(c)
	if !ok {
		return unauthenticated(c)
	}

	if err := h.service.DeleteAuction(principal, c.Params("auctionID")); err != nil {
		return respondError(c, err, "Could not delete auction")
	}
	return c.JSON(fiber.Map{
		"message": "Auction deleted successfully",
	})
}
