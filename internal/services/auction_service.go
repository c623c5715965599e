package services

import (
	"encoding/json"
	"fmt"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/repositories"
	"subasta/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// minAuctionDuration is the minimum allowed gap between an auction's
// creation time and its closing date.
const minAuctionDuration = 15 * 24 * time.Hour

// AuctionQuery holds the raw listing parameters before validation.
type AuctionQuery struct {
	Search    string
	Category  string
	PriceMin  *decimal.Decimal
	PriceMax  *decimal.Decimal
	MinRating *float64
	IsOpen    *bool
}

// AuctionService handles auction lifecycle rules and listing queries.
type AuctionService struct {
	auctionRepo  repositories.AuctionRepository
	categoryRepo repositories.CategoryRepository
	ratingRepo   repositories.RatingRepository
	mqClient     *rabbitmq.Client
	now          func() time.Time
}

// NewAuctionService creates a new AuctionService. The clock is injected so
// lifecycle rules can be tested against a fixed instant; mqClient may be
// nil, in which case event publication is skipped.
func NewAuctionService(
	auctionRepo repositories.AuctionRepository,
	categoryRepo repositories.CategoryRepository,
	ratingRepo repositories.RatingRepository,
	mqClient *rabbitmq.Client,
	now func() time.Time,
) *AuctionService {
	return &AuctionService{
		auctionRepo:  auctionRepo,
		categoryRepo: categoryRepo,
		ratingRepo:   ratingRepo,
		mqClient:     mqClient,
		now:          now,
	}
}

// IsOpen reports whether the auction still accepts the open flag at the
// given instant. Derived on every read, never persisted.
func IsOpen(auction *models.Auction, now time.Time) bool {
	return auction.ClosingDate.After(now)
}

// ValidateClosingDate checks that candidate lies in the future and at least
// 15 days after creation. On creation the caller passes creation == now; on
// update, creation is the auction's original immutable creation time.
func (s *AuctionService) ValidateClosingDate(candidate, creation, now time.Time) error {
	if candidate.Before(now) {
		return fmt.Errorf("closing date %s: %w", candidate.Format(time.RFC3339), auctionerrors.ErrClosingDateNotFuture)
	}
	if candidate.Sub(creation) < minAuctionDuration {
		return fmt.Errorf("closing date %s: %w", candidate.Format(time.RFC3339), auctionerrors.ErrClosingDateTooSoon)
	}
	return nil
}

// CreateAuction validates and stores a new auction owned by the principal.
// A seed rating, when provided, creates the owner's initial Rating record.
func (s *AuctionService) CreateAuction(principal permissions.Principal, auction *models.Auction, seedRating *int) (*models.Auction, error) {
	now := s.now()
	if err := s.ValidateClosingDate(auction.ClosingDate, now, now); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByID(auction.CategoryID); err != nil {
		return nil, err
	}
	if seedRating != nil {
		if *seedRating < 1 || *seedRating > 5 {
			return nil, fmt.Errorf("seed rating %d: %w", *seedRating, auctionerrors.ErrRatingOutOfRange)
		}
		auction.Rating = *seedRating
	} else {
		auction.Rating = 1
	}

	auction.AuctioneerID = principal.ID
	auction.CreatedAt = now

	if err := s.auctionRepo.Create(auction); err != nil {
		return nil, fmt.Errorf("service: failed to create auction: %w", err)
	}

	if seedRating != nil {
		rating := &models.Rating{
			Value:     *seedRating,
			UserID:    principal.ID,
			AuctionID: auction.ID,
		}
		if err := s.ratingRepo.CreateIfAbsent(rating); err != nil {
			log.Warnf("failed to create seed rating for auction %s: %v", auction.ID, err)
		}
	}

	s.publish("auction.created", map[string]interface{}{
		"auctionID":  auction.ID,
		"auctioneer": auction.AuctioneerID,
		"title":      auction.Title,
		"closing":    auction.ClosingDate,
	})

	return auction, nil
}

// GetAuction retrieves a single auction by its ID.
func (s *AuctionService) GetAuction(id string) (*models.Auction, error) {
	return s.auctionRepo.GetByID(id)
}

// ListAuctions validates the query parameters and returns the matching
// auctions. All clauses combine conjunctively; search matches title or
// description case-insensitively.
func (s *AuctionService) ListAuctions(query AuctionQuery) ([]models.Auction, error) {
	if query.Search != "" && len(query.Search) < 3 {
		return nil, fmt.Errorf("search %q: %w", query.Search, auctionerrors.ErrSearchTermTooShort)
	}
	if query.MinRating != nil && *query.MinRating < 0 {
		return nil, fmt.Errorf("rating %v: %w", *query.MinRating, auctionerrors.ErrNegativeRating)
	}
	if query.PriceMin != nil && query.PriceMin.IsNegative() {
		return nil, fmt.Errorf("priceMin %s: %w", query.PriceMin, auctionerrors.ErrNegativePrice)
	}
	if query.PriceMax != nil && query.PriceMax.IsNegative() {
		return nil, fmt.Errorf("priceMax %s: %w", query.PriceMax, auctionerrors.ErrNegativePrice)
	}
	if query.PriceMin != nil && query.PriceMax != nil && query.PriceMax.Cmp(*query.PriceMin) < 0 {
		return nil, fmt.Errorf("priceMin %s, priceMax %s: %w", query.PriceMin, query.PriceMax, auctionerrors.ErrInvalidPriceRange)
	}
	if query.Category != "" {
		if _, err := s.categoryRepo.GetByID(query.Category); err != nil {
			return nil, err
		}
	}

	filter := repositories.AuctionFilter{
		Search:     query.Search,
		CategoryID: query.Category,
		PriceMin:   query.PriceMin,
		PriceMax:   query.PriceMax,
		MinRating:  query.MinRating,
		IsOpen:     query.IsOpen,
		Now:        s.now(),
	}
	return s.auctionRepo.List(filter)
}

// ListByOwner returns the auctions owned by the principal.
func (s *AuctionService) ListByOwner(principal permissions.Principal) ([]models.Auction, error) {
	return s.auctionRepo.GetByAuctioneer(principal.ID)
}

// UpdateAuction applies mutable fields to an existing auction after
// checking ownership and re-validating the closing date against the
// original creation time.
func (s *AuctionService) UpdateAuction(principal permissions.Principal, id string, updated *models.Auction) (*models.Auction, error) {
	existing, err := s.auctionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !permissions.Allowed(principal, permissions.ActionUpdate, permissions.Resource{OwnerID: existing.AuctioneerID}) {
		return nil, fmt.Errorf("user %s updating auction %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	if err := s.ValidateClosingDate(updated.ClosingDate, existing.CreatedAt, s.now()); err != nil {
		return nil, err
	}
	if updated.CategoryID != existing.CategoryID {
		if _, err := s.categoryRepo.GetByID(updated.CategoryID); err != nil {
			return nil, err
		}
	}

	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.Price = updated.Price
	existing.Stock = updated.Stock
	existing.Brand = updated.Brand
	existing.CategoryID = updated.CategoryID
	existing.Thumbnail = updated.Thumbnail
	existing.ClosingDate = updated.ClosingDate

	if err := s.auctionRepo.Update(existing); err != nil {
		return nil, fmt.Errorf("service: failed to update auction %s: %w", id, err)
	}
	return existing, nil
}

// DeleteAuction removes an auction after checking ownership.
func (s *AuctionService) DeleteAuction(principal permissions.Principal, id string) error {
	existing, err := s.auctionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if !permissions.Allowed(principal, permissions.ActionDelete, permissions.Resource{OwnerID: existing.AuctioneerID}) {
		return fmt.Errorf("user %s deleting auction %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	return s.auctionRepo.Delete(id)
}

// publish sends a domain event, best effort.
func (s *AuctionService) publish(routingKey string, payload map[string]interface{}) {
	if s.mqClient == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Warnf("failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.mqClient.Publish("auction", routingKey, body); err != nil {
		log.Warnf("failed to publish %s event: %v", routingKey, err)
	}
}
