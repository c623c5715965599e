package services

import (
	"encoding/json"
	"fmt"
	"math"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/repositories"
	"subasta/pkg/rabbitmq"

	log "github.com/sirupsen/logrus"
)

// noRatingsAverage is reported for auctions without any ratings. It is a
// domain default inherited from the product, not a "no data" marker.
const noRatingsAverage = 1.0

// RatingService handles rating submission and aggregation.
type RatingService struct {
	ratingRepo  repositories.RatingRepository
	auctionRepo repositories.AuctionRepository
	mqClient    *rabbitmq.Client
}

// NewRatingService creates a new RatingService.
func NewRatingService(
	ratingRepo repositories.RatingRepository,
	auctionRepo repositories.AuctionRepository,
	mqClient *rabbitmq.Client,
) *RatingService {
	return &RatingService{
		ratingRepo:  ratingRepo,
		auctionRepo: auctionRepo,
		mqClient:    mqClient,
	}
}

// SubmitRating records the principal's rating of an auction, one per user.
func (s *RatingService) SubmitRating(principal permissions.Principal, auctionID string, value int) (*models.Rating, error) {
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("rating %d: %w", value, auctionerrors.ErrRatingOutOfRange)
	}
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		Value:     value,
		UserID:    principal.ID,
		AuctionID: auctionID,
	}
	if err := s.ratingRepo.CreateIfAbsent(rating); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]interface{}{
			"ratingID":  rating.ID,
			"auctionID": rating.AuctionID,
			"user":      rating.UserID,
			"value":     rating.Value,
		})
		if err != nil {
			log.Warnf("failed to marshal rating.submitted event: %v", err)
		} else if err := s.mqClient.Publish("auction", "rating.submitted", body); err != nil {
			log.Warnf("failed to publish rating.submitted event for rating %s: %v", rating.ID, err)
		}
	}

	return rating, nil
}

// AverageRating returns the arithmetic mean of all rating values for an
// auction, or exactly 1.0 when none exist.
func (s *RatingService) AverageRating(auctionID string) (float64, error) {
	ratings, err := s.ratingRepo.GetByAuction(auctionID)
	if err != nil {
		return 0, err
	}
	if len(ratings) == 0 {
		return noRatingsAverage, nil
	}
	var sum float64
	for _, r := range ratings {
		sum += float64(r.Value)
	}
	return sum / float64(len(ratings)), nil
}

// AverageRatingRounded returns the average rounded to 2 decimal places.
// The detail view reports the rounded figure while the list view reports
// it raw; both behaviors are kept as-is.
func (s *RatingService) AverageRatingRounded(auctionID string) (float64, error) {
	avg, err := s.AverageRating(auctionID)
	if err != nil {
		return 0, err
	}
	return math.Round(avg*100) / 100, nil
}

// ListRatings returns all ratings for an auction.
func (s *RatingService) ListRatings(auctionID string) ([]models.Rating, error) {
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}
	return s.ratingRepo.GetByAuction(auctionID)
}

// ListByUser returns all ratings submitted by the principal.
func (s *RatingService) ListByUser(principal permissions.Principal) ([]models.Rating, error) {
	return s.ratingRepo.GetByUser(principal.ID)
}

// GetRating retrieves a single rating scoped to an auction.
func (s *RatingService) GetRating(auctionID, id string) (*models.Rating, error) {
	return s.ratingRepo.GetByID(auctionID, id)
}

// UpdateRating changes a rating's value after checking ownership.
func (s *RatingService) UpdateRating(principal permissions.Principal, auctionID, id string, value int) (*models.Rating, error) {
	rating, err := s.ratingRepo.GetByID(auctionID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.Allowed(principal, permissions.ActionUpdate, permissions.Resource{OwnerID: rating.UserID}) {
		return nil, fmt.Errorf("user %s updating rating %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	if value < 1 || value > 5 {
		return nil, fmt.Errorf("rating %d: %w", value, auctionerrors.ErrRatingOutOfRange)
	}

	rating.Value = value
	if err := s.ratingRepo.Update(rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// DeleteRating removes a rating after checking ownership.
func (s *RatingService) DeleteRating(principal permissions.Principal, auctionID, id string) error {
	rating, err := s.ratingRepo.GetByID(auctionID, id)
	if err != nil {
		return err
	}
	if !permissions.Allowed(principal, permissions.ActionDelete, permissions.Resource{OwnerID: rating.UserID}) {
		return fmt.Errorf("user %s deleting rating %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	return s.ratingRepo.Delete(auctionID, id)
}
