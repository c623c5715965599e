package repositories

import (
	"fmt"
	"sync"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
)

// MockRatingRepository is an in-memory implementation of RatingRepository.
// The mutex makes the check-then-insert of CreateIfAbsent atomic per call.
type MockRatingRepository struct {
	ratings map[string]models.Rating // key: rating ID
	mu      sync.Mutex
}

// NewMockRatingRepository creates a new instance of MockRatingRepository.
func NewMockRatingRepository() *MockRatingRepository {
	return &MockRatingRepository{
		ratings: make(map[string]models.Rating),
	}
}

// CreateIfAbsent inserts the rating unless the (user, auction) pair exists.
func (r *MockRatingRepository) CreateIfAbsent(rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.ratings {
		if existing.UserID == rating.UserID && existing.AuctionID == rating.AuctionID {
			return fmt.Errorf("user %s on auction %s: %w", rating.UserID, rating.AuctionID, auctionerrors.ErrDuplicateRating)
		}
	}
	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}
	r.ratings[rating.ID] = *rating
	return nil
}

// GetByID returns a rating scoped to an auction.
func (r *MockRatingRepository) GetByID(auctionID, id string) (*models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok || rating.AuctionID != auctionID {
		return nil, fmt.Errorf("rating with ID %s: %w", id, auctionerrors.ErrRatingNotFound)
	}
	return &rating, nil
}

// GetByAuction returns all ratings for an auction.
func (r *MockRatingRepository) GetByAuction(auctionID string) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []models.Rating
	for _, rating := range r.ratings {
		if rating.AuctionID == auctionID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

// GetByUser returns all ratings submitted by a user.
func (r *MockRatingRepository) GetByUser(userID string) ([]models.Rating, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var ratings []models.Rating
	for _, rating := range r.ratings {
		if rating.UserID == userID {
			ratings = append(ratings, rating)
		}
	}
	return ratings, nil
}

// Update modifies an existing rating.
func (r *MockRatingRepository) Update(rating *models.Rating) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.ratings[rating.ID]; !ok {
		return fmt.Errorf("rating with ID %s: %w", rating.ID, auctionerrors.ErrRatingNotFound)
	}
	r.ratings[rating.ID] = *rating
	return nil
}

// Delete removes a rating scoped to an auction.
func (r *MockRatingRepository) Delete(auctionID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rating, ok := r.ratings[id]
	if !ok || rating.AuctionID != auctionID {
		return fmt.Errorf("rating with ID %s: %w", id, auctionerrors.ErrRatingNotFound)
	}
	delete(r.ratings, id)
	return nil
}
