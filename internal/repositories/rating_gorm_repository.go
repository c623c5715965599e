package repositories

import (
	"errors"
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// CreateIfAbsent inserts the rating unless one already exists for the same
// (user, auction) pair. The check and insert run in one transaction and the
// unique index closes the remaining race: a concurrent duplicate insert
// surfaces as a duplicated-key error and is reported as the same conflict.
func (r *GORMRatingRepository) CreateIfAbsent(rating *models.Rating) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Rating{}).
			Where("user_id = ? AND auction_id = ?", rating.UserID, rating.AuctionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing rating: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s on auction %s: %w", rating.UserID, rating.AuctionID, auctionerrors.ErrDuplicateRating)
		}

		if rating.ID == "" {
			rating.ID = uuid.New().String()
		}
		if err := tx.Create(rating).Error; err != nil {
			return fmt.Errorf("failed to create rating: %w", err)
		}
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("user %s on auction %s: %w", rating.UserID, rating.AuctionID, auctionerrors.ErrDuplicateRating)
	}
	return err
}

// GetByID retrieves a single rating scoped to an auction.
func (r *GORMRatingRepository) GetByID(auctionID, id string) (*models.Rating, error) {
	var rating models.Rating
	if err := r.db.First(&rating, "auction_id = ? AND id = ?", auctionID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating with ID %s: %w", id, auctionerrors.ErrRatingNotFound)
		}
		return nil, fmt.Errorf("failed to get rating by ID %s: %w", id, err)
	}
	return &rating, nil
}

// GetByAuction retrieves all ratings for an auction.
func (r *GORMRatingRepository) GetByAuction(auctionID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("auction_id = ?", auctionID).Order("id").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to get ratings for auction %s: %w", auctionID, err)
	}
	return ratings, nil
}

// GetByUser retrieves all ratings submitted by a user.
func (r *GORMRatingRepository) GetByUser(userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&ratings).Error; err != nil {
		return nil, fmt.Errorf("failed to get ratings for user %s: %w", userID, err)
	}
	return ratings, nil
}

// Update updates an existing rating in the database.
func (r *GORMRatingRepository) Update(rating *models.Rating) error {
	res := r.db.Save(rating)
	if res.Error != nil {
		return fmt.Errorf("failed to update rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rating with ID %s: %w", rating.ID, auctionerrors.ErrRatingNotFound)
	}
	return nil
}

// Delete removes a rating scoped to an auction.
func (r *GORMRatingRepository) Delete(auctionID, id string) error {
	res := r.db.Delete(&models.Rating{}, "auction_id = ? AND id = ?", auctionID, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete rating: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("rating with ID %s: %w", id, auctionerrors.ErrRatingNotFound)
	}
	return nil
}
