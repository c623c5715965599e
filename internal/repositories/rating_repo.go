package repositories

import (
	"subasta/internal/models"
)

// RatingRepository defines the interface for rating data access.
// CreateIfAbsent performs the uniqueness check and the insert atomically
// per (user, auction), backed by the composite unique index.
type RatingRepository interface {
	CreateIfAbsent(rating *models.Rating) error
	GetByID(auctionID, id string) (*models.Rating, error)
	GetByAuction(auctionID string) ([]models.Rating, error)
	GetByUser(userID string) ([]models.Rating, error)
	Update(rating *models.Rating) error
	Delete(auctionID, id string) error
}
