package repositories

import (
	"subasta/internal/models"
)

// CommentRepository defines the interface for comment data access.
// CreateIfAbsent enforces one comment per (user, auction) atomically.
type CommentRepository interface {
	CreateIfAbsent(comment *models.Comment) error
	GetByID(auctionID, id string) (*models.Comment, error)
	GetByAuction(auctionID string) ([]models.Comment, error)
	GetByUser(userID string) ([]models.Comment, error)
	Update(comment *models.Comment) error
	Delete(auctionID, id string) error
}
