package repositories

import (
	"subasta/internal/models"
)

// CategoryRepository defines the interface for category data access.
// DeleteCascade removes the category together with its auctions and their
// bids, ratings and comments inside one transaction.
type CategoryRepository interface {
	GetAll() ([]models.Category, error)
	GetByID(id string) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	DeleteCascade(id string) error
}
