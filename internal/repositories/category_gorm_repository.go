package repositories

import (
	"errors"
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// GetAll retrieves all categories from the database.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single category by its ID from the database.
func (r *GORMCategoryRepository) GetByID(id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("category with ID %s: %w", id, auctionerrors.ErrCategoryNotFound)
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", id, err)
	}
	return &category, nil
}

// Create creates a new category in the database.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// Update updates an existing category in the database.
func (r *GORMCategoryRepository) Update(category *models.Category) error {
	res := r.db.Save(category)
	if res.Error != nil {
		return fmt.Errorf("failed to update category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("category with ID %s: %w", category.ID, auctionerrors.ErrCategoryNotFound)
	}
	return nil
}

// DeleteCascade deletes a category and every auction belonging to it, along
// with the auctions' bids, ratings and comments, in a single transaction.
func (r *GORMCategoryRepository) DeleteCascade(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var auctionIDs []string
		if err := tx.Model(&models.Auction{}).Where("category_id = ?", id).Pluck("id", &auctionIDs).Error; err != nil {
			return fmt.Errorf("failed to list auctions for category %s: %w", id, err)
		}

		if len(auctionIDs) > 0 {
			if err := tx.Where("auction_id IN ?", auctionIDs).Delete(&models.Comment{}).Error; err != nil {
				return fmt.Errorf("failed to delete comments for category %s: %w", id, err)
			}
			if err := tx.Where("auction_id IN ?", auctionIDs).Delete(&models.Rating{}).Error; err != nil {
				return fmt.Errorf("failed to delete ratings for category %s: %w", id, err)
			}
			if err := tx.Where("auction_id IN ?", auctionIDs).Delete(&models.Bid{}).Error; err != nil {
				return fmt.Errorf("failed to delete bids for category %s: %w", id, err)
			}
			if err := tx.Where("id IN ?", auctionIDs).Delete(&models.Auction{}).Error; err != nil {
				return fmt.Errorf("failed to delete auctions for category %s: %w", id, err)
			}
		}

		res := tx.Delete(&models.Category{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category with ID %s: %w", id, auctionerrors.ErrCategoryNotFound)
		}
		return nil
	})
}
