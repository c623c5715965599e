package repositories

import (
	"errors"
	"fmt"
	"strings"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMAuctionRepository is a GORM implementation of AuctionRepository.
type GORMAuctionRepository struct {
	db *gorm.DB
}

// NewGORMAuctionRepository creates a new instance of GORMAuctionRepository.
func NewGORMAuctionRepository(db *gorm.DB) *GORMAuctionRepository {
	return &GORMAuctionRepository{
		db: db,
	}
}

// List retrieves the auctions matching the filter.
func (r *GORMAuctionRepository) List(filter AuctionFilter) ([]models.Auction, error) {
	q := r.db.Model(&models.Auction{})

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", term, term)
	}
	if filter.IsOpen != nil {
		// The boundary instant intentionally satisfies both branches; this
		// mirrors the longstanding behavior of the listing endpoint.
		if *filter.IsOpen {
			q = q.Where("closing_date >= ?", filter.Now)
		} else {
			q = q.Where("closing_date <= ?", filter.Now)
		}
	}
	if filter.MinRating != nil {
		// The inner join drops auctions without ratings, so the rating
		// filter never matches an unrated auction.
		q = q.Joins("JOIN ratings ON ratings.auction_id = auctions.id").
			Group("auctions.id").
			Having("AVG(ratings.value) >= ?", *filter.MinRating)
	}
	if filter.PriceMin != nil {
		q = q.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		q = q.Where("price <= ?", *filter.PriceMax)
	}
	if filter.CategoryID != "" {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	var auctions []models.Auction
	if err := q.Order("auctions.id").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("failed to list auctions: %w", err)
	}
	return auctions, nil
}

// GetByID retrieves a single auction by its ID from the database.
func (r *GORMAuctionRepository) GetByID(id string) (*models.Auction, error) {
	var auction models.Auction
	if err := r.db.First(&auction, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("auction with ID %s: %w", id, auctionerrors.ErrAuctionNotFound)
		}
		return nil, fmt.Errorf("failed to get auction by ID %s: %w", id, err)
	}
	return &auction, nil
}

// GetByAuctioneer retrieves all auctions owned by the given user.
func (r *GORMAuctionRepository) GetByAuctioneer(userID string) ([]models.Auction, error) {
	var auctions []models.Auction
	if err := r.db.Where("auctioneer_id = ?", userID).Order("id").Find(&auctions).Error; err != nil {
		return nil, fmt.Errorf("failed to get auctions for user %s: %w", userID, err)
	}
	return auctions, nil
}

// Create creates a new auction in the database.
func (r *GORMAuctionRepository) Create(auction *models.Auction) error {
	if auction.ID == "" {
		auction.ID = uuid.New().String()
	}
	if err := r.db.Create(auction).Error; err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

// Update updates an existing auction in the database.
func (r *GORMAuctionRepository) Update(auction *models.Auction) error {
	res := r.db.Save(auction)
	if res.Error != nil {
		return fmt.Errorf("failed to update auction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("auction with ID %s: %w", auction.ID, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}

// Delete deletes an auction by its ID from the database.
func (r *GORMAuctionRepository) Delete(id string) error {
	res := r.db.Delete(&models.Auction{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete auction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("auction with ID %s: %w", id, auctionerrors.ErrAuctionNotFound)
	}
	return nil
}
