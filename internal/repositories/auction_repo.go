package repositories

import (
	"time"

	"subasta/internal/models"

	"github.com/shopspring/decimal"
)

// AuctionFilter holds the composable predicates for listing auctions.
// All clauses combine with AND; the search clause matches title OR
// description. Now is the reference instant for the open/closed clause.
type AuctionFilter struct {
	Search     string
	CategoryID string
	PriceMin   *decimal.Decimal
	PriceMax   *decimal.Decimal
	MinRating  *float64
	IsOpen     *bool
	Now        time.Time
}

// AuctionRepository defines the interface for auction data access.
type AuctionRepository interface {
	List(filter AuctionFilter) ([]models.Auction, error)
	GetByID(id string) (*models.Auction, error)
	GetByAuctioneer(userID string) ([]models.Auction, error)
	Create(auction *models.Auction) error
	Update(auction *models.Auction) error
	Delete(id string) error
}
