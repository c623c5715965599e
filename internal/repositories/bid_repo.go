package repositories

import (
	"subasta/internal/models"
)

// BidRepository defines the interface for bid data access.
//
// CreateIfHighest and UpdateIfHighest perform the read-validate-write
// sequence for bid admission atomically: the current per-auction maximum is
// read fresh inside the same transactional scope that inserts the record,
// so two concurrent admissions can never both validate against the same
// stale maximum.
type BidRepository interface {
	CreateIfHighest(bid *models.Bid) error
	UpdateIfHighest(bid *models.Bid) error
	GetByID(auctionID, id string) (*models.Bid, error)
	GetByAuction(auctionID string) ([]models.Bid, error)
	Highest(auctionID string) (*models.Bid, error)
	Delete(auctionID, id string) error
}
