package repositories

import (
	"errors"
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMBidRepository is a GORM implementation of BidRepository.
type GORMBidRepository struct {
	db *gorm.DB
}

// NewGORMBidRepository creates a new instance of GORMBidRepository.
func NewGORMBidRepository(db *gorm.DB) *GORMBidRepository {
	return &GORMBidRepository{
		db: db,
	}
}

// lockAuction loads the auction row inside tx, taking a row lock on
// dialects that support it. SQLite has no SELECT ... FOR UPDATE; its
// single-writer transactions already serialize admissions.
func lockAuction(tx *gorm.DB, auctionID string) (*models.Auction, error) {
	q := tx.Model(&models.Auction{})
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var auction models.Auction
	if err := q.First(&auction, "id = ?", auctionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("auction with ID %s: %w", auctionID, auctionerrors.ErrAuctionNotFound)
		}
		return nil, fmt.Errorf("failed to load auction %s: %w", auctionID, err)
	}
	return &auction, nil
}

// CreateIfHighest inserts the bid only if its price strictly exceeds the
// current highest bid price for the auction, all within one transaction.
func (r *GORMBidRepository) CreateIfHighest(bid *models.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockAuction(tx, bid.AuctionID); err != nil {
			return err
		}

		var highest models.Bid
		err := tx.Where("auction_id = ?", bid.AuctionID).
			Order("price DESC, id DESC").
			First(&highest).Error
		switch {
		case err == nil:
			if bid.Price.Cmp(highest.Price) <= 0 {
				return fmt.Errorf("bid of %s against current highest %s: %w",
					bid.Price, highest.Price, auctionerrors.ErrBidTooLow)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to read highest bid for auction %s: %w", bid.AuctionID, err)
		}

		if bid.ID == "" {
			bid.ID = uuid.New().String()
		}
		if err := tx.Create(bid).Error; err != nil {
			return fmt.Errorf("failed to create bid: %w", err)
		}
		return nil
	})
}

// UpdateIfHighest saves a changed bid only if its price still strictly
// exceeds every other bid on the auction.
func (r *GORMBidRepository) UpdateIfHighest(bid *models.Bid) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if _, err := lockAuction(tx, bid.AuctionID); err != nil {
			return err
		}

		var highest models.Bid
		err := tx.Where("auction_id = ? AND id <> ?", bid.AuctionID, bid.ID).
			Order("price DESC, id DESC").
			First(&highest).Error
		switch {
		case err == nil:
			if bid.Price.Cmp(highest.Price) <= 0 {
				return fmt.Errorf("bid of %s against current highest %s: %w",
					bid.Price, highest.Price, auctionerrors.ErrBidTooLow)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to read highest bid for auction %s: %w", bid.AuctionID, err)
		}

		res := tx.Save(bid)
		if res.Error != nil {
			return fmt.Errorf("failed to update bid: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("bid with ID %s: %w", bid.ID, auctionerrors.ErrBidNotFound)
		}
		return nil
	})
}

// GetByID retrieves a single bid scoped to an auction.
func (r *GORMBidRepository) GetByID(auctionID, id string) (*models.Bid, error) {
	var bid models.Bid
	if err := r.db.First(&bid, "auction_id = ? AND id = ?", auctionID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("bid with ID %s: %w", id, auctionerrors.ErrBidNotFound)
		}
		return nil, fmt.Errorf("failed to get bid by ID %s: %w", id, err)
	}
	return &bid, nil
}

// GetByAuction retrieves all bids for an auction ordered by price
// descending. The ordering is a display detail; admission always consults
// the true maximum inside the transaction.
func (r *GORMBidRepository) GetByAuction(auctionID string) ([]models.Bid, error) {
	var bids []models.Bid
	if err := r.db.Where("auction_id = ?", auctionID).Order("price DESC, id DESC").Find(&bids).Error; err != nil {
		return nil, fmt.Errorf("failed to get bids for auction %s: %w", auctionID, err)
	}
	return bids, nil
}

// Highest retrieves the winning bid for an auction. Ties cannot occur under
// strict-increase admission; for imported data the higher ID wins.
func (r *GORMBidRepository) Highest(auctionID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.Where("auction_id = ?", auctionID).Order("price DESC, id DESC").First(&bid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no bids for auction %s: %w", auctionID, auctionerrors.ErrBidNotFound)
		}
		return nil, fmt.Errorf("failed to get highest bid for auction %s: %w", auctionID, err)
	}
	return &bid, nil
}

// Delete removes a bid scoped to an auction.
func (r *GORMBidRepository) Delete(auctionID, id string) error {
	res := r.db.Delete(&models.Bid{}, "auction_id = ? AND id = ?", auctionID, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bid: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("bid with ID %s: %w", id, auctionerrors.ErrBidNotFound)
	}
	return nil
}
