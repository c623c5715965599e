package repositories

import (
	"fmt"
	"sort"
	"sync"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
)

// MockBidRepository is an in-memory implementation of BidRepository. The
// mutex spans the whole read-validate-write sequence, giving the same
// per-auction admission guarantee as the transactional GORM implementation.
type MockBidRepository struct {
	bids map[string][]models.Bid // key: auctionID
	mu   sync.Mutex
}

// NewMockBidRepository creates a new instance of MockBidRepository.
func NewMockBidRepository() *MockBidRepository {
	return &MockBidRepository{
		bids: make(map[string][]models.Bid),
	}
}

// highestLocked returns the highest bid for an auction. Caller holds mu.
func (r *MockBidRepository) highestLocked(auctionID string) (models.Bid, bool) {
	bids := r.bids[auctionID]
	if len(bids) == 0 {
		return models.Bid{}, false
	}
	winning := bids[0]
	for _, b := range bids[1:] {
		if b.Price.Cmp(winning.Price) > 0 || (b.Price.Cmp(winning.Price) == 0 && b.ID > winning.ID) {
			winning = b
		}
	}
	return winning, true
}

// CreateIfHighest records the bid if it strictly exceeds the current
// highest bid for its auction.
func (r *MockBidRepository) CreateIfHighest(bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if highest, ok := r.highestLocked(bid.AuctionID); ok && bid.Price.Cmp(highest.Price) <= 0 {
		return fmt.Errorf("bid of %s against current highest %s: %w",
			bid.Price, highest.Price, auctionerrors.ErrBidTooLow)
	}
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	r.bids[bid.AuctionID] = append(r.bids[bid.AuctionID], *bid)
	return nil
}

// UpdateIfHighest replaces an existing bid if its price still exceeds every
// other bid on the auction.
func (r *MockBidRepository) UpdateIfHighest(bid *models.Bid) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[bid.AuctionID]
	idx := -1
	for i, b := range bids {
		if b.ID == bid.ID {
			idx = i
			continue
		}
		if bid.Price.Cmp(b.Price) <= 0 {
			return fmt.Errorf("bid of %s against current highest %s: %w",
				bid.Price, b.Price, auctionerrors.ErrBidTooLow)
		}
	}
	if idx == -1 {
		return fmt.Errorf("bid with ID %s: %w", bid.ID, auctionerrors.ErrBidNotFound)
	}
	bids[idx] = *bid
	return nil
}

// GetByID returns a bid scoped to an auction.
func (r *MockBidRepository) GetByID(auctionID, id string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bids[auctionID] {
		if b.ID == id {
			bid := b
			return &bid, nil
		}
	}
	return nil, fmt.Errorf("bid with ID %s: %w", id, auctionerrors.ErrBidNotFound)
}

// GetByAuction returns all bids for an auction ordered by price descending.
func (r *MockBidRepository) GetByAuction(auctionID string) ([]models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := append([]models.Bid(nil), r.bids[auctionID]...)
	sort.Slice(bids, func(i, j int) bool {
		if c := bids[i].Price.Cmp(bids[j].Price); c != 0 {
			return c > 0
		}
		return bids[i].ID > bids[j].ID
	})
	return bids, nil
}

// Highest returns the winning bid for an auction.
func (r *MockBidRepository) Highest(auctionID string) (*models.Bid, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	winning, ok := r.highestLocked(auctionID)
	if !ok {
		return nil, fmt.Errorf("no bids for auction %s: %w", auctionID, auctionerrors.ErrBidNotFound)
	}
	return &winning, nil
}

// Delete removes a bid scoped to an auction.
func (r *MockBidRepository) Delete(auctionID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bids := r.bids[auctionID]
	for i, b := range bids {
		if b.ID == id {
			r.bids[auctionID] = append(bids[:i], bids[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("bid with ID %s: %w", id, auctionerrors.ErrBidNotFound)
}
