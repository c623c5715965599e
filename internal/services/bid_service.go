package services

import (
	"encoding/json"
	"fmt"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/repositories"
	"subasta/pkg/rabbitmq"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// BidService handles bid admission and retrieval. Admission atomicity
// lives in the repository; this layer owns the input rules.
type BidService struct {
	bidRepo     repositories.BidRepository
	auctionRepo repositories.AuctionRepository
	mqClient    *rabbitmq.Client
	now         func() time.Time
}

// NewBidService creates a new BidService.
func NewBidService(
	bidRepo repositories.BidRepository,
	auctionRepo repositories.AuctionRepository,
	mqClient *rabbitmq.Client,
	now func() time.Time,
) *BidService {
	return &BidService{
		bidRepo:     bidRepo,
		auctionRepo: auctionRepo,
		mqClient:    mqClient,
		now:         now,
	}
}

// PlaceBid validates and records a bid by the principal on an auction. The
// price must be positive and strictly greater than the current highest bid;
// the strict-increase check runs inside the repository's transactional
// scope. Owners are not barred from bidding on their own auctions.
func (s *BidService) PlaceBid(principal permissions.Principal, auctionID string, price decimal.Decimal) (*models.Bid, error) {
	if price.Cmp(decimal.Zero) <= 0 {
		return nil, fmt.Errorf("bid of %s: %w", price, auctionerrors.ErrNonPositivePrice)
	}
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}

	bid := &models.Bid{
		AuctionID: auctionID,
		Price:     price,
		BidderID:  principal.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.bidRepo.CreateIfHighest(bid); err != nil {
		return nil, err
	}

	if s.mqClient != nil {
		body, err := json.Marshal(map[string]interface{}{
			"bidID":     bid.ID,
			"auctionID": bid.AuctionID,
			"bidder":    bid.BidderID,
			"price":     bid.Price,
		})
		if err != nil {
			log.Warnf("failed to marshal bid.placed event: %v", err)
		} else if err := s.mqClient.Publish("auction", "bid.placed", body); err != nil {
			log.Warnf("failed to publish bid.placed event for bid %s: %v", bid.ID, err)
		}
	}

	return bid, nil
}

// ListBids returns all bids for an auction ordered by price descending.
func (s *BidService) ListBids(auctionID string) ([]models.Bid, error) {
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}
	return s.bidRepo.GetByAuction(auctionID)
}

// HighestBid returns the current winning bid for an auction.
func (s *BidService) HighestBid(auctionID string) (*models.Bid, error) {
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}
	return s.bidRepo.Highest(auctionID)
}

// GetBid retrieves a single bid scoped to an auction.
func (s *BidService) GetBid(auctionID, id string) (*models.Bid, error) {
	return s.bidRepo.GetByID(auctionID, id)
}

// UpdateBid changes a bid's price after checking ownership; the new price
// must still strictly exceed every other bid on the auction.
func (s *BidService) UpdateBid(principal permissions.Principal, auctionID, id string, price decimal.Decimal) (*models.Bid, error) {
	bid, err := s.bidRepo.GetByID(auctionID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.Allowed(principal, permissions.ActionUpdate, permissions.Resource{OwnerID: bid.BidderID}) {
		return nil, fmt.Errorf("user %s updating bid %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	if price.Cmp(decimal.Zero) <= 0 {
		return nil, fmt.Errorf("bid of %s: %w", price, auctionerrors.ErrNonPositivePrice)
	}

	bid.Price = price
	if err := s.bidRepo.UpdateIfHighest(bid); err != nil {
		return nil, err
	}
	return bid, nil
}

// DeleteBid removes a bid after checking ownership.
func (s *BidService) DeleteBid(principal permissions.Principal, auctionID, id string) error {
	bid, err := s.bidRepo.GetByID(auctionID, id)
	if err != nil {
		return err
	}
	if !permissions.Allowed(principal, permissions.ActionDelete, permissions.Resource{OwnerID: bid.BidderID}) {
		return fmt.Errorf("user %s deleting bid %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	return s.bidRepo.Delete(auctionID, id)
}
