package repositories_test

import (
	"testing"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMBidRepository_CreateIfHighest(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMBidRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Vintage Camera", "A classic film camera",
		decimal.RequireFromString("150.00"), time.Now().Add(30*24*time.Hour))

	first := &models.Bid{AuctionID: auction.ID, BidderID: "alice", Price: decimal.RequireFromString("10.00")}
	require.NoError(t, repo.CreateIfHighest(first))
	assert.NotEmpty(t, first.ID)

	second := &models.Bid{AuctionID: auction.ID, BidderID: "bob", Price: decimal.RequireFromString("15.00")}
	require.NoError(t, repo.CreateIfHighest(second))

	// Below the current highest.
	tooLow := &models.Bid{AuctionID: auction.ID, BidderID: "alice", Price: decimal.RequireFromString("12.00")}
	err := repo.CreateIfHighest(tooLow)
	assert.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

	// Equal to the current highest.
	equal := &models.Bid{AuctionID: auction.ID, BidderID: "alice", Price: decimal.RequireFromString("15.00")}
	err = repo.CreateIfHighest(equal)
	assert.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

	// Rejected bids leave no rows behind.
	bids, err := repo.GetByAuction(auction.ID)
	require.NoError(t, err)
	assert.Len(t, bids, 2)

	winning, err := repo.Highest(auction.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, winning.ID)
	assert.True(t, winning.Price.Equal(decimal.RequireFromString("15.00")))
}

func TestGORMBidRepository_CreateIfHighest_UnknownAuction(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMBidRepository(db)

	bid := &models.Bid{AuctionID: "missing", BidderID: "alice", Price: decimal.NewFromInt(10)}
	err := repo.CreateIfHighest(bid)
	assert.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}

func TestGORMBidRepository_UpdateIfHighest(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMBidRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Vintage Camera", "A classic film camera",
		decimal.RequireFromString("150.00"), time.Now().Add(30*24*time.Hour))

	first := &models.Bid{AuctionID: auction.ID, BidderID: "alice", Price: decimal.NewFromInt(10)}
	require.NoError(t, repo.CreateIfHighest(first))
	second := &models.Bid{AuctionID: auction.ID, BidderID: "bob", Price: decimal.NewFromInt(20)}
	require.NoError(t, repo.CreateIfHighest(second))

	// Raising the older bid to 15 still trails the highest.
	first.Price = decimal.NewFromInt(15)
	err := repo.UpdateIfHighest(first)
	assert.ErrorIs(t, err, auctionerrors.ErrBidTooLow)

	// Raising it above every other bid succeeds.
	first.Price = decimal.NewFromInt(30)
	require.NoError(t, repo.UpdateIfHighest(first))

	winning, err := repo.Highest(auction.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, winning.ID)
	assert.True(t, winning.Price.Equal(decimal.NewFromInt(30)))
}

func TestGORMBidRepository_GetByIDScopedToAuction(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMBidRepository(db)

	category := seedCategory(t, db, "Electronics")
	auctionA := seedAuction(t, db, category.ID, "Camera", "Film camera",
		decimal.NewFromInt(100), time.Now().Add(30*24*time.Hour))
	auctionB := seedAuction(t, db, category.ID, "Lens", "Prime lens",
		decimal.NewFromInt(50), time.Now().Add(30*24*time.Hour))

	bid := &models.Bid{AuctionID: auctionA.ID, BidderID: "alice", Price: decimal.NewFromInt(10)}
	require.NoError(t, repo.CreateIfHighest(bid))

	found, err := repo.GetByID(auctionA.ID, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, bid.ID, found.ID)

	// The same bid is invisible through another auction's scope.
	_, err = repo.GetByID(auctionB.ID, bid.ID)
	assert.ErrorIs(t, err, auctionerrors.ErrBidNotFound)
}

func TestGORMBidRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMBidRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Camera", "Film camera",
		decimal.NewFromInt(100), time.Now().Add(30*24*time.Hour))

	bid := &models.Bid{AuctionID: auction.ID, BidderID: "alice", Price: decimal.NewFromInt(10)}
	require.NoError(t, repo.CreateIfHighest(bid))

	require.NoError(t, repo.Delete(auction.ID, bid.ID))
	err := repo.Delete(auction.ID, bid.ID)
	assert.ErrorIs(t, err, auctionerrors.ErrBidNotFound)

	// With the highest bid hard-deleted, a lower bid is admissible again.
	lower := &models.Bid{AuctionID: auction.ID, BidderID: "bob", Price: decimal.NewFromInt(5)}
	assert.NoError(t, repo.CreateIfHighest(lower))
}
