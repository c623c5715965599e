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
	"gorm.io/gorm"
)

func boolPtr(v bool) *bool                      { return &v }
func floatPtr(v float64) *float64               { return &v }
func decPtr(v decimal.Decimal) *decimal.Decimal { return &v }

func titles(auctions []models.Auction) []string {
	out := make([]string, 0, len(auctions))
	for _, a := range auctions {
		out = append(out, a.Title)
	}
	return out
}

// listFixture seeds two categories and three auctions: two open electronics
// listings and one already-closed book listing.
func listFixture(t *testing.T, db *gorm.DB, now time.Time) (electronics, books *models.Category) {
	t.Helper()

	electronics = seedCategory(t, db, "Electronics")
	books = seedCategory(t, db, "Books")

	open := now.Add(20 * 24 * time.Hour)
	seedAuction(t, db, electronics.ID, "Vintage Camera", "A classic film camera", decimal.RequireFromString("150.00"), open)
	seedAuction(t, db, electronics.ID, "Camera Lens", "Sharp prime glass", decimal.RequireFromString("80.00"), open)
	seedAuction(t, db, books.ID, "Cookbook", "Weeknight recipes", decimal.RequireFromString("20.00"), now.Add(-24*time.Hour))
	return electronics, books
}

func TestGORMAuctionRepository_List_NoFilter(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	listFixture(t, db, now)

	auctions, err := repo.List(repositories.AuctionFilter{Now: now})
	require.NoError(t, err)
	assert.Len(t, auctions, 3)
}

func TestGORMAuctionRepository_List_Search(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	listFixture(t, db, now)

	// Case-insensitive, matching title or description.
	auctions, err := repo.List(repositories.AuctionFilter{Search: "CAMERA", Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera", "Camera Lens"}, titles(auctions))

	auctions, err = repo.List(repositories.AuctionFilter{Search: "recipes", Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cookbook"}, titles(auctions))

	auctions, err = repo.List(repositories.AuctionFilter{Search: "nothing matches this", Now: now})
	require.NoError(t, err)
	assert.Empty(t, auctions)
}

func TestGORMAuctionRepository_List_PriceBounds(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	listFixture(t, db, now)

	auctions, err := repo.List(repositories.AuctionFilter{PriceMin: decPtr(decimal.NewFromInt(50)), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera", "Camera Lens"}, titles(auctions))

	auctions, err = repo.List(repositories.AuctionFilter{PriceMax: decPtr(decimal.NewFromInt(100)), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Camera Lens", "Cookbook"}, titles(auctions))

	// Bounds are inclusive: an exact match satisfies min == max.
	auctions, err = repo.List(repositories.AuctionFilter{
		PriceMin: decPtr(decimal.RequireFromString("80.00")),
		PriceMax: decPtr(decimal.RequireFromString("80.00")),
		Now:      now,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Camera Lens"}, titles(auctions))
}

func TestGORMAuctionRepository_List_Category(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	_, books := listFixture(t, db, now)

	auctions, err := repo.List(repositories.AuctionFilter{CategoryID: books.ID, Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cookbook"}, titles(auctions))
}

func TestGORMAuctionRepository_List_OpenClosed(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	listFixture(t, db, now)

	auctions, err := repo.List(repositories.AuctionFilter{IsOpen: boolPtr(true), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera", "Camera Lens"}, titles(auctions))

	auctions, err = repo.List(repositories.AuctionFilter{IsOpen: boolPtr(false), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Cookbook"}, titles(auctions))
}

func TestGORMAuctionRepository_List_OpenClosedBoundary(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)

	now := time.Now()
	category := seedCategory(t, db, "Electronics")
	// An auction closing exactly at the reference instant satisfies both
	// the open and the closed clause.
	seedAuction(t, db, category.ID, "Boundary", "Closes right now", decimal.NewFromInt(10), now)

	open, err := repo.List(repositories.AuctionFilter{IsOpen: boolPtr(true), Now: now})
	require.NoError(t, err)
	assert.Len(t, open, 1)

	closed, err := repo.List(repositories.AuctionFilter{IsOpen: boolPtr(false), Now: now})
	require.NoError(t, err)
	assert.Len(t, closed, 1)
}

func TestGORMAuctionRepository_List_MinRating(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	now := time.Now()
	listFixture(t, db, now)

	all, err := repo.List(repositories.AuctionFilter{Now: now})
	require.NoError(t, err)
	byTitle := make(map[string]models.Auction, len(all))
	for _, a := range all {
		byTitle[a.Title] = a
	}

	camera := byTitle["Vintage Camera"]
	lens := byTitle["Camera Lens"]
	require.NoError(t, ratingRepo.CreateIfAbsent(&models.Rating{Value: 3, UserID: "alice", AuctionID: camera.ID}))
	require.NoError(t, ratingRepo.CreateIfAbsent(&models.Rating{Value: 5, UserID: "bob", AuctionID: camera.ID}))
	require.NoError(t, ratingRepo.CreateIfAbsent(&models.Rating{Value: 2, UserID: "alice", AuctionID: lens.ID}))

	auctions, err := repo.List(repositories.AuctionFilter{MinRating: floatPtr(3.5), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera"}, titles(auctions))

	// Unrated auctions never match a rating filter, even at zero.
	auctions, err = repo.List(repositories.AuctionFilter{MinRating: floatPtr(0), Now: now})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera", "Camera Lens"}, titles(auctions))
}

func TestGORMAuctionRepository_List_CombinedFilters(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)
	now := time.Now()
	electronics, _ := listFixture(t, db, now)

	auctions, err := repo.List(repositories.AuctionFilter{
		Search:     "camera",
		CategoryID: electronics.ID,
		PriceMin:   decPtr(decimal.NewFromInt(100)),
		IsOpen:     boolPtr(true),
		Now:        now,
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Vintage Camera"}, titles(auctions))
}

func TestGORMAuctionRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMAuctionRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Camera", "Film camera",
		decimal.NewFromInt(100), time.Now().Add(30*24*time.Hour))

	found, err := repo.GetByID(auction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Camera", found.Title)

	_, err = repo.GetByID("missing")
	assert.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)

	mine, err := repo.GetByAuctioneer(auction.AuctioneerID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	found.Title = "Restored Camera"
	require.NoError(t, repo.Update(found))
	found, err = repo.GetByID(auction.ID)
	require.NoError(t, err)
	assert.Equal(t, "Restored Camera", found.Title)

	require.NoError(t, repo.Delete(auction.ID))
	_, err = repo.GetByID(auction.ID)
	assert.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
	err = repo.Delete(auction.ID)
	assert.ErrorIs(t, err, auctionerrors.ErrAuctionNotFound)
}
