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

func TestGORMCommentRepository_CreateIfAbsent(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCommentRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Camera", "Film camera",
		decimal.NewFromInt(100), time.Now().Add(30*24*time.Hour))

	now := time.Now().UTC().Truncate(time.Second)
	comment := &models.Comment{
		Title:      "Nice listing",
		Body:       "Been looking for one of these.",
		UserID:     "alice",
		AuctionID:  auction.ID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	require.NoError(t, repo.CreateIfAbsent(comment))
	assert.NotEmpty(t, comment.ID)

	dup := &models.Comment{
		Title:     "Another",
		Body:      "Second thoughts.",
		UserID:    "alice",
		AuctionID: auction.ID,
	}
	err := repo.CreateIfAbsent(dup)
	assert.ErrorIs(t, err, auctionerrors.ErrDuplicateComment)

	require.NoError(t, repo.CreateIfAbsent(&models.Comment{
		Title:     "Me too",
		Body:      "Interested as well.",
		UserID:    "bob",
		AuctionID: auction.ID,
	}))

	comments, err := repo.GetByAuction(auction.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestGORMCommentRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMCommentRepository(db)

	category := seedCategory(t, db, "Electronics")
	auction := seedAuction(t, db, category.ID, "Camera", "Film camera",
		decimal.NewFromInt(100), time.Now().Add(30*24*time.Hour))

	comment := &models.Comment{Title: "Draft", Body: "First pass.", UserID: "alice", AuctionID: auction.ID}
	require.NoError(t, repo.CreateIfAbsent(comment))

	comment.Title = "Final"
	comment.Body = "Settled on it."
	require.NoError(t, repo.Update(comment))

	found, err := repo.GetByID(auction.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", found.Title)

	mine, err := repo.GetByUser("alice")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Delete(auction.ID, comment.ID))
	_, err = repo.GetByID(auction.ID, comment.ID)
	assert.ErrorIs(t, err, auctionerrors.ErrCommentNotFound)
}
