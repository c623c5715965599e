package services_test

import (
	"fmt"
	"testing"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockCommentRepository is a mock implementation of repositories.CommentRepository
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) CreateIfAbsent(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(auctionID, id string) (*models.Comment, error) {
	args := m.Called(auctionID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByAuction(auctionID string) ([]models.Comment, error) {
	args := m.Called(auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) GetByUser(userID string) ([]models.Comment, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Update(comment *models.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(auctionID, id string) error {
	args := m.Called(auctionID, id)
	return args.Error(0)
}

func newCommentService() (*services.CommentService, *MockCommentRepository, *MockAuctionRepository) {
	mockComments := new(MockCommentRepository)
	mockAuctions := new(MockAuctionRepository)
	svc := services.NewCommentService(mockComments, mockAuctions, fixedClock)
	return svc, mockComments, mockAuctions
}

func TestCommentService_CreateComment(t *testing.T) {
	svc, mockComments, mockAuctions := newCommentService()
	alice := permissions.Principal{ID: "alice"}

	mockAuctions.On("GetByID", "auction-1").Return(&models.Auction{ID: "auction-1"}, nil).Once()
	mockComments.On("CreateIfAbsent", mock.AnythingOfType("*models.Comment")).Return(nil).Once()

	comment, err := svc.CreateComment(alice, "auction-1", "Great find", "Watching this one closely.")
	assert.NoError(t, err)
	assert.Equal(t, "alice", comment.UserID)
	assert.Equal(t, testNow, comment.CreatedAt)
	assert.Equal(t, testNow, comment.ModifiedAt)
	mockComments.AssertExpectations(t)
	mockAuctions.AssertExpectations(t)
}

func TestCommentService_CreateComment_Duplicate(t *testing.T) {
	svc, mockComments, mockAuctions := newCommentService()
	alice := permissions.Principal{ID: "alice"}

	mockAuctions.On("GetByID", "auction-1").Return(&models.Auction{ID: "auction-1"}, nil).Once()
	dup := fmt.Errorf("user alice on auction auction-1: %w", auctionerrors.ErrDuplicateComment)
	mockComments.On("CreateIfAbsent", mock.AnythingOfType("*models.Comment")).Return(dup).Once()

	_, err := svc.CreateComment(alice, "auction-1", "Again", "Second comment.")
	assert.ErrorIs(t, err, auctionerrors.ErrDuplicateComment)
	assert.Equal(t, auctionerrors.KindConflict, auctionerrors.KindOf(err))
}

func TestCommentService_UpdateComment(t *testing.T) {
	svc, mockComments, _ := newCommentService()
	alice := permissions.Principal{ID: "alice"}
	bob := permissions.Principal{ID: "bob"}

	created := testNow.Add(-48 * time.Hour)
	existing := func() *models.Comment {
		return &models.Comment{
			ID:         "comment-1",
			Title:      "Old",
			Body:       "Old body",
			UserID:     "alice",
			AuctionID:  "auction-1",
			CreatedAt:  created,
			ModifiedAt: created,
		}
	}

	mockComments.On("GetByID", "auction-1", "comment-1").Return(existing(), nil).Once()
	_, err := svc.UpdateComment(bob, "auction-1", "comment-1", "New", "New body")
	assert.ErrorIs(t, err, auctionerrors.ErrForbidden)
	mockComments.AssertNotCalled(t, "Update", mock.Anything)

	mockComments.On("GetByID", "auction-1", "comment-1").Return(existing(), nil).Once()
	mockComments.On("Update", mock.AnythingOfType("*models.Comment")).Return(nil).Once()
	updated, err := svc.UpdateComment(alice, "auction-1", "comment-1", "New", "New body")
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	// Updating refreshes the last-modified time but not the creation time.
	assert.Equal(t, testNow, updated.ModifiedAt)
	assert.Equal(t, created, updated.CreatedAt)
	mockComments.AssertExpectations(t)
}

func TestCommentService_DeleteComment(t *testing.T) {
	svc, mockComments, _ := newCommentService()
	bob := permissions.Principal{ID: "bob"}
	admin := permissions.Principal{ID: "root", IsAdmin: true}

	existing := &models.Comment{ID: "comment-1", UserID: "alice", AuctionID: "auction-1"}

	mockComments.On("GetByID", "auction-1", "comment-1").Return(existing, nil).Once()
	err := svc.DeleteComment(bob, "auction-1", "comment-1")
	assert.ErrorIs(t, err, auctionerrors.ErrForbidden)

	mockComments.On("GetByID", "auction-1", "comment-1").Return(existing, nil).Once()
	mockComments.On("Delete", "auction-1", "comment-1").Return(nil).Once()
	assert.NoError(t, svc.DeleteComment(admin, "auction-1", "comment-1"))
	mockComments.AssertExpectations(t)
}
