package repositories

import (
	"errors"
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// CreateIfAbsent inserts the comment unless one already exists for the same
// (user, auction) pair, in one transaction backed by the unique index.
func (r *GORMCommentRepository) CreateIfAbsent(comment *models.Comment) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Comment{}).
			Where("user_id = ? AND auction_id = ?", comment.UserID, comment.AuctionID).
			Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check existing comment: %w", err)
		}
		if count > 0 {
			return fmt.Errorf("user %s on auction %s: %w", comment.UserID, comment.AuctionID, auctionerrors.ErrDuplicateComment)
		}

		if comment.ID == "" {
			comment.ID = uuid.New().String()
		}
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		return nil
	})
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("user %s on auction %s: %w", comment.UserID, comment.AuctionID, auctionerrors.ErrDuplicateComment)
	}
	return err
}

// GetByID retrieves a single comment scoped to an auction.
func (r *GORMCommentRepository) GetByID(auctionID, id string) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, "auction_id = ? AND id = ?", auctionID, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment with ID %s: %w", id, auctionerrors.ErrCommentNotFound)
		}
		return nil, fmt.Errorf("failed to get comment by ID %s: %w", id, err)
	}
	return &comment, nil
}

// GetByAuction retrieves all comments for an auction.
func (r *GORMCommentRepository) GetByAuction(auctionID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("auction_id = ?", auctionID).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments for auction %s: %w", auctionID, err)
	}
	return comments, nil
}

// GetByUser retrieves all comments written by a user.
func (r *GORMCommentRepository) GetByUser(userID string) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments for user %s: %w", userID, err)
	}
	return comments, nil
}

// Update updates an existing comment in the database.
func (r *GORMCommentRepository) Update(comment *models.Comment) error {
	res := r.db.Save(comment)
	if res.Error != nil {
		return fmt.Errorf("failed to update comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %s: %w", comment.ID, auctionerrors.ErrCommentNotFound)
	}
	return nil
}

// Delete removes a comment scoped to an auction.
func (r *GORMCommentRepository) Delete(auctionID, id string) error {
	res := r.db.Delete(&models.Comment{}, "auction_id = ? AND id = ?", auctionID, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("comment with ID %s: %w", id, auctionerrors.ErrCommentNotFound)
	}
	return nil
}
