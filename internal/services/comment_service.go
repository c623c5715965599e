package services

import (
	"fmt"
	"time"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/repositories"
)

// CommentService handles auction comments, one per (user, auction).
type CommentService struct {
	commentRepo repositories.CommentRepository
	auctionRepo repositories.AuctionRepository
	now         func() time.Time
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repositories.CommentRepository,
	auctionRepo repositories.AuctionRepository,
	now func() time.Time,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		auctionRepo: auctionRepo,
		now:         now,
	}
}

// CreateComment records the principal's comment on an auction. The
// last-modified time is set server-side.
func (s *CommentService) CreateComment(principal permissions.Principal, auctionID, title, body string) (*models.Comment, error) {
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}

	now := s.now()
	comment := &models.Comment{
		Title:      title,
		Body:       body,
		UserID:     principal.ID,
		AuctionID:  auctionID,
		CreatedAt:  now,
		ModifiedAt: now,
	}
	if err := s.commentRepo.CreateIfAbsent(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListComments returns all comments for an auction.
func (s *CommentService) ListComments(auctionID string) ([]models.Comment, error) {
	if _, err := s.auctionRepo.GetByID(auctionID); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByAuction(auctionID)
}

// ListByUser returns all comments written by the principal.
func (s *CommentService) ListByUser(principal permissions.Principal) ([]models.Comment, error) {
	return s.commentRepo.GetByUser(principal.ID)
}

// GetComment retrieves a single comment scoped to an auction.
func (s *CommentService) GetComment(auctionID, id string) (*models.Comment, error) {
	return s.commentRepo.GetByID(auctionID, id)
}

// UpdateComment changes a comment's title and body after checking
// ownership and refreshes the last-modified time.
func (s *CommentService) UpdateComment(principal permissions.Principal, auctionID, id, title, body string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(auctionID, id)
	if err != nil {
		return nil, err
	}
	if !permissions.Allowed(principal, permissions.ActionUpdate, permissions.Resource{OwnerID: comment.UserID}) {
		return nil, fmt.Errorf("user %s updating comment %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}

	comment.Title = title
	comment.Body = body
	comment.ModifiedAt = s.now()
	if err := s.commentRepo.Update(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// DeleteComment removes a comment after checking ownership.
func (s *CommentService) DeleteComment(principal permissions.Principal, auctionID, id string) error {
	comment, err := s.commentRepo.GetByID(auctionID, id)
	if err != nil {
		return err
	}
	if !permissions.Allowed(principal, permissions.ActionDelete, permissions.Resource{OwnerID: comment.UserID}) {
		return fmt.Errorf("user %s deleting comment %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	return s.commentRepo.Delete(auctionID, id)
}
