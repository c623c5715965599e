package services

import (
	"fmt"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/repositories"
)

// CategoryService handles category management. Mutation is reserved to
// administrators; deletion cascades to the category's auctions and their
// dependent records in one transaction.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

// GetAllCategories retrieves all categories.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategory retrieves a single category by its ID.
func (s *CategoryService) GetCategory(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a new category; admin only.
func (s *CategoryService) CreateCategory(principal permissions.Principal, category *models.Category) error {
	if !permissions.Allowed(principal, permissions.ActionCreate, permissions.Resource{AdminOnly: true}) {
		return fmt.Errorf("user %s creating category: %w", principal.ID, auctionerrors.ErrForbidden)
	}
	return s.categoryRepo.Create(category)
}

// UpdateCategory updates an existing category; admin only.
func (s *CategoryService) UpdateCategory(principal permissions.Principal, id string, name string) (*models.Category, error) {
	if !permissions.Allowed(principal, permissions.ActionUpdate, permissions.Resource{AdminOnly: true}) {
		return nil, fmt.Errorf("user %s updating category %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	category.Name = name
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category and everything under it; admin only.
func (s *CategoryService) DeleteCategory(principal permissions.Principal, id string) error {
	if !permissions.Allowed(principal, permissions.ActionDelete, permissions.Resource{AdminOnly: true}) {
		return fmt.Errorf("user %s deleting category %s: %w", principal.ID, id, auctionerrors.ErrForbidden)
	}
	return s.categoryRepo.DeleteCascade(id)
}
