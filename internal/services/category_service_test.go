package services_test

import (
	"testing"

	"subasta/internal/auctionerrors"
	"subasta/internal/models"
	"subasta/internal/permissions"
	"subasta/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCategoryService_CreateCategory(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := services.NewCategoryService(mockRepo)
	admin := permissions.Principal{ID: "root", IsAdmin: true}
	user := permissions.Principal{ID: "alice"}

	// Category management is reserved to administrators.
	err := svc.CreateCategory(user, &models.Category{Name: "Electronics"})
	assert.ErrorIs(t, err, auctionerrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)

	mockRepo.On("Create", mock.AnythingOfType("*models.Category")).Return(nil).Once()
	assert.NoError(t, svc.CreateCategory(admin, &models.Category{Name: "Electronics"}))
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := services.NewCategoryService(mockRepo)
	admin := permissions.Principal{ID: "root", IsAdmin: true}
	user := permissions.Principal{ID: "alice"}

	_, err := svc.UpdateCategory(user, "cat-1", "Books")
	assert.ErrorIs(t, err, auctionerrors.ErrForbidden)

	mockRepo.On("GetByID", "cat-1").Return(&models.Category{ID: "cat-1", Name: "Electronics"}, nil).Once()
	mockRepo.On("Update", mock.AnythingOfType("*models.Category")).Return(nil).Once()
	updated, err := svc.UpdateCategory(admin, "cat-1", "Books")
	assert.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)
	mockRepo.AssertExpectations(t)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	mockRepo := new(MockCategoryRepository)
	svc := services.NewCategoryService(mockRepo)
	admin := permissions.Principal{ID: "root", IsAdmin: true}
	user := permissions.Principal{ID: "alice"}

	err := svc.DeleteCategory(user, "cat-1")
	assert.ErrorIs(t, err, auctionerrors.ErrForbidden)
	mockRepo.AssertNotCalled(t, "DeleteCascade", mock.Anything)

	mockRepo.On("DeleteCascade", "cat-1").Return(nil).Once()
	assert.NoError(t, svc.DeleteCategory(admin, "cat-1"))
	mockRepo.AssertExpectations(t)
}
