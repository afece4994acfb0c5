package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/models"
)

// categoryService handles the user's custom categories.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// ListCategories returns the user's custom category names in creation order.
func (s *categoryService) ListCategories(ctx context.Context, userID string) ([]string, error) {
	var names []string
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return names, nil
}

// InsertCategory stores a custom category. Adding a name the user already
// has is not an error.
func (s *categoryService) InsertCategory(ctx context.Context, userID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	category := models.Category{UserID: userID, Name: name}
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name).
		FirstOrCreate(&category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
