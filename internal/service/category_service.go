package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	apperrors "inkwell/internal/errors"
	"inkwell/internal/model"
	"inkwell/internal/repository"
)

// CategoryUpdateInput carries a partial category update. Empty fields are
// left untouched.
type CategoryUpdateInput struct {
	Name        string
	Description string
}

// CategoryService handles staff-facing category management.
type CategoryService interface {
	Create(ctx context.Context, name, description string) (*model.Category, error)
	Update(ctx context.Context, id uint, input CategoryUpdateInput) (*model.Category, error)
	// Delete removes the category and, through the FK cascade, every
	// article in it.
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
}

type categoryService struct {
	categories repository.CategoryRepository
	logger     zerolog.Logger
}

// NewCategoryService creates the category service.
func NewCategoryService(categories repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{categories: categories, logger: logger}
}

func (s *categoryService) Create(ctx context.Context, name, description string) (*model.Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidation("name", "This field may not be blank.")
	}

	category := &model.Category{Name: name, Description: description}
	err := s.categories.WithTransaction(ctx, func(ctx context.Context, repo repository.CategoryRepository) error {
		taken, err := repo.NameTaken(ctx, name, 0)
		if err != nil {
			return err
		}
		if taken {
			return apperrors.NewValidation("name", "Category with this name already exists!")
		}
		return repo.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint("category_id", category.ID).Str("name", category.Name).Msg("category created")
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, input CategoryUpdateInput) (*model.Category, error) {
	var updated *model.Category
	err := s.categories.WithTransaction(ctx, func(ctx context.Context, repo repository.CategoryRepository) error {
		category, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if input.Name != "" && input.Name != category.Name {
			taken, err := repo.NameTaken(ctx, input.Name, category.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperrors.NewValidation("name", "Category with this name already exists!")
			}
			category.Name = input.Name
		}

		if input.Description != "" {
			category.Description = input.Description
		}

		if err := repo.Update(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *categoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return err
	}

	if err := s.categories.Delete(ctx, category); err != nil {
		return err
	}

	s.logger.Info().Uint("category_id", category.ID).Str("name", category.Name).Msg("category deleted")
	return nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}
