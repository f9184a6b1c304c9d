package services

import (
	"context"
	"strings"
	"time"

	"github.com/brightBediako/farmlink-api/models"
	"github.com/brightBediako/farmlink-api/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService owns category authoring.
type CategoryService struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create stores a new category with a lower-cased unique name.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, name, imageURL string) (*models.Category, *ServiceError) {
	name = strings.ToLower(strings.TrimSpace(name))
	if _, err := s.categoryRepo.FindByName(ctx, name); err == nil {
		return nil, ErrCategoryExists
	} else if err != repository.ErrNotFound {
		zap.L().Error("category lookup failed", zap.Error(err))
		return nil, internalError("Failed to create category")
	}

	category := &models.Category{
		ID:        uuid.New(),
		Name:      name,
		Image:     imageURL,
		UserID:    userID,
		Products:  []uuid.UUID{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		zap.L().Error("category insert failed", zap.Error(err))
		return nil, internalError("Failed to create category")
	}
	return category, nil
}

func (s *CategoryService) GetAll(ctx context.Context) ([]models.Category, *ServiceError) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to fetch categories", zap.Error(err))
		return nil, internalError("Failed to fetch categories")
	}
	return categories, nil
}

func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, *ServiceError) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		zap.L().Error("category lookup failed", zap.Error(err))
		return nil, internalError("Failed to fetch category")
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, name string) (*models.Category, *ServiceError) {
	err := s.categoryRepo.Update(ctx, id, map[string]interface{}{
		"name": strings.ToLower(strings.TrimSpace(name)),
	})
	if err == repository.ErrNotFound {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		zap.L().Error("category update failed", zap.Error(err))
		return nil, internalError("Failed to update category")
	}
	return s.GetByID(ctx, id)
}

func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) *ServiceError {
	err := s.categoryRepo.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrCategoryNotFound
	}
	if err != nil {
		zap.L().Error("category delete failed", zap.Error(err))
		return internalError("Failed to delete category")
	}
	return nil
}
