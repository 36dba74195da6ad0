package usecase

import (
	"context"
	"fmt"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"
	"review-catalog/internal/dto/response"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	GetAllCategories(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (cs *categoryService) GetAllCategories(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := cs.repo.Category.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		cs.log.Error("Failed to get all categories", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("failed to get categories")
	}

	total, err := cs.repo.Category.CountAll(ctx, search)
	if err != nil {
		cs.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("failed to count categories")
	}

	categoryResponses := make([]response.CategoryResponse, len(categories))
	for i, category := range categories {
		categoryResponses[i] = response.CategoryToResponse(category)
	}

	return response.NewPaginatedResponse(categoryResponses, req.Page, req.PerPage, total), nil
}

func (cs *categoryService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := cs.repo.Category.FindBySlug(ctx, req.Slug)
	if err != nil {
		cs.log.Error("Failed to check category slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to check category slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("category slug %s already taken", req.Slug)
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := cs.repo.Category.Create(ctx, category); err != nil {
		cs.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create category")
	}

	cs.log.Info("Category created", zap.String("slug", category.Slug))

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

// DeleteCategory removes the category; titles that referenced it keep
// existing with a null category.
func (cs *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := cs.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		cs.log.Error("Failed to find category for delete", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to get category")
	}
	if category == nil {
		return fmt.Errorf("category %s not found", slug)
	}

	if err := cs.repo.Category.DeleteBySlug(ctx, slug); err != nil {
		cs.log.Error("Failed to delete category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete category")
	}

	return nil
}
