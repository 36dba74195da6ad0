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

type TitleService interface {
	GetAllTitles(ctx context.Context, filter *request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	GetTitle(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error)
	CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, id uuid.UUID) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

func (ts *titleService) GetAllTitles(ctx context.Context, filter *request.TitleListFilter, req *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		Name:         filter.Name,
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Year:         filter.Year,
	}

	titles, err := ts.repo.Title.FindAll(ctx, repoFilter, req.Limit(), req.Offset())
	if err != nil {
		ts.log.Error("Failed to get all titles", zap.Error(err))
		return nil, fmt.Errorf("failed to get titles")
	}

	total, err := ts.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		ts.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("failed to count titles")
	}

	titleResponses := make([]response.TitleResponse, len(titles))
	for i, title := range titles {
		resp, err := ts.composeTitle(ctx, title)
		if err != nil {
			return nil, err
		}
		titleResponses[i] = *resp
	}

	return response.NewPaginatedResponse(titleResponses, req.Page, req.PerPage, total), nil
}

func (ts *titleService) GetTitle(ctx context.Context, id uuid.UUID) (*response.TitleResponse, error) {
	title, err := ts.repo.Title.FindByID(ctx, id)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", id.String()))
		return nil, fmt.Errorf("failed to get title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", id.String())
	}

	return ts.composeTitle(ctx, title)
}

func (ts *titleService) CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ts.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if req.Year > time.Now().Year() {
		return nil, fmt.Errorf("invalid year %d: must not be in the future", req.Year)
	}

	categoryID, err := ts.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := ts.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
		CategoryID:  categoryID,
	}

	if err := ts.repo.Title.Create(ctx, title); err != nil {
		ts.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create title")
	}

	if err := ts.attachGenres(ctx, title.ID, genres); err != nil {
		return nil, err
	}

	ts.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	return ts.composeTitle(ctx, title)
}

func (ts *titleService) UpdateTitle(ctx context.Context, id uuid.UUID, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		ts.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := ts.repo.Title.FindByID(ctx, id)
	if err != nil {
		ts.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", id.String()))
		return nil, fmt.Errorf("failed to get title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", id.String())
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		if *req.Year > time.Now().Year() {
			return nil, fmt.Errorf("invalid year %d: must not be in the future", *req.Year)
		}
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		categoryID, err := ts.resolveCategory(ctx, req.Category)
		if err != nil {
			return nil, err
		}
		title.CategoryID = categoryID
	}

	title.UpdatedAt = time.Now()
	if err := ts.repo.Title.Update(ctx, title); err != nil {
		ts.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", id.String()))
		return nil, fmt.Errorf("failed to update title")
	}

	// A genre list in the request replaces the whole set.
	if req.Genres != nil {
		genres, err := ts.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}

		if err := ts.repo.TitleGenre.DeleteByTitleID(ctx, title.ID); err != nil {
			ts.log.Error("Failed to detach genres", zap.Error(err), zap.String("title_id", id.String()))
			return nil, fmt.Errorf("failed to update title")
		}
		if err := ts.attachGenres(ctx, title.ID, genres); err != nil {
			return nil, err
		}
	}

	ts.log.Info("Title updated", zap.String("title_id", title.ID.String()))

	return ts.composeTitle(ctx, title)
}

func (ts *titleService) DeleteTitle(ctx context.Context, id uuid.UUID) error {
	title, err := ts.repo.Title.FindByID(ctx, id)
	if err != nil {
		ts.log.Error("Failed to find title for delete", zap.Error(err), zap.String("title_id", id.String()))
		return fmt.Errorf("failed to get title")
	}
	if title == nil {
		return fmt.Errorf("title %s not found", id.String())
	}

	if err := ts.repo.TitleGenre.DeleteByTitleID(ctx, id); err != nil {
		ts.log.Error("Failed to detach genres", zap.Error(err), zap.String("title_id", id.String()))
		return fmt.Errorf("failed to delete title")
	}

	if err := ts.repo.Title.Delete(ctx, id); err != nil {
		ts.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", id.String()))
		return fmt.Errorf("failed to delete title")
	}

	return nil
}

// ==================== HELPER METHODS ====================

// composeTitle assembles the full title view: category, genres and the
// rating derived from current review scores.
func (ts *titleService) composeTitle(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = ts.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			ts.log.Error("Failed to load title category",
				zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("failed to get title")
		}
	}

	genres, err := ts.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		ts.log.Error("Failed to load title genres",
			zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to get title")
	}

	avgScore, _, err := ts.repo.Review.GetTitleRatingStats(ctx, title.ID)
	if err != nil {
		ts.log.Error("Failed to load title rating",
			zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to get title")
	}

	resp := response.TitleToResponse(title, category, genres, avgScore)
	return &resp, nil
}

func (ts *titleService) resolveCategory(ctx context.Context, slug *string) (*uuid.UUID, error) {
	if slug == nil {
		return nil, nil
	}

	category, err := ts.repo.Category.FindBySlug(ctx, *slug)
	if err != nil {
		ts.log.Error("Failed to resolve category", zap.Error(err), zap.String("slug", *slug))
		return nil, fmt.Errorf("failed to check category")
	}
	if category == nil {
		return nil, fmt.Errorf("category %s not found", *slug)
	}

	return &category.ID, nil
}

func (ts *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	genres := make([]*entity.Genre, 0, len(slugs))
	for _, slug := range slugs {
		genre, err := ts.repo.Genre.FindBySlug(ctx, slug)
		if err != nil {
			ts.log.Error("Failed to resolve genre", zap.Error(err), zap.String("slug", slug))
			return nil, fmt.Errorf("failed to check genre")
		}
		if genre == nil {
			return nil, fmt.Errorf("genre %s not found", slug)
		}
		genres = append(genres, genre)
	}
	return genres, nil
}

func (ts *titleService) attachGenres(ctx context.Context, titleID uuid.UUID, genres []*entity.Genre) error {
	if len(genres) == 0 {
		return nil
	}

	now := time.Now()
	titleGenres := make([]*entity.TitleGenre, len(genres))
	for i, genre := range genres {
		titleGenres[i] = &entity.TitleGenre{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			TitleID: titleID,
			GenreID: genre.ID,
		}
	}

	if err := ts.repo.TitleGenre.CreateBatch(ctx, titleGenres); err != nil {
		ts.log.Error("Failed to attach genres", zap.Error(err), zap.String("title_id", titleID.String()))
		return fmt.Errorf("failed to save title genres")
	}

	return nil
}
