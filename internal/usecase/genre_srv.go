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

type GenreService interface {
	GetAllGenres(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (gs *genreService) GetAllGenres(ctx context.Context, search string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := gs.repo.Genre.FindAll(ctx, search, req.Limit(), req.Offset())
	if err != nil {
		gs.log.Error("Failed to get all genres", zap.Error(err), zap.String("search", search))
		return nil, fmt.Errorf("failed to get genres")
	}

	total, err := gs.repo.Genre.CountAll(ctx, search)
	if err != nil {
		gs.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("failed to count genres")
	}

	genreResponses := make([]response.GenreResponse, len(genres))
	for i, genre := range genres {
		genreResponses[i] = response.GenreToResponse(genre)
	}

	return response.NewPaginatedResponse(genreResponses, req.Page, req.PerPage, total), nil
}

func (gs *genreService) CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		gs.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := gs.repo.Genre.FindBySlug(ctx, req.Slug)
	if err != nil {
		gs.log.Error("Failed to check genre slug", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to check genre slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("genre slug %s already taken", req.Slug)
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := gs.repo.Genre.Create(ctx, genre); err != nil {
		gs.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create genre")
	}

	gs.log.Info("Genre created", zap.String("slug", genre.Slug))

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

// DeleteGenre removes the genre and detaches it from every title that
// carried it. The titles themselves survive.
func (gs *genreService) DeleteGenre(ctx context.Context, slug string) error {
	genre, err := gs.repo.Genre.FindBySlug(ctx, slug)
	if err != nil {
		gs.log.Error("Failed to find genre for delete", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to get genre")
	}
	if genre == nil {
		return fmt.Errorf("genre %s not found", slug)
	}

	if err := gs.repo.TitleGenre.DeleteByGenreID(ctx, genre.ID); err != nil {
		gs.log.Error("Failed to detach genre from titles", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete genre")
	}

	if err := gs.repo.Genre.DeleteBySlug(ctx, slug); err != nil {
		gs.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete genre")
	}

	return nil
}
