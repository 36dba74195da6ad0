package repository

import (
	"context"
	"fmt"

	"review-catalog/internal/data/entity"
	"review-catalog/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type TitleGenreRepository interface {
	// Bridge table operations
	Create(ctx context.Context, titleGenre *entity.TitleGenre) error
	CreateBatch(ctx context.Context, titleGenres []*entity.TitleGenre) error
	DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error
	DeleteByGenreID(ctx context.Context, genreID uuid.UUID) error
}

type titleGenreRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTitleGenreRepository(db database.PgxIface, log *zap.Logger) TitleGenreRepository {
	return &titleGenreRepository{
		db:  db,
		log: log.With(zap.String("repository", "title_genre")),
	}
}

func (r *titleGenreRepository) Create(ctx context.Context, titleGenre *entity.TitleGenre) error {
	query := `INSERT INTO title_genres (id, title_id, genre_id, created_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.Exec(ctx, query,
		titleGenre.ID,
		titleGenre.TitleID,
		titleGenre.GenreID,
		titleGenre.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create title_genre",
			zap.Error(err),
			zap.String("title_id", titleGenre.TitleID.String()),
			zap.String("genre_id", titleGenre.GenreID.String()),
		)
		return fmt.Errorf("create title_genre: %w", err)
	}

	return nil
}

func (r *titleGenreRepository) CreateBatch(ctx context.Context, titleGenres []*entity.TitleGenre) error {
	if len(titleGenres) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin title_genre batch: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `INSERT INTO title_genres (id, title_id, genre_id, created_at) VALUES ($1, $2, $3, $4)`

	for _, tg := range titleGenres {
		if _, err := tx.Exec(ctx, query, tg.ID, tg.TitleID, tg.GenreID, tg.CreatedAt); err != nil {
			r.log.Error("Failed to insert title_genre in batch",
				zap.Error(err),
				zap.String("title_id", tg.TitleID.String()),
				zap.String("genre_id", tg.GenreID.String()),
			)
			return fmt.Errorf("insert title_genre batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit title_genre batch: %w", err)
	}

	return nil
}

func (r *titleGenreRepository) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	query := `DELETE FROM title_genres WHERE title_id = $1`

	_, err := r.db.Exec(ctx, query, titleID)
	if err != nil {
		r.log.Error("Failed to delete title_genres by title ID",
			zap.Error(err),
			zap.String("title_id", titleID.String()),
		)
		return fmt.Errorf("delete title_genres by title ID %s: %w", titleID.String(), err)
	}

	return nil
}

func (r *titleGenreRepository) DeleteByGenreID(ctx context.Context, genreID uuid.UUID) error {
	query := `DELETE FROM title_genres WHERE genre_id = $1`

	_, err := r.db.Exec(ctx, query, genreID)
	if err != nil {
		r.log.Error("Failed to delete title_genres by genre ID",
			zap.Error(err),
			zap.String("genre_id", genreID.String()),
		)
		return fmt.Errorf("delete title_genres by genre ID %s: %w", genreID.String(), err)
	}

	return nil
}
