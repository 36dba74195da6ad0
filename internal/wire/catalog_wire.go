package wire

import (
	"net/http"

	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog configures category, genre and title routes. Reads are
// public; writes require authentication and the admin role.
func wireCatalog(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	catalogWrite := []func(http.Handler) http.Handler{
		middleware.Auth(repo.User, config, log),
		middleware.CatalogAdmin(log),
	}

	// ==================== CATEGORIES ====================
	r.Route("/v1/categories", func(r chi.Router) {
		r.Get("/", handler.Category.GetAllCategories)

		r.With(catalogWrite...).Post("/", handler.Category.CreateCategory)
		r.With(catalogWrite...).Delete("/{slug}", handler.Category.DeleteCategory)
	})

	// ==================== GENRES ====================
	r.Route("/v1/genres", func(r chi.Router) {
		r.Get("/", handler.Genre.GetAllGenres)

		r.With(catalogWrite...).Post("/", handler.Genre.CreateGenre)
		r.With(catalogWrite...).Delete("/{slug}", handler.Genre.DeleteGenre)
	})

	// ==================== TITLES ====================
	r.Route("/v1/titles", func(r chi.Router) {
		r.Get("/", handler.Title.GetAllTitles)
		r.Get("/{titleID}", handler.Title.GetTitle)

		r.With(catalogWrite...).Post("/", handler.Title.CreateTitle)
		r.With(catalogWrite...).Patch("/{titleID}", handler.Title.UpdateTitle)
		r.With(catalogWrite...).Delete("/{titleID}", handler.Title.DeleteTitle)

		// Reviews and comments live under their title.
		wireReview(r, handler, repo, config, log)
	})
}
