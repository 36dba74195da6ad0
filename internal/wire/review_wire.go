package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview configures review and comment routes on the titles
// subrouter. Reads are public; writes require authentication, and
// author/moderator checks happen in the services.
func wireReview(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.Auth(repo.User, config, log)

	r.Route("/{titleID}/reviews", func(r chi.Router) {
		r.Get("/", handler.Review.GetReviews)
		r.Get("/{reviewID}", handler.Review.GetReview)

		r.With(auth).Post("/", handler.Review.CreateReview)
		r.With(auth).Patch("/{reviewID}", handler.Review.UpdateReview)
		r.With(auth).Delete("/{reviewID}", handler.Review.DeleteReview)

		r.Route("/{reviewID}/comments", func(r chi.Router) {
			r.Get("/", handler.Comment.GetComments)
			r.Get("/{commentID}", handler.Comment.GetComment)

			r.With(auth).Post("/", handler.Comment.CreateComment)
			r.With(auth).Patch("/{commentID}", handler.Comment.UpdateComment)
			r.With(auth).Delete("/{commentID}", handler.Comment.DeleteComment)
		})
	})
}
