package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures user routes. The static /me segment takes routing
// priority over {username}, so a user literally named "me" could never
// be addressed here; signup rejects that name up front.
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/v1/users", func(r chi.Router) {
		// ==================== SELF-SERVICE ROUTES ====================
		// Any authenticated user can read and edit their own profile.
		r.With(middleware.Auth(repo.User, config, log)).Group(func(r chi.Router) {
			r.Get("/me", userHandler.GetMe)
			r.Patch("/me", userHandler.UpdateMe)
		})

		// ==================== ADMIN ROUTES ====================
		// User management requires authentication AND the admin role.
		r.With(
			middleware.Auth(repo.User, config, log),
			middleware.Admin(log),
		).Group(func(r chi.Router) {
			r.Get("/", userHandler.GetAllUsers)
			r.Post("/", userHandler.CreateUser)
			r.Get("/{username}", userHandler.GetUser)
			r.Patch("/{username}", userHandler.UpdateUser)
			r.Delete("/{username}", userHandler.DeleteUser)
		})
	})
}
