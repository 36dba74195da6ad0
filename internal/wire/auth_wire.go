package wire

import (
	"review-catalog/internal/adaptor"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// Anyone may sign up and exchange a confirmation code for a token.
	r.Post("/v1/auth/signup", authHandler.SignUp)
	r.Post("/v1/auth/token", authHandler.Token)
}
