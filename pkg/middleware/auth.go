package middleware

import (
	"net/http"
	"strings"

	"review-catalog/internal/access"
	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/pkg/utils"

	"go.uber.org/zap"
)

// Auth validates the bearer token and loads the user it names. The user
// is fetched fresh so role changes and deletions take effect without
// waiting for token expiry.
func Auth(userRepo repository.UserRepository, config *utils.Config, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}

			claims, err := utils.ParseToken(parts[1], config.JWT.Secret)
			if err != nil {
				logger.Warn("Invalid or expired token", zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			userID, err := utils.ParseUUID(claims.UserID)
			if err != nil {
				logger.Warn("Malformed user ID in token claims",
					zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err),
					zap.String("user_id", claims.UserID))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}

			if user == nil {
				logger.Warn("Token for unknown or deleted user",
					zap.String("user_id", claims.UserID))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetUserContext(r.Context(), user.ID, string(user.Role), user.IsSuperuser)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Admin gates admin-only routes. Must run after Auth.
func Admin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !access.CanManageUsers(ident) {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", ident.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CatalogAdmin gates catalog writes (titles, genres, categories). Must
// run after Auth.
func CatalogAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, ok := IdentityFromContext(r)
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !access.CanMutateCatalog(ident) {
				logger.Warn("Non-admin catalog write attempt",
					zap.String("user_id", ident.UserID.String()),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext rebuilds the policy identity set by Auth.
func IdentityFromContext(r *http.Request) (access.Identity, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return access.Identity{}, false
	}

	role, _ := utils.GetRoleFromContext(r.Context())

	return access.Identity{
		UserID:      userID,
		Role:        entity.UserRole(role),
		IsSuperuser: utils.IsSuperuserFromContext(r.Context()),
	}, true
}
