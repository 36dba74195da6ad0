package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// fakeUserRepo satisfies repository.UserRepository with a fixed set of
// users; only the lookups the middleware touches are meaningful.
type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) { return 0, nil }

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeUserRepo) SetConfirmationCode(ctx context.Context, userID uuid.UUID, codeHash string, expiresAt time.Time) error {
	return nil
}

func (f *fakeUserRepo) ClearConfirmationCode(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func testUser(role entity.UserRole) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     role,
	}
}

func authConfig() *utils.Config {
	return &utils.Config{JWT: utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1}}
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	var called bool
	handler := Auth(repo, authConfig(), zap.NewNop())(okHandler(&called))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/users/me", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler should not run without a token")
	}
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	var called bool
	handler := Auth(repo, authConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	var called bool
	handler := Auth(repo, authConfig(), zap.NewNop())(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestAuthRejectsUnknownUser(t *testing.T) {
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
	var called bool
	handler := Auth(repo, authConfig(), zap.NewNop())(okHandler(&called))

	token, err := utils.GenerateToken(uuid.New(), "user", "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if called {
		t.Error("next handler should not run for a deleted user's token")
	}
}

func TestAuthPopulatesIdentity(t *testing.T) {
	user := testUser(entity.RoleModerator)
	repo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}

	var called bool
	handler := Auth(repo, authConfig(), zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		ident, ok := IdentityFromContext(r)
		if !ok {
			t.Error("identity missing from context")
			return
		}
		if ident.UserID != user.ID {
			t.Errorf("identity user = %s, want %s", ident.UserID, user.ID)
		}
		if ident.Role != entity.RoleModerator {
			t.Errorf("identity role = %q, want moderator", ident.Role)
		}
	}))

	token, err := utils.GenerateToken(user.ID, string(user.Role), "test-secret", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatal("next handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestAdminGate(t *testing.T) {
	tests := []struct {
		name       string
		role       entity.UserRole
		superuser  bool
		wantStatus int
	}{
		{"plain user", entity.RoleUser, false, http.StatusForbidden},
		{"moderator", entity.RoleModerator, false, http.StatusForbidden},
		{"admin", entity.RoleAdmin, false, http.StatusOK},
		{"superuser", entity.RoleUser, true, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			handler := Admin(zap.NewNop())(okHandler(&called))

			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			ctx := utils.SetUserContext(req.Context(), uuid.New(), string(tt.role), tt.superuser)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req.WithContext(ctx))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Errorf("next called = %v with status %d", called, rec.Code)
			}
		})
	}
}
