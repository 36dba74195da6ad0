package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT:          utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1},
		Confirmation: utils.ConfirmationConfig{Length: 6, ExpiryHours: 24},
	}
}

func newAuthFixture(users ...*entity.User) (AuthService, *fakeUserRepo) {
	userRepo := newFakeUserRepo(users...)
	repo := &repository.Repository{User: userRepo}
	srv := NewAuthService(repo, testConfig(), &fakeMailer{}, zap.NewNop())
	return srv, userRepo
}

func pendingUser(username, email, code string) *entity.User {
	hash, _ := utils.HashConfirmationCode(code)
	expires := time.Now().Add(time.Hour)
	return &entity.User{
		Base:                  entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Username:              username,
		Email:                 email,
		Role:                  entity.RoleUser,
		ConfirmationCodeHash:  &hash,
		ConfirmationExpiresAt: &expires,
	}
}

func TestSignUpCreatesUser(t *testing.T) {
	srv, userRepo := newAuthFixture()

	resp, err := srv.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "reader@example.com",
		Username: "reader",
	})
	if err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if resp.Username != "reader" || resp.Email != "reader@example.com" {
		t.Errorf("SignUp() response = %+v", resp)
	}

	user, _ := userRepo.FindByUsername(context.Background(), "reader")
	if user == nil {
		t.Fatal("user was not stored")
	}
	if user.Role != entity.RoleUser {
		t.Errorf("new user role = %q, want %q", user.Role, entity.RoleUser)
	}
	if user.ConfirmationCodeHash == nil {
		t.Error("confirmation code was not stored")
	}
}

func TestSignUpResendReplacesCode(t *testing.T) {
	user := pendingUser("reader", "reader@example.com", "111111")
	oldHash := *user.ConfirmationCodeHash
	srv, userRepo := newAuthFixture(user)

	if _, err := srv.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "reader@example.com",
		Username: "reader",
	}); err != nil {
		t.Fatalf("repeat SignUp() error = %v", err)
	}

	stored, _ := userRepo.FindByUsername(context.Background(), "reader")
	if stored.ConfirmationCodeHash == nil || *stored.ConfirmationCodeHash == oldHash {
		t.Error("resend should replace the stored code hash")
	}
}

func TestSignUpEmailTaken(t *testing.T) {
	srv, _ := newAuthFixture(pendingUser("reader", "reader@example.com", "111111"))

	_, err := srv.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "reader@example.com",
		Username: "someone-else",
	})
	if err == nil || !strings.Contains(err.Error(), "already registered") {
		t.Errorf("SignUp() error = %v, want email conflict", err)
	}
}

func TestSignUpUsernameTaken(t *testing.T) {
	srv, _ := newAuthFixture(pendingUser("reader", "reader@example.com", "111111"))

	_, err := srv.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "other@example.com",
		Username: "reader",
	})
	if err == nil || !strings.Contains(err.Error(), "already taken") {
		t.Errorf("SignUp() error = %v, want username conflict", err)
	}
}

func TestSignUpRejectsReservedUsername(t *testing.T) {
	srv, _ := newAuthFixture()

	_, err := srv.SignUp(context.Background(), &request.SignUpRequest{
		Email:    "me@example.com",
		Username: "me",
	})
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("SignUp() error = %v, want validation failure for reserved name", err)
	}
}

func TestIssueToken(t *testing.T) {
	user := pendingUser("reader", "reader@example.com", "483920")
	srv, userRepo := newAuthFixture(user)

	resp, err := srv.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "483920",
	})
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}

	claims, err := utils.ParseToken(resp.Token, "test-secret")
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.UserID != user.ID.String() {
		t.Errorf("token user = %q, want %q", claims.UserID, user.ID.String())
	}

	// The code is single-use
	stored, _ := userRepo.FindByID(context.Background(), user.ID)
	if stored.ConfirmationCodeHash != nil {
		t.Error("confirmation code should be cleared after exchange")
	}

	if _, err := srv.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "483920",
	}); err == nil {
		t.Error("second exchange with the same code should fail")
	}
}

func TestIssueTokenWrongCode(t *testing.T) {
	srv, _ := newAuthFixture(pendingUser("reader", "reader@example.com", "483920"))

	_, err := srv.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "000000",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid confirmation code") {
		t.Errorf("IssueToken() error = %v, want invalid code", err)
	}
}

func TestIssueTokenExpiredCode(t *testing.T) {
	user := pendingUser("reader", "reader@example.com", "483920")
	expired := time.Now().Add(-time.Minute)
	user.ConfirmationExpiresAt = &expired
	srv, _ := newAuthFixture(user)

	_, err := srv.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "483920",
	})
	if err == nil || !strings.Contains(err.Error(), "invalid confirmation code") {
		t.Errorf("IssueToken() error = %v, want invalid code", err)
	}
}

func TestIssueTokenUnknownUser(t *testing.T) {
	srv, _ := newAuthFixture()

	_, err := srv.IssueToken(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("IssueToken() error = %v, want not found", err)
	}
}
