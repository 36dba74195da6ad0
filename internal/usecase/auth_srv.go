package usecase

import (
	"context"
	"fmt"
	"time"

	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"
	"review-catalog/internal/dto/response"
	"review-catalog/pkg/mailer"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error)
	IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	config *utils.Config
	mail   mailer.Mailer
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	config *utils.Config,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		config: config,
		mail:   mail,
		log:    log.With(zap.String("service", "auth")),
	}
}

// SignUp registers a new identity or re-issues a confirmation code for
// an existing one. Calling it again with the same (email, username)
// pair is an idempotent resend; a fresh code replaces the stored one
// every time.
func (s *authService) SignUp(ctx context.Context, req *request.SignUpRequest) (*response.SignUpResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Check existing identities
	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}

	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}

	var user *entity.User

	switch {
	case byEmail != nil && byUsername != nil && byEmail.ID == byUsername.ID:
		// Same identity signing up again: resend with a new code.
		user = byEmail

	case byEmail != nil:
		return nil, fmt.Errorf("email already registered")

	case byUsername != nil:
		return nil, fmt.Errorf("username already taken")

	default:
		now := time.Now()
		user = &entity.User{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Username: req.Username,
			Email:    req.Email,
			Role:     entity.RoleUser,
		}

		if err := s.repo.User.Create(ctx, user); err != nil {
			s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
			return nil, fmt.Errorf("failed to create account")
		}

		s.log.Info("User registered",
			zap.String("user_id", user.ID.String()),
			zap.String("username", user.Username))
	}

	// 3. Issue a fresh single-use confirmation code
	code := utils.GenerateConfirmationCode(s.config.Confirmation.Length)

	codeHash, err := utils.HashConfirmationCode(code)
	if err != nil {
		s.log.Error("Failed to hash confirmation code", zap.Error(err))
		return nil, fmt.Errorf("failed to generate confirmation code")
	}

	expiresAt := time.Now().Add(time.Duration(s.config.Confirmation.ExpiryHours) * time.Hour)
	if err := s.repo.User.SetConfirmationCode(ctx, user.ID, codeHash, expiresAt); err != nil {
		s.log.Error("Failed to store confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to generate confirmation code")
	}

	// 4. Dispatch by mail without blocking the signup. The code is
	// already persisted, so a failed delivery only costs a resend.
	go s.deliverConfirmationCode(user.Email, user.Username, code)

	return &response.SignUpResponse{
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// IssueToken exchanges a username + confirmation code pair for a signed
// bearer token. The code is consumed on success.
func (s *authService) IssueToken(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token request validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// 2. Find user
	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	// 3. Check the code
	if user.ConfirmationCodeHash == nil {
		s.log.Warn("Token requested without pending confirmation code",
			zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid confirmation code")
	}

	if user.ConfirmationExpiresAt != nil && time.Now().After(*user.ConfirmationExpiresAt) {
		s.log.Warn("Expired confirmation code", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid confirmation code")
	}

	if !utils.CheckConfirmationCode(req.ConfirmationCode, *user.ConfirmationCodeHash) {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid confirmation code")
	}

	// 4. Consume the code before minting; a second exchange with the
	// same code must fail.
	if err := s.repo.User.ClearConfirmationCode(ctx, user.ID); err != nil {
		s.log.Error("Failed to clear confirmation code",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	// 5. Mint the bearer token
	expiry := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, string(user.Role), s.config.JWT.Secret, expiry)
	if err != nil {
		s.log.Error("Failed to generate token",
			zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to issue token")
	}

	s.log.Info("Token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{Token: token}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) deliverConfirmationCode(email, username, code string) {
	subject := "Confirmation code"
	body := fmt.Sprintf("Hello %s,\n\nYour confirmation code is: %s\n", username, code)

	if err := s.mail.Send(email, subject, body); err != nil {
		// The signup is already committed; the user can request a
		// resend, so delivery failure is a degraded outcome, not an
		// aborted one.
		s.log.Warn("Failed to deliver confirmation code",
			zap.Error(err),
			zap.String("email", email))
		return
	}

	s.log.Info("Confirmation code delivered", zap.String("email", email))
}
