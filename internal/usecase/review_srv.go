package usecase

import (
	"context"
	"fmt"
	"time"

	"review-catalog/internal/access"
	"review-catalog/internal/data/entity"
	"review-catalog/internal/data/repository"
	"review-catalog/internal/dto/request"
	"review-catalog/internal/dto/response"
	"review-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	GetReviewsByTitle(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error)
	CreateReview(ctx context.Context, titleID, authorID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, ident access.Identity, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, ident access.Identity, titleID, reviewID uuid.UUID) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (rs *reviewService) GetReviewsByTitle(ctx context.Context, titleID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	if err := rs.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, err := rs.repo.Review.FindByTitleID(ctx, titleID, req.Limit(), req.Offset())
	if err != nil {
		rs.log.Error("Failed to get reviews", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, fmt.Errorf("failed to get reviews")
	}

	total, err := rs.repo.Review.CountByTitleID(ctx, titleID)
	if err != nil {
		rs.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, fmt.Errorf("failed to count reviews")
	}

	reviewResponses := make([]response.ReviewResponse, len(reviews))
	for i, review := range reviews {
		reviewResponses[i] = response.ReviewToResponse(review, rs.authorName(ctx, review.AuthorID))
	}

	return response.NewPaginatedResponse(reviewResponses, req.Page, req.PerPage, total), nil
}

func (rs *reviewService) GetReview(ctx context.Context, titleID, reviewID uuid.UUID) (*response.ReviewResponse, error) {
	review, err := rs.findScopedReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, rs.authorName(ctx, review.AuthorID))
	return &resp, nil
}

// CreateReview posts a review. One review per (title, author): a second
// attempt is a conflict, whether caught by the pre-check or by the
// unique constraint under a concurrent double-submit.
func (rs *reviewService) CreateReview(ctx context.Context, titleID, authorID uuid.UUID, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if err := rs.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	existing, err := rs.repo.Review.FindByTitleAndAuthor(ctx, titleID, authorID)
	if err != nil {
		rs.log.Error("Failed to check existing review",
			zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, fmt.Errorf("failed to check existing review")
	}
	if existing != nil {
		return nil, fmt.Errorf("you have already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := rs.repo.Review.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, fmt.Errorf("you have already reviewed this title")
		}
		rs.log.Error("Failed to create review",
			zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, fmt.Errorf("failed to create review")
	}

	rs.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID.String()),
		zap.Int("score", review.Score))

	resp := response.ReviewToResponse(review, rs.authorName(ctx, authorID))
	return &resp, nil
}

func (rs *reviewService) UpdateReview(ctx context.Context, ident access.Identity, titleID, reviewID uuid.UUID, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		rs.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := rs.findScopedReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.CanModifyContent(ident, review.AuthorID) {
		return nil, fmt.Errorf("permission denied: cannot modify another user's review")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := rs.repo.Review.Update(ctx, review); err != nil {
		rs.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to update review")
	}

	rs.log.Info("Review updated", zap.String("review_id", review.ID.String()))

	resp := response.ReviewToResponse(review, rs.authorName(ctx, review.AuthorID))
	return &resp, nil
}

func (rs *reviewService) DeleteReview(ctx context.Context, ident access.Identity, titleID, reviewID uuid.UUID) error {
	review, err := rs.findScopedReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	if !access.CanModifyContent(ident, review.AuthorID) {
		return fmt.Errorf("permission denied: cannot delete another user's review")
	}

	if err := rs.repo.Review.Delete(ctx, reviewID); err != nil {
		rs.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return fmt.Errorf("failed to delete review")
	}

	return nil
}

// ==================== HELPER METHODS ====================

func (rs *reviewService) requireTitle(ctx context.Context, titleID uuid.UUID) error {
	title, err := rs.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		rs.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return fmt.Errorf("failed to get title")
	}
	if title == nil {
		return fmt.Errorf("title %s not found", titleID.String())
	}
	return nil
}

// findScopedReview loads the review and checks it belongs to the title
// from the URL. A review reached through the wrong title is not found.
func (rs *reviewService) findScopedReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	if err := rs.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := rs.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		rs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to get review")
	}
	if review == nil || review.TitleID != titleID {
		return nil, fmt.Errorf("review %s not found", reviewID.String())
	}

	return review, nil
}

func (rs *reviewService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := rs.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
