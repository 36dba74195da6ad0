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

type CommentService interface {
	GetCommentsByReview(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error)
	CreateComment(ctx context.Context, titleID, reviewID, authorID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	UpdateComment(ctx context.Context, ident access.Identity, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, ident access.Identity, titleID, reviewID, commentID uuid.UUID) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (cs *commentService) GetCommentsByReview(ctx context.Context, titleID, reviewID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	if _, err := cs.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, err := cs.repo.Comment.FindByReviewID(ctx, reviewID, req.Limit(), req.Offset())
	if err != nil {
		cs.log.Error("Failed to get comments", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to get comments")
	}

	total, err := cs.repo.Comment.CountByReviewID(ctx, reviewID)
	if err != nil {
		cs.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to count comments")
	}

	commentResponses := make([]response.CommentResponse, len(comments))
	for i, comment := range comments {
		commentResponses[i] = response.CommentToResponse(comment, cs.authorName(ctx, comment.AuthorID))
	}

	return response.NewPaginatedResponse(commentResponses, req.Page, req.PerPage, total), nil
}

func (cs *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*response.CommentResponse, error) {
	comment, err := cs.findScopedComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, cs.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (cs *commentService) CreateComment(ctx context.Context, titleID, reviewID, authorID uuid.UUID, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if _, err := cs.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     req.Text,
	}

	if err := cs.repo.Comment.Create(ctx, comment); err != nil {
		cs.log.Error("Failed to create comment", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to create comment")
	}

	cs.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID.String()))

	resp := response.CommentToResponse(comment, cs.authorName(ctx, authorID))
	return &resp, nil
}

func (cs *commentService) UpdateComment(ctx context.Context, ident access.Identity, titleID, reviewID, commentID uuid.UUID, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		cs.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	comment, err := cs.findScopedComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}

	if !access.CanModifyContent(ident, comment.AuthorID) {
		return nil, fmt.Errorf("permission denied: cannot modify another user's comment")
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := cs.repo.Comment.Update(ctx, comment); err != nil {
		cs.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, fmt.Errorf("failed to update comment")
	}

	cs.log.Info("Comment updated", zap.String("comment_id", comment.ID.String()))

	resp := response.CommentToResponse(comment, cs.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (cs *commentService) DeleteComment(ctx context.Context, ident access.Identity, titleID, reviewID, commentID uuid.UUID) error {
	comment, err := cs.findScopedComment(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}

	if !access.CanModifyContent(ident, comment.AuthorID) {
		return fmt.Errorf("permission denied: cannot delete another user's comment")
	}

	if err := cs.repo.Comment.Delete(ctx, commentID); err != nil {
		cs.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return fmt.Errorf("failed to delete comment")
	}

	return nil
}

// ==================== HELPER METHODS ====================

// requireReview checks the whole parent chain: the title must exist and
// the review must belong to it.
func (cs *commentService) requireReview(ctx context.Context, titleID, reviewID uuid.UUID) (*entity.Review, error) {
	title, err := cs.repo.Title.FindByID(ctx, titleID)
	if err != nil {
		cs.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID.String()))
		return nil, fmt.Errorf("failed to get title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID.String())
	}

	review, err := cs.repo.Review.FindByID(ctx, reviewID)
	if err != nil {
		cs.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID.String()))
		return nil, fmt.Errorf("failed to get review")
	}
	if review == nil || review.TitleID != titleID {
		return nil, fmt.Errorf("review %s not found", reviewID.String())
	}

	return review, nil
}

func (cs *commentService) findScopedComment(ctx context.Context, titleID, reviewID, commentID uuid.UUID) (*entity.Comment, error) {
	if _, err := cs.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := cs.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		cs.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID.String()))
		return nil, fmt.Errorf("failed to get comment")
	}
	if comment == nil || comment.ReviewID != reviewID {
		return nil, fmt.Errorf("comment %s not found", commentID.String())
	}

	return comment, nil
}

func (cs *commentService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := cs.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}
