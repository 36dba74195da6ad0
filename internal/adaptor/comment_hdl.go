package adaptor

import (
	"encoding/json"
	"net/http"

	"review-catalog/internal/dto/request"
	"review-catalog/internal/usecase"
	"review-catalog/pkg/middleware"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log,
	}
}

// GetComments handles GET /v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.parseParentIDs(w, r)
	if !ok {
		return
	}

	req := parsePagination(r)

	comments, err := h.service.GetCommentsByReview(r.Context(), titleID, reviewID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, "Comments retrieved successfully", comments)
}

// GetComment handles GET /v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) GetComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.parseParentIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(w, r)
	if !ok {
		return
	}

	comment, err := h.service.GetComment(r.Context(), titleID, reviewID, commentID)
	if err != nil {
		handleServiceError(w, h.log, err, "get comment")
		return
	}

	utils.ResponseSuccess(w, "Comment retrieved successfully", comment)
}

// CreateComment handles POST /v1/titles/{titleID}/reviews/{reviewID}/comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.parseParentIDs(w, r)
	if !ok {
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.CreateComment(r.Context(), titleID, reviewID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, "Comment created successfully", comment)
}

// UpdateComment handles PATCH /v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) UpdateComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.parseParentIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(w, r)
	if !ok {
		return
	}

	ident, ok := middleware.IdentityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	comment, err := h.service.UpdateComment(r.Context(), ident, titleID, reviewID, commentID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update comment")
		return
	}

	utils.ResponseSuccess(w, "Comment updated successfully", comment)
}

// DeleteComment handles DELETE /v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}
func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	titleID, reviewID, ok := h.parseParentIDs(w, r)
	if !ok {
		return
	}
	commentID, ok := h.parseCommentID(w, r)
	if !ok {
		return
	}

	ident, ok := middleware.IdentityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteComment(r.Context(), ident, titleID, reviewID, commentID); err != nil {
		handleServiceError(w, h.log, err, "delete comment")
		return
	}

	utils.ResponseNoContent(w)
}

// ==================== HELPER METHODS ====================

func (h *CommentHandler) parseParentIDs(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	titleID, err := utils.ParseUUID(chi.URLParam(r, "titleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return uuid.Nil, uuid.Nil, false
	}

	reviewID, err := utils.ParseUUID(chi.URLParam(r, "reviewID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return uuid.Nil, uuid.Nil, false
	}

	return titleID, reviewID, true
}

func (h *CommentHandler) parseCommentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	commentID, err := utils.ParseUUID(chi.URLParam(r, "commentID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid comment ID", nil)
		return uuid.Nil, false
	}
	return commentID, true
}
