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

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log,
	}
}

// GetReviews handles GET /v1/titles/{titleID}/reviews
func (h *ReviewHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	titleID, ok := h.parseTitleID(w, r)
	if !ok {
		return
	}

	req := parsePagination(r)

	reviews, err := h.service.GetReviewsByTitle(r.Context(), titleID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews retrieved successfully", reviews)
}

// GetReview handles GET /v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := h.parseTitleID(w, r)
	if !ok {
		return
	}
	reviewID, ok := h.parseReviewID(w, r)
	if !ok {
		return
	}

	review, err := h.service.GetReview(r.Context(), titleID, reviewID)
	if err != nil {
		handleServiceError(w, h.log, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review retrieved successfully", review)
}

// CreateReview handles POST /v1/titles/{titleID}/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := h.parseTitleID(w, r)
	if !ok {
		return
	}

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.CreateReview(r.Context(), titleID, userID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// UpdateReview handles PATCH /v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := h.parseTitleID(w, r)
	if !ok {
		return
	}
	reviewID, ok := h.parseReviewID(w, r)
	if !ok {
		return
	}

	ident, ok := middleware.IdentityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), ident, titleID, reviewID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /v1/titles/{titleID}/reviews/{reviewID}
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	titleID, ok := h.parseTitleID(w, r)
	if !ok {
		return
	}
	reviewID, ok := h.parseReviewID(w, r)
	if !ok {
		return
	}

	ident, ok := middleware.IdentityFromContext(r)
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.DeleteReview(r.Context(), ident, titleID, reviewID); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseNoContent(w)
}

// ==================== HELPER METHODS ====================

func (h *ReviewHandler) parseTitleID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	titleID, err := utils.ParseUUID(chi.URLParam(r, "titleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return uuid.Nil, false
	}
	return titleID, true
}

func (h *ReviewHandler) parseReviewID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	reviewID, err := utils.ParseUUID(chi.URLParam(r, "reviewID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid review ID", nil)
		return uuid.Nil, false
	}
	return reviewID, true
}
