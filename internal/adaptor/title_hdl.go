package adaptor

import (
	"encoding/json"
	"net/http"
	"strconv"

	"review-catalog/internal/dto/request"
	"review-catalog/internal/usecase"
	"review-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TitleHandler struct {
	service usecase.TitleService
	log     *zap.Logger
}

func NewTitleHandler(service usecase.TitleService, log *zap.Logger) *TitleHandler {
	return &TitleHandler{
		service: service,
		log:     log,
	}
}

// GetAllTitles handles GET /v1/titles
func (h *TitleHandler) GetAllTitles(w http.ResponseWriter, r *http.Request) {
	req := parsePagination(r)
	filter := parseTitleFilter(r)

	titles, err := h.service.GetAllTitles(r.Context(), filter, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get all titles")
		return
	}

	utils.ResponseSuccess(w, "Titles retrieved successfully", titles)
}

// GetTitle handles GET /v1/titles/{titleID}
func (h *TitleHandler) GetTitle(w http.ResponseWriter, r *http.Request) {
	titleID, err := utils.ParseUUID(chi.URLParam(r, "titleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	title, err := h.service.GetTitle(r.Context(), titleID)
	if err != nil {
		handleServiceError(w, h.log, err, "get title")
		return
	}

	utils.ResponseSuccess(w, "Title retrieved successfully", title)
}

// CreateTitle handles POST /v1/titles (admin only)
func (h *TitleHandler) CreateTitle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.CreateTitle(r.Context(), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create title")
		return
	}

	utils.ResponseCreated(w, "Title created successfully", title)
}

// UpdateTitle handles PATCH /v1/titles/{titleID} (admin only)
func (h *TitleHandler) UpdateTitle(w http.ResponseWriter, r *http.Request) {
	titleID, err := utils.ParseUUID(chi.URLParam(r, "titleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	var req request.UpdateTitleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	title, err := h.service.UpdateTitle(r.Context(), titleID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update title")
		return
	}

	utils.ResponseSuccess(w, "Title updated successfully", title)
}

// DeleteTitle handles DELETE /v1/titles/{titleID} (admin only)
func (h *TitleHandler) DeleteTitle(w http.ResponseWriter, r *http.Request) {
	titleID, err := utils.ParseUUID(chi.URLParam(r, "titleID"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid title ID", nil)
		return
	}

	if err := h.service.DeleteTitle(r.Context(), titleID); err != nil {
		handleServiceError(w, h.log, err, "delete title")
		return
	}

	utils.ResponseNoContent(w)
}

// parseTitleFilter reads the optional list filters from query params.
func parseTitleFilter(r *http.Request) *request.TitleListFilter {
	query := r.URL.Query()
	filter := &request.TitleListFilter{}

	if name := query.Get("name"); name != "" {
		filter.Name = &name
	}
	if category := query.Get("category"); category != "" {
		filter.Category = &category
	}
	if genre := query.Get("genre"); genre != "" {
		filter.Genre = &genre
	}
	if yearStr := query.Get("year"); yearStr != "" {
		if year, err := strconv.Atoi(yearStr); err == nil {
			filter.Year = &year
		}
	}

	return filter
}
