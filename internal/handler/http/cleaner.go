package http

import (
	"encoding/json"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/profile"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CleanerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateMe(w http.ResponseWriter, r *http.Request)
}

type cleanerHandlerImpl struct {
	cleanerService profile.Service
}

func NewCleanerHandler(cleanerService profile.Service) CleanerHandler {
	return &cleanerHandlerImpl{cleanerService: cleanerService}
}

// List implements CleanerHandler.
func (h *cleanerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := profile.CleanerFilter{
		Search: queryString(r, "search"),
		Active: queryBool(r, "active"),
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
	}

	result, err := h.cleanerService.ListCleaners(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Cleaners, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// Get implements CleanerHandler.
func (h *cleanerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.cleanerService.GetCleaner(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Activate implements CleanerHandler.
func (h *cleanerHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate implements CleanerHandler.
func (h *cleanerHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *cleanerHandlerImpl) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")

	result, err := h.cleanerService.SetCleanerActive(r.Context(), id, active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Cleaner deactivated"
	if active {
		message = "Cleaner activated"
	}
	response.SuccessWithMessage(w, message, result)
}

// GetMe implements CleanerHandler.
func (h *cleanerHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	result, err := h.cleanerService.GetMyProfile(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateMe implements CleanerHandler.
func (h *cleanerHandlerImpl) UpdateMe(w http.ResponseWriter, r *http.Request) {
	var req profile.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.cleanerService.UpdateMyProfile(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Profile updated", result)
}
