package http

import (
	"encoding/json"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/checklist"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ChecklistHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type checklistHandlerImpl struct {
	checklistService checklist.Service
}

func NewChecklistHandler(checklistService checklist.Service) ChecklistHandler {
	return &checklistHandlerImpl{checklistService: checklistService}
}

// Create implements ChecklistHandler.
func (h *checklistHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req checklist.CreateItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.checklistService.CreateItems(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checklist items created", result)
}

// List implements ChecklistHandler.
func (h *checklistHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.checklistService.List(r.Context(), queryString(r, "location_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Activate implements ChecklistHandler.
func (h *checklistHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate implements ChecklistHandler.
func (h *checklistHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *checklistHandlerImpl) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")

	result, err := h.checklistService.SetActive(r.Context(), id, active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Checklist item deactivated"
	if active {
		message = "Checklist item activated"
	}
	response.SuccessWithMessage(w, message, result)
}
