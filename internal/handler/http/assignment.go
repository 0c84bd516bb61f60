package http

import (
	"encoding/json"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/assignment"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AssignmentHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Activate(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
}

type assignmentHandlerImpl struct {
	assignmentService assignment.Service
}

func NewAssignmentHandler(assignmentService assignment.Service) AssignmentHandler {
	return &assignmentHandlerImpl{assignmentService: assignmentService}
}

// Create implements AssignmentHandler.
func (h *assignmentHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req assignment.CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.assignmentService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Assignment created", result)
}

// List implements AssignmentHandler.
func (h *assignmentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := assignment.Filter{
		CleanerID:  queryString(r, "cleaner_id"),
		LocationID: queryString(r, "location_id"),
		Active:     queryBool(r, "active"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
	}

	result, err := h.assignmentService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Assignments, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages(result.TotalCount, result.Limit),
	})
}

// ListMine implements AssignmentHandler.
func (h *assignmentHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.assignmentService.ListMine(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Activate implements AssignmentHandler.
func (h *assignmentHandlerImpl) Activate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, true)
}

// Deactivate implements AssignmentHandler.
func (h *assignmentHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	h.setActive(w, r, false)
}

func (h *assignmentHandlerImpl) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id := chi.URLParam(r, "id")

	result, err := h.assignmentService.SetActive(r.Context(), id, active)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Assignment deactivated"
	if active {
		message = "Assignment activated"
	}
	response.SuccessWithMessage(w, message, result)
}
