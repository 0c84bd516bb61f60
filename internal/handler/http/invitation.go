package http

import (
	"encoding/json"
	"net/http"

	"github.com/cleantrack/cleantrack-backend-go/internal/domain/invitation"
	"github.com/cleantrack/cleantrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type InvitationHandler interface {
	Invite(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Resend(w http.ResponseWriter, r *http.Request)
	Revoke(w http.ResponseWriter, r *http.Request)
	Accept(w http.ResponseWriter, r *http.Request)
}

type invitationHandlerImpl struct {
	invitationService invitation.Service
}

func NewInvitationHandler(invitationService invitation.Service) InvitationHandler {
	return &invitationHandlerImpl{invitationService: invitationService}
}

// Invite implements InvitationHandler.
func (h *invitationHandlerImpl) Invite(w http.ResponseWriter, r *http.Request) {
	var req invitation.InviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.invitationService.Invite(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invitation sent", result)
}

// List implements InvitationHandler.
func (h *invitationHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.invitationService.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Resend implements InvitationHandler.
func (h *invitationHandlerImpl) Resend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.invitationService.Resend(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation resent", result)
}

// Revoke implements InvitationHandler.
func (h *invitationHandlerImpl) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.invitationService.Revoke(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation revoked", nil)
}

// Accept implements InvitationHandler. Public endpoint redeemed by token.
func (h *invitationHandlerImpl) Accept(w http.ResponseWriter, r *http.Request) {
	var req invitation.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.invitationService.Accept(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invitation accepted", nil)
}
