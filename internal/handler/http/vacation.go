package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/vacation"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/middleware"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/response"
)

type VacationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Action(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	Complete(w http.ResponseWriter, r *http.Request)
}

type VacationHandlerImpl struct {
	vacationService vacation.VacationService
}

func NewVacationHandler(vacationService vacation.VacationService) VacationHandler {
	return &VacationHandlerImpl{vacationService: vacationService}
}

func (h *VacationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req vacation.SubmitVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.vacationService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Vacation request submitted successfully", created)
}

func (h *VacationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	request, err := h.vacationService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, request)
}

func (h *VacationHandlerImpl) Action(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var req vacation.ApprovalActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Action decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.vacationService.ActOnApproval(r.Context(), id, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

type cancelRequestBody struct {
	Note *string `json:"note,omitempty"`
}

func (h *VacationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var body cancelRequestBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	updated, err := h.vacationService.Cancel(r.Context(), id, actorID, body.Note)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}

type completeRequestBody struct {
	ResumeLoans bool `json:"resume_loans"`
}

func (h *VacationHandlerImpl) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}
	actorID, ok := middleware.ActorID(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing actor identity")
		return
	}

	var body completeRequestBody
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	updated, err := h.vacationService.Complete(r.Context(), id, actorID, body.ResumeLoans)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, updated)
}
