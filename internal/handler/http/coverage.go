package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/coverage"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/response"
)

type CoverageHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
	ValidateAssignment(w http.ResponseWriter, r *http.Request)
}

type CoverageHandlerImpl struct {
	coverageService coverage.CoverageService
}

func NewCoverageHandler(coverageService coverage.CoverageService) CoverageHandler {
	return &CoverageHandlerImpl{coverageService: coverageService}
}

func (h *CoverageHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := coverage.CheckCoverageRequest{
		StartDate: query.Get("start"),
		EndDate:   query.Get("end"),
	}
	if raw := query.Get("threshold"); raw != "" {
		threshold, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "threshold must be an integer", nil)
			return
		}
		req.Threshold = threshold
	}

	report, err := h.coverageService.Check(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, report)
}

func (h *CoverageHandlerImpl) ValidateAssignment(w http.ResponseWriter, r *http.Request) {
	var req coverage.ValidateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.coverageService.ValidateAssignment(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "No conflict with approved leave", nil)
}
