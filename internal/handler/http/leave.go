package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/zeez-dotcom/test-2-hr-sub003/internal/domain/leave"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/handler/http/response"
	"github.com/zeez-dotcom/test-2-hr-sub003/internal/pkg/validator"
)

type LeaveBalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveBalanceHandlerImpl struct {
	ledger leave.LedgerService
}

func NewLeaveBalanceHandler(ledger leave.LedgerService) LeaveBalanceHandler {
	return &LeaveBalanceHandlerImpl{ledger: ledger}
}

func (h *LeaveBalanceHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	employeeID := query.Get("employee_id")
	leaveType := query.Get("leave_type")
	if employeeID == "" || leaveType == "" {
		response.BadRequest(w, "employee_id and leave_type query parameters are required", nil)
		return
	}

	asOf := time.Now()
	if raw := query.Get("as_of"); raw != "" {
		parsed, ok := validator.IsValidDate(raw)
		if !ok {
			response.BadRequest(w, "as_of must be a valid date (YYYY-MM-DD)", nil)
			return
		}
		asOf = parsed
	}

	year := asOf.Year()
	if raw := query.Get("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "year must be an integer", nil)
			return
		}
		year = parsed
	}

	balance, err := h.ledger.GetBalance(r.Context(), employeeID, leaveType, year, asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balance)
}
