package handler

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

func (h *Handler) CreateLeaveRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssignmentID int64  `json:"assignmentID" validate:"required"`
		Reason       string `json:"reason" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	employee, err := h.repository.GetEmployeeByUserID(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no employee profile for this account")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignment, err := h.repository.GetAssignmentByID(req.AssignmentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "assignment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if assignment.EmployeeID != employee.ID {
		h.errorResponse(w, r, "assignment belongs to another employee")
		return
	}
	if assignment.Status != domain.AssignmentActive {
		h.errorResponse(w, r, "assignment is no longer active")
		return
	}

	open, err := h.repository.HasOpenLeaveRequest(assignment.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if open {
		h.errorResponse(w, r, "assignment already has an open leave request")
		return
	}

	lr := &domain.LeaveRequest{
		EmployeeID:   employee.ID,
		AssignmentID: assignment.ID,
		Reason:       req.Reason,
		Status:       domain.LeavePending,
	}

	if err := h.repository.CreateLeaveRequest(lr); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave request submitted", lr)
}

func (h *Handler) GetMyLeaveRequests(w http.ResponseWriter, r *http.Request) {
	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	employee, err := h.repository.GetEmployeeByUserID(myInfo.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "no employee profile for this account")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	requests, err := h.repository.GetLeaveRequestsByEmployee(employee.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "leave requests fetched", requests)
}

func (h *Handler) GetPendingLeaveRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.repository.GetPendingLeaveRequests()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "pending leave requests fetched", requests)
}

func (h *Handler) GetAvailableReplacements(w http.ResponseWriter, r *http.Request) {
	idParam := r.URL.Query().Get("leaveRequestID")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid leave request ID")
		return
	}

	detail, err := h.repository.GetLeaveRequestDetail(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "leave request not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	candidates, err := h.repository.GetReplacementCandidates(detail.ScheduledDate, detail.EmployeeID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "replacement candidates fetched", candidates)
}

func (h *Handler) ApproveLeaveRequest(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid leave request ID")
		return
	}

	var req struct {
		ReplacementEmployeeID int64   `json:"replacementEmployeeID" validate:"required"`
		AdminNotes            *string `json:"adminNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	assignmentID, detail, replacement, err := approveReplacement(h.repository, id, req.ReplacementEmployeeID, myInfo.ID, req.AdminNotes)
	if err != nil {
		switch {
		case isApprovalRefusal(err):
			h.errorResponse(w, r, err.Error())
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	err = h.publishNotification(domain.NotificationMessage{
		Type:   domain.NotifyReplacementAssigned,
		UserID: replacement.UserID,
		To:     replacement.Email,
		Data: domain.ReplacementAssignedData{
			FullName:     replacement.FullName,
			ReplacedName: detail.EmployeeName,
			ShiftName:    detail.ShiftName,
			Date:         detail.ScheduledDate,
		},
	})
	if err != nil {
		slog.Warn("replacement notification publish failed", "employee", replacement.ID, "error", err)
	}

	h.successResponse(w, r, "leave request approved", map[string]int64{"replacementAssignmentID": assignmentID})
}

func (h *Handler) RejectLeaveRequest(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid leave request ID")
		return
	}

	var req struct {
		AdminNotes *string `json:"adminNotes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	myInfo := r.Context().Value(MyInfoCtx).(*domain.User)

	rejected, err := h.repository.RejectLeaveRequest(id, myInfo.ID, req.AdminNotes)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !rejected {
		h.errorResponse(w, r, "leave request not found or already processed")
		return
	}

	h.successResponse(w, r, "leave request rejected", nil)
}
