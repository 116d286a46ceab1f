package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
	"github.com/andalan-dev/shift-planner/backend/internal/scheduler"
)

func (h *Handler) GetAssignments(w http.ResponseWriter, r *http.Request) {
	// default to the four weeks starting today
	start := time.Now()
	end := start.AddDate(0, 0, 27)

	var err error
	if param := r.URL.Query().Get("startDate"); param != "" {
		if start, err = time.Parse(scheduler.DateLayout, param); err != nil {
			h.errorResponse(w, r, "invalid startDate, expected YYYY-MM-DD")
			return
		}
	}
	if param := r.URL.Query().Get("endDate"); param != "" {
		if end, err = time.Parse(scheduler.DateLayout, param); err != nil {
			h.errorResponse(w, r, "invalid endDate, expected YYYY-MM-DD")
			return
		}
	}
	if end.Before(start) {
		h.errorResponse(w, r, "endDate is before startDate")
		return
	}

	assignments, err := h.repository.GetAssignmentsInRange(
		start.Format(scheduler.DateLayout), end.Format(scheduler.DateLayout))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignments fetched", assignments)
}

func (h *Handler) AutoSchedule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
		Algorithm string `json:"algorithm" validate:"omitempty,oneof=greedy backtrack"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	start, _ := time.Parse(scheduler.DateLayout, req.StartDate)
	end, _ := time.Parse(scheduler.DateLayout, req.EndDate)
	if end.Before(start) {
		h.errorResponse(w, r, "endDate is before startDate")
		return
	}

	strat, err := scheduler.StrategyFor(req.Algorithm, h.config.Scheduler.MaxConflicts)
	if err != nil {
		h.badRequest(w, r, err)
		return
	}

	dates := scheduler.ExpandDates(start, end, h.config.Scheduler.IncludeWeekends)
	if len(dates) == 0 {
		h.errorResponse(w, r, "no working days in the requested range")
		return
	}

	// an empty pool still goes through the engine so the caller gets a
	// summary with the full shortfall instead of a bare error
	employees, err := h.repository.GetAvailableEmployees()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	shifts, err := h.repository.GetActiveShifts()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(shifts) == 0 {
		h.errorResponse(w, r, "no active shifts to schedule")
		return
	}

	pool := make([]scheduler.Employee, 0, len(employees))
	byID := make(map[int64]*domain.Employee, len(employees))
	for _, emp := range employees {
		pool = append(pool, scheduler.Employee{
			ID:        emp.ID,
			UserID:    emp.UserID,
			Available: emp.IsAvailable,
		})
		byID[emp.ID] = emp
	}

	slots := make([]scheduler.Shift, 0, len(shifts))
	for _, shift := range shifts {
		slots = append(slots, scheduler.Shift{ID: shift.ID, Name: shift.Name})
	}

	// seed the tracker with what is already on the calendar so existing
	// rows count against capacity and employee availability
	tracker := scheduler.NewTracker(h.config.Scheduler.ShiftCapacity)
	snapshot, err := h.repository.GetAssignmentSnapshot(dates[0], dates[len(dates)-1])
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	for _, a := range snapshot {
		tracker.Seed(a.EmployeeID, a.ShiftID, a.ScheduledDate)
	}

	notifier := &amqpNotifier{h: h, employees: byID}
	committer := scheduler.NewCommitter(h.repository, notifier)

	summary, err := committer.Schedule(r.Context(), strat, pool, slots, dates, tracker)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrNoAssignments):
			h.errorResponseWithData(w, r, "no assignments could be made for the requested range", summary)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, fmt.Sprintf("scheduled %d assignments", summary.Inserted), summary)
}

func (h *Handler) ClearRange(w http.ResponseWriter, r *http.Request) {
	startParam := r.URL.Query().Get("startDate")
	endParam := r.URL.Query().Get("endDate")
	if startParam == "" || endParam == "" {
		h.errorResponse(w, r, "startDate and endDate are required")
		return
	}

	start, err := time.Parse(scheduler.DateLayout, startParam)
	if err != nil {
		h.errorResponse(w, r, "invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err := time.Parse(scheduler.DateLayout, endParam)
	if err != nil {
		h.errorResponse(w, r, "invalid endDate, expected YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		h.errorResponse(w, r, "endDate is before startDate")
		return
	}

	deleted, err := h.repository.DeleteAssignmentsInRange(startParam, endParam)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignments cleared", map[string]int64{"deleted": deleted})
}

func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, "invalid assignment ID")
		return
	}

	if err := h.repository.DeleteAssignment(id); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "assignment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "assignment deleted", nil)
}
