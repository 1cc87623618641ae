package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/leave"
	"github.com/loomhr/leave-backend-go/internal/handler/http/middleware"
	"github.com/loomhr/leave-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	Edit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.Service
}

func NewLeaveHandler(leaveService leave.Service) LeaveHandler {
	return &leaveHandlerImpl{leaveService: leaveService}
}

func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var req leave.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.TenantID = middleware.TenantID(r)
	req.RequesterID = middleware.UserID(r)

	created, err := h.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted successfully", created)
}

func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	var req leave.DecideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Decide decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.TenantID = middleware.TenantID(r)
	req.ReviewerID = middleware.UserID(r)
	req.RequestID = chi.URLParam(r, "id")

	if err := h.leaveService.Decide(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request reviewed successfully", nil)
}

func (h *leaveHandlerImpl) Edit(w http.ResponseWriter, r *http.Request) {
	var req leave.EditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Edit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.TenantID = middleware.TenantID(r)
	req.ActorID = middleware.UserID(r)
	req.RequestID = chi.URLParam(r, "id")

	if err := h.leaveService.Edit(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request updated successfully", nil)
}

func (h *leaveHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	err := h.leaveService.Delete(r.Context(), middleware.TenantID(r), middleware.UserID(r), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request deleted successfully", nil)
}

func (h *leaveHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	result, err := h.leaveService.GetRequest(r.Context(), middleware.TenantID(r), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := parseRequestFilter(r)

	result, err := h.leaveService.ListRequests(r.Context(), middleware.TenantID(r), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((result.Total + int64(filter.Limit) - 1) / int64(filter.Limit))
	}

	response.SuccessWithMeta(w, result.Requests, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: result.Total,
		TotalPages: totalPages,
	})
}

func (h *leaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	result, err := h.leaveService.ListPendingWithSLA(r.Context(), middleware.TenantID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func parseRequestFilter(r *http.Request) leave.RequestFilter {
	q := r.URL.Query()

	filter := leave.RequestFilter{
		Page:      1,
		Limit:     20,
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		filter.Limit = limit
	}

	optional := func(key string) *string {
		if v := q.Get(key); v != "" {
			return &v
		}
		return nil
	}

	filter.EmployeeID = optional("employee_id")
	filter.Status = optional("status")
	filter.Kind = optional("kind")
	filter.StartDate = optional("start_date")
	filter.EndDate = optional("end_date")

	return filter
}
