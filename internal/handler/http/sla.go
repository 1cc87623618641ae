package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/handler/http/middleware"
	"github.com/loomhr/leave-backend-go/internal/handler/http/response"
	slaService "github.com/loomhr/leave-backend-go/internal/service/sla"
)

type SLAHandler interface {
	GetConfig(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
	GetRequestSLA(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	Trend(w http.ResponseWriter, r *http.Request)
}

type slaHandlerImpl struct {
	configs *slaService.ConfigService
	tracker *slaService.TrackerService
}

func NewSLAHandler(configs *slaService.ConfigService, tracker *slaService.TrackerService) SLAHandler {
	return &slaHandlerImpl{
		configs: configs,
		tracker: tracker,
	}
}

// GetConfig returns the tenant's effective SLA policy, defaults included.
func (h *slaHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configs.GetEffectiveConfig(r.Context(), middleware.TenantID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sla.ToConfigResponse(cfg))
}

func (h *slaHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req sla.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	req.TenantID = middleware.TenantID(r)
	req.AdminID = middleware.UserID(r)

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	updated, err := h.configs.UpdateConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "SLA config updated successfully", sla.ToConfigResponse(updated))
}

// GetRequestSLA returns the metric for one request, with the live view
// attached while the request is still pending.
func (h *slaHandlerImpl) GetRequestSLA(w http.ResponseWriter, r *http.Request) {
	requestID := chi.URLParam(r, "id")
	if requestID == "" {
		response.BadRequest(w, "Request ID is required", nil)
		return
	}

	metric, err := h.tracker.GetByRequestID(r.Context(), requestID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if metric.TenantID != middleware.TenantID(r) {
		response.HandleError(w, sla.ErrMetricNotFound)
		return
	}

	var live *sla.LiveSLA
	if metric.Status == sla.MetricStatusPending {
		l, err := h.tracker.LiveElapsed(metric, time.Now())
		if err != nil {
			response.HandleError(w, err)
			return
		}
		live = &l
	}

	response.Success(w, sla.ToMetricResponse(metric, live))
}

func (h *slaHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.tracker.Stats(r.Context(), middleware.TenantID(r), parseStatsWindow(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

func (h *slaHandlerImpl) Trend(w http.ResponseWriter, r *http.Request) {
	points, err := h.tracker.Trend(r.Context(), middleware.TenantID(r), parseStatsWindow(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, points)
}

func parseStatsWindow(r *http.Request) sla.StatsWindow {
	var window sla.StatsWindow

	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			window.From = t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			// Inclusive end of day.
			window.To = t.Add(24*time.Hour - time.Nanosecond)
		}
	}

	return window
}
