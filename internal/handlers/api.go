package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/export"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/present"
	"sales-dashboard/internal/services"
)

// Data responses reflect the upstream at request time.
const cacheNoStore = "no-store"

type APIHandlers struct {
	dashboard  *services.Dashboard
	logger     *slog.Logger
	topSellers int
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger, topSellers int) *APIHandlers {
	return &APIHandlers{
		dashboard:  dashboard,
		logger:     logger,
		topSellers: topSellers,
	}
}

type overviewResponse struct {
	*services.Overview
	Metrics []present.Metric `json:"metrics"`
	Charts  []present.Chart  `json:"charts"`
}

func (h *APIHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	ov, _, err := loadOverview(r, h.dashboard, h.topSellers)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	data := overviewResponse{
		Overview: ov,
		Metrics:  present.Metrics(ov),
		Charts:   present.OverviewCharts(ov),
	}

	headers := map[string]string{
		"Cache-Control": cacheNoStore,
	}

	errors.WriteSuccessWithHeaders(w, data, ov.Warning, headers)
}

type recordsResponse struct {
	Columns  []models.Column     `json:"columns"`
	Rows     [][]string          `json:"rows"`
	Total    int                 `json:"total"`
	Filtered int                 `json:"filtered"`
	Options  services.RawOptions `json:"options"`
}

func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	raw, _, err := loadRaw(r, h.dashboard)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	rows := make([][]string, 0, len(raw.Records))
	for _, rec := range raw.Records {
		rows = append(rows, export.Row(rec, raw.Columns))
	}

	data := recordsResponse{
		Columns:  raw.Columns,
		Rows:     rows,
		Total:    raw.Total,
		Filtered: raw.Filtered,
		Options:  raw.Options,
	}

	headers := map[string]string{
		"Cache-Control": cacheNoStore,
	}

	errors.WriteSuccessWithHeaders(w, data, raw.Warning, headers)
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {

	stats := h.dashboard.Stats()

	errors.WriteSuccess(w, stats)
}
