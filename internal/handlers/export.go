package handlers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/export"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/present"
	"sales-dashboard/internal/services"
)

type writeTableFunc func(io.Writer, []models.Record, []models.Column) error

// ExportHandlers serves the raw-data table as downloads and the overview
// charts as SVG images.
type ExportHandlers struct {
	dashboard       *services.Dashboard
	logger          *slog.Logger
	topSellers      int
	defaultFileName string
}

func NewExportHandlers(dashboard *services.Dashboard, logger *slog.Logger, topSellers int, defaultFileName string) *ExportHandlers {
	return &ExportHandlers{
		dashboard:       dashboard,
		logger:          logger,
		topSellers:      topSellers,
		defaultFileName: defaultFileName,
	}
}

func (h *ExportHandlers) HandleCSV(w http.ResponseWriter, r *http.Request) {
	h.serveTable(w, r, "csv", export.ContentTypeCSV, export.WriteCSV)
}

func (h *ExportHandlers) HandleXLSX(w http.ResponseWriter, r *http.Request) {
	h.serveTable(w, r, "xlsx", export.ContentTypeXLSX, export.WriteXLSX)
}

func (h *ExportHandlers) serveTable(w http.ResponseWriter, r *http.Request, ext, contentType string, write writeTableFunc) {
	requestID := observability.GetRequestID(r.Context())

	raw, values, err := loadRaw(r, h.dashboard)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	name := values.Get(paramFileName)
	if name == "" {
		name = h.defaultFileName
	}
	fileName := export.FileName(name, ext)

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Cache-Control", cacheNoStore)

	if err := write(w, raw.Records, raw.Columns); err != nil {
		// Headers are gone; all that is left is to log.
		h.logger.Error("export failed",
			"format", ext,
			"file", fileName,
			"request_id", requestID,
			"error", err,
		)
		return
	}

	h.logger.Info("table exported",
		"format", ext,
		"file", fileName,
		"rows", raw.Filtered,
		"columns", len(raw.Columns),
		"request_id", requestID,
	)
}

// HandleChart renders one overview chart, named by the chart path value, as
// SVG for the current overview state.
func (h *ExportHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	requestID := observability.GetRequestID(r.Context())

	id := r.PathValue("chart")
	if !slices.Contains(present.ChartIDs, id) {
		errors.WriteError(w, h.logger, errors.NotFound("unknown chart").WithDetails(id), requestID)
		return
	}

	width, err := intParam(r.URL.Query(), paramWidth)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}
	height, err := intParam(r.URL.Query(), paramHeight)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	ov, _, err := loadOverview(r, h.dashboard, h.topSellers)
	if err != nil {
		errors.WriteError(w, h.logger, err, requestID)
		return
	}

	chart, _ := present.ChartByID(ov, id)

	var buf bytes.Buffer
	if err := present.RenderSVG(&buf, chart, width, height); err != nil {
		errors.WriteError(w, h.logger, errors.InternalWrap(err, "render chart"), requestID)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", cacheNoStore)
	w.Write(buf.Bytes())
}
