package server

import (
	"log/slog"
	"net/http"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/handlers"
	"sales-dashboard/internal/services"
)

type Server struct {
	mux            *http.ServeMux
	logger         *slog.Logger
	apiHandlers    *handlers.APIHandlers
	sseHandlers    *handlers.SSEHandlers
	exportHandlers *handlers.ExportHandlers
}

type TemplateHandlers struct {
	Dashboard http.HandlerFunc
	RawData   http.HandlerFunc
}

func NewServer(dashboard *services.Dashboard, logger *slog.Logger, cfg config.DashboardConfig, templateHandlers *TemplateHandlers) *Server {
	s := &Server{
		mux:            http.NewServeMux(),
		logger:         logger,
		apiHandlers:    handlers.NewAPIHandlers(dashboard, logger, cfg.TopSellers),
		sseHandlers:    handlers.NewSSEHandlers(dashboard, logger, cfg.TopSellers),
		exportHandlers: handlers.NewExportHandlers(dashboard, logger, cfg.TopSellers, cfg.ExportFileName),
	}
	s.setupRoutes(templateHandlers)
	return s
}

func (s *Server) setupRoutes(templateHandlers *TemplateHandlers) {
	// Pages
	s.mux.HandleFunc("GET /{$}", templateHandlers.Dashboard)
	s.mux.HandleFunc("GET /dados-brutos", templateHandlers.RawData)
	s.mux.HandleFunc("GET /health", s.apiHandlers.HandleHealth)
	s.mux.HandleFunc("GET /admin/stats", s.apiHandlers.HandleStats)

	// REST API endpoints
	s.mux.HandleFunc("GET /api/overview", s.apiHandlers.HandleOverview)
	s.mux.HandleFunc("GET /api/records", s.apiHandlers.HandleRecords)

	// Datastar SSE endpoints
	s.mux.HandleFunc("GET /sse/overview", s.sseHandlers.HandleOverview)
	s.mux.HandleFunc("GET /sse/records", s.sseHandlers.HandleRecords)

	// Downloads and images
	s.mux.HandleFunc("GET /export/csv", s.exportHandlers.HandleCSV)
	s.mux.HandleFunc("GET /export/xlsx", s.exportHandlers.HandleXLSX)
	s.mux.HandleFunc("GET /charts/{chart}", s.exportHandlers.HandleChart)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
