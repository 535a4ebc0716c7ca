package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/source"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            0,
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: 2 * time.Second,
		},
	}
}

func TestServe_RunsShutdownHooks(t *testing.T) {
	cfg := testConfig()
	httpServer := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	gs := NewGracefulServer(httpServer, discardLogger(), cfg)

	var calls atomic.Int32
	for range 3 {
		gs.RegisterShutdownHook(func(ctx context.Context) error {
			calls.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	if err := gs.Serve(ctx); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	if calls.Load() != 3 {
		t.Errorf("hooks called %d times, want 3", calls.Load())
	}
}

func TestServe_HookError(t *testing.T) {
	cfg := testConfig()
	httpServer := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	gs := NewGracefulServer(httpServer, discardLogger(), cfg)

	gs.RegisterShutdownHook(func(ctx context.Context) error {
		return fmt.Errorf("flush failed")
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := gs.Serve(ctx)
	if err == nil || !strings.Contains(err.Error(), "flush failed") {
		t.Errorf("Serve() error = %v, want hook failure", err)
	}
}

func TestServe_ListenError(t *testing.T) {
	cfg := testConfig()
	httpServer := &http.Server{Addr: "256.0.0.1:bad", Handler: http.NotFoundHandler()}
	gs := NewGracefulServer(httpServer, discardLogger(), cfg)

	if err := gs.Serve(context.Background()); err == nil {
		t.Error("expected listen error")
	}
}

type noSource struct{}

func (noSource) Fetch(context.Context, source.Query) ([]models.Record, error) {
	return nil, nil
}

func TestRoutes(t *testing.T) {
	pages := &TemplateHandlers{
		Dashboard: func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "overview") },
		RawData:   func(w http.ResponseWriter, r *http.Request) { io.WriteString(w, "raw") },
	}
	dashboard := services.NewDashboard(noSource{}, discardLogger())
	srv := NewServer(dashboard, discardLogger(), config.DashboardConfig{TopSellers: 5, ExportFileName: "dados"}, pages)

	tests := []struct {
		method string
		path   string
		status int
		body   string
	}{
		{http.MethodGet, "/", http.StatusOK, "overview"},
		{http.MethodGet, "/dados-brutos", http.StatusOK, "raw"},
		{http.MethodGet, "/outra", http.StatusNotFound, ""},
		{http.MethodPost, "/api/overview", http.StatusMethodNotAllowed, ""},
		{http.MethodGet, "/api/overview", http.StatusOK, "EMPTY_RESULT"},
		{http.MethodGet, "/charts/receita-estados", http.StatusOK, "<svg"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("status = %d, want %d", w.Code, tt.status)
			}
			if tt.body != "" && !strings.Contains(w.Body.String(), tt.body) {
				t.Errorf("body = %q, want it to contain %q", w.Body.String(), tt.body)
			}
		})
	}
}
