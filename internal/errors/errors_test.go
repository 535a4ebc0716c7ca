package errors

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{Internal("x"), http.StatusInternalServerError},
		{BadRequest("x"), http.StatusBadRequest},
		{NotFound("x"), http.StatusNotFound},
		{RateLimit("x"), http.StatusTooManyRequests},
		{DataFetch(fmt.Errorf("boom"), "x"), http.StatusBadGateway},
		{FilterValidation("x"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if tt.err.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", tt.err.StatusCode, tt.want)
			}
		})
	}
}

func TestIsAndAs(t *testing.T) {
	cause := fmt.Errorf("dial tcp: refused")
	wrapped := fmt.Errorf("overview: %w", DataFetch(cause, "fetch products"))

	if !Is(wrapped, CodeDataFetch) {
		t.Error("Is should see through fmt wrapping")
	}
	if Is(wrapped, CodeFilterValidation) {
		t.Error("Is matched the wrong code")
	}

	plain := As(fmt.Errorf("plain"))
	if plain.Code != CodeInternal {
		t.Errorf("As(plain).Code = %s, want %s", plain.Code, CodeInternal)
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, discardLogger(), FilterValidation("bad range").WithDetails("Price.Low: ltefield"), "req-1")

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}

	var response struct {
		Error struct {
			Code      string `json:"code"`
			Details   string `json:"details"`
			RequestID string `json:"request_id"`
		} `json:"error"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if response.Success {
		t.Error("success should be false")
	}
	if response.Error.Code != string(CodeFilterValidation) {
		t.Errorf("code = %q", response.Error.Code)
	}
	if response.Error.RequestID != "req-1" {
		t.Errorf("request_id = %q", response.Error.RequestID)
	}
	if response.Error.Details == "" {
		t.Error("details should be kept")
	}
}

func TestWriteSuccessWithWarning(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccessWithWarning(w, []int{}, EmptyResult())

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	warning, ok := response["warning"].(map[string]any)
	if !ok {
		t.Fatal("expected warning object")
	}
	if warning["code"] != string(CodeEmptyResult) {
		t.Errorf("warning code = %v", warning["code"])
	}
}
