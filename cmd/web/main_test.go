package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"sales-dashboard/internal/config"
	"sales-dashboard/internal/middleware"
)

const upstreamBody = `[
 {"Produto":"Livro","Categoria do Produto":"livros","Preço":100.0,"Frete":10.5,"Data da Compra":"05/01/2021","Vendedor":"Ana","Local da compra":"SP","Avaliação da compra":5,"Tipo de pagamento":"boleto","Quantidade de parcelas":1,"lat":-22.19,"lon":-48.79},
 {"Produto":"Mesa","Categoria do Produto":"moveis","Preço":900.0,"Frete":80.0,"Data da Compra":"09/03/2021","Vendedor":"Bruno","Local da compra":"RJ","Avaliação da compra":3,"Tipo de pagamento":"cartao_credito","Quantidade de parcelas":10,"lat":-22.25,"lon":-42.66},
 {"Produto":"Cadeira","Categoria do Produto":"moveis","Preço":300.0,"Frete":30.0,"Data da Compra":"02/11/2020","Vendedor":"Carla","Local da compra":"MG","Avaliação da compra":1,"Tipo de pagamento":"cartao_credito","Quantidade de parcelas":3,"lat":-18.10,"lon":-44.38}
]`

type upstream struct {
	mu      sync.Mutex
	queries []url.Values
	fail    bool
}

func (u *upstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.queries = append(u.queries, r.URL.Query())
	fail := u.fail
	u.mu.Unlock()

	if fail {
		http.Error(w, "down", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	io.WriteString(w, upstreamBody)
}

func newTestHandler(t *testing.T, up *upstream) http.Handler {
	t.Helper()

	ts := httptest.NewServer(up)
	t.Cleanup(ts.Close)

	t.Setenv("UPSTREAM_URL", ts.URL+"/produtos")
	t.Setenv("SECURITY_RATE_LIMIT_ENABLED", "false")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load() error = %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return newHandler(cfg, logger, middleware.NewRateLimiter(cfg.Security))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestRoutes(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/dados-brutos", http.StatusOK, "text/html"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/api/overview", http.StatusOK, "application/json"},
		{"/api/records", http.StatusOK, "application/json"},
		{"/sse/overview", http.StatusOK, "text/event-stream"},
		{"/sse/records", http.StatusOK, "text/event-stream"},
		{"/export/csv", http.StatusOK, "text/csv"},
		{"/export/xlsx", http.StatusOK, "spreadsheetml"},
		{"/charts/receita-mensal", http.StatusOK, "image/svg+xml"},
		{"/charts/pizza", http.StatusNotFound, "application/json"},
		{"/nao-existe", http.StatusNotFound, "text/plain"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := get(h, tt.path)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}
			if w.Header().Get("X-Request-ID") == "" {
				t.Error("missing X-Request-ID")
			}
		})
	}
}

func TestOverviewAPI(t *testing.T) {
	up := &upstream{}
	h := newTestHandler(t, up)

	w := get(h, "/api/overview?regiao=Sudeste&ano=2021&top=3")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var response struct {
		Data struct {
			RecordCount int     `json:"record_count"`
			Revenue     float64 `json:"revenue"`
			TopSellers  int     `json:"top_sellers"`
			Metrics     []struct {
				Value string `json:"value"`
			} `json:"metrics"`
			Charts []struct {
				ID string `json:"id"`
			} `json:"charts"`
		} `json:"data"`
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if !response.Success || response.Data.RecordCount != 3 || response.Data.Revenue != 1300 {
		t.Errorf("response = %+v", response)
	}
	if response.Data.TopSellers != 3 {
		t.Errorf("top sellers = %d", response.Data.TopSellers)
	}
	if len(response.Data.Charts) != 10 {
		t.Errorf("charts = %d, want 10", len(response.Data.Charts))
	}
	if len(response.Data.Metrics) != 2 || response.Data.Metrics[0].Value != "R$ 1.30 mil" {
		t.Errorf("metrics = %+v", response.Data.Metrics)
	}

	q := up.queries[len(up.queries)-1]
	if q.Get("regiao") != "sudeste" || q.Get("ano") != "2021" {
		t.Errorf("upstream query = %v", q)
	}
}

func TestOverviewAPI_SellerFilterEmpty(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	w := get(h, "/api/overview?vendedor=Ninguem")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var response map[string]any
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode: %v", err)
	}
	warning, ok := response["warning"].(map[string]any)
	if !ok || warning["code"] != "EMPTY_RESULT" {
		t.Errorf("warning = %v", response["warning"])
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		fail   bool
		status int
		code   string
	}{
		{"upstream down", "/api/overview", true, http.StatusBadGateway, "DATA_FETCH_ERROR"},
		{"unknown region", "/api/overview?regiao=Marte", false, http.StatusBadRequest, "FILTER_VALIDATION_ERROR"},
		{"zero top", "/api/overview?top=0", false, http.StatusBadRequest, "FILTER_VALIDATION_ERROR"},
		{"inverted price", "/api/records?preco_min=300&preco_max=100", false, http.StatusBadRequest, "FILTER_VALIDATION_ERROR"},
		{"bad date", "/export/csv?data_inicio=2021-13-01&data_fim=2021-12-31", false, http.StatusBadRequest, "FILTER_VALIDATION_ERROR"},
		{"unknown column", "/api/records?coluna=Cor", false, http.StatusBadRequest, "FILTER_VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, &upstream{fail: tt.fail})

			w := get(h, tt.path)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d", w.Code, tt.status)
			}

			var response struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if response.Error.Code != tt.code {
				t.Errorf("code = %q, want %q", response.Error.Code, tt.code)
			}
		})
	}
}

func TestExportCSV(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	w := get(h, "/export/csv?coluna=Produto&coluna=Pre%C3%A7o&categoria=moveis&arquivo=relatorio")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="relatorio.csv"` {
		t.Errorf("content-disposition = %q", cd)
	}

	rows, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	want := [][]string{{"Produto", "Preço"}, {"Mesa", "900"}, {"Cadeira", "300"}}
	if len(rows) != len(want) {
		t.Fatalf("rows = %v", rows)
	}
	for i := range want {
		if strings.Join(rows[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, want %v", i, rows[i], want[i])
		}
	}
}

func TestSSEOverview_Signals(t *testing.T) {
	up := &upstream{}
	h := newTestHandler(t, up)

	signals := url.QueryEscape(`{"regiao":"Sul","todo_periodo":false,"ano":2021,"vendedor":["Ana"],"top":4}`)
	w := get(h, "/sse/overview?datastar="+signals)

	body := w.Body.String()
	for _, s := range []string{"event: datastar-patch-elements", "event: datastar-patch-signals", "_graficos", `id="metricas"`, "R$ 100.00 "} {
		if !strings.Contains(body, s) {
			t.Errorf("stream missing %q", s)
		}
	}

	q := up.queries[len(up.queries)-1]
	if q.Get("regiao") != "sul" || q.Get("ano") != "2021" {
		t.Errorf("upstream query = %v", q)
	}
}

func TestSSERecords_Error(t *testing.T) {
	h := newTestHandler(t, &upstream{fail: true})

	w := get(h, "/sse/records")
	body := w.Body.String()
	if !strings.Contains(body, `id="aviso"`) || !strings.Contains(body, "alert-error") {
		t.Errorf("error banner not patched: %s", body)
	}
}

func TestSSE_FailedPassClearsPage(t *testing.T) {
	tests := []struct {
		path    string
		filled  []string
		cleared []string
	}{
		{
			path:    "/sse/overview",
			filled:  []string{"metric-card", `"_graficos":[{`},
			cleared: []string{`<div id="metricas" class="metrics"></div>`, `{"_graficos":[]}`},
		},
		{
			path:   "/sse/records",
			filled: []string{"<td>Mesa</td>", "/export/csv?"},
			cleared: []string{
				`<p id="resumo"></p>`,
				`<div id="tabela"></div>`,
				`<div id="downloads" class="downloads"></div>`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			up := &upstream{}
			h := newTestHandler(t, up)

			ok := get(h, tt.path).Body.String()
			for _, s := range tt.filled {
				if !strings.Contains(ok, s) {
					t.Fatalf("successful pass missing %q", s)
				}
			}

			up.mu.Lock()
			up.fail = true
			up.mu.Unlock()

			body := get(h, tt.path).Body.String()
			if !strings.Contains(body, "alert-error") {
				t.Errorf("error banner not patched: %s", body)
			}
			for _, s := range tt.cleared {
				if !strings.Contains(body, s) {
					t.Errorf("failed pass does not clear %q", s)
				}
			}
			for _, s := range tt.filled {
				if strings.Contains(body, s) {
					t.Errorf("failed pass still carries %q", s)
				}
			}
		})
	}
}

func TestDataEndpointsNotCached(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	for _, path := range []string{"/api/overview", "/api/records", "/charts/receita-mensal", "/export/csv", "/export/xlsx"} {
		w := get(h, path)
		if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
			t.Errorf("%s Cache-Control = %q, want no-store", path, cc)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t, &upstream{})

	for _, path := range []string{"/api/overview", "/health", "/export/csv"} {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, nil))
		if w.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s = %d, want 405", path, w.Code)
		}
	}
}
