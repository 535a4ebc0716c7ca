package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/export"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/present"
	"sales-dashboard/internal/services"
)

const maxTableRows = 200

var fragments = template.Must(template.New("fragments").Parse(`
{{define "notice"}}<div id="aviso">{{if .}}<div class="alert alert-{{.Kind}}" role="alert"><strong>{{.Message}}</strong>{{if .Details}} <small>{{.Details}}</small>{{end}}</div>{{end}}</div>{{end}}

{{define "metrics"}}<div id="metricas" class="metrics">{{range .}}<div class="metric-card"><span class="metric-label">{{.Label}}</span><span class="metric-value">{{.Value}}</span></div>{{end}}</div>{{end}}

{{define "select"}}<select id="{{.ID}}" multiple data-bind="{{.Signal}}" data-on:change="{{.OnChange}}">{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Value}}</option>{{end}}</select>{{end}}

{{define "summary"}}<p id="resumo">A tabela possui <span class="highlight">{{.Rows}}</span> linhas e <span class="highlight">{{.Columns}}</span> colunas{{if .Truncated}} (exibindo as primeiras {{.Shown}}){{end}}</p>{{end}}

{{define "table"}}<div id="tabela">
<table class="modern-table">
<thead><tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr></thead>
<tbody>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</tbody>
</table>
</div>{{end}}

{{define "downloads"}}<div id="downloads" class="downloads"><a class="button" href="/export/csv?{{.}}">Baixar CSV</a> <a class="button" href="/export/xlsx?{{.}}">Baixar XLSX</a></div>{{end}}

{{define "dates"}}<div id="faixa-datas" class="date-range"><input type="date" data-bind="data_inicio" min="{{.From}}" max="{{.To}}" data-on:change="{{.OnChange}}"> <input type="date" data-bind="data_fim" min="{{.From}}" max="{{.To}}" data-on:change="{{.OnChange}}"></div>{{end}}
`))

// Datastar actions. Typed as JS so html/template keeps them verbatim inside
// data-on attributes.
const (
	refreshOverview template.JS = "@get('/sse/overview')"
	refreshRecords  template.JS = "@get('/sse/records')"
)

type notice struct {
	Kind    string
	Message string
	Details string
}

type option struct {
	Value    string
	Selected bool
}

type selectData struct {
	ID       string
	Signal   string
	OnChange template.JS
	Options  []option
}

type summaryData struct {
	Rows      int
	Columns   int
	Shown     int
	Truncated bool
}

type tableData struct {
	Columns []models.Column
	Rows    [][]string
}

type datesData struct {
	From     string
	To       string
	OnChange template.JS
}

type SSEHandlers struct {
	dashboard  *services.Dashboard
	logger     *slog.Logger
	topSellers int
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger, topSellers int) *SSEHandlers {
	return &SSEHandlers{
		dashboard:  dashboard,
		logger:     logger,
		topSellers: topSellers,
	}
}

func render(name string, data any) (string, error) {
	var buf strings.Builder
	err := fragments.ExecuteTemplate(&buf, name, data)
	return buf.String(), err
}

func selectOptions(values, selected []string) []option {
	opts := make([]option, 0, len(values))
	for _, v := range values {
		opts = append(opts, option{Value: v, Selected: slices.Contains(selected, v)})
	}
	return opts
}

// pageReset blanks what a previous pass patched into a page.
type pageReset struct {
	elements []string
	signals  string
}

var (
	overviewReset = pageReset{
		elements: []string{`<div id="metricas" class="metrics"></div>`},
		signals:  `{"_graficos":[]}`,
	}
	recordsReset = pageReset{
		elements: []string{
			`<p id="resumo"></p>`,
			`<div id="tabela"></div>`,
			`<div id="downloads" class="downloads"></div>`,
		},
	}
)

// patchError reports err in the notice element and clears the page so no
// stale data stays under the banner. The SSE stream has already committed a
// 200 status.
func (h *SSEHandlers) patchError(sse *datastar.ServerSentEventGenerator, r *http.Request, err error, reset pageReset) {
	appErr := errors.As(err)
	appErr.RequestID = observability.GetRequestID(r.Context())
	errors.LogError(h.logger, appErr)

	html, renderErr := render("notice", &notice{Kind: "error", Message: appErr.Message, Details: appErr.Details})
	if renderErr != nil {
		h.logger.Error("render notice", "error", renderErr)
		return
	}
	sse.PatchElements(html)

	for _, el := range reset.elements {
		sse.PatchElements(el)
	}
	if reset.signals != "" {
		sse.PatchSignals([]byte(reset.signals))
	}
}

func warningNotice(w *errors.Warning) *notice {
	if w == nil {
		return nil
	}
	return &notice{Kind: "warning", Message: w.Message}
}

// HandleOverview recomputes the overview for the page's signals and patches
// the metrics, seller options and notice, with the chart data as signals.
func (h *SSEHandlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	ov, _, err := loadOverview(r, h.dashboard, h.topSellers)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		h.patchError(sse, r, err, overviewReset)
		return
	}

	chartsJSON, err := json.Marshal(map[string]any{
		"_graficos": present.OverviewCharts(ov),
	})
	if err != nil {
		h.logger.Error("marshal charts", "error", err)
		return
	}

	parts := []struct {
		name string
		data any
	}{
		{"notice", warningNotice(ov.Warning)},
		{"metrics", present.Metrics(ov)},
		{"select", selectData{
			ID:       "vendedores",
			Signal:   paramSeller,
			OnChange: refreshOverview,
			Options:  selectOptions(ov.SellerOptions, ov.SelectedSellers),
		}},
	}
	for _, p := range parts {
		html, err := render(p.name, p.data)
		if err != nil {
			h.logger.Error("render fragment", "fragment", p.name, "error", err)
			return
		}
		sse.PatchElements(html)
	}

	sse.PatchSignals(chartsJSON)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRecords applies the raw-data filters and patches the table, its
// summary, the filter option lists and the download links.
func (h *SSEHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	raw, values, err := loadRaw(r, h.dashboard)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		h.patchError(sse, r, err, recordsReset)
		return
	}

	shown := raw.Records
	if len(shown) > maxTableRows {
		shown = shown[:maxTableRows]
	}
	rows := make([][]string, 0, len(shown))
	for _, rec := range shown {
		rows = append(rows, export.Row(rec, raw.Columns))
	}

	columnNames := make([]string, len(models.Columns))
	for i, c := range models.Columns {
		columnNames[i] = string(c)
	}
	selectedColumns := make([]string, len(raw.Columns))
	for i, c := range raw.Columns {
		selectedColumns[i] = string(c)
	}

	dates := datesData{OnChange: refreshRecords}
	if !raw.Options.DateFrom.IsZero() {
		dates.From = raw.Options.DateFrom.Format(dateParamLayout)
		dates.To = raw.Options.DateTo.Format(dateParamLayout)
	}

	parts := []struct {
		name string
		data any
	}{
		{"notice", warningNotice(raw.Warning)},
		{"summary", summaryData{
			Rows:      raw.Filtered,
			Columns:   len(raw.Columns),
			Shown:     len(shown),
			Truncated: len(shown) < raw.Filtered,
		}},
		{"table", tableData{Columns: raw.Columns, Rows: rows}},
		{"select", rawSelect("colunas", paramColumn, columnNames, selectedColumns)},
		{"select", rawSelect("produtos", paramProduct, raw.Options.Products, values[paramProduct])},
		{"select", rawSelect("categorias", paramCategory, raw.Options.Categories, values[paramCategory])},
		{"select", rawSelect("vendedores", paramSeller, raw.Options.Sellers, values[paramSeller])},
		{"select", rawSelect("estados", paramState, raw.Options.States, values[paramState])},
		{"select", rawSelect("pagamentos", paramPayment, raw.Options.PaymentTypes, values[paramPayment])},
		{"dates", dates},
		{"downloads", downloadQuery(values)},
	}
	for _, p := range parts {
		html, err := render(p.name, p.data)
		if err != nil {
			h.logger.Error("render fragment", "fragment", p.name, "error", err)
			return
		}
		sse.PatchElements(html)
	}

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func rawSelect(id, signal string, options, selected []string) selectData {
	return selectData{
		ID:       id,
		Signal:   signal,
		OnChange: refreshRecords,
		Options:  selectOptions(options, selected),
	}
}

// downloadQuery keeps only the raw-data state keys, so export links replay
// exactly the filters on screen.
func downloadQuery(values url.Values) template.URL {
	keep := url.Values{}
	for _, key := range []string{
		paramColumn, paramProduct, paramCategory, paramSeller, paramState, paramPayment,
		paramPriceMin, paramPriceMax, paramFreightMin, paramFreightMax,
		paramDateFrom, paramDateTo, paramReviewMin, paramReviewMax,
		paramInstallMin, paramInstallMax, paramFileName,
	} {
		if v, ok := values[key]; ok {
			keep[key] = v
		}
	}
	return template.URL(keep.Encode())
}
