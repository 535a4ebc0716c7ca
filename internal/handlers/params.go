package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

// Query parameter names. Datastar signals use the same names, so a page's
// signal set and a plain query string describe the same state.
const (
	paramRegion      = "regiao"
	paramYear        = "ano"
	paramAllYears    = "todo_periodo"
	paramSeller      = "vendedor"
	paramTop         = "top"
	paramColumn      = "coluna"
	paramProduct     = "produto"
	paramCategory    = "categoria"
	paramState       = "estado"
	paramPayment     = "pagamento"
	paramPriceMin    = "preco_min"
	paramPriceMax    = "preco_max"
	paramFreightMin  = "frete_min"
	paramFreightMax  = "frete_max"
	paramDateFrom    = "data_inicio"
	paramDateTo      = "data_fim"
	paramReviewMin   = "avaliacao_min"
	paramReviewMax   = "avaliacao_max"
	paramInstallMin  = "parcelas_min"
	paramInstallMax  = "parcelas_max"
	paramFileName    = "arquivo"
	paramWidth       = "largura"
	paramHeight      = "altura"
	datastarQueryKey = "datastar"
)

const dateParamLayout = "2006-01-02"

// requestValues returns the request state as query values. Requests made by
// Datastar carry their signals as JSON in the datastar parameter; those are
// flattened into the same keys a plain query string uses.
func requestValues(r *http.Request) (url.Values, error) {
	query := r.URL.Query()
	if !query.Has(datastarQueryKey) {
		return query, nil
	}

	signals := map[string]any{}
	if err := datastar.ReadSignals(r, &signals); err != nil {
		return nil, errors.FilterValidationWrap(err, "invalid signals")
	}

	values := url.Values{}
	for key, v := range signals {
		switch v := v.(type) {
		case string:
			if v != "" {
				values.Set(key, v)
			}
		case float64:
			values.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
		case bool:
			values.Set(key, strconv.FormatBool(v))
		case []any:
			for _, item := range v {
				if s := fmt.Sprint(item); s != "" {
					values.Add(key, s)
				}
			}
		}
	}
	return values, nil
}

func overviewState(values url.Values, defaultTop int) (services.OverviewState, error) {
	state := services.OverviewState{
		Region:     values.Get(paramRegion),
		Sellers:    nonEmpty(values[paramSeller]),
		TopSellers: defaultTop,
	}

	var err error
	if values.Get(paramAllYears) != "true" {
		if state.Year, err = intParam(values, paramYear); err != nil {
			return state, err
		}
	}
	if values.Has(paramTop) {
		if state.TopSellers, err = intParam(values, paramTop); err != nil {
			return state, err
		}
	}
	return state, nil
}

func rawState(values url.Values) (services.RawState, error) {
	state := services.RawState{
		Filters: filter.RawFilters{
			Products:     nonEmpty(values[paramProduct]),
			Categories:   nonEmpty(values[paramCategory]),
			Sellers:      nonEmpty(values[paramSeller]),
			States:       nonEmpty(values[paramState]),
			PaymentTypes: nonEmpty(values[paramPayment]),
		},
	}

	for _, name := range nonEmpty(values[paramColumn]) {
		column, ok := models.ParseColumn(name)
		if !ok {
			return state, errors.FilterValidation("unknown column").WithDetails(name)
		}
		state.Columns = append(state.Columns, column)
	}

	var err error
	f := &state.Filters
	if f.Price, err = floatRange(values, paramPriceMin, paramPriceMax, filter.PriceBounds); err != nil {
		return state, err
	}
	if f.Freight, err = floatRange(values, paramFreightMin, paramFreightMax, filter.FreightBounds); err != nil {
		return state, err
	}
	if f.Review, err = intRange(values, paramReviewMin, paramReviewMax, filter.ReviewBounds); err != nil {
		return state, err
	}
	if f.Installments, err = intRange(values, paramInstallMin, paramInstallMax, filter.InstallmentsBounds); err != nil {
		return state, err
	}
	if f.Date, err = dateRange(values, paramDateFrom, paramDateTo); err != nil {
		return state, err
	}
	return state, nil
}

func nonEmpty(items []string) []string {
	var out []string
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intParam(values url.Values, key string) (int, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.FilterValidationWrap(err, "invalid number").WithDetails(key + ": " + raw)
	}
	return n, nil
}

func floatParam(values url.Values, key string) (float64, bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return 0, false, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, errors.FilterValidationWrap(err, "invalid number").WithDetails(key + ": " + raw)
	}
	return n, true, nil
}

// floatRange is nil when neither bound is given. A missing bound is taken
// from the widget bounds.
func floatRange(values url.Values, lowKey, highKey string, bounds filter.FloatRange) (*filter.FloatRange, error) {
	low, hasLow, err := floatParam(values, lowKey)
	if err != nil {
		return nil, err
	}
	high, hasHigh, err := floatParam(values, highKey)
	if err != nil {
		return nil, err
	}
	if !hasLow && !hasHigh {
		return nil, nil
	}
	r := bounds
	if hasLow {
		r.Low = low
	}
	if hasHigh {
		r.High = high
	}
	return &r, nil
}

func intRange(values url.Values, lowKey, highKey string, bounds filter.IntRange) (*filter.IntRange, error) {
	fr, err := floatRange(values, lowKey, highKey, filter.FloatRange{Low: float64(bounds.Low), High: float64(bounds.High)})
	if err != nil || fr == nil {
		return nil, err
	}
	if fr.Low != float64(int(fr.Low)) || fr.High != float64(int(fr.High)) {
		return nil, errors.FilterValidation("invalid number").WithDetails(lowKey + "/" + highKey + ": integers expected")
	}
	return &filter.IntRange{Low: int(fr.Low), High: int(fr.High)}, nil
}

// dateRange is nil when neither bound is given. A single bound is passed on
// as is and rejected by validation.
func dateRange(values url.Values, fromKey, toKey string) (*filter.DateRange, error) {
	from, hasFrom, err := dateParam(values, fromKey)
	if err != nil {
		return nil, err
	}
	to, hasTo, err := dateParam(values, toKey)
	if err != nil {
		return nil, err
	}
	if !hasFrom && !hasTo {
		return nil, nil
	}
	return &filter.DateRange{From: from, To: to}, nil
}

func dateParam(values url.Values, key string) (time.Time, bool, error) {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.Parse(dateParamLayout, raw)
	if err != nil {
		return time.Time{}, false, errors.FilterValidationWrap(err, "invalid date").WithDetails(key + ": " + raw)
	}
	return t, true, nil
}

// loadOverview parses the overview state from r and runs the pipeline.
func loadOverview(r *http.Request, dashboard *services.Dashboard, defaultTop int) (*services.Overview, url.Values, error) {
	values, err := requestValues(r)
	if err != nil {
		return nil, nil, err
	}
	state, err := overviewState(values, defaultTop)
	if err != nil {
		return nil, values, err
	}
	ov, err := dashboard.Overview(r.Context(), state)
	return ov, values, err
}

// loadRaw parses the raw-data state from r and runs the pipeline.
func loadRaw(r *http.Request, dashboard *services.Dashboard) (*services.RawData, url.Values, error) {
	values, err := requestValues(r)
	if err != nil {
		return nil, nil, err
	}
	state, err := rawState(values)
	if err != nil {
		return nil, values, err
	}
	raw, err := dashboard.Raw(r.Context(), state)
	return raw, values, err
}
