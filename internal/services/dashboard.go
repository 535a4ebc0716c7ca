package services

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"sales-dashboard/internal/aggregate"
	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/source"
)

const (
	DefaultTopSellers = 5
	topStates         = 5
)

// Source is the upstream record store.
type Source interface {
	Fetch(ctx context.Context, q source.Query) ([]models.Record, error)
}

// OverviewState is the overview page's filter state. Region is a region name
// from source.Regions in any case; Year 0 means all years.
type OverviewState struct {
	Region     string `validate:"omitempty,oneof=centro-oeste nordeste norte sudeste sul"`
	Year       int    `validate:"omitempty,gte=1000,lte=9999"`
	Sellers    []string
	TopSellers int `validate:"min=2,max=10"`
}

// Tables holds every aggregation for one measure.
type Tables struct {
	ByState    []models.LocationRow `json:"by_state"`
	TopStates  []models.LocationRow `json:"top_states"`
	ByMonth    []models.MonthRow    `json:"by_month"`
	ByCategory []models.CategoryRow `json:"by_category"`
	BySeller   []models.SellerRow   `json:"by_seller"`
}

type Overview struct {
	Region          string          `json:"region"`
	Year            int             `json:"year,omitempty"`
	TopSellers      int             `json:"top_sellers"`
	SellerOptions   []string        `json:"seller_options"`
	SelectedSellers []string        `json:"selected_sellers"`
	RecordCount     int             `json:"record_count"`
	Revenue         float64         `json:"revenue"`
	RevenueTables   Tables          `json:"revenue_tables"`
	SalesTables     Tables          `json:"sales_tables"`
	Warning         *errors.Warning `json:"-"`
}

// RawState is the raw-data page's state: the projected columns (empty means
// all) and the ten-field filters.
type RawState struct {
	Columns []models.Column
	Filters filter.RawFilters
}

// RawOptions are the choices offered by the raw-data filter widgets, taken
// from the unfiltered fetch.
type RawOptions struct {
	Products     []string  `json:"products"`
	Categories   []string  `json:"categories"`
	Sellers      []string  `json:"sellers"`
	States       []string  `json:"states"`
	PaymentTypes []string  `json:"payment_types"`
	DateFrom     time.Time `json:"date_from"`
	DateTo       time.Time `json:"date_to"`
}

type RawData struct {
	Columns  []models.Column `json:"columns"`
	Records  []models.Record `json:"-"`
	Options  RawOptions      `json:"options"`
	Total    int             `json:"total"`
	Filtered int             `json:"filtered"`
	Warning  *errors.Warning `json:"-"`
}

// Dashboard runs the fetch, filter, aggregate pipeline for each request. It
// keeps no request state; only counters for the stats endpoint.
type Dashboard struct {
	source Source
	logger *slog.Logger

	fetches       atomic.Int64
	failures      atomic.Int64
	lastRecords   atomic.Int64
	lastFetchedAt atomic.Int64
}

func NewDashboard(src Source, logger *slog.Logger) *Dashboard {
	return &Dashboard{
		source: src,
		logger: logger,
	}
}

// Overview validates state, fetches the region/year slice and builds every
// overview table.
func (d *Dashboard) Overview(ctx context.Context, state OverviewState) (*Overview, error) {
	state.Region = source.NormalizeRegion(state.Region)
	if err := filter.Validate(state); err != nil {
		return nil, err
	}

	records, err := d.fetch(ctx, source.Query{Region: state.Region, Year: state.Year})
	if err != nil {
		return nil, err
	}

	overview := BuildOverview(records, state)
	d.logger.Debug("overview built",
		"region", state.Region,
		"year", state.Year,
		"sellers", len(state.Sellers),
		"records", overview.RecordCount,
	)
	return overview, nil
}

// Raw validates state, fetches the full record set and applies the ten-field
// filters.
func (d *Dashboard) Raw(ctx context.Context, state RawState) (*RawData, error) {
	if err := state.Filters.Validate(); err != nil {
		return nil, err
	}

	records, err := d.fetch(ctx, source.Query{})
	if err != nil {
		return nil, err
	}

	raw := BuildRaw(records, state)
	d.logger.Debug("raw data built",
		"total", raw.Total,
		"filtered", raw.Filtered,
		"columns", len(raw.Columns),
	)
	return raw, nil
}

func (d *Dashboard) fetch(ctx context.Context, q source.Query) ([]models.Record, error) {
	d.fetches.Add(1)
	records, err := d.source.Fetch(ctx, q)
	if err != nil {
		d.failures.Add(1)
		return nil, err
	}
	d.lastRecords.Store(int64(len(records)))
	d.lastFetchedAt.Store(time.Now().UnixNano())
	return records, nil
}

// BuildOverview is the pure overview pipeline: seller options, seller filter,
// aggregation for both measures.
func BuildOverview(records []models.Record, state OverviewState) *Overview {
	filtered := filter.Apply(records, filter.SellerFilters{Sellers: state.Sellers}.Criteria())

	selected := state.Sellers
	if selected == nil {
		selected = []string{}
	}

	overview := &Overview{
		Region:          state.Region,
		Year:            state.Year,
		TopSellers:      state.TopSellers,
		SellerOptions:   filter.Distinct(records, filter.Seller),
		SelectedSellers: selected,
		RecordCount:     len(filtered),
		Revenue:         aggregate.Total(filtered),
		RevenueTables:   buildTables(filtered, aggregate.Sum, state.TopSellers),
		SalesTables:     buildTables(filtered, aggregate.Count, state.TopSellers),
	}
	if len(filtered) == 0 {
		overview.Warning = errors.EmptyResult()
	}
	return overview
}

func buildTables(records []models.Record, m aggregate.Measure, topSellers int) Tables {
	byState := aggregate.ByLocation(records, m)
	return Tables{
		ByState:    byState,
		TopStates:  aggregate.Top(byState, topStates),
		ByMonth:    aggregate.ByMonth(records),
		ByCategory: aggregate.ByCategory(records, m),
		BySeller:   aggregate.Top(aggregate.BySeller(records, m), topSellers),
	}
}

// BuildRaw is the pure raw-data pipeline: widget options from the full set,
// ten-field filter, column selection.
func BuildRaw(records []models.Record, state RawState) *RawData {
	columns := state.Columns
	if len(columns) == 0 {
		columns = models.Columns
	}

	options := RawOptions{
		Products:     filter.Distinct(records, filter.Product),
		Categories:   filter.Distinct(records, filter.Category),
		Sellers:      filter.Distinct(records, filter.Seller),
		States:       filter.Distinct(records, filter.State),
		PaymentTypes: filter.Distinct(records, filter.PaymentType),
	}
	options.DateFrom, options.DateTo, _ = filter.DateBounds(records)

	filtered := filter.Apply(records, state.Filters.Criteria())

	raw := &RawData{
		Columns:  columns,
		Records:  filtered,
		Options:  options,
		Total:    len(records),
		Filtered: len(filtered),
	}
	if len(filtered) == 0 {
		raw.Warning = errors.EmptyResult()
	}
	return raw
}

func (d *Dashboard) Stats() map[string]any {
	stats := map[string]any{
		"fetches":      d.fetches.Load(),
		"failures":     d.failures.Load(),
		"last_records": d.lastRecords.Load(),
	}
	if at := d.lastFetchedAt.Load(); at > 0 {
		stats["last_fetched_at"] = time.Unix(0, at).UTC().Format(time.RFC3339)
	}
	return stats
}
