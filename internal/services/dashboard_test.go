package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/filter"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/source"
)

type fakeSource struct {
	records []models.Record
	err     error
	queries []source.Query
}

func (f *fakeSource) Fetch(_ context.Context, q source.Query) ([]models.Record, error) {
	f.queries = append(f.queries, q)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []models.Record {
	return []models.Record{
		{Product: "Livro", Category: "livros", Price: 100, Freight: 10, PurchaseDate: date(2021, 1, 5), Seller: "Ana", State: "SP", Lat: -22.19, Lon: -48.79, Review: 5, PaymentType: "boleto", Installments: 1},
		{Product: "Mesa", Category: "moveis", Price: 900, Freight: 80, PurchaseDate: date(2021, 3, 9), Seller: "Bruno", State: "RJ", Lat: -22.25, Lon: -42.66, Review: 3, PaymentType: "cartao_credito", Installments: 10},
		{Product: "Livro", Category: "livros", Price: 50, Freight: 5, PurchaseDate: date(2021, 3, 20), Seller: "Ana", State: "SP", Lat: -22.19, Lon: -48.79, Review: 4, PaymentType: "boleto", Installments: 1},
		{Product: "Cadeira", Category: "moveis", Price: 300, Freight: 30, PurchaseDate: date(2020, 11, 2), Seller: "Carla", State: "MG", Lat: -18.10, Lon: -44.38, Review: 1, PaymentType: "cartao_credito", Installments: 3},
	}
}

func TestOverview(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	d := NewDashboard(src, discardLogger())

	ov, err := d.Overview(context.Background(), OverviewState{Region: "Sudeste", Year: 2021, TopSellers: DefaultTopSellers})
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if diff := cmp.Diff([]source.Query{{Region: "sudeste", Year: 2021}}, src.queries); diff != "" {
		t.Errorf("queries (-want +got):\n%s", diff)
	}
	if ov.TopSellers != DefaultTopSellers {
		t.Errorf("TopSellers = %d, want %d", ov.TopSellers, DefaultTopSellers)
	}
	if ov.RecordCount != 4 {
		t.Errorf("RecordCount = %d, want 4", ov.RecordCount)
	}
	if ov.Revenue != 1350 {
		t.Errorf("Revenue = %v, want 1350", ov.Revenue)
	}
	if ov.Warning != nil {
		t.Errorf("unexpected warning %v", ov.Warning)
	}
	if diff := cmp.Diff([]string{"Ana", "Bruno", "Carla"}, ov.SellerOptions); diff != "" {
		t.Errorf("SellerOptions (-want +got):\n%s", diff)
	}

	if got := ov.RevenueTables.ByState[0]; got.State != "RJ" || got.Value != 900 {
		t.Errorf("top revenue state = %+v, want RJ 900", got)
	}
	if got := ov.SalesTables.ByState[0]; got.State != "SP" || got.Value != 2 {
		t.Errorf("top sales state = %+v, want SP 2", got)
	}
	// Nov 2020 through Mar 2021, gaps filled.
	if n := len(ov.RevenueTables.ByMonth); n != 5 {
		t.Errorf("months = %d, want 5", n)
	}
	if diff := cmp.Diff(ov.RevenueTables.ByMonth, ov.SalesTables.ByMonth); diff != "" {
		t.Errorf("sales monthly series should sum price (-revenue +sales):\n%s", diff)
	}
}

func TestOverview_SellerFilter(t *testing.T) {
	d := NewDashboard(&fakeSource{records: sampleRecords()}, discardLogger())

	ov, err := d.Overview(context.Background(), OverviewState{Sellers: []string{"Ana"}, TopSellers: 2})
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if ov.RecordCount != 2 || ov.Revenue != 150 {
		t.Errorf("got %d records, revenue %v; want 2, 150", ov.RecordCount, ov.Revenue)
	}
	// Options come from the unfiltered fetch so the selection can be widened again.
	if len(ov.SellerOptions) != 3 {
		t.Errorf("SellerOptions = %v", ov.SellerOptions)
	}
	if len(ov.RevenueTables.BySeller) != 1 {
		t.Errorf("BySeller = %v", ov.RevenueTables.BySeller)
	}
}

func TestOverview_Empty(t *testing.T) {
	d := NewDashboard(&fakeSource{records: sampleRecords()}, discardLogger())

	ov, err := d.Overview(context.Background(), OverviewState{Sellers: []string{"Nobody"}, TopSellers: DefaultTopSellers})
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if ov.Warning == nil || ov.Warning.Code != errors.CodeEmptyResult {
		t.Errorf("Warning = %v, want EMPTY_RESULT", ov.Warning)
	}
	if ov.RecordCount != 0 || ov.Revenue != 0 {
		t.Errorf("got %d records, revenue %v", ov.RecordCount, ov.Revenue)
	}
	if len(ov.RevenueTables.ByState) != 0 || len(ov.RevenueTables.ByMonth) != 0 {
		t.Error("empty result should yield empty tables")
	}
}

func TestOverview_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		state OverviewState
	}{
		{"unknown region", OverviewState{Region: "Atlantida"}},
		{"short year", OverviewState{Year: 21}},
		{"zero sellers", OverviewState{TopSellers: 0}},
		{"too few sellers", OverviewState{TopSellers: 1}},
		{"too many sellers", OverviewState{TopSellers: 11}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{records: sampleRecords()}
			d := NewDashboard(src, discardLogger())

			_, err := d.Overview(context.Background(), tt.state)
			if !errors.Is(err, errors.CodeFilterValidation) {
				t.Fatalf("error = %v, want FILTER_VALIDATION_ERROR", err)
			}
			if len(src.queries) != 0 {
				t.Error("invalid state must not reach the source")
			}
		})
	}
}

func TestOverview_FetchError(t *testing.T) {
	src := &fakeSource{err: errors.DataFetch(fmt.Errorf("refused"), "fetch products")}
	d := NewDashboard(src, discardLogger())

	_, err := d.Overview(context.Background(), OverviewState{TopSellers: DefaultTopSellers})
	if !errors.Is(err, errors.CodeDataFetch) {
		t.Fatalf("error = %v, want DATA_FETCH_ERROR", err)
	}

	stats := d.Stats()
	if stats["fetches"] != int64(1) || stats["failures"] != int64(1) {
		t.Errorf("stats = %v", stats)
	}
	if _, ok := stats["last_fetched_at"]; ok {
		t.Error("last_fetched_at should be absent before a successful fetch")
	}
}

func TestRaw(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	d := NewDashboard(src, discardLogger())

	raw, err := d.Raw(context.Background(), RawState{
		Columns: []models.Column{models.ColumnProduct, models.ColumnPrice},
		Filters: filter.RawFilters{
			Categories: []string{"livros"},
			Price:      &filter.FloatRange{Low: 60, High: 5000},
		},
	})
	if err != nil {
		t.Fatalf("Raw() error = %v", err)
	}

	if diff := cmp.Diff([]source.Query{{}}, src.queries); diff != "" {
		t.Errorf("raw data must fetch the full set (-want +got):\n%s", diff)
	}
	if raw.Total != 4 || raw.Filtered != 1 {
		t.Errorf("Total/Filtered = %d/%d, want 4/1", raw.Total, raw.Filtered)
	}
	if raw.Records[0].Price != 100 {
		t.Errorf("kept record = %+v", raw.Records[0])
	}
	if len(raw.Columns) != 2 {
		t.Errorf("Columns = %v", raw.Columns)
	}
	if diff := cmp.Diff([]string{"livros", "moveis"}, raw.Options.Categories); diff != "" {
		t.Errorf("Categories (-want +got):\n%s", diff)
	}
	if !raw.Options.DateFrom.Equal(date(2020, 11, 2)) || !raw.Options.DateTo.Equal(date(2021, 3, 20)) {
		t.Errorf("date bounds = %v..%v", raw.Options.DateFrom, raw.Options.DateTo)
	}
}

func TestRaw_AllColumnsByDefault(t *testing.T) {
	raw := BuildRaw(sampleRecords(), RawState{})
	if diff := cmp.Diff(models.Columns, raw.Columns); diff != "" {
		t.Errorf("Columns (-want +got):\n%s", diff)
	}
	if raw.Filtered != 4 {
		t.Errorf("Filtered = %d, want 4", raw.Filtered)
	}
}

func TestRaw_InvertedRange(t *testing.T) {
	src := &fakeSource{records: sampleRecords()}
	d := NewDashboard(src, discardLogger())

	_, err := d.Raw(context.Background(), RawState{
		Filters: filter.RawFilters{Review: &filter.IntRange{Low: 4, High: 2}},
	})
	if !errors.Is(err, errors.CodeFilterValidation) {
		t.Fatalf("error = %v, want FILTER_VALIDATION_ERROR", err)
	}
	if len(src.queries) != 0 {
		t.Error("invalid filters must not reach the source")
	}
}

func TestRaw_Empty(t *testing.T) {
	raw := BuildRaw(sampleRecords(), RawState{
		Filters: filter.RawFilters{States: []string{"AC"}},
	})
	if raw.Warning == nil {
		t.Fatal("expected empty-result warning")
	}
	if len(raw.Options.States) != 3 {
		t.Errorf("options must still list every state, got %v", raw.Options.States)
	}
}
