package present

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

func testOverview() *services.Overview {
	records := []models.Record{
		{Category: "livros", Price: 100, PurchaseDate: time.Date(2020, 12, 5, 0, 0, 0, 0, time.UTC), Seller: "Ana", State: "SP", Lat: -22.19, Lon: -48.79},
		{Category: "moveis", Price: 1500, PurchaseDate: time.Date(2021, 2, 9, 0, 0, 0, 0, time.UTC), Seller: "Bruno", State: "RJ", Lat: -22.25, Lon: -42.66},
		{Category: "livros", Price: 50, PurchaseDate: time.Date(2021, 2, 20, 0, 0, 0, 0, time.UTC), Seller: "Ana", State: "SP", Lat: -22.19, Lon: -48.79},
	}
	return services.BuildOverview(records, services.OverviewState{TopSellers: 3})
}

func TestOverviewCharts(t *testing.T) {
	charts := OverviewCharts(testOverview())

	ids := make([]string, 0, len(charts))
	for _, c := range charts {
		ids = append(ids, c.ID)
	}
	if diff := cmp.Diff(ChartIDs, ids); diff != "" {
		t.Fatalf("chart ids (-want +got):\n%s", diff)
	}

	revenueMap := charts[0]
	if revenueMap.Kind != KindGeo || len(revenueMap.Lat) != 2 {
		t.Errorf("revenue map = %+v", revenueMap)
	}
	if revenueMap.X[0] != "RJ" || revenueMap.Y[0] != 1500 {
		t.Errorf("first state = %s %v, want RJ 1500", revenueMap.X[0], revenueMap.Y[0])
	}

	monthly := charts[1]
	if diff := cmp.Diff([]string{"Dez", "Jan", "Fev"}, monthly.X); diff != "" {
		t.Errorf("monthly X (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"2020", "2021", "2021"}, monthly.Color); diff != "" {
		t.Errorf("monthly Color (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{100, 0, 1550}, monthly.Y); diff != "" {
		t.Errorf("monthly Y (-want +got):\n%s", diff)
	}
	salesMonthly := charts[6]
	if salesMonthly.ID != ChartSalesMonthly || salesMonthly.YLabel != "Quantidade de vendas" {
		t.Errorf("sales monthly = %s %q", salesMonthly.ID, salesMonthly.YLabel)
	}
	if diff := cmp.Diff(monthly.Y, salesMonthly.Y); diff != "" {
		t.Errorf("sales monthly Y (-revenue +sales):\n%s", diff)
	}

	categories := charts[3]
	if !strings.Contains(categories.Hover[0], "Receita (R$) = R$ 1.50 mil") {
		t.Errorf("category hover = %q", categories.Hover[0])
	}

	sellers := charts[4]
	if sellers.Title != "Top 3 vendedores (receita)" || sellers.Kind != KindHBar {
		t.Errorf("seller chart = %q %s", sellers.Title, sellers.Kind)
	}

	salesSellers := charts[9]
	if salesSellers.Title != "Top 3 vendedores (quantidade de vendas)" {
		t.Errorf("sales seller title = %q", salesSellers.Title)
	}
	if diff := cmp.Diff([]float64{2, 1}, salesSellers.Y); diff != "" {
		t.Errorf("sales seller Y (-want +got):\n%s", diff)
	}
}

func TestChartByID(t *testing.T) {
	ov := testOverview()

	c, ok := ChartByID(ov, ChartSalesStates)
	if !ok {
		t.Fatal("ChartByID did not find sales states")
	}
	if c.YLabel != "Quantidade de vendas" {
		t.Errorf("YLabel = %q", c.YLabel)
	}

	if _, ok := ChartByID(ov, "pizza"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestMetrics(t *testing.T) {
	got := Metrics(testOverview())
	want := []Metric{
		{Label: "Receita", Value: "R$ 1.65 mil"},
		{Label: "Quantidade de vendas", Value: "3.00 "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Metrics (-want +got):\n%s", diff)
	}
}

func TestRenderSVG(t *testing.T) {
	ov := testOverview()

	for _, c := range OverviewCharts(ov) {
		t.Run(c.ID, func(t *testing.T) {
			var buf bytes.Buffer
			if err := RenderSVG(&buf, c, 0, 0); err != nil {
				t.Fatalf("RenderSVG() error = %v", err)
			}
			if !strings.Contains(buf.String(), "<svg") {
				t.Error("output is not an SVG document")
			}
		})
	}
}

func TestRenderSVG_Empty(t *testing.T) {
	empty := services.BuildOverview(nil, services.OverviewState{TopSellers: 5})

	for _, c := range OverviewCharts(empty) {
		var buf bytes.Buffer
		if err := RenderSVG(&buf, c, 300, 200); err != nil {
			t.Fatalf("%s: RenderSVG() error = %v", c.ID, err)
		}
		if !strings.Contains(buf.String(), "Sem dados para exibir") {
			t.Errorf("%s: expected placeholder", c.ID)
		}
	}
}
