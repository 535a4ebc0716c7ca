package present

import (
	"fmt"
	"strconv"

	"sales-dashboard/internal/aggregate"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
)

type Kind string

const (
	KindGeo  Kind = "geo"
	KindBar  Kind = "bar"
	KindHBar Kind = "hbar"
	KindLine Kind = "line"
)

// Chart is a render-agnostic chart: X holds the category axis, Y the values.
// Color, Hover, Lat and Lon are parallel to X when set.
type Chart struct {
	ID     string    `json:"id"`
	Kind   Kind      `json:"kind"`
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	X      []string  `json:"x"`
	Y      []float64 `json:"y"`
	Color  []string  `json:"color,omitempty"`
	Hover  []string  `json:"hover,omitempty"`
	Lat    []float64 `json:"lat,omitempty"`
	Lon    []float64 `json:"lon,omitempty"`
}

// Empty reports whether there is nothing to draw.
func (c Chart) Empty() bool {
	return len(c.Y) == 0
}

const (
	ChartRevenueMap        = "mapa-receita"
	ChartRevenueMonthly    = "receita-mensal"
	ChartRevenueStates     = "receita-estados"
	ChartRevenueCategories = "receita-categorias"
	ChartRevenueSellers    = "receita-vendedores"
	ChartSalesMap          = "mapa-vendas"
	ChartSalesMonthly      = "vendas-mensal"
	ChartSalesStates       = "vendas-estados"
	ChartSalesCategories   = "vendas-categorias"
	ChartSalesSellers      = "vendas-vendedores"
)

// ChartIDs lists every overview chart in page order: revenue tab, then sales.
var ChartIDs = []string{
	ChartRevenueMap,
	ChartRevenueMonthly,
	ChartRevenueStates,
	ChartRevenueCategories,
	ChartRevenueSellers,
	ChartSalesMap,
	ChartSalesMonthly,
	ChartSalesStates,
	ChartSalesCategories,
	ChartSalesSellers,
}

const (
	labelRevenue = "Receita (R$)"
	labelSales   = "Quantidade de vendas"
	labelState   = "Estado"
	labelMonth   = "Mês"
	labelSeller  = "Vendedor"
	labelProduct = "Categoria do produto"

	// BarColor is the single-series color of the seller charts.
	BarColor = "#4A81BF"
)

// Palette colors the series of multi-year charts in order.
var Palette = []string{"#174A7E", "#4A81BF", "#6495ED", "#94AFC5", "#CDDBF3"}

type measureText struct {
	label  string
	prefix string
	ids    [5]string
	titles [5]string
}

var (
	revenueText = measureText{
		label:  labelRevenue,
		prefix: "R$",
		ids:    [5]string{ChartRevenueMap, ChartRevenueMonthly, ChartRevenueStates, ChartRevenueCategories, ChartRevenueSellers},
		titles: [5]string{"Receita por estado", "Receita mensal", "Top estados (receita)", "Receita por categoria", "Top %d vendedores (receita)"},
	}
	salesText = measureText{
		label:  labelSales,
		ids:    [5]string{ChartSalesMap, ChartSalesMonthly, ChartSalesStates, ChartSalesCategories, ChartSalesSellers},
		titles: [5]string{"Vendas por estado", "Vendas mensal", "Top estados (vendas)", "Vendas por categoria", "Top %d vendedores (quantidade de vendas)"},
	}
)

// OverviewCharts maps the overview tables to the ten dashboard charts.
func OverviewCharts(ov *services.Overview) []Chart {
	charts := make([]Chart, 0, len(ChartIDs))
	charts = append(charts, tableCharts(ov.RevenueTables, revenueText, ov.TopSellers)...)
	charts = append(charts, tableCharts(ov.SalesTables, salesText, ov.TopSellers)...)
	return charts
}

// ChartByID returns the overview chart with the given id.
func ChartByID(ov *services.Overview, id string) (Chart, bool) {
	for _, c := range OverviewCharts(ov) {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}

func tableCharts(t services.Tables, text measureText, topSellers int) []Chart {
	return []Chart{
		mapChart(text.ids[0], text.titles[0], text, t.ByState),
		monthChart(text.ids[1], text.titles[1], text, t.ByMonth),
		stateChart(text.ids[2], text.titles[2], text, t.TopStates),
		categoryChart(text.ids[3], text.titles[3], text, t.ByCategory),
		sellerChart(text.ids[4], fmt.Sprintf(text.titles[4], topSellers), text, t.BySeller),
	}
}

func mapChart(id, title string, text measureText, rows []models.LocationRow) Chart {
	c := Chart{ID: id, Kind: KindGeo, Title: title, XLabel: labelState, YLabel: text.label}
	for _, r := range rows {
		c.X = append(c.X, r.State)
		c.Y = append(c.Y, r.Value)
		c.Lat = append(c.Lat, r.Lat)
		c.Lon = append(c.Lon, r.Lon)
		c.Hover = append(c.Hover, fmt.Sprintf("%s<br>%s = %s", r.State, text.label, FormatNumber(r.Value, text.prefix)))
	}
	return c
}

func monthChart(id, title string, text measureText, rows []models.MonthRow) Chart {
	c := Chart{ID: id, Kind: KindLine, Title: title, XLabel: labelMonth, YLabel: text.label}
	for _, r := range rows {
		c.X = append(c.X, r.Month)
		c.Y = append(c.Y, r.Value)
		c.Color = append(c.Color, strconv.Itoa(r.Year))
	}
	return c
}

func stateChart(id, title string, text measureText, rows []models.LocationRow) Chart {
	c := Chart{ID: id, Kind: KindBar, Title: title, XLabel: labelState, YLabel: text.label}
	for _, r := range rows {
		c.X = append(c.X, r.State)
		c.Y = append(c.Y, r.Value)
	}
	return c
}

func categoryChart(id, title string, text measureText, rows []models.CategoryRow) Chart {
	c := Chart{ID: id, Kind: KindBar, Title: title, XLabel: labelProduct, YLabel: text.label}
	for _, r := range rows {
		c.X = append(c.X, r.Category)
		c.Y = append(c.Y, r.Value)
		c.Hover = append(c.Hover, fmt.Sprintf("%s = %s<br>%s = %s", labelProduct, r.Category, text.label, FormatNumber(r.Value, text.prefix)))
	}
	return c
}

func sellerChart(id, title string, text measureText, rows []models.SellerRow) Chart {
	c := Chart{ID: id, Kind: KindHBar, Title: title, XLabel: labelSeller, YLabel: text.label}
	for _, r := range rows {
		c.X = append(c.X, r.Seller)
		c.Y = append(c.Y, r.Value)
		c.Color = append(c.Color, BarColor)
	}
	return c
}

// Metric is one headline figure of an overview tab.
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Metrics returns the revenue and sales-count headline figures.
func Metrics(ov *services.Overview) []Metric {
	return []Metric{
		{Label: "Receita", Value: FormatNumber(ov.Revenue, "R$")},
		{Label: labelSales, Value: FormatNumber(float64(ov.RecordCount), "")},
	}
}

// monthIndex returns 1..12 for a short month name, 0 when unknown.
func monthIndex(name string) int {
	for i, m := range aggregate.MonthNames {
		if m == name {
			return i + 1
		}
	}
	return 0
}
