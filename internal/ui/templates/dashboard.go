package templates

//go:generate templ generate

import "sales-dashboard/internal/present"

// DashboardProps seeds the overview page controls.
type DashboardProps struct {
	Regions    []string
	TopSellers int
	FirstYear  int
	LastYear   int
}

type tab struct {
	key    string
	label  string
	charts []string
}

var overviewTabs = []tab{
	{"receita", "Receita", []string{present.ChartRevenueMap, present.ChartRevenueMonthly, present.ChartRevenueStates, present.ChartRevenueCategories}},
	{"vendas", "Quantidade de vendas", []string{present.ChartSalesMap, present.ChartSalesMonthly, present.ChartSalesStates, present.ChartSalesCategories}},
	{"vendedores", "Vendedores", []string{present.ChartRevenueSellers, present.ChartSalesSellers}},
}

const refreshOverview = "@get('/sse/overview')"

// dashboardSignals seeds the store with the control defaults; the year
// slider starts at the first year.
func dashboardSignals(props DashboardProps) map[string]any {
	return map[string]any{
		"regiao":       props.Regions[0],
		"todo_periodo": true,
		"ano":          props.FirstYear,
		"vendedor":     []string{},
		"top":          props.TopSellers,
		"_aba":         overviewTabs[0].key,
		"_graficos":    []any{},
	}
}

func tabActive(key string) string {
	return "$_aba == '" + key + "'"
}

func tabSelect(key string) string {
	return "$_aba = '" + key + "'"
}
