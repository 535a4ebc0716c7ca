// Package aggregate groups filtered records by one dimension and reduces the
// price field by sum or count.
package aggregate

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"sales-dashboard/internal/models"
)

// Measure selects the reduction applied to each group.
type Measure int

const (
	// Sum adds up prices (revenue).
	Sum Measure = iota
	// Count counts rows (sales volume).
	Count
)

func (m Measure) String() string {
	if m == Count {
		return "count"
	}
	return "sum"
}

// MonthNames maps calendar months to the labels used on the time series.
var MonthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// reducer accumulates one group. Prices are summed as decimals.
type reducer struct {
	sum   decimal.Decimal
	count int
}

func (r *reducer) add(price float64) {
	r.sum = r.sum.Add(decimal.NewFromFloat(price))
	r.count++
}

func (r *reducer) value(m Measure) float64 {
	if m == Count {
		return float64(r.count)
	}
	return r.sum.InexactFloat64()
}

// group reduces records keyed by key, remembering first-seen key order and the
// first record of each key.
func group[K comparable](records []models.Record, key func(models.Record) K) ([]K, map[K]*reducer, map[K]models.Record) {
	order := make([]K, 0)
	groups := make(map[K]*reducer)
	first := make(map[K]models.Record)

	for _, r := range records {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &reducer{}
			groups[k] = g
			first[k] = r
			order = append(order, k)
		}
		g.add(r.Price)
	}
	return order, groups, first
}

// descending orders by value, highest first; ties fall back to the key.
func descending[T any](rows []T, value func(T) float64, key func(T) string) {
	slices.SortStableFunc(rows, func(a, b T) int {
		if c := cmp.Compare(value(b), value(a)); c != 0 {
			return c
		}
		return cmp.Compare(key(a), key(b))
	})
}

// ByLocation groups by purchase state. Latitude and longitude come from the
// first record of each state.
func ByLocation(records []models.Record, m Measure) []models.LocationRow {
	order, groups, first := group(records, func(r models.Record) string { return r.State })

	rows := make([]models.LocationRow, 0, len(order))
	for _, state := range order {
		rows = append(rows, models.LocationRow{
			State: state,
			Lat:   first[state].Lat,
			Lon:   first[state].Lon,
			Value: groups[state].value(m),
		})
	}

	descending(rows, func(r models.LocationRow) float64 { return r.Value }, func(r models.LocationRow) string { return r.State })
	return rows
}

// ByCategory groups by product category.
func ByCategory(records []models.Record, m Measure) []models.CategoryRow {
	order, groups, _ := group(records, func(r models.Record) string { return r.Category })

	rows := make([]models.CategoryRow, 0, len(order))
	for _, category := range order {
		rows = append(rows, models.CategoryRow{Category: category, Value: groups[category].value(m)})
	}

	descending(rows, func(r models.CategoryRow) float64 { return r.Value }, func(r models.CategoryRow) string { return r.Category })
	return rows
}

// BySeller groups by seller. Callers keep the leaders with Top.
func BySeller(records []models.Record, m Measure) []models.SellerRow {
	order, groups, _ := group(records, func(r models.Record) string { return r.Seller })

	rows := make([]models.SellerRow, 0, len(order))
	for _, seller := range order {
		rows = append(rows, models.SellerRow{Seller: seller, Value: groups[seller].value(m)})
	}

	descending(rows, func(r models.SellerRow) float64 { return r.Value }, func(r models.SellerRow) string { return r.Seller })
	return rows
}

// ByMonth sums price per calendar month end. Both overview tabs plot this
// series. Every month between the first and the last bucket is emitted,
// empty months with value 0, and rows come out in chronological order.
func ByMonth(records []models.Record) []models.MonthRow {
	_, groups, _ := group(records, func(r models.Record) time.Time { return monthStart(r.PurchaseDate) })
	if len(groups) == 0 {
		return []models.MonthRow{}
	}

	var first, last time.Time
	for start := range groups {
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if last.IsZero() || start.After(last) {
			last = start
		}
	}

	rows := make([]models.MonthRow, 0)
	for start := first; !start.After(last); start = start.AddDate(0, 1, 0) {
		value := 0.0
		if g, ok := groups[start]; ok {
			value = g.value(Sum)
		}
		rows = append(rows, models.MonthRow{
			MonthEnd: start.AddDate(0, 1, -1),
			Year:     start.Year(),
			Month:    MonthNames[start.Month()-1],
			Value:    value,
		})
	}
	return rows
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Total sums the price of every record.
func Total(records []models.Record) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Price))
	}
	return total.InexactFloat64()
}

// Top keeps the first n rows of an already sorted table.
func Top[T any](rows []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(rows) <= n {
		return rows
	}
	return rows[:n]
}
