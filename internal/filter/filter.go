// Package filter narrows a record set by a conjunction of per-field
// predicates.
package filter

import (
	"cmp"
	"time"

	"sales-dashboard/internal/models"
)

// Predicate reports whether a record satisfies one criterion.
type Predicate func(models.Record) bool

// Criteria is a conjunction of predicates. The zero value matches everything.
type Criteria []Predicate

// Add appends p unless it is nil, which is how inactive criteria drop out.
func (c Criteria) Add(p Predicate) Criteria {
	if p == nil {
		return c
	}
	return append(c, p)
}

// And returns the union of both criteria sets.
func (c Criteria) And(other Criteria) Criteria {
	out := make(Criteria, 0, len(c)+len(other))
	out = append(out, c...)
	return append(out, other...)
}

func (c Criteria) Match(r models.Record) bool {
	for _, p := range c {
		if !p(r) {
			return false
		}
	}
	return true
}

// Apply returns the records passing every criterion, in input order. With no
// criteria the input is returned unchanged.
func Apply(records []models.Record, criteria Criteria) []models.Record {
	if len(criteria) == 0 {
		return records
	}

	out := make([]models.Record, 0, len(records))
	for _, r := range records {
		if criteria.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// In matches records whose field is one of allowed. An empty allowed set
// means "all values" and yields no predicate.
func In[T comparable](field func(models.Record) T, allowed []T) Predicate {
	if len(allowed) == 0 {
		return nil
	}

	set := make(map[T]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}

	return func(r models.Record) bool {
		_, ok := set[field(r)]
		return ok
	}
}

// Between matches low <= field <= high.
func Between[T cmp.Ordered](field func(models.Record) T, low, high T) Predicate {
	return func(r models.Record) bool {
		v := field(r)
		return low <= v && v <= high
	}
}

// BetweenDates matches purchase dates within [from, to], compared by calendar
// day so that a time-of-day component never excludes the last day.
func BetweenDates(field func(models.Record) time.Time, from, to time.Time) Predicate {
	from, to = day(from), day(to)
	return func(r models.Record) bool {
		d := day(field(r))
		return !d.Before(from) && !d.After(to)
	}
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Distinct returns the distinct values of field in first-seen order.
func Distinct[T comparable](records []models.Record, field func(models.Record) T) []T {
	seen := make(map[T]struct{})
	out := make([]T, 0)
	for _, r := range records {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// DateBounds returns the earliest and latest purchase dates. ok is false for
// an empty set.
func DateBounds(records []models.Record) (first, last time.Time, ok bool) {
	for i, r := range records {
		if i == 0 || r.PurchaseDate.Before(first) {
			first = r.PurchaseDate
		}
		if i == 0 || r.PurchaseDate.After(last) {
			last = r.PurchaseDate
		}
	}
	return first, last, len(records) > 0
}

func Product(r models.Record) string { return r.Product }
func Category(r models.Record) string { return r.Category }
func Seller(r models.Record) string { return r.Seller }
func State(r models.Record) string { return r.State }
func PaymentType(r models.Record) string { return r.PaymentType }
func Price(r models.Record) float64 { return r.Price }
func Freight(r models.Record) float64 { return r.Freight }
func Review(r models.Record) int { return r.Review }
func Installments(r models.Record) int { return r.Installments }
func PurchaseDate(r models.Record) time.Time { return r.PurchaseDate }
