package filter

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"sales-dashboard/internal/errors"
)

var validate = validator.New()

type FloatRange struct {
	Low  float64 `json:"low" validate:"ltefield=High"`
	High float64 `json:"high"`
}

type IntRange struct {
	Low  int `json:"low" validate:"ltefield=High"`
	High int `json:"high"`
}

type DateRange struct {
	From time.Time `json:"from" validate:"required,ltefield=To"`
	To   time.Time `json:"to" validate:"required"`
}

// Slider bounds of the raw-data page. A range given with a single bound is
// completed from these.
var (
	PriceBounds        = FloatRange{Low: 0, High: 5000}
	FreightBounds      = FloatRange{Low: 0, High: 217}
	ReviewBounds       = IntRange{Low: 0, High: 5}
	InstallmentsBounds = IntRange{Low: 1, High: 24}
)

// SellerFilters is the overview page surface: seller membership only, region
// and year being pushed to the upstream query.
type SellerFilters struct {
	Sellers []string
}

func (f SellerFilters) Criteria() Criteria {
	return Criteria{}.Add(In(Seller, f.Sellers))
}

// RawFilters is the raw-data page surface over ten fields. Nil ranges and
// empty sets are inactive.
type RawFilters struct {
	Products     []string
	Categories   []string
	Sellers      []string
	States       []string
	PaymentTypes []string
	Price        *FloatRange
	Freight      *FloatRange
	Date         *DateRange
	Review       *IntRange
	Installments *IntRange
}

func (f RawFilters) Validate() error {
	return Validate(f)
}

func (f RawFilters) Criteria() Criteria {
	c := Criteria{}.
		Add(In(Product, f.Products)).
		Add(In(Category, f.Categories)).
		Add(In(Seller, f.Sellers)).
		Add(In(State, f.States)).
		Add(In(PaymentType, f.PaymentTypes))

	if f.Price != nil {
		c = c.Add(Between(Price, f.Price.Low, f.Price.High))
	}
	if f.Freight != nil {
		c = c.Add(Between(Freight, f.Freight.Low, f.Freight.High))
	}
	if f.Date != nil {
		c = c.Add(BetweenDates(PurchaseDate, f.Date.From, f.Date.To))
	}
	if f.Review != nil {
		c = c.Add(Between(Review, f.Review.Low, f.Review.High))
	}
	if f.Installments != nil {
		c = c.Add(Between(Installments, f.Installments.Low, f.Installments.High))
	}
	return c
}

// Validate runs struct validation on v and converts failures into a
// FILTER_VALIDATION_ERROR listing each offending field and rule.
func Validate(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.FilterValidationWrap(err, "invalid filter state")
	}

	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Namespace(), describe(fe)))
	}

	return errors.FilterValidationWrap(err, "invalid filter state").
		WithDetails(strings.Join(details, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "ltefield":
		return "lower bound exceeds upper bound"
	case "required":
		return "value is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of " + fe.Param()
	default:
		return "failed " + fe.Tag()
	}
}
