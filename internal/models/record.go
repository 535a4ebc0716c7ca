package models

import "time"

// Record is one sale as returned by the upstream products API.
type Record struct {
	Product      string
	Category     string
	Price        float64
	Freight      float64
	PurchaseDate time.Time
	Seller       string
	State        string
	Lat          float64
	Lon          float64
	Review       int
	PaymentType  string
	Installments int
}

// Column names one field of the raw-data table. The string value is the
// upstream field name, which also serves as the exported header.
type Column string

const (
	ColumnProduct      Column = "Produto"
	ColumnCategory     Column = "Categoria do Produto"
	ColumnPrice        Column = "Preço"
	ColumnFreight      Column = "Frete"
	ColumnPurchaseDate Column = "Data da Compra"
	ColumnSeller       Column = "Vendedor"
	ColumnState        Column = "Local da compra"
	ColumnReview       Column = "Avaliação da compra"
	ColumnPaymentType  Column = "Tipo de pagamento"
	ColumnInstallments Column = "Quantidade de parcelas"
	ColumnLat          Column = "lat"
	ColumnLon          Column = "lon"
)

// Columns lists every column in upstream order.
var Columns = []Column{
	ColumnProduct,
	ColumnCategory,
	ColumnPrice,
	ColumnFreight,
	ColumnPurchaseDate,
	ColumnSeller,
	ColumnState,
	ColumnReview,
	ColumnPaymentType,
	ColumnInstallments,
	ColumnLat,
	ColumnLon,
}

// ParseColumn reports whether name is a known column.
func ParseColumn(name string) (Column, bool) {
	for _, c := range Columns {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

type LocationRow struct {
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Value float64 `json:"value"`
}

type MonthRow struct {
	MonthEnd time.Time `json:"month_end"`
	Year     int       `json:"year"`
	Month    string    `json:"month"`
	Value    float64   `json:"value"`
}

type CategoryRow struct {
	Category string  `json:"category"`
	Value    float64 `json:"value"`
}

type SellerRow struct {
	Seller string  `json:"seller"`
	Value  float64 `json:"value"`
}
