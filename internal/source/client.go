// Package source reads product-sales records from the remote products API.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// DateLayout is the upstream purchase-date format (day/month/year).
const DateLayout = "02/01/2006"

const maxBodyBytes = 64 << 20

// Regions are the region options offered by the overview page. The first
// entry means "whole country" and is sent upstream as an empty filter.
var Regions = []string{"Brasil", "Centro-Oeste", "Nordeste", "Norte", "Sudeste", "Sul"}

// Query narrows the upstream read. Zero values mean no filter.
type Query struct {
	Region string
	Year   int
}

// Values encodes q as the upstream query string. Both keys are always sent.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("regiao", NormalizeRegion(q.Region))
	if q.Year > 0 {
		v.Set("ano", strconv.Itoa(q.Year))
	} else {
		v.Set("ano", "")
	}
	return v
}

// NormalizeRegion lowercases a region name and maps the whole-country option
// to the empty string.
func NormalizeRegion(region string) string {
	region = strings.ToLower(strings.TrimSpace(region))
	if region == "brasil" {
		return ""
	}
	return region
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch issues one GET against the products endpoint and materializes the
// response. Every failure is returned as a DATA_FETCH_ERROR.
func (c *Client) Fetch(ctx context.Context, q Query) ([]models.Record, error) {
	ctx, span := observability.StartSpan(ctx, "source.fetch")
	span.SetTag("regiao", NormalizeRegion(q.Region))
	span.SetTag("ano", strconv.Itoa(q.Year))

	records, err := c.fetch(ctx, q)
	if err != nil {
		span.SetError(err)
	}
	span.Finish()

	if err != nil {
		c.logger.Error("upstream fetch failed", "span", span, "error", err)
		return nil, err
	}

	c.logger.Info("upstream fetch complete", "span", span, "records", len(records))
	return records, nil
}

func (c *Client) fetch(ctx context.Context, q Query) ([]models.Record, error) {
	endpoint := c.baseURL + "?" + q.Values().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.DataFetch(err, "build upstream request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.DataFetch(err, "upstream request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, errors.DataFetch(
			fmt.Errorf("unexpected status %d", resp.StatusCode),
			"upstream returned an error status",
		)
	}

	return Decode(io.LimitReader(resp.Body, maxBodyBytes))
}

// wireRecord mirrors one upstream JSON object. Integer fields are decoded as
// numbers and rounded so that "5" and "5.0" both parse.
type wireRecord struct {
	Product      string  `json:"Produto"`
	Category     string  `json:"Categoria do Produto"`
	Price        float64 `json:"Preço"`
	Freight      float64 `json:"Frete"`
	PurchaseDate string  `json:"Data da Compra"`
	Seller       string  `json:"Vendedor"`
	State        string  `json:"Local da compra"`
	Review       float64 `json:"Avaliação da compra"`
	PaymentType  string  `json:"Tipo de pagamento"`
	Installments float64 `json:"Quantidade de parcelas"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
}

// Decode parses an upstream response body into records.
func Decode(r io.Reader) ([]models.Record, error) {
	var wire []wireRecord
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, errors.DataFetch(err, "decode upstream response")
	}

	records := make([]models.Record, 0, len(wire))
	for i, w := range wire {
		date, err := time.Parse(DateLayout, strings.TrimSpace(w.PurchaseDate))
		if err != nil {
			return nil, errors.DataFetch(err, "parse purchase date").
				WithDetails(fmt.Sprintf("record %d: %q", i, w.PurchaseDate))
		}

		records = append(records, models.Record{
			Product:      w.Product,
			Category:     w.Category,
			Price:        w.Price,
			Freight:      w.Freight,
			PurchaseDate: date,
			Seller:       w.Seller,
			State:        w.State,
			Lat:          w.Lat,
			Lon:          w.Lon,
			Review:       int(math.Round(w.Review)),
			PaymentType:  w.PaymentType,
			Installments: int(math.Round(w.Installments)),
		})
	}

	return records, nil
}
