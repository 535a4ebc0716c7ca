package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"sales-dashboard/internal/models"
)

const (
	DefaultFileName = "dados"
	DateLayout      = "2006-01-02"
	sheetName       = "Sheet1"

	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Value returns the typed value of column for r.
func Value(r models.Record, column models.Column) any {
	switch column {
	case models.ColumnProduct:
		return r.Product
	case models.ColumnCategory:
		return r.Category
	case models.ColumnPrice:
		return r.Price
	case models.ColumnFreight:
		return r.Freight
	case models.ColumnPurchaseDate:
		return r.PurchaseDate
	case models.ColumnSeller:
		return r.Seller
	case models.ColumnState:
		return r.State
	case models.ColumnReview:
		return r.Review
	case models.ColumnPaymentType:
		return r.PaymentType
	case models.ColumnInstallments:
		return r.Installments
	case models.ColumnLat:
		return r.Lat
	case models.ColumnLon:
		return r.Lon
	default:
		return nil
	}
}

// Cell returns the text form of column for r, as written to CSV and shown in
// the raw-data table.
func Cell(r models.Record, column models.Column) string {
	switch v := Value(r, column).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.Format(DateLayout)
	default:
		return ""
	}
}

// Row returns the text cells of r for columns, in order.
func Row(r models.Record, columns []models.Column) []string {
	row := make([]string, len(columns))
	for i, c := range columns {
		row[i] = Cell(r, c)
	}
	return row
}

func header(columns []models.Column) []string {
	h := make([]string, len(columns))
	for i, c := range columns {
		h[i] = string(c)
	}
	return h
}

// WriteCSV writes a header row of column names then one row per record.
func WriteCSV(w io.Writer, records []models.Record, columns []models.Column) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header(columns)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r, columns)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the same table as WriteCSV to a single-sheet workbook.
// Numbers keep their numeric cell type.
func WriteXLSX(w io.Writer, records []models.Record, columns []models.Column) error {
	f := excelize.NewFile()
	defer f.Close()

	h := make([]any, len(columns))
	for i, c := range columns {
		h[i] = string(c)
	}
	if err := f.SetSheetRow(sheetName, "A1", &h); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := make([]any, len(columns))
		for j, c := range columns {
			if c == models.ColumnPurchaseDate {
				row[j] = Cell(r, c)
				continue
			}
			row[j] = Value(r, c)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	return f.Write(w)
}

// FileName builds a download name from user input: path elements stripped,
// blank input replaced by DefaultFileName, ext appended exactly once.
func FileName(name, ext string) string {
	ext = "." + strings.TrimPrefix(ext, ".")

	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r == '"' || r < ' ' {
			return -1
		}
		return r
	}, name)

	for strings.HasSuffix(strings.ToLower(name), ext) {
		name = name[:len(name)-len(ext)]
	}
	if name == "" || name == "." || name == ".." || name == "/" {
		name = DefaultFileName
	}
	return name + ext
}
