package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Column names expected in the sales dataset.
const (
	ColumnOrderID   = "order_id"
	ColumnOrderDate = "order_date"
	ColumnSales     = "sales"
	ColumnProfit    = "profit"
	ColumnCategory  = "category"
	ColumnRegion    = "region"
	ColumnMonth     = "month"
)

// RequiredColumns lists the columns every input dataset must carry.
var RequiredColumns = []string{
	ColumnOrderID,
	ColumnOrderDate,
	ColumnSales,
	ColumnProfit,
	ColumnCategory,
	ColumnRegion,
}

// Layouts used when writing dates back out.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04:05"
	MonthLayout    = "2006-01"
)

// missingTokens são os marcadores de valor ausente comuns em CSVs exportados por ferramentas de dados.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell value counts as a missing value.
func IsMissing(value string) bool {
	_, ok := missingTokens[strings.TrimSpace(value)]
	return ok
}

// SalesRecord is one row of the sales dataset.
// Values holds the raw cells aligned with SalesTable.Columns; the typed fields
// are only meaningful for rows without missing values.
type SalesRecord struct {
	Values    []string        `json:"-"`
	OrderID   string          `json:"order_id"`
	OrderDate time.Time       `json:"order_date"`
	Sales     decimal.Decimal `json:"sales"`
	Profit    decimal.Decimal `json:"profit"`
	Category  string          `json:"category"`
	Region    string          `json:"region"`
	Month     time.Time       `json:"month"`
}

// HasMissing reports whether any cell of the record is missing.
func (r SalesRecord) HasMissing() bool {
	for _, v := range r.Values {
		if IsMissing(v) {
			return true
		}
	}
	return false
}

// SalesTable is the in-memory sales dataset.
type SalesTable struct {
	Columns []string      `json:"columns"`
	Records []SalesRecord `json:"records"`
}

// ColumnIndex returns the position of a column in the header, or -1.
func (t SalesTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of records.
func (t SalesTable) Len() int {
	return len(t.Records)
}

// HasTimeOfDay reports whether any order date carries a non-midnight time.
func (t SalesTable) HasTimeOfDay() bool {
	for _, r := range t.Records {
		if !r.OrderDate.Equal(TruncateToDay(r.OrderDate)) {
			return true
		}
	}
	return false
}

// TruncateToDay strips the time of day, keeping the location.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateToMonth returns the first day of the month at midnight, keeping the location.
func TruncateToMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// OrderDateLayout returns the layout used to write order dates: a plain date
// unless some record carries a time of day.
func (t SalesTable) OrderDateLayout() string {
	if t.HasTimeOfDay() {
		return DateTimeLayout
	}
	return DateLayout
}

// Row returns the cells of a record as written to outputs, with order_date
// and month rendered from their parsed values.
func (t SalesTable) Row(rec SalesRecord, dateLayout string) []string {
	row := make([]string, len(t.Columns))
	copy(row, rec.Values)
	if i := t.ColumnIndex(ColumnOrderDate); i >= 0 && !rec.OrderDate.IsZero() {
		row[i] = rec.OrderDate.Format(dateLayout)
	}
	if i := t.ColumnIndex(ColumnMonth); i >= 0 && !rec.Month.IsZero() {
		row[i] = rec.Month.Format(DateLayout)
	}
	return row
}
