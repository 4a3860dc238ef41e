package usecase

import (
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
)

// CleanSalesTable drops every record with a missing value in any column and
// derives the month column from order_date. The input table is left untouched.
//
// Rows missing a field that no KPI needs (e.g. region) are dropped as well
// and lower the totals.
func CleanSalesTable(raw entity.SalesTable) entity.SalesTable {
	columns := append([]string(nil), raw.Columns...)
	monthIdx := raw.ColumnIndex(entity.ColumnMonth)
	if monthIdx < 0 {
		columns = append(columns, entity.ColumnMonth)
		monthIdx = len(columns) - 1
	}

	cleaned := entity.SalesTable{
		Columns: columns,
		Records: make([]entity.SalesRecord, 0, len(raw.Records)),
	}

	for _, rec := range raw.Records {
		if rec.HasMissing() {
			continue
		}

		month := entity.TruncateToMonth(rec.OrderDate)
		values := make([]string, len(columns))
		copy(values, rec.Values)
		values[monthIdx] = month.Format(entity.DateLayout)

		rec.Values = values
		rec.Month = month
		cleaned.Records = append(cleaned.Records, rec)
	}

	return cleaned
}
