package usecase

import (
	"sort"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Chart titles and axis labels.
const (
	MonthlySalesTitle    = "Monthly Sales Trend"
	SalesByCategoryTitle = "Sales by Category"
	SalesByRegionTitle   = "Sales by Region"
	salesAxisLabel       = "Sales"
)

// salesAccumulator soma vendas por chave preservando a ordem de primeira aparição.
type salesAccumulator struct {
	order  []string
	totals map[string]decimal.Decimal
	period map[string]entity.SeriesPoint
}

func newSalesAccumulator() *salesAccumulator {
	return &salesAccumulator{
		totals: make(map[string]decimal.Decimal),
		period: make(map[string]entity.SeriesPoint),
	}
}

func (a *salesAccumulator) add(point entity.SeriesPoint, sales decimal.Decimal) {
	if _, exists := a.totals[point.Label]; !exists {
		a.order = append(a.order, point.Label)
		a.period[point.Label] = point
	}
	a.totals[point.Label] = a.totals[point.Label].Add(sales)
}

func (a *salesAccumulator) points() []entity.SeriesPoint {
	points := make([]entity.SeriesPoint, 0, len(a.order))
	for _, key := range a.order {
		p := a.period[key]
		p.Value = a.totals[key]
		points = append(points, p)
	}
	return points
}

// MonthlySales sums sales per month, in chronological order.
func MonthlySales(table entity.SalesTable) entity.SalesSeries {
	acc := newSalesAccumulator()
	for _, rec := range table.Records {
		acc.add(entity.SeriesPoint{Label: rec.Month.Format(entity.MonthLayout), Period: rec.Month}, rec.Sales)
	}

	points := acc.points()
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Period.Before(points[j].Period)
	})

	return entity.SalesSeries{
		Title:  MonthlySalesTitle,
		XLabel: "Month",
		YLabel: salesAxisLabel,
		Points: points,
	}
}

// SalesByCategory sums sales per category, largest first.
func SalesByCategory(table entity.SalesTable) entity.SalesSeries {
	return rankedSales(table, SalesByCategoryTitle, "Category", func(r entity.SalesRecord) string { return r.Category })
}

// SalesByRegion sums sales per region, largest first.
func SalesByRegion(table entity.SalesTable) entity.SalesSeries {
	return rankedSales(table, SalesByRegionTitle, "Region", func(r entity.SalesRecord) string { return r.Region })
}

// rankedSales groups in a single pass and sorts descending by total; ties keep
// the order in which the keys first appeared.
func rankedSales(table entity.SalesTable, title, xLabel string, key func(entity.SalesRecord) string) entity.SalesSeries {
	acc := newSalesAccumulator()
	for _, rec := range table.Records {
		acc.add(entity.SeriesPoint{Label: key(rec)}, rec.Sales)
	}

	points := acc.points()
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Value.GreaterThan(points[j].Value)
	})

	return entity.SalesSeries{
		Title:  title,
		XLabel: xLabel,
		YLabel: salesAxisLabel,
		Points: points,
	}
}
