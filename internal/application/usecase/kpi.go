package usecase

import (
	"fmt"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeKPIs calcula os indicadores sobre a tabela já limpa.
//
// The average order value is the mean of the per-order sales totals, not the
// mean of the row-level sales. Metrics that would divide by zero return
// ErrUndefinedMetric.
func ComputeKPIs(table entity.SalesTable) (entity.KPISummary, error) {
	var kpis entity.KPISummary

	orderTotals := make(map[string]decimal.Decimal)
	for _, rec := range table.Records {
		kpis.TotalSales = kpis.TotalSales.Add(rec.Sales)
		kpis.TotalProfit = kpis.TotalProfit.Add(rec.Profit)
		orderTotals[rec.OrderID] = orderTotals[rec.OrderID].Add(rec.Sales)
	}
	kpis.TotalOrders = len(orderTotals)

	if kpis.TotalOrders == 0 {
		return kpis, fmt.Errorf("%s: %w (no orders)", entity.KPIAverageOrderValue, types.ErrUndefinedMetric)
	}

	// Soma em ordem independente do mapa: a soma decimal é exata.
	sumOfOrders := decimal.Zero
	for _, total := range orderTotals {
		sumOfOrders = sumOfOrders.Add(total)
	}
	kpis.AverageOrderValue = sumOfOrders.Div(decimal.NewFromInt(int64(kpis.TotalOrders)))

	if kpis.TotalSales.IsZero() {
		return kpis, fmt.Errorf("%s: %w (total sales is zero)", entity.KPIProfitMargin, types.ErrUndefinedMetric)
	}
	kpis.ProfitMargin = kpis.TotalProfit.Div(kpis.TotalSales).Mul(hundred)

	return kpis, nil
}
