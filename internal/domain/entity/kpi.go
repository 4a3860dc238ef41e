package entity

import "github.com/shopspring/decimal"

// KPI names as they appear in reports.
const (
	KPITotalSales        = "Total Sales"
	KPITotalProfit       = "Total Profit"
	KPITotalOrders       = "Total Orders"
	KPIAverageOrderValue = "Avg Order Value (AOV)"
	KPIProfitMargin      = "Profit Margin (%)"
)

// KPISummary contains the summary indicators computed over the cleaned dataset.
type KPISummary struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalProfit       decimal.Decimal `json:"total_profit"`
	TotalOrders       int             `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"avg_order_value"`
	ProfitMargin      decimal.Decimal `json:"profit_margin_pct"`
}

// KPIItem is a single named indicator ready for presentation.
type KPIItem struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Integer bool    `json:"integer"`
}

// Items returns the indicators in report order.
func (k KPISummary) Items() []KPIItem {
	return []KPIItem{
		{Name: KPITotalSales, Value: k.TotalSales.InexactFloat64()},
		{Name: KPITotalProfit, Value: k.TotalProfit.InexactFloat64()},
		{Name: KPITotalOrders, Value: float64(k.TotalOrders), Integer: true},
		{Name: KPIAverageOrderValue, Value: k.AverageOrderValue.InexactFloat64()},
		{Name: KPIProfitMargin, Value: k.ProfitMargin.InexactFloat64()},
	}
}
