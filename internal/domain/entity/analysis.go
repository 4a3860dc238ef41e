package entity

// SalesAnalysis groups everything produced by one run of the pipeline.
type SalesAnalysis struct {
	Table           SalesTable  `json:"-"`
	RawRows         int         `json:"raw_rows"`
	CleanRows       int         `json:"clean_rows"`
	KPIs            KPISummary  `json:"kpis"`
	MonthlySales    SalesSeries `json:"monthly_sales"`
	SalesByCategory SalesSeries `json:"sales_by_category"`
	SalesByRegion   SalesSeries `json:"sales_by_region"`
}
