package repository

import (
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
)

// ChartRepository renders aggregated sales series as image files.
type ChartRepository interface {
	RenderLineChart(series entity.SalesSeries, outputPath string) (string, error)
	RenderBarChart(series entity.SalesSeries, outputPath string) (string, error)
}
