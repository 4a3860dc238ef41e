package repository

import (
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
)

type ExportRepository interface {
	ExportKPIReportToMarkdown(kpis entity.KPISummary, outputPath string) (string, error)

	// Extra exports
	ExportAnalysisToJSON(analysis entity.SalesAnalysis, outputPath string) (string, error)
	ExportAnalysisToPDF(analysis entity.SalesAnalysis, chartPaths []string, outputPath string) (string, error)
	ExportAnalysisToXLSX(analysis entity.SalesAnalysis, outputPath string) (string, error)
}
