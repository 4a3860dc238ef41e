package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/format"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/fsutil"
	"github.com/jung-kurt/gofpdf"
)

const kpiReportHeading = "# KPI Summary\n"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// --- Relatório de KPIs em markdown ---

// ExportKPIReportToMarkdown writes the KPI summary as a bulleted markdown list.
// Lines are joined with "\n" and the file has no trailing newline.
func (r *ExportRepositoryImpl) ExportKPIReportToMarkdown(kpis entity.KPISummary, outputPath string) (string, error) {
	lines := []string{kpiReportHeading}
	for _, item := range kpis.Items() {
		lines = append(lines, fmt.Sprintf("- %s: %s", item.Name, format.KPIValue(item)))
	}

	if err := writeFile(outputPath, []byte(strings.Join(lines, "\n"))); err != nil {
		return "", fmt.Errorf("error writing KPI report: %w", err)
	}

	return filepath.Abs(outputPath)
}

// --- Exportação JSON ---

type kpiExport struct {
	TotalSales        float64 `json:"total_sales"`
	TotalProfit       float64 `json:"total_profit"`
	TotalOrders       int     `json:"total_orders"`
	AverageOrderValue float64 `json:"avg_order_value"`
	ProfitMargin      float64 `json:"profit_margin_pct"`
}

type pointExport struct {
	Label string  `json:"label"`
	Sales float64 `json:"sales"`
}

type analysisExport struct {
	RawRows         int           `json:"raw_rows"`
	CleanRows       int           `json:"clean_rows"`
	KPIs            kpiExport     `json:"kpis"`
	MonthlySales    []pointExport `json:"monthly_sales"`
	SalesByCategory []pointExport `json:"sales_by_category"`
	SalesByRegion   []pointExport `json:"sales_by_region"`
}

func toPointExports(series entity.SalesSeries) []pointExport {
	points := make([]pointExport, len(series.Points))
	for i, p := range series.Points {
		points[i] = pointExport{Label: p.Label, Sales: p.Value.InexactFloat64()}
	}
	return points
}

func (r *ExportRepositoryImpl) ExportAnalysisToJSON(analysis entity.SalesAnalysis, outputPath string) (string, error) {
	if err := fsutil.EnsureParentDir(outputPath); err != nil {
		return "", err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	data := analysisExport{
		RawRows:   analysis.RawRows,
		CleanRows: analysis.CleanRows,
		KPIs: kpiExport{
			TotalSales:        analysis.KPIs.TotalSales.InexactFloat64(),
			TotalProfit:       analysis.KPIs.TotalProfit.InexactFloat64(),
			TotalOrders:       analysis.KPIs.TotalOrders,
			AverageOrderValue: analysis.KPIs.AverageOrderValue.InexactFloat64(),
			ProfitMargin:      analysis.KPIs.ProfitMargin.InexactFloat64(),
		},
		MonthlySales:    toPointExports(analysis.MonthlySales),
		SalesByCategory: toPointExports(analysis.SalesByCategory),
		SalesByRegion:   toPointExports(analysis.SalesByRegion),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputPath)
}

// --- Exportação PDF ---

// ExportAnalysisToPDF writes a KPI page followed by the rendered charts.
func (r *ExportRepositoryImpl) ExportAnalysisToPDF(analysis entity.SalesAnalysis, chartPaths []string, outputPath string) (string, error) {
	if err := fsutil.EnsureParentDir(outputPath); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	sectionTitleColor := [3]int{0, 0, 0}
	bodyTextColor := [3]int{50, 50, 50}
	lineColor := [3]int{200, 200, 200}

	sectionTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)
		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	drawSection := func(title string, content string) {
		if content == "" {
			return
		}
		sectionTitle(title)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(8)
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Retail Sales Analytics (Go) | %s", time.Now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, "  Retail Sales Analytics", "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	pdf.CellFormat(0, 8, fmt.Sprintf("  Rows analysed: %d of %d", analysis.CleanRows, analysis.RawRows), "", 1, "L", true, 0, "")
	pdf.Ln(10)

	sectionTitle("KPI Summary")
	for _, item := range analysis.KPIs.Items() {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.CellFormat(95, 7, tr(item.Name), "B", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(95, 7, format.KPIValue(item), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(8)

	drawSection(analysis.SalesByCategory.Title, seriesText(analysis.SalesByCategory))
	drawSection(analysis.SalesByRegion.Title, seriesText(analysis.SalesByRegion))

	const (
		imageWidth    = 190.0
		imageHeight   = imageWidth * 640 / 1024
		pageBodyLimit = 297.0 - 25
	)
	for _, chartPath := range chartPaths {
		if pdf.GetY()+imageHeight > pageBodyLimit {
			pdf.AddPage()
		}
		y := pdf.GetY()
		pdf.ImageOptions(chartPath, 10, y, imageWidth, imageHeight, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetY(y + imageHeight + 6)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputPath)
}

func seriesText(series entity.SalesSeries) string {
	var b strings.Builder
	for _, p := range series.Points {
		fmt.Fprintf(&b, "%s: %s\n", p.Label, format.Amount(p.Value.InexactFloat64()))
	}
	return strings.TrimSpace(b.String())
}

func writeFile(path string, data []byte) error {
	if err := fsutil.EnsureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
