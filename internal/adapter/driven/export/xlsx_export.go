package export

import (
	"fmt"
	"path/filepath"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/fsutil"
	"github.com/xuri/excelize/v2"
)

// Nomes das planilhas da pasta de trabalho exportada.
const (
	SheetProcessed = "Processed"
	SheetKPIs      = "KPIs"
	SheetMonthly   = "Monthly"
	SheetCategory  = "Category"
	SheetRegion    = "Region"
)

// ExportAnalysisToXLSX writes the cleaned table, the KPIs and the three
// aggregated series to one workbook, one sheet each.
func (r *ExportRepositoryImpl) ExportAnalysisToXLSX(analysis entity.SalesAnalysis, outputPath string) (string, error) {
	if err := fsutil.EnsureParentDir(outputPath); err != nil {
		return "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetProcessed); err != nil {
		return "", fmt.Errorf("error naming sheet %s: %w", SheetProcessed, err)
	}

	table := analysis.Table
	rows := make([][]interface{}, 0, table.Len()+1)
	rows = append(rows, toCells(table.Columns))
	dateLayout := table.OrderDateLayout()
	for _, rec := range table.Records {
		rows = append(rows, toCells(table.Row(rec, dateLayout)))
	}
	if err := writeSheet(f, SheetProcessed, rows); err != nil {
		return "", err
	}

	kpiRows := [][]interface{}{{"KPI", "Value"}}
	for _, item := range analysis.KPIs.Items() {
		if item.Integer {
			kpiRows = append(kpiRows, []interface{}{item.Name, int(item.Value)})
		} else {
			kpiRows = append(kpiRows, []interface{}{item.Name, item.Value})
		}
	}
	if err := addSheet(f, SheetKPIs, kpiRows); err != nil {
		return "", err
	}

	for _, s := range []struct {
		sheet  string
		series entity.SalesSeries
	}{
		{SheetMonthly, analysis.MonthlySales},
		{SheetCategory, analysis.SalesByCategory},
		{SheetRegion, analysis.SalesByRegion},
	} {
		if err := addSheet(f, s.sheet, seriesRows(s.series)); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(outputPath); err != nil {
		return "", fmt.Errorf("error writing XLSX file: %w", err)
	}

	return filepath.Abs(outputPath)
}

func seriesRows(series entity.SalesSeries) [][]interface{} {
	rows := [][]interface{}{{series.XLabel, series.YLabel}}
	for _, p := range series.Points {
		rows = append(rows, []interface{}{p.Label, p.Value.InexactFloat64()})
	}
	return rows
}

func addSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("error creating sheet %s: %w", sheet, err)
	}
	return writeSheet(f, sheet, rows)
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("error writing row %d of sheet %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
