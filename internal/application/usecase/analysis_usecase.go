package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/format"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
)

// Extra report types; the markdown KPI summary is always written.
const (
	ReportTypeMarkdown = "md"
	ReportTypeJSON     = "json"
	ReportTypePDF      = "pdf"
	ReportTypeXLSX     = "xlsx"
)

// AnalysisUseCase handles the sales analysis pipeline.
type AnalysisUseCase struct {
	datasetRepo repository.DatasetRepository
	exportRepo  repository.ExportRepository
	chartRepo   repository.ChartRepository
	storageRepo repository.StorageRepository
	configRepo  repository.ConfigRepository
	console     types.ConsoleInterface
}

// NewAnalysisUseCase creates a new analysis use case.
func NewAnalysisUseCase(
	datasetRepo repository.DatasetRepository,
	exportRepo repository.ExportRepository,
	chartRepo repository.ChartRepository,
	storageRepo repository.StorageRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		datasetRepo: datasetRepo,
		exportRepo:  exportRepo,
		chartRepo:   chartRepo,
		storageRepo: storageRepo,
		configRepo:  configRepo,
		console:     console,
	}
}

// ResolveConfig combina flags da CLI, arquivo de configuração e valores padrão.
// Flags take precedence over the file; relative paths from the file are
// anchored at the base directory.
func (uc *AnalysisUseCase) ResolveConfig(args *types.CLIArgs) (types.PipelineConfig, error) {
	fileCfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return types.PipelineConfig{}, fmt.Errorf("error loading config file: %w", err)
		}
		fileCfg = loaded
	}

	baseDir := firstNonEmpty(args.BaseDir, fileCfg.BaseDir, ".")
	cfg := types.DefaultPipelineConfig(baseDir)

	if fileCfg.Input != "" {
		cfg.InputPath = anchor(baseDir, fileCfg.Input)
	}
	if args.Input != "" {
		cfg.InputPath = args.Input
	}
	if fileCfg.Processed != "" {
		cfg.ProcessedPath = anchor(baseDir, fileCfg.Processed)
	}
	if fileCfg.ReportsDir != "" {
		cfg.ReportsDir = anchor(baseDir, fileCfg.ReportsDir)
	}

	reportTypes := fileCfg.ReportType
	if len(args.ReportType) > 0 {
		reportTypes = args.ReportType
	}
	normalized, err := normalizeReportTypes(reportTypes)
	if err != nil {
		return types.PipelineConfig{}, err
	}
	cfg.ReportTypes = normalized

	cfg.Trend = args.Trend || fileCfg.Trend
	cfg.Profile = firstNonEmpty(args.Profile, fileCfg.Profile)
	cfg.UploadURI = firstNonEmpty(args.Upload, fileCfg.Upload)
	if cfg.UploadURI != "" && !types.IsS3URI(cfg.UploadURI) {
		return types.PipelineConfig{}, fmt.Errorf("%w: %s", types.ErrInvalidS3URI, cfg.UploadURI)
	}

	return cfg, nil
}

// RunAnalysis executa a funcionalidade principal: pipeline, resumo no console e upload.
func (uc *AnalysisUseCase) RunAnalysis(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	analysis, outputs, err := uc.RunPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	uc.displaySummary(analysis, cfg.Trend)

	if cfg.UploadURI != "" {
		if err := uc.uploadOutputs(ctx, cfg, outputs); err != nil {
			return err
		}
	}

	return nil
}

// RunPipeline runs load, clean, write, aggregate, report and chart stages once,
// in order, stopping at the first failure. It returns the analysis and the
// absolute paths of every file written.
func (uc *AnalysisUseCase) RunPipeline(ctx context.Context, cfg types.PipelineConfig) (*entity.SalesAnalysis, []string, error) {
	status := uc.console.Status(fmt.Sprintf("Loading sales dataset from %s...", cfg.InputPath))
	raw, err := uc.loadSales(ctx, cfg)
	status.Stop()
	if err != nil {
		return nil, nil, err
	}

	cleaned := CleanSalesTable(raw)
	if dropped := raw.Len() - cleaned.Len(); dropped > 0 {
		uc.console.LogWarning("Dropped %d of %d rows with missing values", dropped, raw.Len())
	}

	processedPath, err := uc.datasetRepo.SaveProcessed(cleaned, cfg.ProcessedPath)
	if err != nil {
		return nil, nil, fmt.Errorf("error writing processed dataset: %w", err)
	}
	uc.console.LogSuccess("Processed dataset saved to: %s", processedPath)

	kpis, err := ComputeKPIs(cleaned)
	if err != nil {
		return nil, nil, fmt.Errorf("error computing KPIs: %w", err)
	}

	reportPath, err := uc.exportRepo.ExportKPIReportToMarkdown(kpis, cfg.KPIReportPath())
	if err != nil {
		return nil, nil, fmt.Errorf("error writing KPI report: %w", err)
	}
	uc.console.LogSuccess("KPI summary saved to: %s", reportPath)

	analysis := &entity.SalesAnalysis{
		Table:           cleaned,
		RawRows:         raw.Len(),
		CleanRows:       cleaned.Len(),
		KPIs:            kpis,
		MonthlySales:    MonthlySales(cleaned),
		SalesByCategory: SalesByCategory(cleaned),
		SalesByRegion:   SalesByRegion(cleaned),
	}

	chartPaths, err := uc.renderCharts(analysis, cfg)
	if err != nil {
		return nil, nil, err
	}

	outputs := []string{processedPath, reportPath}
	outputs = append(outputs, chartPaths...)
	outputs = append(outputs, uc.exportExtras(analysis, chartPaths, cfg)...)

	return analysis, outputs, nil
}

func (uc *AnalysisUseCase) loadSales(ctx context.Context, cfg types.PipelineConfig) (entity.SalesTable, error) {
	var (
		in  io.ReadCloser
		err error
	)
	if types.IsS3URI(cfg.InputPath) {
		in, err = uc.storageRepo.Open(ctx, cfg.Profile, cfg.InputPath)
	} else {
		in, err = os.Open(cfg.InputPath)
	}
	if err != nil {
		return entity.SalesTable{}, fmt.Errorf("error opening sales dataset: %w", err)
	}
	defer in.Close()

	table, err := uc.datasetRepo.LoadSales(in)
	if err != nil {
		return entity.SalesTable{}, fmt.Errorf("error loading sales dataset %s: %w", cfg.InputPath, err)
	}
	return table, nil
}

func (uc *AnalysisUseCase) renderCharts(analysis *entity.SalesAnalysis, cfg types.PipelineConfig) ([]string, error) {
	charts := []struct {
		series entity.SalesSeries
		path   string
		line   bool
	}{
		{series: analysis.MonthlySales, path: cfg.MonthlyTrendChartPath(), line: true},
		{series: analysis.SalesByCategory, path: cfg.CategoryChartPath()},
		{series: analysis.SalesByRegion, path: cfg.RegionChartPath()},
	}

	progress := uc.console.ProgressWithTotal("Rendering charts", len(charts))
	defer progress.Stop()

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		var (
			chartPath string
			err       error
		)
		if c.line {
			chartPath, err = uc.chartRepo.RenderLineChart(c.series, c.path)
		} else {
			chartPath, err = uc.chartRepo.RenderBarChart(c.series, c.path)
		}
		if err != nil {
			return nil, fmt.Errorf("error rendering chart %q: %w", c.series.Title, err)
		}
		paths = append(paths, chartPath)
		progress.Increment()
	}

	return paths, nil
}

// exportExtras grava os relatórios opcionais. Falhas são registradas e não interrompem a execução.
func (uc *AnalysisUseCase) exportExtras(analysis *entity.SalesAnalysis, chartPaths []string, cfg types.PipelineConfig) []string {
	var written []string
	for _, reportType := range cfg.ReportTypes {
		var (
			outPath string
			err     error
		)
		switch reportType {
		case ReportTypeJSON:
			outPath, err = uc.exportRepo.ExportAnalysisToJSON(*analysis, cfg.ExportPath(ReportTypeJSON))
		case ReportTypePDF:
			outPath, err = uc.exportRepo.ExportAnalysisToPDF(*analysis, chartPaths, cfg.ExportPath(ReportTypePDF))
		case ReportTypeXLSX:
			outPath, err = uc.exportRepo.ExportAnalysisToXLSX(*analysis, cfg.ExportPath(ReportTypeXLSX))
		default:
			continue
		}

		if err != nil {
			uc.console.LogError("Failed to export report to %s: %s", strings.ToUpper(reportType), err)
			continue
		}
		uc.console.LogSuccess("Successfully exported report to %s: %s", strings.ToUpper(reportType), outPath)
		written = append(written, outPath)
	}
	return written
}

func (uc *AnalysisUseCase) displaySummary(analysis *entity.SalesAnalysis, trend bool) {
	table := uc.console.CreateTable()
	table.AddColumn("KPI")
	table.AddColumn("Value")
	for _, item := range analysis.KPIs.Items() {
		table.AddRow(item.Name, format.KPIValue(item))
	}
	uc.console.Println(table.Render())
	uc.console.LogInfo("%d of %d rows kept after cleaning", analysis.CleanRows, analysis.RawRows)

	if trend {
		monthly := make([]types.MonthlySales, len(analysis.MonthlySales.Points))
		for i, p := range analysis.MonthlySales.Points {
			monthly[i] = types.MonthlySales{
				Month: p.Label,
				Sales: p.Value.InexactFloat64(),
			}
		}
		uc.console.DisplayTrendBars(monthly)
	}
}

// uploadOutputs publica os arquivos gerados em cfg.UploadURI, mantendo o caminho relativo ao diretório base.
func (uc *AnalysisUseCase) uploadOutputs(ctx context.Context, cfg types.PipelineConfig, outputs []string) error {
	base, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		return err
	}
	prefix := strings.TrimSuffix(cfg.UploadURI, "/")

	for _, local := range outputs {
		rel, err := filepath.Rel(base, local)
		if err != nil || strings.HasPrefix(rel, "..") {
			rel = filepath.Base(local)
		}
		uri := prefix + "/" + path.Clean(filepath.ToSlash(rel))

		if err := uc.storageRepo.Upload(ctx, cfg.Profile, uri, local); err != nil {
			return fmt.Errorf("error uploading %s: %w", local, err)
		}
		uc.console.LogSuccess("Uploaded %s to %s", filepath.Base(local), uri)
	}
	return nil
}

func normalizeReportTypes(reportTypes []string) ([]string, error) {
	seen := make(map[string]bool)
	var normalized []string
	for _, rt := range reportTypes {
		rt = strings.ToLower(strings.TrimSpace(rt))
		switch rt {
		case "", ReportTypeMarkdown:
			continue
		case ReportTypeJSON, ReportTypePDF, ReportTypeXLSX:
			if !seen[rt] {
				seen[rt] = true
				normalized = append(normalized, rt)
			}
		default:
			return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, rt)
		}
	}
	return normalized, nil
}

func anchor(baseDir, p string) string {
	if types.IsS3URI(p) || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
