package usecase

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/chart"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/config"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/dataset"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/export"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Open(ctx context.Context, profile, uri string) (io.ReadCloser, error) {
	args := m.Called(profile, uri)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *mockStorage) Upload(ctx context.Context, profile, uri, localPath string) error {
	return m.Called(profile, uri, localPath).Error(0)
}

type mockConfigRepo struct {
	mock.Mock
}

func (m *mockConfigRepo) LoadConfigFile(filePath string) (*types.Config, error) {
	args := m.Called(filePath)
	cfg, _ := args.Get(0).(*types.Config)
	return cfg, args.Error(1)
}

// failingPDFExport falha apenas na exportação em PDF.
type failingPDFExport struct {
	repository.ExportRepository
}

func (failingPDFExport) ExportAnalysisToPDF(entity.SalesAnalysis, []string, string) (string, error) {
	return "", errors.New("pdf engine unavailable")
}

const expectedReport = "# KPI Summary\n\n" +
	"- Total Sales: 350.00\n" +
	"- Total Profit: -10.00\n" +
	"- Total Orders: 2\n" +
	"- Avg Order Value (AOV): 175.00\n" +
	"- Profit Margin (%): -2.86"

const expectedProcessed = "order_id,order_date,sales,profit,category,region,month\n" +
	"1,2023-01-05,100,20,A,East,2023-01-01\n" +
	"1,2023-01-05,50,10,A,East,2023-01-01\n" +
	"2,2023-02-10,200,-40,B,West,2023-02-01\n"

type fixture struct {
	uc      *AnalysisUseCase
	console *nopConsole
	storage *mockStorage
	base    string
}

func newFixture(t *testing.T, exportRepo repository.ExportRepository, configRepo repository.ConfigRepository) *fixture {
	t.Helper()
	if exportRepo == nil {
		exportRepo = export.NewExportRepository()
	}
	if configRepo == nil {
		configRepo = config.NewConfigRepository()
	}

	f := &fixture{
		console: &nopConsole{},
		storage: new(mockStorage),
		base:    t.TempDir(),
	}
	f.uc = NewAnalysisUseCase(
		dataset.NewDatasetRepository(),
		exportRepo,
		chart.NewChartRepository(),
		f.storage,
		configRepo,
		f.console,
	)
	return f
}

func (f *fixture) writeInput(t *testing.T, content string) {
	t.Helper()
	path := filepath.Join(f.base, types.DefaultInputPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestRunPipeline_WritesAllOutputs(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.writeInput(t, scenarioCSV)
	cfg := types.DefaultPipelineConfig(f.base)

	analysis, outputs, err := f.uc.RunPipeline(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, 4, analysis.RawRows)
	assert.Equal(t, 3, analysis.CleanRows)
	assert.Equal(t, 2, analysis.KPIs.TotalOrders)

	assert.Equal(t, expectedProcessed, readFile(t, cfg.ProcessedPath))
	assert.Equal(t, expectedReport, readFile(t, cfg.KPIReportPath()))
	for _, p := range []string{cfg.MonthlyTrendChartPath(), cfg.CategoryChartPath(), cfg.RegionChartPath()} {
		assert.True(t, strings.HasPrefix(readFile(t, p), "\x89PNG"), p)
	}

	require.Len(t, outputs, 5)
	for _, out := range outputs {
		assert.True(t, filepath.IsAbs(out), out)
	}
	assert.Empty(t, f.console.errors)
}

func TestRunPipeline_RerunIsByteIdentical(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.writeInput(t, scenarioCSV)
	cfg := types.DefaultPipelineConfig(f.base)

	_, _, err := f.uc.RunPipeline(context.Background(), cfg)
	require.NoError(t, err)
	firstProcessed := readFile(t, cfg.ProcessedPath)
	firstReport := readFile(t, cfg.KPIReportPath())

	_, _, err = f.uc.RunPipeline(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, firstProcessed, readFile(t, cfg.ProcessedPath))
	assert.Equal(t, firstReport, readFile(t, cfg.KPIReportPath()))
}

func TestRunPipeline_MissingInput(t *testing.T) {
	f := newFixture(t, nil, nil)

	_, _, err := f.uc.RunPipeline(context.Background(), types.DefaultPipelineConfig(f.base))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunPipeline_UndefinedMetricStopsBeforeReport(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.writeInput(t, salesHeader+"1,2023-01-05,0,0,A,East\n")
	cfg := types.DefaultPipelineConfig(f.base)

	_, _, err := f.uc.RunPipeline(context.Background(), cfg)
	assert.ErrorIs(t, err, types.ErrUndefinedMetric)

	assert.FileExists(t, cfg.ProcessedPath)
	assert.NoFileExists(t, cfg.KPIReportPath())
}

func TestRunPipeline_ExtraExports(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.writeInput(t, scenarioCSV)
	cfg := types.DefaultPipelineConfig(f.base)
	cfg.ReportTypes = []string{ReportTypeJSON, ReportTypePDF, ReportTypeXLSX}

	_, outputs, err := f.uc.RunPipeline(context.Background(), cfg)
	require.NoError(t, err)

	require.Len(t, outputs, 8)
	assert.FileExists(t, cfg.ExportPath(ReportTypeJSON))
	assert.FileExists(t, cfg.ExportPath(ReportTypePDF))
	assert.FileExists(t, cfg.ExportPath(ReportTypeXLSX))
}

func TestRunPipeline_FailedExtraExportDoesNotAbort(t *testing.T) {
	f := newFixture(t, failingPDFExport{export.NewExportRepository()}, nil)
	f.writeInput(t, scenarioCSV)
	cfg := types.DefaultPipelineConfig(f.base)
	cfg.ReportTypes = []string{ReportTypePDF, ReportTypeJSON}

	_, outputs, err := f.uc.RunPipeline(context.Background(), cfg)
	require.NoError(t, err)

	assert.Len(t, outputs, 6)
	assert.Len(t, f.console.errors, 1)
	assert.NoFileExists(t, cfg.ExportPath(ReportTypePDF))
	assert.FileExists(t, cfg.ExportPath(ReportTypeJSON))
}

func TestRunAnalysis_S3InputAndUpload(t *testing.T) {
	f := newFixture(t, nil, nil)
	ctx := context.Background()

	f.storage.On("Open", "analytics", "s3://retail/raw/retail_sales.csv").
		Return(io.NopCloser(strings.NewReader(scenarioCSV)), nil).Once()

	var uploaded []string
	f.storage.On("Upload", "analytics", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		uploaded = append(uploaded, args.String(1))
	}).Return(nil)

	err := f.uc.RunAnalysis(ctx, &types.CLIArgs{
		BaseDir: f.base,
		Input:   "s3://retail/raw/retail_sales.csv",
		Trend:   true,
		Upload:  "s3://retail/out/",
		Profile: "analytics",
	})
	require.NoError(t, err)

	sort.Strings(uploaded)
	assert.Equal(t, []string{
		"s3://retail/out/data/processed/retail_sales_processed.csv",
		"s3://retail/out/reports/kpi_summary.md",
		"s3://retail/out/reports/monthly_sales_trend.png",
		"s3://retail/out/reports/sales_by_category.png",
		"s3://retail/out/reports/sales_by_region.png",
	}, uploaded)

	assert.Equal(t, []types.MonthlySales{{Month: "2023-01", Sales: 150}, {Month: "2023-02", Sales: 200}}, f.console.trend)
	f.storage.AssertExpectations(t)
}

func TestRunAnalysis_UploadFailureIsFatal(t *testing.T) {
	f := newFixture(t, nil, nil)
	f.writeInput(t, scenarioCSV)

	f.storage.On("Upload", "", mock.Anything, mock.Anything).Return(errors.New("access denied")).Once()

	err := f.uc.RunAnalysis(context.Background(), &types.CLIArgs{BaseDir: f.base, Upload: "s3://retail"})
	assert.ErrorContains(t, err, "access denied")
}

func TestResolveConfig_Defaults(t *testing.T) {
	f := newFixture(t, nil, nil)

	cfg, err := f.uc.ResolveConfig(&types.CLIArgs{BaseDir: f.base})
	require.NoError(t, err)
	assert.Equal(t, types.DefaultPipelineConfig(f.base), cfg)
}

func TestResolveConfig_FileAndFlagPrecedence(t *testing.T) {
	configRepo := new(mockConfigRepo)
	f := newFixture(t, nil, configRepo)

	configRepo.On("LoadConfigFile", "retail.yaml").Return(&types.Config{
		BaseDir:    f.base,
		Input:      "incoming/sales.csv",
		Processed:  "out/clean.csv",
		ReportsDir: "/var/reports",
		ReportType: []string{"json"},
		Trend:      true,
		Upload:     "s3://retail/from-file",
		Profile:    "file-profile",
	}, nil)

	cfg, err := f.uc.ResolveConfig(&types.CLIArgs{ConfigFile: "retail.yaml"})
	require.NoError(t, err)
	assert.Equal(t, f.base, cfg.BaseDir)
	assert.Equal(t, filepath.Join(f.base, "incoming/sales.csv"), cfg.InputPath)
	assert.Equal(t, filepath.Join(f.base, "out/clean.csv"), cfg.ProcessedPath)
	assert.Equal(t, "/var/reports", cfg.ReportsDir)
	assert.Equal(t, []string{ReportTypeJSON}, cfg.ReportTypes)
	assert.True(t, cfg.Trend)
	assert.Equal(t, "s3://retail/from-file", cfg.UploadURI)
	assert.Equal(t, "file-profile", cfg.Profile)

	other := t.TempDir()
	cfg, err = f.uc.ResolveConfig(&types.CLIArgs{
		ConfigFile: "retail.yaml",
		BaseDir:    other,
		Input:      "local.csv",
		ReportType: []string{"XLSX", " pdf ", "md", "pdf"},
		Upload:     "s3://retail/from-flag",
		Profile:    "flag-profile",
	})
	require.NoError(t, err)
	assert.Equal(t, other, cfg.BaseDir)
	assert.Equal(t, "local.csv", cfg.InputPath)
	assert.Equal(t, filepath.Join(other, "out/clean.csv"), cfg.ProcessedPath)
	assert.Equal(t, []string{ReportTypeXLSX, ReportTypePDF}, cfg.ReportTypes)
	assert.Equal(t, "s3://retail/from-flag", cfg.UploadURI)
	assert.Equal(t, "flag-profile", cfg.Profile)
}

func TestResolveConfig_Errors(t *testing.T) {
	configRepo := new(mockConfigRepo)
	f := newFixture(t, nil, configRepo)
	configRepo.On("LoadConfigFile", "broken.toml").Return(nil, errors.New("error parsing TOML file"))

	tests := []struct {
		name    string
		args    *types.CLIArgs
		wantErr error
	}{
		{name: "unknown report type", args: &types.CLIArgs{BaseDir: f.base, ReportType: []string{"csv"}}, wantErr: types.ErrUnsupportedReportType},
		{name: "upload must be s3", args: &types.CLIArgs{BaseDir: f.base, Upload: "/tmp/out"}, wantErr: types.ErrInvalidS3URI},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.ResolveConfig(tt.args)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := f.uc.ResolveConfig(&types.CLIArgs{ConfigFile: "broken.toml"})
	assert.ErrorContains(t, err, "error loading config file")
}
