package types

import (
	"path/filepath"
	"strings"
)

// Caminhos padrão relativos ao diretório base.
const (
	DefaultInputPath     = "data/raw/retail_sales.csv"
	DefaultProcessedPath = "data/processed/retail_sales_processed.csv"
	DefaultReportsDir    = "reports"

	KPIReportName         = "kpi_summary"
	MonthlyTrendChartName = "monthly_sales_trend.png"
	CategoryChartName     = "sales_by_category.png"
	RegionChartName       = "sales_by_region.png"
)

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	BaseDir    string   `json:"base_dir" yaml:"base_dir" toml:"base_dir"`
	Input      string   `json:"input" yaml:"input" toml:"input"`
	Processed  string   `json:"processed" yaml:"processed" toml:"processed"`
	ReportsDir string   `json:"reports_dir" yaml:"reports_dir" toml:"reports_dir"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Trend      bool     `json:"trend" yaml:"trend" toml:"trend"`
	Upload     string   `json:"upload" yaml:"upload" toml:"upload"`
	Profile    string   `json:"profile" yaml:"profile" toml:"profile"`
}

// PipelineConfig is the fully resolved configuration handed to the analysis pipeline.
// Every path is either absolute, relative to the working directory, or an s3:// URI.
type PipelineConfig struct {
	BaseDir       string
	InputPath     string
	ProcessedPath string
	ReportsDir    string
	ReportTypes   []string
	Trend         bool
	UploadURI     string
	Profile       string
}

// DefaultPipelineConfig retorna a configuração padrão ancorada em baseDir.
func DefaultPipelineConfig(baseDir string) PipelineConfig {
	return PipelineConfig{
		BaseDir:       baseDir,
		InputPath:     filepath.Join(baseDir, DefaultInputPath),
		ProcessedPath: filepath.Join(baseDir, DefaultProcessedPath),
		ReportsDir:    filepath.Join(baseDir, DefaultReportsDir),
	}
}

func (c PipelineConfig) KPIReportPath() string {
	return filepath.Join(c.ReportsDir, KPIReportName+".md")
}

// ExportPath returns the path of an extra KPI export with the given extension.
func (c PipelineConfig) ExportPath(ext string) string {
	return filepath.Join(c.ReportsDir, KPIReportName+"."+ext)
}

func (c PipelineConfig) MonthlyTrendChartPath() string {
	return filepath.Join(c.ReportsDir, MonthlyTrendChartName)
}

func (c PipelineConfig) CategoryChartPath() string {
	return filepath.Join(c.ReportsDir, CategoryChartName)
}

func (c PipelineConfig) RegionChartPath() string {
	return filepath.Join(c.ReportsDir, RegionChartName)
}

// IsS3URI reports whether the location points to an S3 object or prefix.
func IsS3URI(location string) bool {
	return strings.HasPrefix(location, "s3://")
}
