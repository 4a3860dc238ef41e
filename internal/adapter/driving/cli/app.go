package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/retail-sales-analytics-go/pkg/version"

	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/spf13/cobra"
)

// AnalysisRunner executes the sales analysis for the parsed arguments.
type AnalysisRunner interface {
	RunAnalysis(ctx context.Context, args *types.CLIArgs) error
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd         *cobra.Command
	analysisUseCase AnalysisRunner
	version         string
	showBanner      bool
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		showBanner: true,
	}

	rootCmd := &cobra.Command{
		Use:           "retail-analytics",
		Short:         "Retail sales exploratory analysis: cleaned dataset, KPI summary and charts",
		Version:       version.FormatVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "Retail Sales Analytics version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("base-dir", "b", "", "Base directory holding data/ and reports/ (default: current directory)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Input CSV path or s3://bucket/key URI (default: <base-dir>/data/raw/retail_sales.csv)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", nil, "Extra report types besides the markdown summary: json, pdf, xlsx")
	rootCmd.PersistentFlags().Bool("trend", false, "Display monthly sales as trend bars after the run")
	rootCmd.PersistentFlags().StringP("upload", "u", "", "Upload every generated file under this s3://bucket/prefix")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile used for S3 input and upload")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetArgs substitui os argumentos da linha de comando (usado em testes).
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	baseDir, _ := flags.GetString("base-dir")
	input, _ := flags.GetString("input")
	reportType, _ := flags.GetStringSlice("report-type")
	trend, _ := flags.GetBool("trend")
	upload, _ := flags.GetString("upload")
	profile, _ := flags.GetString("profile")

	if len(reportType) == 0 {
		reportType = nil
	}

	// Base dir só é resolvido aqui quando informado; senão o arquivo de configuração pode defini-lo.
	if baseDir != "" {
		absDir, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, err
		}
		baseDir = absDir
	} else if configFile == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		baseDir = cwd
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		BaseDir:    baseDir,
		Input:      input,
		ReportType: reportType,
		Trend:      trend,
		Upload:     upload,
		Profile:    profile,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	if app.showBanner {
		displayWelcomeBanner(app.version)
		go version.CheckLatestVersion(app.version)
	}

	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	return app.analysisUseCase.RunAnalysis(cmd.Context(), cliArgs)
}

// SetAnalysisUseCase sets the analysis use case for the CLI app.
func (app *CLIApp) SetAnalysisUseCase(useCase AnalysisRunner) {
	app.analysisUseCase = useCase
}
