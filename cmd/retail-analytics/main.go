package main

import (
	"fmt"
	"os"

	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/aws"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/chart"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/config"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/dataset"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/export"
	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driving/cli"
	"github.com/diillson/retail-sales-analytics-go/internal/application/usecase"
	"github.com/diillson/retail-sales-analytics-go/pkg/console"
	"github.com/diillson/retail-sales-analytics-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	datasetRepo := dataset.NewDatasetRepository()
	exportRepo := export.NewExportRepository()
	chartRepo := chart.NewChartRepository()
	storageRepo := aws.NewS3Repository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	analysisUseCase := usecase.NewAnalysisUseCase(
		datasetRepo,
		exportRepo,
		chartRepo,
		storageRepo,
		configRepo,
		consoleImpl,
	)

	app.SetAnalysisUseCase(analysisUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
