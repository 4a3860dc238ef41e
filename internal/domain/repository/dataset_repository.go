package repository

import (
	"io"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
)

// DatasetRepository reads the raw sales dataset and writes the processed copy.
type DatasetRepository interface {
	LoadSales(r io.Reader) (entity.SalesTable, error)
	SaveProcessed(table entity.SalesTable, outputPath string) (string, error)
}
