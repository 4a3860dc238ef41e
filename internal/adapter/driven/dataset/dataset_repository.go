package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/fsutil"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/shopspring/decimal"
)

// dateLayouts são os formatos aceitos na coluna order_date, na ordem em que são tentados.
var dateLayouts = []string{
	entity.DateLayout,
	entity.DateTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"01/02/2006",
}

// DatasetRepositoryImpl implementa o DatasetRepository sobre arquivos CSV.
type DatasetRepositoryImpl struct{}

// NewDatasetRepository cria uma nova implementação do DatasetRepository.
func NewDatasetRepository() repository.DatasetRepository {
	return &DatasetRepositoryImpl{}
}

// LoadSales reads a CSV sales dataset. Missing cells are kept as-is so the
// cleaning step can decide what to drop; present cells of the typed columns
// must parse.
func (r *DatasetRepositoryImpl) LoadSales(in io.Reader) (entity.SalesTable, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entity.SalesTable{}, fmt.Errorf("dataset has no header: %w", types.ErrMissingColumn)
	}
	if err != nil {
		return entity.SalesTable{}, fmt.Errorf("error reading CSV header: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}

	table := entity.SalesTable{Columns: columns}

	idx := make(map[string]int, len(entity.RequiredColumns))
	for _, name := range entity.RequiredColumns {
		i := table.ColumnIndex(name)
		if i < 0 {
			return entity.SalesTable{}, fmt.Errorf("%w: %s", types.ErrMissingColumn, name)
		}
		idx[name] = i
	}

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return entity.SalesTable{}, fmt.Errorf("error reading CSV row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if len(row) > len(columns) {
			return entity.SalesTable{}, fmt.Errorf("line %d: %w (%d fields, header has %d)", line, types.ErrRowTooLong, len(row), len(columns))
		}

		// Linhas curtas são completadas com células vazias (ausentes).
		values := make([]string, len(columns))
		copy(values, row)

		record, err := parseRecord(values, idx)
		if err != nil {
			return entity.SalesTable{}, fmt.Errorf("line %d: %w", line, err)
		}
		table.Records = append(table.Records, record)
	}

	return table, nil
}

// normalizeOrderID devolve a forma canônica de ids numéricos ("01", "1.0" → "1"),
// so distinct-order counts match a numeric reading of the column. Other ids are only trimmed.
func normalizeOrderID(raw string) string {
	id := strings.TrimSpace(raw)
	if n, err := decimal.NewFromString(id); err == nil {
		return n.String()
	}
	return id
}

func parseRecord(values []string, idx map[string]int) (entity.SalesRecord, error) {
	record := entity.SalesRecord{
		Values:   values,
		OrderID:  normalizeOrderID(values[idx[entity.ColumnOrderID]]),
		Category: values[idx[entity.ColumnCategory]],
		Region:   values[idx[entity.ColumnRegion]],
	}

	if raw := values[idx[entity.ColumnOrderDate]]; !entity.IsMissing(raw) {
		date, err := parseDate(raw)
		if err != nil {
			return record, err
		}
		record.OrderDate = date
	}

	var err error
	if record.Sales, err = parseAmount(entity.ColumnSales, values[idx[entity.ColumnSales]]); err != nil {
		return record, err
	}
	if record.Profit, err = parseAmount(entity.ColumnProfit, values[idx[entity.ColumnProfit]]); err != nil {
		return record, err
	}

	return record, nil
}

func parseDate(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %s=%q", types.ErrInvalidDate, entity.ColumnOrderDate, raw)
}

func parseAmount(column, raw string) (decimal.Decimal, error) {
	if entity.IsMissing(raw) {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s=%q", types.ErrInvalidNumber, column, raw)
	}
	return d, nil
}

// SaveProcessed writes the cleaned table as CSV, header included and no index
// column. order_date is written as a plain date unless some row carries a time
// of day; month is always a plain date.
func (r *DatasetRepositoryImpl) SaveProcessed(table entity.SalesTable, outputPath string) (string, error) {
	if err := fsutil.EnsureParentDir(outputPath); err != nil {
		return "", err
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("error creating processed CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(table.Columns); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	dateLayout := table.OrderDateLayout()
	for _, rec := range table.Records {
		if err := writer.Write(table.Row(rec, dateLayout)); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputPath)
}
