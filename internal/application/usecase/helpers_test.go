package usecase

import (
	"strings"
	"testing"

	"github.com/diillson/retail-sales-analytics-go/internal/adapter/driven/dataset"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/stretchr/testify/require"
)

const salesHeader = "order_id,order_date,sales,profit,category,region\n"

// scenarioCSV is the reference three-row dataset plus one row with a missing profit.
const scenarioCSV = salesHeader +
	"1,2023-01-05,100,20,A,East\n" +
	"1,2023-01-05,50,10,A,East\n" +
	"2,2023-02-10,200,-40,B,West\n" +
	"3,2023-03-01,999,,C,North\n"

func loadTable(t *testing.T, csv string) entity.SalesTable {
	t.Helper()
	table, err := dataset.NewDatasetRepository().LoadSales(strings.NewReader(csv))
	require.NoError(t, err)
	return table
}

func cleanTable(t *testing.T, csv string) entity.SalesTable {
	t.Helper()
	return CleanSalesTable(loadTable(t, csv))
}

// nopConsole descarta a saída e guarda os erros registrados.
type nopConsole struct {
	errors  []string
	success []string
	trend   []types.MonthlySales
}

func (c *nopConsole) Print(a ...interface{})                    {}
func (c *nopConsole) Printf(format string, a ...interface{})    {}
func (c *nopConsole) Println(a ...interface{})                  {}
func (c *nopConsole) LogInfo(format string, a ...interface{})   {}
func (c *nopConsole) LogWarning(format string, a ...interface{}) {}

func (c *nopConsole) LogError(format string, a ...interface{}) {
	c.errors = append(c.errors, format)
}

func (c *nopConsole) LogSuccess(format string, a ...interface{}) {
	c.success = append(c.success, format)
}

func (c *nopConsole) Status(message string) types.StatusHandle {
	return nopHandle{}
}

func (c *nopConsole) ProgressWithTotal(title string, total int) types.ProgressHandle {
	return nopHandle{}
}

func (c *nopConsole) CreateTable() types.TableInterface {
	return &nopTable{}
}

func (c *nopConsole) DisplayTrendBars(monthlySales []types.MonthlySales) {
	c.trend = monthlySales
}

type nopHandle struct{}

func (nopHandle) Update(message string) {}
func (nopHandle) Increment()            {}
func (nopHandle) Stop()                 {}

type nopTable struct{}

func (*nopTable) AddColumn(name string, options ...interface{}) {}
func (*nopTable) AddRow(cells ...interface{})                   {}
func (*nopTable) Render() string                                { return "" }
