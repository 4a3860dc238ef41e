package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/retail-sales-analytics-go/internal/shared/format"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Print imprime no console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError registra uma mensagem de erro.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Update atualiza a mensagem de status.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		_ = h.spinner.Stop()
	}
}

type progressHandle struct {
	bar *pterm.ProgressbarPrinter
}

// ProgressWithTotal cria uma barra de progresso com título e total de etapas.
func (c *Console) ProgressWithTotal(title string, total int) types.ProgressHandle {
	bar, _ := pterm.DefaultProgressbar.
		WithTotal(total).
		WithTitle(title).
		WithShowElapsedTime(true).
		WithShowCount(true).
		WithRemoveWhenDone(false).
		Start()
	return &progressHandle{bar: bar}
}

// Increment incrementa a barra de progresso.
func (h *progressHandle) Increment() {
	if h.bar != nil {
		h.bar.Increment()
	}
}

// Stop pára a barra de progresso.
func (h *progressHandle) Stop() {
	if h.bar != nil {
		_, _ = h.bar.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

const trendBarWidth = 40

// trendDirection classifica a variação mês a mês.
type trendDirection int

const (
	trendNone trendDirection = iota
	trendFlat
	trendUp
	trendDown
	trendUndefined
)

// monthOverMonth devolve o rótulo da variação percentual entre dois meses.
func monthOverMonth(prev, current float64) (string, trendDirection) {
	if math.Abs(prev) < 0.01 {
		if math.Abs(current) < 0.01 {
			return "0%", trendFlat
		}
		return "N/A", trendUndefined
	}

	changePercent := ((current - prev) / math.Abs(prev)) * 100.0
	switch {
	case math.Abs(changePercent) < 0.01:
		return "0%", trendFlat
	case changePercent > 999:
		return ">+999%", trendUp
	case changePercent < -999:
		return ">-999%", trendDown
	case changePercent > 0:
		return fmt.Sprintf("+%.2f%%", changePercent), trendUp
	default:
		return fmt.Sprintf("%.2f%%", changePercent), trendDown
	}
}

func barLength(value, maxValue float64) int {
	if maxValue <= 0 || value <= 0 {
		return 0
	}
	return int((value / maxValue) * trendBarWidth)
}

// DisplayTrendBars exibe as vendas mensais como barras com a variação mês a mês.
// Sales growth is green; a drop is red.
func (c *Console) DisplayTrendBars(monthlySales []types.MonthlySales) {
	maxSales := 0.0
	for _, ms := range monthlySales {
		if ms.Sales > maxSales {
			maxSales = ms.Sales
		}
	}

	if maxSales == 0 {
		pterm.Warning.Println("No positive monthly sales to chart for this dataset")
		return
	}

	tableData := pterm.TableData{
		{"Month", "Sales", "", "MoM Change"},
	}

	for i, ms := range monthlySales {
		bar := strings.Repeat("█", barLength(ms.Sales, maxSales))
		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if i > 0 {
			label, direction := monthOverMonth(monthlySales[i-1].Sales, ms.Sales)
			style := pterm.FgBlue
			switch direction {
			case trendFlat:
				style = pterm.FgYellow
			case trendUp:
				style = pterm.FgGreen
			case trendDown, trendUndefined:
				style = pterm.FgRed
			}
			change = style.Sprint(label)
			barColor = style.Sprint(bar)
		}

		tableData = append(tableData, []string{
			ms.Month,
			format.Amount(ms.Sales),
			barColor,
			change,
		})
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Monthly Sales Trend").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
