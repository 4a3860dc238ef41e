package chart

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/diillson/retail-sales-analytics-go/internal/domain/repository"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/format"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/fsutil"
	"github.com/diillson/retail-sales-analytics-go/internal/shared/types"
	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	defaultWidth  = 1024
	defaultHeight = 640
	maxBarWidth   = 80
	minBarWidth   = 6

	// xAxisNameSpace reserva espaço abaixo dos rótulos das barras para o nome do eixo X.
	xAxisNameSpace = 56
)

// renderable é satisfeito tanto por gochart.Chart quanto por gochart.BarChart.
type renderable interface {
	Render(rp gochart.RendererProvider, w io.Writer) error
}

// ChartRepositoryImpl implementa o ChartRepository com go-chart, gerando PNG.
type ChartRepositoryImpl struct {
	width  int
	height int
}

// NewChartRepository cria uma nova implementação do ChartRepository.
func NewChartRepository() repository.ChartRepository {
	return &ChartRepositoryImpl{width: defaultWidth, height: defaultHeight}
}

// RenderLineChart draws a time series with one point per period.
func (r *ChartRepositoryImpl) RenderLineChart(series entity.SalesSeries, outputPath string) (string, error) {
	if len(series.Points) == 0 {
		return "", fmt.Errorf("%s: %w", series.Title, types.ErrEmptySeries)
	}

	xs := make([]time.Time, len(series.Points))
	ticks := make([]gochart.Tick, len(series.Points))
	for i, p := range series.Points {
		xs[i] = p.Period
		ticks[i] = gochart.Tick{Value: gochart.TimeToFloat64(p.Period), Label: p.Label}
	}
	ys := series.Values()

	// Um único ponto gera um intervalo X nulo; duplicamos o ponto um dia depois.
	if len(xs) == 1 {
		xs = append(xs, xs[0].AddDate(0, 0, 1))
		ys = append(ys, ys[0])
	}

	ch := gochart.Chart{
		Title:      series.Title,
		Width:      r.width,
		Height:     r.height,
		Background: gochart.Style{Padding: gochart.Box{Top: 48, Left: 24, Right: 32, Bottom: 24}},
		XAxis: gochart.XAxis{
			Name:      series.XLabel,
			Ticks:     ticks,
			TickStyle: gochart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: gochart.YAxis{
			Name:           series.YLabel,
			Range:          valueRange(ys),
			ValueFormatter: amountFormatter,
		},
		Series: []gochart.Series{
			gochart.TimeSeries{
				Name: series.YLabel,
				Style: gochart.Style{
					StrokeColor: gochart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    gochart.ColorBlue,
					DotWidth:    3,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	return r.write(ch, outputPath)
}

// RenderBarChart draws one bar per point, in series order.
func (r *ChartRepositoryImpl) RenderBarChart(series entity.SalesSeries, outputPath string) (string, error) {
	if len(series.Points) == 0 {
		return "", fmt.Errorf("%s: %w", series.Title, types.ErrEmptySeries)
	}

	return r.write(r.barChart(series), outputPath)
}

// barChart monta o gráfico de barras; as barras partem do zero, inclusive as negativas.
func (r *ChartRepositoryImpl) barChart(series entity.SalesSeries) gochart.BarChart {
	values := series.Values()
	bars := make([]gochart.Value, len(series.Points))
	for i, p := range series.Points {
		bars[i] = gochart.Value{Label: p.Label, Value: values[i]}
	}

	return gochart.BarChart{
		Title:        series.Title,
		Width:        r.width,
		Height:       r.height,
		BarWidth:     r.barWidth(len(bars)),
		Background:   gochart.Style{Padding: gochart.Box{Top: 48, Left: 24, Right: 24, Bottom: xAxisNameSpace}},
		UseBaseValue: true,
		BaseValue:    0,
		YAxis: gochart.YAxis{
			Name:           series.YLabel,
			Range:          valueRange(values),
			ValueFormatter: amountFormatter,
		},
		Bars:     bars,
		Elements: []gochart.Renderable{xAxisName(series.XLabel)},
	}
}

// xAxisName desenha o nome do eixo X centralizado abaixo dos rótulos das barras.
// BarChart.XAxis is only a Style, so the name is drawn as a chart element.
func xAxisName(name string) gochart.Renderable {
	return func(r gochart.Renderer, canvasBox gochart.Box, defaults gochart.Style) {
		if name == "" {
			return
		}
		style := gochart.Style{
			FontSize:  gochart.DefaultAxisFontSize,
			FontColor: gochart.DefaultTextColor,
		}.InheritFrom(defaults)
		style.GetTextOptions().WriteToRenderer(r)
		defer r.ResetStyle()

		tb := gochart.Draw.MeasureText(r, name, style)
		tx := canvasBox.Left + (canvasBox.Width()-tb.Width())/2
		ty := canvasBox.Bottom + 2*gochart.DefaultXAxisMargin + 2*tb.Height()
		gochart.Draw.Text(r, name, tx, ty, style)
	}
}

func (r *ChartRepositoryImpl) write(ch renderable, outputPath string) (string, error) {
	if err := fsutil.EnsureParentDir(outputPath); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return "", fmt.Errorf("error rendering chart: %w", err)
	}

	if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
		return "", fmt.Errorf("error writing chart file: %w", err)
	}

	return filepath.Abs(outputPath)
}

// barWidth divide a largura útil entre as barras, com espaço igual entre elas.
func (r *ChartRepositoryImpl) barWidth(n int) int {
	w := (r.width - 160) / (2 * n)
	if w > maxBarWidth {
		return maxBarWidth
	}
	if w < minBarWidth {
		return minBarWidth
	}
	return w
}

// valueRange always includes zero and never collapses to an empty interval.
func valueRange(values []float64) *gochart.ContinuousRange {
	lo, hi := 0.0, 0.0
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	pad := (hi - lo) * 0.05
	if lo < 0 {
		lo -= pad
	}
	return &gochart.ContinuousRange{Min: lo, Max: hi + pad}
}

func amountFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return format.Amount(f)
	}
	return ""
}
