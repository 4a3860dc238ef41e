package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one aggregated value of a chart series.
type SeriesPoint struct {
	Label  string          `json:"label"`
	Period time.Time       `json:"-"`
	Value  decimal.Decimal `json:"-"`
}

// SalesSeries is an aggregated series of sales plus the labels used to chart it.
type SalesSeries struct {
	Title  string        `json:"title"`
	XLabel string        `json:"x_label"`
	YLabel string        `json:"y_label"`
	Points []SeriesPoint `json:"points"`
}

// Values returns the point values as float64, in series order.
func (s SalesSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value.InexactFloat64()
	}
	return values
}

// Labels returns the point labels, in series order.
func (s SalesSeries) Labels() []string {
	labels := make([]string, len(s.Points))
	for i, p := range s.Points {
		labels[i] = p.Label
	}
	return labels
}
