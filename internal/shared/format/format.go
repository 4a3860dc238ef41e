// Package format renders KPI values the way reports present them: comma
// thousands grouping, two decimals for amounts and none for counts.
package format

import (
	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Amount formats a fractional value, e.g. 1234567.891 -> "1,234,567.89".
func Amount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// Count formats an integer value, e.g. 12345 -> "12,345".
func Count(v int) string {
	return printer.Sprintf("%d", v)
}

// KPIValue formats an indicator according to its kind.
func KPIValue(item entity.KPIItem) string {
	if item.Integer {
		return Count(int(item.Value))
	}
	return Amount(item.Value)
}
