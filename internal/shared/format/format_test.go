package format

import (
	"testing"

	"github.com/diillson/retail-sales-analytics-go/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{in: 0, want: "0.00"},
		{in: 350, want: "350.00"},
		{in: -10, want: "-10.00"},
		{in: 1234567.891, want: "1,234,567.89"},
		{in: -2.857142857, want: "-2.86"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Amount(tt.in))
	}
}

func TestKPIValue(t *testing.T) {
	assert.Equal(t, "12,345", KPIValue(entity.KPIItem{Name: entity.KPITotalOrders, Value: 12345, Integer: true}))
	assert.Equal(t, "175.00", KPIValue(entity.KPIItem{Name: entity.KPIAverageOrderValue, Value: 175}))
}
