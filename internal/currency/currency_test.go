package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		from   string
		to     string
		want   float64
	}{
		{"same currency", 100, "USD", "USD", 100},
		{"cad to usd", 100, "CAD", "USD", 74},
		{"usd to cad", 74, "USD", "CAD", 100},
		{"cad to ngn", 10, "CAD", "NGN", 11500},
		{"gbp to eur through cad", 58, "GBP", "EUR", 68},
		{"lower case codes", 100, "cad", "inr", 6150},
		{"unknown source", 100, "XYZ", "CAD", 100},
		{"unknown target", 100, "CAD", "XYZ", 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Convert(tc.amount, tc.from, tc.to), 0.0001)
		})
	}
}

func TestRate(t *testing.T) {
	assert.Equal(t, 1.0, Rate("CAD", "CAD"))
	assert.InDelta(t, 0.74, Rate("CAD", "USD"), 0.0001)
	assert.InDelta(t, 1/0.74, Rate("USD", "CAD"), 0.0001)
	assert.Equal(t, 1.0, Rate("CAD", "XYZ"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "CA$1,234.5", Format(1234.5, "CAD"))
	assert.Equal(t, "₦1,150,000", Format(1150000, "NGN"))
	assert.Equal(t, "$0.12", Format(0.123, "USD"))
	assert.Equal(t, "XYZ 10", Format(10, "XYZ"))
}

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 6)
	assert.Equal(t, "CAD", all[0].Code)
	assert.True(t, IsSupported("gbp"))
	assert.False(t, IsSupported("JPY"))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 12.35, Round(12.345678))
	assert.Equal(t, 74.0, Round(74.0000001))
}
