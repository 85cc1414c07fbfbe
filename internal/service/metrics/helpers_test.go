package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		numerator   *float64
		denominator *float64
		precision   int
		asFraction  bool
		want        *float64
	}{
		{
			name:        "plain percentage",
			numerator:   Float(25),
			denominator: Float(100),
			precision:   2,
			want:        Float(25),
		},
		{
			name:        "rounded to precision",
			numerator:   Float(1),
			denominator: Float(3),
			precision:   2,
			want:        Float(33.33),
		},
		{
			name:        "as fraction",
			numerator:   Float(50),
			denominator: Float(200),
			precision:   2,
			asFraction:  true,
			want:        Float(0.25),
		},
		{
			name:        "nil numerator",
			numerator:   nil,
			denominator: Float(100),
			precision:   2,
			want:        nil,
		},
		{
			name:        "nil denominator",
			numerator:   Float(10),
			denominator: nil,
			precision:   2,
			want:        nil,
		},
		{
			name:        "zero denominator",
			numerator:   Float(10),
			denominator: Float(0),
			precision:   2,
			want:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentage(tt.numerator, tt.denominator, tt.precision, tt.asFraction)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestTotalTreatsNilAsZero(t *testing.T) {
	assert.Equal(t, 0.0, Total(nil, nil))
	assert.Equal(t, 5.0, Total(Float(5), nil))
	assert.Equal(t, 3.0, Total(nil, Float(3)))
	assert.Equal(t, 8.0, Total(Float(5), Float(3)))
}

func TestGrossProfitTreatsNilAsZero(t *testing.T) {
	assert.Equal(t, -3.0, GrossProfit(nil, Float(3)))
	assert.Equal(t, 5.0, GrossProfit(Float(5), nil))
	assert.Equal(t, 2.0, GrossProfit(Float(5), Float(3)))
	assert.Equal(t, 0.0, GrossProfit(nil, nil))
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name      string
		value     *float64
		symbol    string
		precision int
		want      string
	}{
		{"nil becomes dash", nil, "$", 0, "-"},
		{"dollars grouped", Float(1234567.89), "$", 0, "$1,234,568"},
		{"small dollars", Float(42), "$", 0, "$42"},
		{"negative dollars", Float(-1234.6), "$", 0, "$-1,235"},
		{"percent with precision", Float(33.333), "%", 2, "33.33%"},
		{"percent zero precision", Float(85.6), "%", 0, "86%"},
		{"plain grouping", Float(9876.1), "", 0, "9,876"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMetric(tt.value, tt.symbol, tt.precision))
		})
	}
}
