package metrics

import (
	"math"
	"strconv"
	"strings"
)

// Float returns a pointer to v, for feeding known-present values into the
// nullable arithmetic helpers.
func Float(v float64) *float64 {
	return &v
}

// Percentage computes numerator/denominator as a percentage rounded to the
// given precision, optionally expressed as a fraction of 1. A nil numerator
// or a nil/zero denominator yields nil; division by zero is never attempted.
func Percentage(numerator, denominator *float64, precision int, asFraction bool) *float64 {
	if numerator == nil || denominator == nil || *denominator == 0 {
		return nil
	}

	percent := (*numerator / *denominator) * 100
	if asFraction {
		percent /= 100
	}

	rounded := roundTo(percent, precision)
	return &rounded
}

// Total adds two possibly-missing values, treating nil as zero.
func Total(a, b *float64) float64 {
	var valA, valB float64
	if a != nil {
		valA = *a
	}
	if b != nil {
		valB = *b
	}
	return valA + valB
}

// GrossProfit subtracts costs from revenue, treating nil as zero for either
// operand.
func GrossProfit(revenue, costs *float64) float64 {
	var rev, cost float64
	if revenue != nil {
		rev = *revenue
	}
	if costs != nil {
		cost = *costs
	}
	return rev - cost
}

// FormatMetric renders a metric for card and table display. Nil becomes "-",
// "$" formats as thousands-grouped dollars with no decimals, "%" as
// fixed-point with the given precision and a trailing percent sign; any other
// symbol falls back to thousands-grouped with no symbol.
func FormatMetric(value *float64, symbol string, precision int) string {
	if value == nil {
		return "-"
	}

	switch symbol {
	case "$":
		return "$" + groupThousands(*value, 0)
	case "%":
		return groupThousands(*value, precision) + "%"
	default:
		return groupThousands(*value, 0)
	}
}

func groupThousands(value float64, precision int) string {
	formatted := strconv.FormatFloat(value, 'f', precision, 64)

	negative := strings.HasPrefix(formatted, "-")
	if negative {
		formatted = formatted[1:]
	}

	intPart := formatted
	fracPart := ""
	if dot := strings.IndexByte(formatted, '.'); dot >= 0 {
		intPart, fracPart = formatted[:dot], formatted[dot:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteByte(intPart[i])
	}
	b.WriteString(fracPart)

	return b.String()
}

func roundTo(value float64, precision int) float64 {
	factor := math.Pow(10, float64(precision))
	return math.Round(value*factor) / factor
}
