// Package periods converts (month, year, kind) triples into the half-open
// date intervals every aggregation query filters on.
package periods

import (
	"time"

	"go.uber.org/zap"
)

// Kind selects how a (month, year) pair maps onto a date interval.
type Kind string

const (
	// Monthly covers the whole calendar month.
	Monthly Kind = "monthly"
	// YearToDate covers January 1 through the end of the given month.
	YearToDate Kind = "ytd"
)

// Calculator resolves period kinds into date ranges.
type Calculator struct {
	logger *zap.Logger
}

// NewCalculator wires a new period calculator.
func NewCalculator(logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{logger: logger}
}

// Range returns the half-open [start, end) interval for the given period kind.
// Unknown kinds log a warning and fall back to monthly semantics.
func (c *Calculator) Range(kind Kind, month, year int) (time.Time, time.Time) {
	switch kind {
	case Monthly:
		return MonthlyRange(month, year)
	case YearToDate:
		return YTDRange(month, year)
	default:
		c.logger.Warn("unknown period kind, falling back to monthly",
			zap.String("kind", string(kind)),
			zap.Int("month", month),
			zap.Int("year", year))
		return MonthlyRange(month, year)
	}
}

// MonthlyRange returns the first instant of (year, month) and the first
// instant of the following month, wrapping into January of the next year
// after December. Callers must filter with >= start and < end.
func MonthlyRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return start, nextMonthStart(month, year)
}

// YTDRange returns January 1 of the given year and the same end instant as
// MonthlyRange for (month, year).
func YTDRange(month, year int) (time.Time, time.Time) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start, nextMonthStart(month, year)
}

// PreviousMonth returns the month immediately preceding the given one,
// rolling back to December of the prior year at January.
func PreviousMonth(month, year int) (int, int) {
	if month == 1 {
		return 12, year - 1
	}
	return month - 1, year
}

func nextMonthStart(month, year int) time.Time {
	if month == 12 {
		return time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
}
