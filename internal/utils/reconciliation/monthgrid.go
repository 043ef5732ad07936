package reconciliation

import (
	"fmt"
	"time"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
)

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap-year February.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BuildMonthGrid expands (year, month) into one DaySummary per calendar day,
// day 1 through the month's last day, ascending. Days absent from byDay are
// zero-filled so the grid has uniform density. The ascending order is an
// invariant the balance reconciler depends on.
func BuildMonthGrid(year int, month time.Month, byDay map[time.Time]domain.DaySummary) (domain.MonthGrid, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", apperrors.ErrValidation, int(month))
	}
	if year <= 0 {
		return nil, fmt.Errorf("%w: year must be positive, got %d", apperrors.ErrValidation, year)
	}

	lastDay := DaysInMonth(year, month)
	grid := make(domain.MonthGrid, 0, lastDay)
	for day := 1; day <= lastDay; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if sum, ok := byDay[date]; ok {
			sum.Date = date
			grid = append(grid, sum)
		} else {
			grid = append(grid, domain.ZeroDaySummary(date))
		}
	}
	return grid, nil
}
