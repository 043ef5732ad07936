package reconciliation_test

import (
	"testing"
	"time"

	"github.com/retailops/branch_backoffice/internal/apperrors"
	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/retailops/branch_backoffice/internal/utils/reconciliation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func record(branchID string, day time.Time, mutate func(*domain.MovementRecord)) domain.MovementRecord {
	rec := domain.MovementRecord{
		MovementID:       "mov-test",
		BranchID:         branchID,
		Date:             day,
		GrossSales:       decimal.Zero,
		Credit:           decimal.Zero,
		CreditRepayments: decimal.Zero,
		TopUps:           decimal.Zero,
		CardPayment:      decimal.Zero,
		Transfers:        decimal.Zero,
		Expenses:         decimal.Zero,
		ManualDeposit:    decimal.Zero,
	}
	if mutate != nil {
		mutate(&rec)
	}
	return rec
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"january", 2024, time.January, 31},
		{"leap february", 2024, time.February, 29},
		{"non-leap february", 2023, time.February, 28},
		{"century non-leap", 1900, time.February, 28},
		{"400-year leap", 2000, time.February, 29},
		{"april", 2024, time.April, 30},
		{"december", 2024, time.December, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, reconciliation.DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestBuildMonthGrid_CoversEveryDaySortedNoGaps(t *testing.T) {
	grid, err := reconciliation.BuildMonthGrid(2024, time.February, nil)
	require.NoError(t, err)
	require.Len(t, grid, 29)

	for i, day := range grid {
		assert.Equal(t, date(2024, time.February, i+1), day.Date)
		assert.True(t, day.GrossSales.IsZero())
		assert.True(t, day.ManualDeposit.IsZero())
	}
}

func TestBuildMonthGrid_InvalidMonth(t *testing.T) {
	for _, month := range []time.Month{0, 13, -1} {
		grid, err := reconciliation.BuildMonthGrid(2024, month, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Nil(t, grid, "no partial grid on invalid month")
	}
}

func TestBuildMonthGrid_InvalidYear(t *testing.T) {
	_, err := reconciliation.BuildMonthGrid(0, time.March, nil)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestAggregateDaily_SumsSameDayRecords(t *testing.T) {
	day := date(2024, time.March, 5)
	records := []domain.MovementRecord{
		record("b1", day, func(r *domain.MovementRecord) { r.GrossSales = dec("50") }),
		record("b1", day.Add(14*time.Hour), func(r *domain.MovementRecord) { r.Expenses = dec("20") }),
	}

	byDay := reconciliation.AggregateDaily(records)

	require.Len(t, byDay, 1, "same calendar date must collapse to one summary")
	sum := byDay[day]
	assert.True(t, sum.GrossSales.Equal(dec("50")))
	assert.True(t, sum.Expenses.Equal(dec("20")))
}

func TestAggregateDaily_OverlappingCategoriesAreSummed(t *testing.T) {
	day := date(2024, time.March, 7)
	records := []domain.MovementRecord{
		record("b1", day, func(r *domain.MovementRecord) { r.Credit = dec("30") }),
		record("b1", day, func(r *domain.MovementRecord) { r.Credit = dec("45.50") }),
	}

	byDay := reconciliation.AggregateDaily(records)

	require.Len(t, byDay, 1)
	assert.True(t, byDay[day].Credit.Equal(dec("75.5")), "no de-duplication, no last-write-wins")
}

func TestReconcile_UnorderedGridRejected(t *testing.T) {
	grid := domain.MonthGrid{
		domain.ZeroDaySummary(date(2024, time.March, 2)),
		domain.ZeroDaySummary(date(2024, time.March, 1)),
	}
	_, err := reconciliation.Reconcile(grid)
	assert.ErrorIs(t, err, apperrors.ErrUnorderedGrid)

	duplicated := domain.MonthGrid{
		domain.ZeroDaySummary(date(2024, time.March, 1)),
		domain.ZeroDaySummary(date(2024, time.March, 1)),
	}
	_, err = reconciliation.Reconcile(duplicated)
	assert.ErrorIs(t, err, apperrors.ErrUnorderedGrid)
}

func TestReconcile_DoesNotMutateInput(t *testing.T) {
	grid := domain.MonthGrid{
		func() domain.DaySummary {
			d := domain.ZeroDaySummary(date(2024, time.March, 1))
			d.GrossSales = dec("100")
			return d
		}(),
	}

	out, err := reconciliation.Reconcile(grid)
	require.NoError(t, err)

	assert.True(t, grid[0].DayBalance.IsZero(), "input grid must stay untouched")
	assert.True(t, out[0].DayBalance.Equal(dec("100")))
}

func TestReconcileMonth_SingleRecordCarriesForward(t *testing.T) {
	// March 2024 (31 days) with exactly one record on March 1:
	// dayBalance = 1000 - 0 - 0 - 200 - 0 - 100 = 700
	// accumulatedBalance = 0 + 700 - 300 = 400, then flat through March 31.
	records := []domain.MovementRecord{
		record("b1", date(2024, time.March, 1), func(r *domain.MovementRecord) {
			r.GrossSales = dec("1000")
			r.CardPayment = dec("200")
			r.Expenses = dec("100")
			r.ManualDeposit = dec("300")
		}),
	}

	rm, err := reconciliation.ReconcileMonth("b1", 2024, time.March, records)
	require.NoError(t, err)
	require.Len(t, rm.Days, 31)

	first := rm.Days[0]
	assert.True(t, first.DayBalance.Equal(dec("700")), "got %s", first.DayBalance)
	assert.True(t, first.AccumulatedBalance.Equal(dec("400")), "got %s", first.AccumulatedBalance)

	for _, day := range rm.Days[1:] {
		assert.True(t, day.DayBalance.IsZero())
		assert.True(t, day.AccumulatedBalance.Equal(dec("400")),
			"accumulated balance must stay flat on %s, got %s", day.Date, day.AccumulatedBalance)
	}

	assert.True(t, rm.Totals.EndingAccumulatedBalance.Equal(dec("400")))
	assert.True(t, rm.Totals.GrossSales.Equal(dec("1000")))
}

func TestReconcileMonth_AccumulationIsLeftFold(t *testing.T) {
	records := []domain.MovementRecord{
		record("b1", date(2024, time.April, 1), func(r *domain.MovementRecord) {
			r.GrossSales = dec("500")
			r.ManualDeposit = dec("100")
		}),
		record("b1", date(2024, time.April, 2), func(r *domain.MovementRecord) {
			r.GrossSales = dec("250")
			r.Transfers = dec("50")
		}),
		record("b1", date(2024, time.April, 10), func(r *domain.MovementRecord) {
			r.Expenses = dec("75")
			r.ManualDeposit = dec("400")
		}),
	}

	rm, err := reconciliation.ReconcileMonth("b1", 2024, time.April, records)
	require.NoError(t, err)
	require.Len(t, rm.Days, 30)

	// Every day must satisfy acc(k) = acc(k-1) + dayBalance(k) - manualDeposit(k),
	// with acc(virtual day 0) = 0.
	prev := decimal.Zero
	for _, day := range rm.Days {
		want := prev.Add(day.DayBalance).Sub(day.ManualDeposit)
		assert.True(t, day.AccumulatedBalance.Equal(want),
			"fold broken on %s: got %s want %s", day.Date, day.AccumulatedBalance, want)
		prev = day.AccumulatedBalance
	}

	// Spot figures: day1 500-0=500, acc 400; day2 +200 -> 600; day10 -75-400 -> 125.
	assert.True(t, rm.Days[0].AccumulatedBalance.Equal(dec("400")))
	assert.True(t, rm.Days[1].AccumulatedBalance.Equal(dec("600")))
	assert.True(t, rm.Days[9].AccumulatedBalance.Equal(dec("125")))
	assert.True(t, rm.Totals.EndingAccumulatedBalance.Equal(dec("125")))
}

func TestReconcileMonth_CreditRepaymentsAffectNoBalance(t *testing.T) {
	records := []domain.MovementRecord{
		record("b1", date(2024, time.May, 3), func(r *domain.MovementRecord) {
			r.GrossSales = dec("100")
			r.CreditRepayments = dec("9999")
		}),
	}

	rm, err := reconciliation.ReconcileMonth("b1", 2024, time.May, records)
	require.NoError(t, err)

	day := rm.Days[2]
	assert.True(t, day.CreditRepayments.Equal(dec("9999")), "repayments are still displayed")
	assert.True(t, day.DayBalance.Equal(dec("100")), "repayments excluded from day balance")
	assert.True(t, day.AccumulatedBalance.Equal(dec("100")), "repayments excluded from accumulation")
}

func TestReconcileMonth_EmptyMonth(t *testing.T) {
	rm, err := reconciliation.ReconcileMonth("b1", 2023, time.February, nil)
	require.NoError(t, err)
	require.Len(t, rm.Days, 28)

	for _, day := range rm.Days {
		assert.True(t, day.DayBalance.IsZero())
		assert.True(t, day.AccumulatedBalance.IsZero())
	}
	assert.True(t, rm.Totals.EndingAccumulatedBalance.IsZero())
}

func TestReconcileMonth_Idempotent(t *testing.T) {
	records := []domain.MovementRecord{
		record("b1", date(2024, time.March, 1), func(r *domain.MovementRecord) {
			r.GrossSales = dec("123.45")
			r.TopUps = dec("10.10")
		}),
		record("b1", date(2024, time.March, 15), func(r *domain.MovementRecord) {
			r.Expenses = dec("67.89")
		}),
	}

	first, err := reconciliation.ReconcileMonth("b1", 2024, time.March, records)
	require.NoError(t, err)
	second, err := reconciliation.ReconcileMonth("b1", 2024, time.March, records)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestProjectSummary_AgreesWithExportRows(t *testing.T) {
	records := []domain.MovementRecord{
		record("b1", date(2024, time.March, 1), func(r *domain.MovementRecord) {
			r.GrossSales = dec("1000")
			r.CardPayment = dec("200")
			r.Expenses = dec("100")
			r.ManualDeposit = dec("300")
		}),
		record("b1", date(2024, time.March, 20), func(r *domain.MovementRecord) {
			r.GrossSales = dec("88.25")
			r.Credit = dec("12.75")
			r.Expenses = dec("5")
		}),
	}

	rm, err := reconciliation.ReconcileMonth("b1", 2024, time.March, records)
	require.NoError(t, err)

	summary := reconciliation.ProjectSummary(rm)
	rows := reconciliation.ProjectExportRows(rm)
	require.Len(t, rows, summary.DayCount)

	totalSales := decimal.Zero
	totalExpenses := decimal.Zero
	for _, row := range rows {
		totalSales = totalSales.Add(row.GrossSales)
		totalExpenses = totalExpenses.Add(row.Expenses)
	}

	assert.True(t, summary.TotalSales.Equal(totalSales))
	assert.True(t, summary.TotalExpenses.Equal(totalExpenses))
	assert.True(t, summary.NetBalance.Equal(totalSales.Sub(totalExpenses)))
	assert.True(t, summary.AccumulatedBalanceEndOfMonth.Equal(rows[len(rows)-1].AccumulatedBalance))
}

func TestProjectExportRows_RoundsForDisplayOnly(t *testing.T) {
	// Each day nets 10.005; the fold must stay exact while each displayed row
	// rounds to 2 places.
	records := []domain.MovementRecord{
		record("b1", date(2024, time.June, 1), func(r *domain.MovementRecord) { r.GrossSales = dec("10.005") }),
		record("b1", date(2024, time.June, 2), func(r *domain.MovementRecord) { r.GrossSales = dec("10.005") }),
	}

	rm, err := reconciliation.ReconcileMonth("b1", 2024, time.June, records)
	require.NoError(t, err)

	// Internal accumulation is unrounded: 20.01 exactly after two days.
	assert.True(t, rm.Days[1].AccumulatedBalance.Equal(dec("20.010")))

	rows := reconciliation.ProjectExportRows(rm)
	assert.Equal(t, "2024-06-01", rows[0].Date)
	assert.True(t, rows[0].GrossSales.Equal(dec("10.01")), "display rounds half up")
	assert.True(t, rows[1].AccumulatedBalance.Equal(dec("20.01")))
}
