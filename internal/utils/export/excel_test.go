package export

import (
	"bytes"
	"testing"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteMonthWorkbook(t *testing.T) {
	rows := []domain.ExportRow{
		{
			Date:               "2024-03-01",
			GrossSales:         decimal.NewFromFloat(700.50),
			Credit:             decimal.NewFromInt(100),
			CreditRepayments:   decimal.NewFromInt(25),
			TopUps:             decimal.Zero,
			CardPayment:        decimal.NewFromInt(50),
			Transfers:          decimal.Zero,
			Expenses:           decimal.NewFromInt(200),
			DayBalance:         decimal.NewFromFloat(350.50),
			ManualDeposit:      decimal.NewFromInt(300),
			AccumulatedBalance: decimal.NewFromFloat(50.50),
		},
		{
			Date:               "2024-03-02",
			AccumulatedBalance: decimal.NewFromFloat(50.50),
		},
	}

	var buf bytes.Buffer
	err := WriteMonthWorkbook(&buf, rows)
	require.NoError(t, err)
	require.NotZero(t, buf.Len())

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	// Header row
	header, err := f.GetCellValue(SheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Date", header)
	lastHeader, err := f.GetCellValue(SheetName, "K1")
	require.NoError(t, err)
	assert.Equal(t, "Accumulated Balance", lastHeader)

	// First data row
	date, err := f.GetCellValue(SheetName, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", date)
	grossSales, err := f.GetCellValue(SheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "700.5", grossSales)
	accumulated, err := f.GetCellValue(SheetName, "K2")
	require.NoError(t, err)
	assert.Equal(t, "50.5", accumulated)

	// Second data row carries the balance forward
	date2, err := f.GetCellValue(SheetName, "A3")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02", date2)

	// No phantom rows beyond the data
	sheetRows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, sheetRows, 3)
}

func TestWriteMonthWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMonthWorkbook(&buf, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheetRows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, sheetRows, 1)
}
