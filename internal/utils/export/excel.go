package export

import (
	"fmt"
	"io"

	"github.com/retailops/branch_backoffice/internal/core/domain"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet holding the reconciled month table.
const SheetName = "Reconciliation"

// columnHeaders lists the export columns in their fixed order.
var columnHeaders = []string{
	"Date",
	"Gross Sales",
	"Credit",
	"Credit Repayments",
	"Top Ups",
	"Card Payment",
	"Transfers",
	"Expenses",
	"Day Balance",
	"Manual Deposit",
	"Accumulated Balance",
}

// WriteMonthWorkbook streams an xlsx workbook with one row per reconciled day.
// Figures arrive already rounded for display.
func WriteMonthWorkbook(w io.Writer, rows []domain.ExportRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	for col, header := range columnHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to build header cell name: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
	}

	for i, row := range rows {
		values := []any{
			row.Date,
			row.GrossSales.InexactFloat64(),
			row.Credit.InexactFloat64(),
			row.CreditRepayments.InexactFloat64(),
			row.TopUps.InexactFloat64(),
			row.CardPayment.InexactFloat64(),
			row.Transfers.InexactFloat64(),
			row.Expenses.InexactFloat64(),
			row.DayBalance.InexactFloat64(),
			row.ManualDeposit.InexactFloat64(),
			row.AccumulatedBalance.InexactFloat64(),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to build cell name: %w", err)
			}
			if err := f.SetCellValue(SheetName, cell, value); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
