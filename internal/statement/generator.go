// Package statement serializes canonical transactions into a statement file
// (CSV or XLSX) and derives statement file names from the export period.
package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/dvloznov/statement-exporter/internal/config"
	"github.com/dvloznov/statement-exporter/internal/domain"
	"github.com/dvloznov/statement-exporter/internal/money"
	"github.com/dvloznov/statement-exporter/internal/period"
)

const rowDatetimeFormat = "02-01-2006 15:04:05"

var header = []string{"Id", "Datetime", "Income", "Expense", "Balance", "Description"}

// Generate serializes transactions into the requested file format. Rows are
// sorted ascending by datetime; the input slice is left untouched.
// Generation is all-or-nothing over the in-memory list, so a partial file is
// never produced.
func Generate(transactions []domain.Transaction, format string) ([]byte, error) {
	rows := buildRows(transactions)

	switch format {
	case config.FileFormatCSV:
		return generateCSV(rows)
	case config.FileFormatXLSX:
		return generateXLSX(rows)
	default:
		return nil, fmt.Errorf("unknown statement file format %q", format)
	}
}

// FileName builds the statement file name from the export period:
// "{start}.{ext}" for a single-day period, "{start}_{end}.{ext}" otherwise.
func FileName(p period.Period, format string) string {
	start := p.StartDate().String()
	end := p.EndDate().String()

	if start == end {
		return fmt.Sprintf("%s.%s", start, format)
	}

	return fmt.Sprintf("%s_%s.%s", start, end, format)
}

func buildRows(transactions []domain.Transaction) [][]string {
	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Datetime.Before(sorted[j].Datetime)
	})

	rows := make([][]string, 0, len(sorted)+1)
	rows = append(rows, header)
	for _, transaction := range sorted {
		rows = append(rows, formatRow(transaction))
	}

	return rows
}

// formatRow splits the signed amount into income/expense columns; balance is
// always present. Amounts are fixed two-decimal strings.
func formatRow(transaction domain.Transaction) []string {
	var income, expense string

	if transaction.Amount > 0 {
		income = money.FromCents(transaction.Amount)
	} else {
		expense = money.FromCents(transaction.Amount)
	}

	return []string{
		transaction.ID,
		transaction.Datetime.Format(rowDatetimeFormat),
		income,
		expense,
		money.FromCents(transaction.Balance),
		transaction.Description,
	}
}

func generateCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("write statement csv: %w", err)
	}

	return buf.Bytes(), nil
}

func generateXLSX(rows [][]string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("build statement xlsx: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("build statement xlsx: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write statement xlsx: %w", err)
	}

	return buf.Bytes(), nil
}
