package writer

import (
	"fmt"
	"io"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

const sheetName = "Transactions"

// XLSXWriter writes transactions to a single-sheet Excel workbook.
type XLSXWriter struct {
	IncludeType bool
}

// WriteToFile writes the workbook to path.
func (w *XLSXWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := w.build(info)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

// Write writes the workbook to out.
func (w *XLSXWriter) Write(out io.Writer, info *models.StatementInfo) error {
	f, err := w.build(info)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(out); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (w *XLSXWriter) build(info *models.StatementInfo) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, 0, len(Columns)+1)
	for _, c := range Columns {
		header = append(header, c)
	}
	if w.IncludeType {
		header = append(header, "Type")
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	for i, txn := range info.Transactions {
		rowNum := i + 2
		row := []interface{}{txn.TransactionDate, txn.PostingDate, txn.Description, amountCell(txn.Amount)}
		if w.IncludeType {
			row = append(row, string(txn.Type))
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			f.Close()
			return nil, err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		amountRef, _ := excelize.CoordinatesToCellName(4, rowNum)
		if err := f.SetCellStyle(sheetName, amountRef, amountRef, amountStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to style row %d: %w", rowNum, err)
		}
	}

	if err := f.SetColWidth(sheetName, "C", "C", 60); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// amountCell keeps valid amounts numeric and writes NaN as text.
func amountCell(amount float64) interface{} {
	if math.IsNaN(amount) {
		return "NaN"
	}
	return amount
}
