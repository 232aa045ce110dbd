package writer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// Columns is the record layout shared by every output format.
var Columns = []string{"Transaction Date", "Posting Date", "Description", "Amount"}

// CSVWriter writes transactions to CSV format.
type CSVWriter struct {
	// IncludeMetadata writes "# Source" and "# Bank" rows before the header.
	IncludeMetadata bool
	// IncludeType appends a Type column with credit/debit.
	IncludeType bool
}

// WriteToFile writes transactions to a CSV file at the given path.
func (w *CSVWriter) WriteToFile(path string, info *models.StatementInfo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	if err := w.Write(f, info); err != nil {
		return err
	}
	return f.Close()
}

// Write writes transactions in CSV format to the given writer, in the order
// they appear in info.
func (w *CSVWriter) Write(out io.Writer, info *models.StatementInfo) error {
	writer := csv.NewWriter(out)

	if w.IncludeMetadata {
		if info.Source != "" {
			writer.Write([]string{"# Source", info.Source})
		}
		if info.Bank != "" {
			writer.Write([]string{"# Bank", string(info.Bank)})
		}
	}

	header := append([]string(nil), Columns...)
	if w.IncludeType {
		header = append(header, "Type")
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, txn := range info.Transactions {
		row := []string{
			txn.TransactionDate,
			txn.PostingDate,
			txn.Description,
			FormatAmount(txn.Amount),
		}
		if w.IncludeType {
			row = append(row, string(txn.Type))
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
