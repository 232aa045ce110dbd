package writer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// JSONWriter writes transactions as an indented JSON array.
type JSONWriter struct{}

// WriteToFile writes the JSON array to path.
func (w *JSONWriter) WriteToFile(path string, info *models.StatementInfo) error {
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

// Write writes the JSON array to out. NaN amounts are encoded as null.
func (w *JSONWriter) Write(out io.Writer, info *models.StatementInfo) error {
	txns := info.Transactions
	if txns == nil {
		txns = []models.Transaction{}
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(txns); err != nil {
		return fmt.Errorf("failed to encode transactions: %w", err)
	}
	return nil
}
