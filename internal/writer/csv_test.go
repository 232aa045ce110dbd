package writer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

func sampleInfo() *models.StatementInfo {
	return &models.StatementInfo{
		Bank:   models.BankENBD,
		Source: "statement.pdf",
		Transactions: []models.Transaction{
			{TransactionDate: "01/01/2023", PostingDate: "02/01/2023", Description: "Coffee Shop", Amount: -25.50, Type: models.Debit},
			{TransactionDate: "26/01/2025", PostingDate: "27/01/2025", Description: "*STUBHUB INC 950.69 GBP (1 AED = GBP 0.21119)", Amount: 4501.56, Type: models.Credit},
			{TransactionDate: "06/01/2023", PostingDate: "07/01/2023", Description: "PENDING USD", Amount: math.NaN(), Type: models.Credit},
		},
	}
}

func TestCSVWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Transaction Date,Posting Date,Description,Amount\n" +
		"01/01/2023,02/01/2023,Coffee Shop,-25.50\n" +
		"26/01/2025,27/01/2025,*STUBHUB INC 950.69 GBP (1 AED = GBP 0.21119),4501.56\n" +
		"06/01/2023,07/01/2023,PENDING USD,NaN\n"
	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestCSVWriter_MetadataAndType(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{IncludeMetadata: true, IncludeType: true}
	if err := w.Write(&buf, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buf.String()
	if !strings.HasPrefix(output, "# Source,statement.pdf\n# Bank,enbd\n") {
		t.Errorf("expected metadata rows, got:\n%s", output)
	}
	if !strings.Contains(output, "Transaction Date,Posting Date,Description,Amount,Type") {
		t.Error("expected Type column in header")
	}
	if !strings.Contains(output, "Coffee Shop,-25.50,debit") {
		t.Error("expected type value on the row")
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	// 2 metadata lines + 1 header + 3 transactions
	if len(lines) != 6 {
		t.Errorf("expected 6 lines, got %d", len(lines))
	}
}

func TestCSVWriter_Empty(t *testing.T) {
	var buf bytes.Buffer
	w := &CSVWriter{}
	if err := w.Write(&buf, &models.StatementInfo{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := buf.String(); got != "Transaction Date,Posting Date,Description,Amount\n" {
		t.Errorf("got %q, want header only", got)
	}
}

func TestCSVWriter_WriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleInfo()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Coffee Shop,-25.50") {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{25.99, "25.99"},
		{-25.5, "-25.50"},
		{4501.56, "4501.56"},
		{0, "0.00"},
		{1000, "1000.00"},
		{0.26396, "0.26"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatAmount(tt.input); got != tt.expected {
			t.Errorf("FormatAmount(%f): got %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTotals(t *testing.T) {
	debit, credit, invalid := Totals(sampleInfo().Transactions)
	if debit.StringFixed(2) != "25.50" {
		t.Errorf("debit: got %s, want 25.50", debit.StringFixed(2))
	}
	if credit.StringFixed(2) != "4501.56" {
		t.Errorf("credit: got %s, want 4501.56", credit.StringFixed(2))
	}
	if invalid != 1 {
		t.Errorf("invalid: got %d, want 1", invalid)
	}
}
