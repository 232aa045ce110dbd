package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/insightdelivered/enbd-statement-parser/internal/config"
	"github.com/insightdelivered/enbd-statement-parser/internal/extractor"
	"github.com/insightdelivered/enbd-statement-parser/internal/parser"
)

const statementText = `Emirates NBD
Transaction Date,Description,Date,Amount
01/01/202302/01/2023 Coffee Shop                  -25.50
26/01/202527/01/2025*STUBHUB INC 8667882482 USA 950.69 GBP
(1 AED = GBP 0.21119)
4,501.56
STATEMENT SUMMARY (AED)
`

func writeStatement(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.txt")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseCmd_ProcessFile(t *testing.T) {
	input := writeStatement(t, statementText)
	var out bytes.Buffer
	cmd := &parseCmd{out: &out, format: "csv"}

	if err := cmd.processFile(context.Background(), input, parser.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(strings.TrimSuffix(input, ".txt") + ".csv")
	if err != nil {
		t.Fatalf("expected CSV next to input: %v", err)
	}
	want := "Transaction Date,Posting Date,Description,Amount\n" +
		"01/01/2023,02/01/2023,Coffee Shop,-25.50\n" +
		"26/01/2025,27/01/2025,*STUBHUB INC 8667882482 USA 950.69 GBP (1 AED = GBP 0.21119),4501.56\n"
	if string(data) != want {
		t.Errorf("got:\n%s\nwant:\n%s", data, want)
	}

	console := out.String()
	if !strings.Contains(console, "Found 2 transaction(s)") {
		t.Errorf("console output: %s", console)
	}
	if !strings.Contains(console, "Credits:") || !strings.Contains(console, "Debits:") {
		t.Errorf("expected totals in console output: %s", console)
	}
}

func TestParseCmd_ExplicitOutputAndFormat(t *testing.T) {
	input := writeStatement(t, statementText)
	outPath := filepath.Join(t.TempDir(), "out.json")
	cmd := &parseCmd{out: &bytes.Buffer{}, format: "json", output: outPath}

	if err := cmd.processFile(context.Background(), input, parser.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"amount": 4501.56`) {
		t.Errorf("unexpected JSON output:\n%s", data)
	}
}

func TestParseCmd_NoTransactions(t *testing.T) {
	input := writeStatement(t, "nothing to see here")
	var out bytes.Buffer
	cmd := &parseCmd{out: &out, format: "csv"}

	if err := cmd.processFile(context.Background(), input, parser.Options{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "No transactions found") {
		t.Errorf("console output: %s", out.String())
	}
	if _, err := os.Stat(strings.TrimSuffix(input, ".txt") + ".csv"); !os.IsNotExist(err) {
		t.Error("no output file should be written for an empty result")
	}
}

func TestParseCmd_MissingFile(t *testing.T) {
	cmd := &parseCmd{out: &bytes.Buffer{}, format: "csv"}
	err := cmd.processFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"), parser.Options{})
	if !errors.Is(err, extractor.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestParseCmd_Options(t *testing.T) {
	cmd := &parseCmd{
		cfg:           config.Config{Parse: parser.Options{Unterminated: parser.UnterminatedDrop}},
		stray:         "attach",
		rejectInvalid: true,
	}
	opts, err := cmd.options()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := parser.Options{StrayLines: parser.StrayAttach, Unterminated: parser.UnterminatedDrop, InvalidAmounts: parser.InvalidReject}
	if opts != want {
		t.Errorf("got %+v, want %+v", opts, want)
	}

	cmd.unterminated = "sometimes"
	if _, err := cmd.options(); err == nil {
		t.Error("expected error for unknown policy")
	}
}
