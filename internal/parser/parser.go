package parser

import (
	"fmt"
	"strings"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// Parser defines the interface for statement parsers.
type Parser interface {
	// Parse takes raw text from document pages and returns structured statement data.
	Parse(pages []string) (*models.StatementInfo, error)
	// BankName returns the human-readable bank name.
	BankName() string
}

// New returns the parser for the given layout. An empty bank type selects the
// only supported layout.
func New(bankType models.BankType, opts Options) (Parser, error) {
	switch bankType {
	case "", models.BankENBD:
		return &StatementParser{Options: opts}, nil
	default:
		return nil, fmt.Errorf("unsupported bank type: %q", bankType)
	}
}

// AutoDetect reports which layout the extracted text looks like. It only
// recognises the Emirates NBD card statement layout.
func AutoDetect(pages []string) (models.BankType, error) {
	combined := strings.Join(pages, "\n")
	if strings.Contains(combined, StartMarker) || strings.Contains(combined, EndMarker) {
		return models.BankENBD, nil
	}
	lower := strings.ToLower(combined)
	for _, needle := range []string{"emirates nbd", "emiratesnbd.com"} {
		if strings.Contains(lower, needle) {
			return models.BankENBD, nil
		}
	}
	return "", fmt.Errorf("could not recognise statement layout: neither %q nor %q found", StartMarker, EndMarker)
}

// StatementParser parses Emirates NBD statements: two leading date columns,
// free-text description and a trailing signed amount.
type StatementParser struct {
	Options Options
}

func (p *StatementParser) BankName() string {
	return "Emirates NBD"
}

// Parse joins the pages and runs the full pipeline over them. It never fails
// on data shape; unusable lines are left out.
func (p *StatementParser) Parse(pages []string) (*models.StatementInfo, error) {
	txns, debug := parseDocument(strings.Join(pages, "\n"), p.Options)
	return &models.StatementInfo{
		Bank:         models.BankENBD,
		Transactions: txns,
		DebugLines:   debug,
	}, nil
}

// ParseDocumentText converts raw statement text into transactions in source
// order, with the default options.
func ParseDocumentText(text string) []models.Transaction {
	txns, _ := parseDocument(text, Options{})
	return txns
}

// ParseDocumentTextWithOptions is ParseDocumentText with explicit options.
func ParseDocumentTextWithOptions(text string, opts Options) []models.Transaction {
	txns, _ := parseDocument(text, opts)
	return txns
}

func parseDocument(text string, opts Options) ([]models.Transaction, []models.DebugLine) {
	logical, debug := reconstruct(LocateTransactionSection(text), opts)

	txns := make([]models.Transaction, 0, len(logical))
	for _, l := range logical {
		txn, ok := ParseLogicalLine(l.text)
		if !ok {
			continue
		}
		if opts.rejectInvalid() && !txn.HasValidAmount() {
			continue
		}
		if len(l.stray) > 0 {
			txn.Description = strings.TrimSpace(txn.Description + " " + strings.Join(l.stray, " "))
		}
		txns = append(txns, txn)
	}
	return txns, debug
}
