package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// minLineLength is the width of the two date columns; anything shorter cannot
// carry a transaction.
const minLineLength = 2 * dateWidth

// amountExtractor splits the text after the date columns into description and
// amount. ok is false when the extractor's pattern does not apply.
type amountExtractor func(remaining string) (description string, amount float64, ok bool)

// amountExtractors are tried in order; the first match wins.
var amountExtractors = []amountExtractor{
	extractTrailingDecimal,
	extractLastToken,
}

// extractTrailingDecimal handles the plain and foreign-currency forms where the
// amount has no thousands separators. The description keeps its spacing.
func extractTrailingDecimal(remaining string) (string, float64, bool) {
	loc := trailingDecimalPattern.FindStringSubmatchIndex(remaining)
	if loc == nil {
		return "", 0, false
	}
	amount, err := strconv.ParseFloat(remaining[loc[2]:loc[3]], 64)
	if err != nil {
		amount = math.NaN()
	}
	return remaining[:loc[0]], amount, true
}

// extractLastToken takes the last whitespace-separated token as the amount,
// stripping thousands separators. The description is re-joined with single
// spaces.
func extractLastToken(remaining string) (string, float64, bool) {
	fields := strings.Fields(remaining)
	if len(fields) == 0 {
		return "", math.NaN(), true
	}
	last := len(fields) - 1
	return strings.Join(fields[:last], " "), parseAmount(fields[last]), true
}

// ParseLogicalLine parses one reconstructed line into a Transaction. Lines
// shorter than the two date columns yield false.
func ParseLogicalLine(line string) (models.Transaction, bool) {
	runes := []rune(line)
	if len(runes) < minLineLength {
		return models.Transaction{}, false
	}

	txn := models.Transaction{
		TransactionDate: string(runes[:dateWidth]),
		PostingDate:     string(runes[dateWidth:minLineLength]),
	}
	remaining := strings.TrimSpace(string(runes[minLineLength:]))

	for _, extract := range amountExtractors {
		if desc, amount, ok := extract(remaining); ok {
			txn.Description = desc
			txn.Amount = amount
			break
		}
	}
	txn.Type = Classify(txn.Amount)
	return txn, true
}

// Classify labels an amount: negative is a debit, everything else (zero
// included) is a credit.
func Classify(amount float64) models.TransactionType {
	if amount < 0 {
		return models.Debit
	}
	return models.Credit
}
