package writer

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// FormatAmount renders an amount with two decimals. NaN amounts are written
// as "NaN" so malformed lines stay visible in the output.
func FormatAmount(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "NaN"
	}
	return decimal.NewFromFloat(amount).StringFixed(2)
}

// Totals sums valid amounts: debit is the magnitude of all negative amounts,
// credit the sum of the rest. invalid counts NaN amounts, which are skipped.
func Totals(txns []models.Transaction) (debit, credit decimal.Decimal, invalid int) {
	for _, txn := range txns {
		if !txn.HasValidAmount() {
			invalid++
			continue
		}
		amt := decimal.NewFromFloat(txn.Amount)
		if txn.Type == models.Debit {
			debit = debit.Add(amt.Abs())
		} else {
			credit = credit.Add(amt)
		}
	}
	return debit, credit, invalid
}
