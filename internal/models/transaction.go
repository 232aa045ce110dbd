package models

import (
	"encoding/json"
	"math"
)

// TransactionType is the credit/debit label derived from the signed amount.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// Transaction represents a single statement transaction.
//
// TransactionDate and PostingDate are positional slices of the logical line
// and are stored verbatim. Amount is NaN when the trailing token of the line
// was not a valid decimal number.
type Transaction struct {
	TransactionDate string          `json:"transactionDate"`
	PostingDate     string          `json:"postingDate"`
	Description     string          `json:"description"`
	Amount          float64         `json:"amount"`
	Type            TransactionType `json:"type"`
}

// HasValidAmount reports whether the amount was parsed from a valid token.
func (t Transaction) HasValidAmount() bool {
	return !math.IsNaN(t.Amount)
}

// MarshalJSON encodes a NaN amount as null; encoding/json rejects NaN.
func (t Transaction) MarshalJSON() ([]byte, error) {
	type alias Transaction
	out := struct {
		alias
		Amount *float64 `json:"amount"`
	}{alias: alias(t)}
	if t.HasValidAmount() {
		out.Amount = &t.Amount
	}
	return json.Marshal(out)
}

// BankType represents supported statement layouts.
type BankType string

const (
	BankENBD BankType = "enbd"
)

// Line fates recorded in DebugLine.Result.
const (
	LineTransaction  = "transaction"
	LineContinuation = "continuation"
	LineStray        = "stray"
	LineAttached     = "attached"
	LineUnterminated = "unterminated"
)

// DebugLine captures what the line reconstructor did with each physical line.
type DebugLine struct {
	LineNum int    `json:"lineNum"`
	Text    string `json:"text"`
	HasDate bool   `json:"hasDate"`
	Result  string `json:"result"`
}

// StatementInfo holds the parsed statement.
type StatementInfo struct {
	Bank         BankType
	Source       string
	RunID        string
	Transactions []Transaction
	DebugLines   []DebugLine
}
