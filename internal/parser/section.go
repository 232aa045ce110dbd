package parser

import "strings"

// Markers delimiting the transaction table in extracted statement text.
const (
	StartMarker = "Transaction Date,Description,Date,Amount"
	EndMarker   = "STATEMENT SUMMARY (AED)"
)

// LocateTransactionSection returns the part of text from the first start
// marker up to the first end marker found after it. Without a start marker the
// whole text is returned unchanged; without an end marker the section runs to
// the end of the text.
func LocateTransactionSection(text string) string {
	start := strings.Index(text, StartMarker)
	if start < 0 {
		return text
	}
	section := text[start:]
	if end := strings.Index(section, EndMarker); end >= 0 {
		return section[:end]
	}
	return section
}
