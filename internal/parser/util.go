package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// DD/MM/YYYY anchored at the start of a physical line.
	datePrefixPattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}`)
	// Signed decimal with an optional fractional part, commas already stripped.
	amountTokenPattern = regexp.MustCompile(`^[-+]?\d+(?:\.\d+)?$`)
	// Whitespace run followed by a decimal with a mandatory fraction at the end
	// of the text. The digit class does not span thousands separators.
	trailingDecimalPattern = regexp.MustCompile(`\s+([-+]?\d+\.\d+)$`)
)

// dateWidth is the width of each of the two leading date columns.
const dateWidth = 10

// isTransactionStart checks if a physical line begins with a DD/MM/YYYY date.
func isTransactionStart(line string) bool {
	return datePrefixPattern.MatchString(line)
}

// endsWithAmount reports whether the last space-separated token of text is a
// decimal number once thousands separators are removed.
func endsWithAmount(text string) bool {
	tokens := strings.Split(text, " ")
	last := strings.ReplaceAll(tokens[len(tokens)-1], ",", "")
	return amountTokenPattern.MatchString(last)
}

// parseAmount converts a token like "4,501.56" or "-25.50" to a float64.
// Anything that is not a plain, optionally comma-grouped decimal yields NaN;
// strconv alone would accept forms such as "1e3" or "Inf".
func parseAmount(token string) float64 {
	s := strings.ReplaceAll(token, ",", "")
	if !amountTokenPattern.MatchString(s) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
