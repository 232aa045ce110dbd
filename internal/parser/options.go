package parser

import "fmt"

// StrayLinePolicy decides what happens to non-date lines found between
// transactions inside the section.
type StrayLinePolicy string

const (
	StrayDrop   StrayLinePolicy = "drop"
	StrayAttach StrayLinePolicy = "attach"
)

// UnterminatedPolicy decides what happens to an accumulation that runs out of
// physical lines before its text ends with an amount.
type UnterminatedPolicy string

const (
	UnterminatedEmit UnterminatedPolicy = "emit"
	UnterminatedDrop UnterminatedPolicy = "drop"
)

// InvalidAmountPolicy decides whether records with a NaN amount are kept.
type InvalidAmountPolicy string

const (
	InvalidKeep   InvalidAmountPolicy = "keep"
	InvalidReject InvalidAmountPolicy = "reject"
)

// Options tunes the ambiguous corners of the parser. The zero value drops
// stray lines, emits unterminated accumulations and keeps NaN amounts.
type Options struct {
	StrayLines     StrayLinePolicy
	Unterminated   UnterminatedPolicy
	InvalidAmounts InvalidAmountPolicy
}

func (o Options) attachStray() bool      { return o.StrayLines == StrayAttach }
func (o Options) dropUnterminated() bool { return o.Unterminated == UnterminatedDrop }
func (o Options) rejectInvalid() bool    { return o.InvalidAmounts == InvalidReject }

// ParseStrayLinePolicy validates a policy name. Empty means the default.
func ParseStrayLinePolicy(s string) (StrayLinePolicy, error) {
	switch StrayLinePolicy(s) {
	case "", StrayDrop:
		return StrayDrop, nil
	case StrayAttach:
		return StrayAttach, nil
	}
	return "", fmt.Errorf("unknown stray line policy %q (want drop or attach)", s)
}

// ParseUnterminatedPolicy validates a policy name. Empty means the default.
func ParseUnterminatedPolicy(s string) (UnterminatedPolicy, error) {
	switch UnterminatedPolicy(s) {
	case "", UnterminatedEmit:
		return UnterminatedEmit, nil
	case UnterminatedDrop:
		return UnterminatedDrop, nil
	}
	return "", fmt.Errorf("unknown unterminated line policy %q (want emit or drop)", s)
}

// ParseInvalidAmountPolicy validates a policy name. Empty means the default.
func ParseInvalidAmountPolicy(s string) (InvalidAmountPolicy, error) {
	switch InvalidAmountPolicy(s) {
	case "", InvalidKeep:
		return InvalidKeep, nil
	case InvalidReject:
		return InvalidReject, nil
	}
	return "", fmt.Errorf("unknown invalid amount policy %q (want keep or reject)", s)
}
