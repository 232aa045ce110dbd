package parser

import (
	"strings"

	"github.com/insightdelivered/enbd-statement-parser/internal/models"
)

// logicalLine is one reconstructed transaction line plus any stray text that
// followed it when stray lines are attached.
type logicalLine struct {
	text  string
	stray []string
}

// physicalLines splits text on line breaks, trims each line and drops empties.
func physicalLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// ReconstructLogicalLines merges the physical lines of a transaction section
// into one string per transaction, using the default options.
func ReconstructLogicalLines(section string) []string {
	logical, _ := reconstruct(section, Options{})
	out := make([]string, 0, len(logical))
	for _, l := range logical {
		out = append(out, l.text)
	}
	return out
}

// reconstruct walks the physical lines with an explicit cursor. A line with a
// date prefix opens a transaction; following lines are appended, space
// separated, until the accumulated text ends with an amount. Running out of
// lines mid-accumulation is handled per opts.Unterminated.
func reconstruct(section string, opts Options) ([]logicalLine, []models.DebugLine) {
	lines := physicalLines(section)
	debug := make([]models.DebugLine, len(lines))
	for i, line := range lines {
		debug[i] = models.DebugLine{
			LineNum: i + 1,
			Text:    line,
			HasDate: isTransactionStart(line),
			Result:  models.LineStray,
		}
	}

	var out []logicalLine
	i := 0
	for i < len(lines) {
		if !debug[i].HasDate {
			if opts.attachStray() && len(out) > 0 {
				last := &out[len(out)-1]
				last.stray = append(last.stray, lines[i])
				debug[i].Result = models.LineAttached
			}
			i++
			continue
		}

		first := i
		acc := lines[i]
		debug[i].Result = models.LineTransaction
		i++

		terminated := endsWithAmount(acc)
		for !terminated && i < len(lines) {
			acc += " " + lines[i]
			debug[i].Result = models.LineContinuation
			i++
			terminated = endsWithAmount(acc)
		}

		if !terminated {
			for j := first; j < i; j++ {
				debug[j].Result = models.LineUnterminated
			}
			if opts.dropUnterminated() {
				continue
			}
		}
		out = append(out, logicalLine{text: acc})
	}
	return out, debug
}
