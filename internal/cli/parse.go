package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/google/uuid"

	"github.com/insightdelivered/enbd-statement-parser/internal/config"
	"github.com/insightdelivered/enbd-statement-parser/internal/extractor"
	"github.com/insightdelivered/enbd-statement-parser/internal/models"
	"github.com/insightdelivered/enbd-statement-parser/internal/parser"
	"github.com/insightdelivered/enbd-statement-parser/internal/writer"
)

type parseCmd struct {
	cfg config.Config
	out io.Writer

	output        string
	format        string
	includeType   bool
	metadata      bool
	stray         string
	unterminated  string
	rejectInvalid bool
}

func (*parseCmd) Name() string     { return "parse" }
func (*parseCmd) Synopsis() string { return "parses statements into CSV, XLSX or JSON" }
func (*parseCmd) Usage() string {
	return `enbd-parser parse [flags] <statement.pdf|statement.txt> [...]

  Extracts the transaction table of each statement and writes one record per
  transaction: Transaction Date, Posting Date, Description, Amount.
  Output defaults to the input path with the format's extension.

Usage Examples:
# Writes statement.csv next to the input.
$ enbd-parser parse statement.pdf

# Attach stray lines to the preceding transaction and write a workbook.
$ enbd-parser parse -stray attach -format xlsx -o jan.xlsx statement.pdf

`
}

func (p *parseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.output, "o", "", "Output file path (single input only)")
	f.StringVar(&p.format, "format", "csv", "Output format: csv, xlsx or json")
	f.BoolVar(&p.includeType, "type", false, "Add a Type (credit/debit) column")
	f.BoolVar(&p.metadata, "metadata", false, "Write # Source and # Bank rows before the CSV header")
	f.StringVar(&p.stray, "stray", "", "Stray line policy: drop or attach; overrides STRAY_LINES")
	f.StringVar(&p.unterminated, "unterminated", "", "Unterminated line policy: emit or drop; overrides UNTERMINATED_LINES")
	f.BoolVar(&p.rejectInvalid, "reject-invalid", false, "Drop records whose amount is not a valid number")
}

func (p *parseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(os.Stderr, p.Usage())
		return subcommands.ExitUsageError
	}
	if p.output != "" && f.NArg() > 1 {
		fmt.Fprintln(os.Stderr, "Error: -o can only be used with a single input file")
		return subcommands.ExitUsageError
	}

	opts, err := p.options()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	for _, inputPath := range f.Args() {
		if err := p.processFile(ctx, inputPath, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

// options layers the command flags over the configured parse options.
func (p *parseCmd) options() (parser.Options, error) {
	opts := p.cfg.Parse
	if p.stray != "" {
		s, err := parser.ParseStrayLinePolicy(p.stray)
		if err != nil {
			return opts, err
		}
		opts.StrayLines = s
	}
	if p.unterminated != "" {
		u, err := parser.ParseUnterminatedPolicy(p.unterminated)
		if err != nil {
			return opts, err
		}
		opts.Unterminated = u
	}
	if p.rejectInvalid {
		opts.InvalidAmounts = parser.InvalidReject
	}
	return opts, nil
}

func (p *parseCmd) stdout() io.Writer {
	if p.out != nil {
		return p.out
	}
	return os.Stdout
}

func (p *parseCmd) processFile(ctx context.Context, inputPath string, opts parser.Options) error {
	out := p.stdout()
	runID := uuid.NewString()
	log := loggerFrom(ctx).With().Str("run_id", runID).Str("file", inputPath).Logger()
	started := time.Now()

	w, err := writer.New(writer.Format(p.format), p.includeType)
	if err != nil {
		return err
	}
	if csvW, ok := w.(*writer.CSVWriter); ok {
		csvW.IncludeMetadata = p.metadata
	}

	fmt.Fprintf(out, "Processing: %s\n", inputPath)

	pages, err := extractor.ReadDocument(inputPath)
	if err != nil {
		if errors.Is(err, extractor.ErrNotFound) {
			return err
		}
		return fmt.Errorf("text extraction failed: %w", err)
	}
	fmt.Fprintf(out, "  Extracted text from %d page(s)\n", len(pages))

	if _, err := parser.AutoDetect(pages); err != nil {
		log.Warn().Err(err).Msg("layout not recognised, parsing anyway")
	}

	sp, err := parser.New(models.BankENBD, opts)
	if err != nil {
		return err
	}
	info, err := sp.Parse(pages)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}
	info.Source = inputPath
	info.RunID = runID

	fmt.Fprintf(out, "  Found %d transaction(s)\n", len(info.Transactions))
	debit, credit, invalid := writer.Totals(info.Transactions)

	log.Info().
		Int("pages", len(pages)).
		Int("transactions", len(info.Transactions)).
		Int("invalid_amounts", invalid).
		Dur("duration", time.Since(started)).
		Msg("statement parsed")

	if len(info.Transactions) == 0 {
		fmt.Fprintln(out, "  No transactions found in the document.")
		return nil
	}

	outPath := p.output
	if outPath == "" {
		outPath = writer.OutputPath(inputPath, writer.Format(p.format))
	}
	if err := w.WriteToFile(outPath, info); err != nil {
		return fmt.Errorf("write failed: %w", err)
	}

	fmt.Fprintf(out, "  Output: %s\n", outPath)
	fmt.Fprintf(out, "  Credits: %s\n", displayAED(credit))
	fmt.Fprintf(out, "  Debits: %s\n", displayAED(debit))
	if invalid > 0 {
		fmt.Fprintf(out, "  Warning: %d transaction(s) have an unreadable amount (written as NaN)\n", invalid)
	}
	return nil
}
