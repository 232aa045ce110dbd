// Package cli implements the enbd-parser subcommands.
package cli

import (
	"context"
	"flag"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/insightdelivered/enbd-statement-parser/internal/config"
	"github.com/insightdelivered/enbd-statement-parser/internal/logger"
)

// Version of the tool, reported by the version subcommand and the API.
const Version = "1.2.0"

var (
	logLevel  = flag.String("log-level", "", "Log level (debug, info, warn, error); overrides LOG_LEVEL")
	logFormat = flag.String("log-format", "", "Log format (console or json); overrides LOG_FORMAT")
)

// Register the subcommands.
func Register(c *subcommands.Commander, cfg config.Config) {
	c.Register(&parseCmd{cfg: cfg}, "statements")
	c.Register(&serveCmd{cfg: cfg}, "server")
	c.Register(&versionCmd{}, "")
}

// WithLogger returns ctx carrying the logger selected by flags and config.
func WithLogger(ctx context.Context, cfg config.Config) (context.Context, error) {
	format, level := cfg.LogFormat, cfg.LogLevel
	if *logFormat != "" {
		format = *logFormat
	}
	if *logLevel != "" {
		level = *logLevel
	}
	log, err := logger.Configure(format, level)
	if err != nil {
		return ctx, err
	}
	return logger.WithContext(ctx, log), nil
}

func loggerFrom(ctx context.Context) zerolog.Logger {
	return logger.FromContext(ctx)
}

// displayAED formats an amount the way go-money displays dirhams.
func displayAED(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), money.AED).Display()
}
