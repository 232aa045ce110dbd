package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"

	"github.com/insightdelivered/enbd-statement-parser/internal/api"
	"github.com/insightdelivered/enbd-statement-parser/internal/config"
)

type serveCmd struct {
	cfg  config.Config
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "runs the HTTP conversion API" }
func (*serveCmd) Usage() string {
	return `enbd-parser serve [-addr :8080]

  Serves GET /api/health and POST /api/convert. The convert endpoint takes a
  multipart form with either a "file" (.pdf or .txt) or a "text" field.
`
}

func (p *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.addr, "addr", "", "Listen address; defaults to :$PORT")
}

func (p *serveCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	log := loggerFrom(ctx)

	addr := p.addr
	if addr == "" {
		addr = p.cfg.Addr()
	}

	app := api.New(&api.Handler{
		Options: p.cfg.Parse,
		Log:     log,
		Version: Version,
	}, p.cfg.MaxUploadMB)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", addr).Msg("listening")
	if err := app.Listen(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server stopped: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
