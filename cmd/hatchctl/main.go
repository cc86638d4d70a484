package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mkvist/hatchctl/internal/api"
	"github.com/mkvist/hatchctl/internal/cli"
	"github.com/mkvist/hatchctl/internal/config"
	"github.com/mkvist/hatchctl/internal/db"
	"github.com/mkvist/hatchctl/internal/draft"
	"github.com/mkvist/hatchctl/internal/export"
	"github.com/mkvist/hatchctl/internal/realtime"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("HATCHCTL_CONFIG"))
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Open the local drafts database
	database, err := db.Open(cfg.ResolveDBPath())
	if err != nil {
		return fmt.Errorf("opening drafts database: %w", err)
	}
	defer database.Close()

	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, api.NewZapObserver(log))

	app := cli.NewApp(
		client,
		draft.NewStore(database),
		export.NewPDFRenderer(),
		log,
		cfg.User,
		cfg.PageSize,
	)

	// Live updates are optional; without an events URL the client works
	// purely request/response.
	var sub *realtime.Subscriber
	if cfg.EventsURL != "" {
		sub = realtime.NewSubscriber(cfg.EventsURL, log)
	}

	return cli.NewRootCmd(app, sub).Execute()
}

// newLogger writes to stderr so log lines never tear the TUI, which
// owns stdout.
func newLogger(debug bool) (*zap.Logger, error) {
	level := zap.InfoLevel
	if debug {
		level = zap.DebugLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}
