package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/craftledger/internal/config"
	"github.com/andresuchdata/craftledger/internal/service"
	"github.com/andresuchdata/craftledger/pkg/logger"
)

type ledgerKey struct{}

var errAborted = errors.New("aborted")

type ledgerHandle struct {
	svc   *service.LedgerService
	close func() error
}

func openLedger(c *cli.Context) error {
	cfg := *config.Load()
	if c.IsSet("backend") {
		cfg.Storage.Backend = c.String("backend")
	}
	if c.IsSet("data-dir") {
		cfg.Storage.LocalDir = c.String("data-dir")
	}
	if c.IsSet("init") {
		cfg.Storage.Init = c.String("init")
	}
	if c.IsSet("fail-buffer") {
		cfg.Ledger.IncludeFailBuffer = c.Bool("fail-buffer")
	}

	level := cfg.Log.Level
	if c.Bool("verbose") {
		level = "debug"
	}
	logger.SetLevel(level)

	svc, closeFn, err := service.OpenLedger(c.Context, &cfg)
	if err != nil {
		return err
	}
	c.Context = context.WithValue(c.Context, ledgerKey{}, &ledgerHandle{svc: svc, close: closeFn})
	return nil
}

func closeLedger(c *cli.Context) error {
	if h, ok := c.Context.Value(ledgerKey{}).(*ledgerHandle); ok && h != nil {
		return h.close()
	}
	return nil
}

func ledgerFrom(c *cli.Context) *service.LedgerService {
	return c.Context.Value(ledgerKey{}).(*ledgerHandle).svc
}

// confirm asks before destructive commands unless --yes was passed.
func confirm(c *cli.Context, prompt string) bool {
	if c.Bool("yes") {
		return true
	}
	fmt.Fprintf(c.App.ErrWriter, "%s Type 'yes' to continue: ", prompt)
	answer, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
	return strings.EqualFold(strings.TrimSpace(answer), "yes")
}

func yesFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "yes", Aliases: []string{"y"}, Usage: "Skip the confirmation prompt"}
}

func jsonFlag() *cli.BoolFlag {
	return &cli.BoolFlag{Name: "json", Usage: "Print JSON instead of text"}
}

func printJSON(c *cli.Context, v any) error {
	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "craftledger",
		Usage: "Bookkeeping for a cash-on-delivery craft shop",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "backend",
				Usage:   "Storage backend: memory, local, s3, redis, postgres, drive",
				EnvVars: []string{"STORAGE_BACKEND"},
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory for the local backend",
			},
			&cli.StringFlag{
				Name:  "init",
				Usage: "Initial data when nothing is saved yet: seed or empty",
			},
			&cli.BoolFlag{
				Name:  "fail-buffer",
				Usage: "Include each product's fail buffer in its unit cost",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before: openLedger,
		After:  closeLedger,
		Commands: []*cli.Command{
			materialCommand(),
			productCommand(),
			orderCommand(),
			adCommand(),
			metricsCommand(),
			insightCommand(),
			economicsCommand(),
			exportCommand(),
			resetCommand(),
			clearCommand(),
			startFreshCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("craftledger failed")
	}
}
