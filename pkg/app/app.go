package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"cafe/pkg/analytics"
	"cafe/pkg/auth"
	"cafe/pkg/config"
	"cafe/pkg/console"
	"cafe/pkg/logging"
	"cafe/pkg/menu"
	"cafe/pkg/order"
	"cafe/pkg/session"
	"cafe/pkg/version"
)

// options captures CLI flags so the console can start with a single Run call.
type options struct {
	showVersion bool
	configPath  string
	envFile     string
	dataDir     string
}

// Run loads configuration, opens every store once and hands them to the
// interactive console reading stdin and writing stdout.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			// Usage was already printed by the flag package.
			return nil
		}
		return err
	}

	if opts.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg, err := config.Load(opts.configPath, opts.envFile)
	if err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}
	if opts.dataDir != "" {
		cfg.Data.Dir = opts.dataDir
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("unable to set up logging: %w", err)
	}
	defer closer.Close()
	logger.Info("cafe console starting", "version", version.Version, "data_dir", cfg.Data.Dir)

	catalog, err := menu.Open(cfg.MenuPath(), logger)
	if err != nil {
		return fmt.Errorf("unable to open menu: %w", err)
	}
	ledger, err := order.Open(cfg.OrdersPath(), catalog, logger)
	if err != nil {
		return fmt.Errorf("unable to open orders: %w", err)
	}
	users, err := auth.Open(cfg.UsersPath(), logger)
	if err != nil {
		return fmt.Errorf("unable to open users: %w", err)
	}
	sessions := session.New(cfg.SessionPath(), cfg.Session.Duration, cfg.Session.Secret, logger)
	engine := analytics.New(ledger, catalog, logger, analytics.WithLimits(analytics.Limits{
		DailyTop:      cfg.Analytics.DailyTop,
		DailyBottom:   cfg.Analytics.DailyBottom,
		MonthlyTop:    cfg.Analytics.MonthlyTop,
		MonthlyBottom: cfg.Analytics.MonthlyBottom,
		CategoryTop:   cfg.Analytics.CategoryTop,
	}))

	con := console.New(stdin, stdout, console.Deps{
		Catalog:   catalog,
		Ledger:    ledger,
		Analytics: engine,
		Users:     users,
		Sessions:  sessions,
		Logger:    logger,
	})
	err = con.Run(ctx)
	logger.Info("cafe console stopped", "err", err)
	return err
}

// parseFlags uses a dedicated FlagSet so Run can be called from multiple entry points.
func parseFlags(args []string, out io.Writer) (options, error) {
	set := flag.NewFlagSet("cafe", flag.ContinueOnError)
	set.SetOutput(out)

	var opts options
	set.BoolVar(&opts.showVersion, "version", false, "Show the application version")
	set.StringVar(&opts.configPath, "config", "config.yaml", "YAML settings file; skipped when missing.")
	set.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before CAFE_ variables; skipped when missing.")
	set.StringVar(&opts.dataDir, "data-dir", "", "Directory holding menu, order, user and session files; overrides data.dir.")

	if err := set.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}
