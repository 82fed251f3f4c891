package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/riskibarqy/sports-dw/internal/app"
	"github.com/riskibarqy/sports-dw/internal/config"
	"github.com/riskibarqy/sports-dw/internal/observability"
	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

const shutdownTimeout = 10 * time.Second

// cli carries state shared by every subcommand after PersistentPreRunE.
type cli struct {
	envFiles []string
	jsonOut  bool

	cfg      config.Config
	logger   *logging.Logger
	runtime  *app.Runtime
	teardown []func(context.Context) error
}

func newRootCmd() (*cobra.Command, *cli) {
	c := &cli{}

	root := &cobra.Command{
		Use:   "sportsdw",
		Short: "Load api-sports documents into the sports data warehouse",
		Long: `sportsdw fetches raw documents from api-sports.io into MongoDB staging
collections and loads them into the Postgres star schema.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return c.setup()
		},
	}

	root.PersistentFlags().StringSliceVar(&c.envFiles, "env-file", []string{".env"}, "dotenv files loaded before reading the environment")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print run results as JSON")

	root.AddCommand(
		newETLCmd(c),
		newFetchCmd(c),
		newSyncCmd(c),
		newIndexesCmd(c),
		newMigrateCmd(c),
		newScheduleCmd(c),
	)
	return root, c
}

func (c *cli) setup() error {
	if err := config.LoadDotEnv(c.envFiles...); err != nil {
		return err
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	if cfg.AppEnv == config.EnvDev {
		c.logger = logging.NewConsole(cfg.LogLevel)
	} else {
		c.logger = logging.NewJSON(cfg.LogLevel)
	}
	c.logger = c.logger.With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(c.logger)

	shutdownUptrace, err := observability.InitUptrace(cfg, c.logger)
	if err != nil {
		return err
	}
	c.teardown = append(c.teardown, shutdownUptrace)

	stopProfiler, err := observability.InitPyroscope(cfg, c.logger)
	if err != nil {
		return err
	}
	c.teardown = append(c.teardown, func(context.Context) error { return stopProfiler() })

	c.runtime = app.NewRuntime(cfg, c.logger)
	c.teardown = append(c.teardown, c.runtime.Close)
	return nil
}

// close runs teardown in reverse order. Failures are only logged.
func (c *cli) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for i := len(c.teardown) - 1; i >= 0; i-- {
		if err := c.teardown[i](ctx); err != nil && c.logger != nil {
			c.logger.Warn("shutdown step failed", "error", err)
		}
	}
	c.teardown = nil
	if c.logger != nil {
		_ = c.logger.Sync()
	}
}
