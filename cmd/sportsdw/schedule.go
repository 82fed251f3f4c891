package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/sports-dw/internal/platform/logging"
)

type scheduleOptions struct {
	fetchOptions
	expr    string
	runNow  bool
	timeout time.Duration
}

func newScheduleCmd(c *cli) *cobra.Command {
	opts := &scheduleOptions{}

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run sync on a cron schedule until interrupted",
		Example: `  sportsdw schedule
  sportsdw schedule --cron "0 6 * * *" --run-now`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runSchedule(cmd.Context(), opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.expr, "cron", "", "cron expression; defaults to SCHEDULE_CRON")
	cmd.Flags().BoolVar(&opts.runNow, "run-now", false, "run one sync immediately on startup")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", time.Hour, "upper bound for a single sync")
	return cmd
}

func (c *cli) runSchedule(ctx context.Context, opts *scheduleOptions) error {
	expr := opts.expr
	if expr == "" {
		expr = c.cfg.ScheduleCron
	}

	// Connect up front so a bad connection string fails before scheduling.
	if _, err := c.runtime.ETLService(ctx); err != nil {
		return err
	}
	if _, err := c.runtime.FetchService(ctx); err != nil {
		return err
	}

	job := func() {
		runCtx, cancel := context.WithTimeout(ctx, opts.timeout)
		defer cancel()

		fetched, loaded, err := c.runSync(runCtx, &opts.fetchOptions)
		if err != nil {
			c.logger.ErrorContext(runCtx, "scheduled sync failed", "error", err)
			return
		}
		c.logger.InfoContext(runCtx, "scheduled sync completed",
			"fetch_run_id", fetched.RunID,
			"etl_run_id", loaded.RunID,
			"stored", fetched.StoredCount,
			"fetch_failed", fetched.FailedCount,
		)
	}

	scheduler, err := newSyncScheduler(expr, job, c.logger)
	if err != nil {
		return err
	}

	scheduler.Start()
	c.logger.InfoContext(ctx, "scheduler started", "cron", expr)
	if opts.runNow {
		scheduler.RunNow()
	}

	<-ctx.Done()
	c.logger.Info("scheduler stopping")
	scheduler.Stop()
	return nil
}

// syncScheduler runs one job on a cron schedule. Scheduled and on-demand
// runs share the same recover and skip-if-running chain.
type syncScheduler struct {
	cron *cron.Cron
	id   cron.EntryID
	wg   sync.WaitGroup
}

func newSyncScheduler(expr string, job func(), logger *logging.Logger) (*syncScheduler, error) {
	cronLog := cronLogger{logger: logger}
	scheduler := cron.New(cron.WithChain(
		cron.Recover(cronLog),
		cron.SkipIfStillRunning(cronLog),
	))
	id, err := scheduler.AddFunc(expr, job)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return &syncScheduler{cron: scheduler, id: id}, nil
}

func (s *syncScheduler) Start() { s.cron.Start() }

// RunNow triggers the wrapped job in the background. It is skipped if a
// scheduled run is still in flight.
func (s *syncScheduler) RunNow() {
	wrapped := s.cron.Entry(s.id).WrappedJob
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		wrapped.Run()
	}()
}

// Stop halts scheduling and waits for scheduled and on-demand runs.
func (s *syncScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.wg.Wait()
}

// cronLogger adapts the zap wrapper to cron.Logger.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron "+msg, append(keysAndValues, "error", err)...)
}
