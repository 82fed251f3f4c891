package main

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/sports-dw/internal/usecase"
)

type fetchOptions struct {
	sports  []string
	workers int
}

func newFetchCmd(c *cli) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download api-sports documents into staging collections",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.runFetch(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return c.printFetch(cmd.OutOrStdout(), result)
		},
	}
	opts.bind(cmd)
	return cmd
}

func newSyncCmd(c *cli) *cobra.Command {
	opts := &fetchOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch documents, then load them into the warehouse",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fetched, loaded, err := c.runSync(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if err := c.printFetch(cmd.OutOrStdout(), fetched); err != nil {
				return err
			}
			return c.printRun(cmd.OutOrStdout(), loaded)
		},
	}
	opts.bind(cmd)
	return cmd
}

func (o *fetchOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.sports, "sport", nil, "sports to process (soccer, basketball, f1); defaults to FETCH_SPORTS")
	cmd.Flags().IntVar(&o.workers, "workers", 0, "concurrent endpoint downloads; defaults to FETCH_MAX_WORKERS")
}

func (c *cli) runFetch(ctx context.Context, opts *fetchOptions) (usecase.FetchResult, error) {
	requested := opts.sports
	if len(requested) == 0 {
		requested = c.cfg.FetchSports
	}
	sports, err := usecase.ParseSports(requested)
	if err != nil {
		return usecase.FetchResult{}, err
	}
	workers := opts.workers
	if workers <= 0 {
		workers = c.cfg.FetchMaxWorkers
	}

	svc, err := c.runtime.FetchService(ctx)
	if err != nil {
		return usecase.FetchResult{}, err
	}
	return svc.Fetch(ctx, usecase.FetchInput{Sports: sports, MaxWorkers: workers})
}

// runSync loads the sports that were fetched, including those with failed
// endpoints.
func (c *cli) runSync(ctx context.Context, opts *fetchOptions) (usecase.FetchResult, usecase.RunResult, error) {
	fetched, err := c.runFetch(ctx, opts)
	if err != nil {
		return fetched, usecase.RunResult{}, err
	}
	requested := make([]string, 0, len(fetched.RequestedFor))
	for _, sport := range fetched.RequestedFor {
		requested = append(requested, string(sport))
	}

	loaded, err := c.runETL(ctx, requested)
	return fetched, loaded, err
}

func (c *cli) printFetch(w io.Writer, result usecase.FetchResult) error {
	if c.jsonOut {
		return sonic.ConfigDefault.NewEncoder(w).Encode(result)
	}

	fmt.Fprintf(w, "fetch %s: stored=%d empty=%d failed=%d workers=%d duration_ms=%d\n",
		result.RunID, result.StoredCount, result.EmptyCount, result.FailedCount, result.WorkerCount, result.DurationMs)
	for _, item := range result.Endpoints {
		line := fmt.Sprintf("  %-32s %-7s documents=%d", item.Collection, item.Status, item.Documents)
		if item.Message != "" {
			line += " message=" + item.Message
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
