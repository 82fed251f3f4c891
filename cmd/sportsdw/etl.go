package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/sports-dw/internal/usecase"
)

func newETLCmd(c *cli) *cobra.Command {
	var sports []string

	cmd := &cobra.Command{
		Use:   "etl",
		Short: "Load staging documents into the warehouse",
		Example: `  sportsdw etl
  sportsdw etl --sport soccer --sport f1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := c.runETL(cmd.Context(), sports)
			if err != nil {
				return err
			}
			return c.printRun(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringSliceVar(&sports, "sport", nil, "sports to load (soccer, basketball, f1); defaults to ETL_SPORTS")
	return cmd
}

func newIndexesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "indexes",
		Short: "Create the unique indexes the upserts rely on",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			warehouse, err := c.runtime.Warehouse(ctx)
			if err != nil {
				return err
			}
			if err := warehouse.EnsureUniqueIndexes(ctx); err != nil {
				return err
			}
			c.logger.InfoContext(ctx, "unique indexes ensured")
			return nil
		},
	}
}

func (c *cli) runETL(ctx context.Context, requested []string) (usecase.RunResult, error) {
	if len(requested) == 0 {
		requested = c.cfg.ETLSports
	}
	sports, err := usecase.ParseSports(requested)
	if err != nil {
		return usecase.RunResult{}, err
	}

	svc, err := c.runtime.ETLService(ctx)
	if err != nil {
		return usecase.RunResult{}, err
	}
	return svc.Run(ctx, usecase.ETLInput{Sports: sports})
}

func (c *cli) printRun(w io.Writer, result usecase.RunResult) error {
	if c.jsonOut {
		return sonic.ConfigDefault.NewEncoder(w).Encode(result)
	}

	fmt.Fprintf(w, "run %s finished in %s\n", result.RunID, result.FinishedAt.Sub(result.StartedAt).Round(time.Millisecond))
	for _, sport := range result.Sports {
		totals := sport.Totals()
		fmt.Fprintf(w, "%-10s processed=%d failed=%d skipped=%d\n", sport.Sport, totals.Processed, totals.Failed, totals.Skipped)
		for _, coll := range sport.Collections {
			fmt.Fprintf(w, "  %-28s processed=%d failed=%d skipped=%d\n", coll.Collection, coll.Processed, coll.Failed, coll.Skipped)
		}
	}
	return nil
}
