package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "github.com/tupyy/async-services/api/v1"
	"github.com/tupyy/async-services/internal/export"
	"github.com/tupyy/async-services/internal/store"
	"github.com/tupyy/async-services/internal/store/migrations"
	"github.com/tupyy/async-services/pkg/manager"
)

func newHistoryCommand(a *app) *cobra.Command {
	var (
		statuses []string
		names    []string
		limit    uint64
		output   string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print or export the finished tasks of a data folder",
		Long: `Reads the history database in read-only mode, so it can run next to a
serving instance. --output writes an XLSX workbook instead of printing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Store.DataFolder == "" {
				return fmt.Errorf("--data-folder is required")
			}
			parsed, err := v1.ParseStatuses(statuses)
			if err != nil {
				return err
			}

			db, err := store.NewReadOnlyDB(a.dbPath())
			if err != nil {
				return err
			}
			defer db.Close()

			opts := []store.ListOption{
				store.ByStatus(parsed...),
				store.ByName(names...),
				store.WithDefaultSort(),
			}
			if limit > 0 {
				opts = append(opts, store.WithLimit(limit))
			}

			records, err := store.NewStore(db).Tasks().List(cmd.Context(), opts...)
			if err != nil {
				return err
			}

			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := export.WriteHistoryXLSX(f, records); err != nil {
					return err
				}
				zap.S().Named("history").Infow("history exported", "file", output, "records", len(records))
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tKIND\tSTATUS\tFINISHED\tDURATION")
			for _, r := range records {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					r.ID, r.Name, r.Kind, colorStatus(r.Status),
					r.FinishedAt.Local().Format(time.DateTime), r.Duration().Round(time.Millisecond))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Only tasks with these statuses")
	cmd.Flags().StringSliceVar(&names, "name", nil, "Only tasks with these names")
	cmd.Flags().Uint64Var(&limit, "limit", 50, "Maximum number of tasks, 0 prints everything")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write an XLSX workbook to this file")
	registerStoreFlags(cmd.Flags(), a.cfg)
	return cmd
}

func newPurgeCommand(a *app) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete finished tasks older than a duration from the history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfg.Store.DataFolder == "" {
				return fmt.Errorf("--data-folder is required")
			}
			if olderThan <= 0 {
				return fmt.Errorf("--older-than must be positive")
			}

			db, err := store.NewDB(a.dbPath())
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
			defer cancel()

			if err := migrations.Run(ctx, db); err != nil {
				return err
			}

			n, err := store.NewStore(db).Tasks().Purge(ctx, time.Now().Add(-olderThan))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d task(s) purged\n", n)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age of the tasks to delete")
	registerStoreFlags(cmd.Flags(), a.cfg)
	return cmd
}

func colorStatus(s manager.Status) string {
	switch s {
	case manager.StatusCompleted:
		return color.GreenString(s.String())
	case manager.StatusCancelled, manager.StatusTimeout:
		return color.YellowString(s.String())
	default:
		return color.RedString(s.String())
	}
}
