package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tupyy/async-services/internal/work"
	srvErrors "github.com/tupyy/async-services/pkg/errors"
	"github.com/tupyy/async-services/pkg/manager"
)

func newRunCommand(a *app) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "run KIND [key=value ...]",
		Short: "Run one task in process and print its outcome",
		Example: `  async-services run sleep duration=2s value=done
  async-services run forever --timeout 1s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := parseParams(args[1:])
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			res, err := a.runOnce(ctx, args[0], params, timeout)
			if err != nil {
				return err
			}
			printResult(cmd.OutOrStdout(), res)
			if res.Status != manager.StatusCompleted {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Task timeout, 0 uses --default-timeout")
	registerManagerFlags(cmd.Flags(), a.cfg)
	return cmd
}

func (a *app) runOnce(ctx context.Context, kind string, params work.Params, timeout time.Duration) (manager.Result, error) {
	w, err := work.NewCatalog().Build(kind, params)
	if err != nil {
		return manager.Result{}, err
	}

	m := newManager(a.cfg)
	if _, err := startManager(context.Background(), m); err != nil {
		return manager.Result{}, err
	}
	defer func() {
		m.Stop()
		<-m.Done()
	}()

	opts := []manager.ScheduleOption{manager.WithName(kind)}
	if timeout > 0 {
		opts = append(opts, manager.WithTimeout(timeout))
	}
	return m.ScheduleAndWait(ctx, w, opts...)
}

// parseParams turns key=value arguments into work params.
func parseParams(args []string) (work.Params, error) {
	params := work.Params{}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, srvErrors.NewValidationError("params", fmt.Sprintf("%q is not key=value", arg))
		}
		params[k] = v
	}
	return params, nil
}

func printResult(out io.Writer, res manager.Result) {
	fmt.Fprintf(out, "status: %s\n", colorStatus(res.Status))

	if res.Value != nil {
		value, err := json.Marshal(res.Value)
		if err != nil {
			value = []byte(fmt.Sprintf("%v", res.Value))
		}
		fmt.Fprintf(out, "value:  %s\n", value)
	}
	if res.Err != nil {
		fmt.Fprintf(out, "error:  %s\n", color.RedString(res.Err.Error()))
	}
}
