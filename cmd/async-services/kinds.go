package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tupyy/async-services/internal/work"
)

func newKindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the work kinds that can be submitted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bold := color.New(color.Bold).SprintFunc()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\t%s\t%s\n", bold("KIND"), bold("PARAMS"), bold("DESCRIPTION"))
			for _, k := range work.NewCatalog().Kinds() {
				params := strings.Join(k.Params, ",")
				if params == "" {
					params = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Name, params, k.Description)
			}
			return tw.Flush()
		},
	}
}
