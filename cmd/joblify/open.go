package main

import (
	"fmt"

	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/spf13/cobra"
)

var openCmd = &cobra.Command{
	Use:   "open [path]",
	Short: "Render a dashboard view by its URL path",
	Long: `Render a dashboard view by its URL path, e.g. /dashboard/my-jobs or
/dashboard/job/<jobId>/applications. Without a path the dashboard home opens.
When the view fails to load you are asked whether to retry.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List the dashboard views and their paths",
	Args:  cobra.NoArgs,
	Run:   runViews,
}

func init() {
	openCmd.Flags().BoolVar(&listAll, "all", false, "Show every list item instead of the first few")
	rootCmd.AddCommand(openCmd, viewsCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	if listAll {
		a.printer.ShowAll()
	}
	path := dashboard.FallbackPath(true)
	if len(args) == 1 {
		path = args[0]
	}
	d := a.dashboard()
	s, err := d.Open(cmd.Context(), path)
	if err != nil {
		return userError(err)
	}
	if assumeYes {
		return a.show(s)
	}

	// a failed load offers a manual retry
	confirm := newConfirmer(cmd.InOrStdin(), cmd.ErrOrStderr(), false)
	for s.Error != "" {
		a.printer.PrintScreen(s)
		if !confirm.Confirm("Retry?") {
			return screenError(s.Error)
		}
		s = d.Retry(cmd.Context())
	}
	return a.show(s)
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func runViews(cmd *cobra.Command, _ []string) {
	for _, v := range dashboard.AllViews() {
		r := dashboard.Route{View: v}
		if v.NeedsJob() {
			r.JobID = ":jobId"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-18s %s\n", v, v.Title(), r.Path())
	}
}
