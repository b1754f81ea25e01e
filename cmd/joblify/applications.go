package main

import (
	"errors"

	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/workflow"
	"github.com/spf13/cobra"
)

var applicationsCmd = &cobra.Command{
	Use:     "applications",
	Aliases: []string{"apps"},
	Short:   "Review applications to a job",
}

var applicationsListCmd = &cobra.Command{
	Use:   "list <jobId>",
	Short: "List the applications to a job with the status changes offered for each",
	Args:  cobra.ExactArgs(1),
	RunE:  runApplicationsList,
}

var applicationsStatusCmd = &cobra.Command{
	Use:   "status <jobId> <applicationId> <status>",
	Short: "Move an application to a new status after confirmation",
	Long:  "Move an application forward in the hiring progression. Hired, rejected and withdrawn are final.",
	Args:  cobra.ExactArgs(3),
	RunE:  runApplicationsStatus,
}

func init() {
	applicationsListCmd.Flags().BoolVar(&listAll, "all", false, "Show every application instead of the first few")
	applicationsCmd.AddCommand(applicationsListCmd, applicationsStatusCmd)
	rootCmd.AddCommand(applicationsCmd)
}

func applicationsPath(jobID string) string {
	return dashboard.Route{View: dashboard.ViewApplicationList, JobID: jobID}.Path()
}

func runApplicationsList(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	if listAll {
		a.printer.ShowAll()
	}
	s, err := a.dashboard().Open(cmd.Context(), applicationsPath(args[0]))
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}

func runApplicationsStatus(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	jobID, applicationID := args[0], args[1]
	to, err := workflow.ParseStatus(args[2])
	if err != nil {
		return err
	}

	d := a.dashboard()
	confirm := newConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
	err = d.TransitionApplication(cmd.Context(), jobID, applicationID, to, confirm)
	if errors.Is(err, workflow.ErrNotConfirmed) {
		a.printer.PrintMessage("Cancelled")
		return nil
	}
	if err != nil {
		return userError(err)
	}

	s, err := d.Open(cmd.Context(), applicationsPath(jobID))
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}
