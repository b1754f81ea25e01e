package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/observability"
	"github.com/joblify/employer-console/internal/schemas"
	"github.com/joblify/employer-console/internal/types"
	"github.com/joblify/employer-console/internal/workflow"
	schemafiles "github.com/joblify/employer-console/schemas"
	"github.com/spf13/cobra"
)

var (
	jobSets         []string
	jobRequirements []string
	jobSkills       []string
	listAll         bool
)

// jobFieldFlags maps typed flags to form field names.
var jobFieldFlags = []struct {
	flag, field, usage string
}{
	{"title", "title", "Job title"},
	{"description", "description", "Job description"},
	{"location", "location", "Location"},
	{"timezone", "timezone", "Timezone"},
	{"job-type", "jobType", "Job type: remote, on_site or hybrid"},
	{"status", "status", "Job status: active, paused, closed or draft"},
	{"vacancies", "vacancies", "Number of openings"},
	{"pricing", "pricingType", "Pricing mode: hourly, fixed_price, monthly, weekly or project"},
	{"parent-category", "parentCategory", "Parent category id"},
	{"category", "category", "Subcategory id"},
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Manage job postings",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your job postings",
	Args:  cobra.NoArgs,
	RunE:  runJobsList,
}

var jobsShowCmd = &cobra.Command{
	Use:   "show <jobId>",
	Short: "Show a job posting",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsShow,
}

var jobsPostCmd = &cobra.Command{
	Use:   "post",
	Short: "Post a new job",
	Long: `Post a new job. Fields are set with typed flags or --set name=value, where
name is a form field and may be dotted, e.g. --set compensation.hourly.hourlyRate=45.`,
	Args: cobra.NoArgs,
	RunE: runJobsPost,
}

var jobsEditCmd = &cobra.Command{
	Use:   "edit <jobId>",
	Short: "Edit a job posting",
	Long:  "Edit a job posting. Only the fields given are changed; the rest keep their saved values.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsEdit,
}

var jobsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a job payload file against the job schema without sending it",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsValidate,
}

var jobsDeleteCmd = &cobra.Command{
	Use:   "delete <jobId>",
	Short: "Delete a job posting after confirmation",
	Args:  cobra.ExactArgs(1),
	RunE:  runJobsDelete,
}

func init() {
	jobsListCmd.Flags().BoolVar(&listAll, "all", false, "Show every job instead of the first few")
	for _, c := range []*cobra.Command{jobsPostCmd, jobsEditCmd} {
		for _, f := range jobFieldFlags {
			c.Flags().String(f.flag, "", f.usage)
		}
		c.Flags().StringArrayVar(&jobSets, "set", nil, "Set a form field as name=value (repeatable)")
		c.Flags().StringArrayVar(&jobRequirements, "requirement", nil, "Requirement line (repeatable, replaces the list)")
		c.Flags().StringArrayVar(&jobSkills, "skill", nil, "Required skill as name[:level] (repeatable, replaces the list)")
	}

	jobsCmd.AddCommand(jobsListCmd, jobsShowCmd, jobsPostCmd, jobsEditCmd, jobsValidateCmd, jobsDeleteCmd)
	rootCmd.AddCommand(jobsCmd)
}

// jobInput collects the job form flags of cmd.
func jobInput(cmd *cobra.Command) (*dashboard.JobInput, error) {
	in := &dashboard.JobInput{Fields: make(map[string]string)}
	for _, f := range jobFieldFlags {
		if cmd.Flags().Changed(f.flag) {
			v, _ := cmd.Flags().GetString(f.flag)
			in.Fields[f.field] = v
		}
	}
	for _, kv := range jobSets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", kv)
		}
		in.Fields[strings.TrimSpace(name)] = value
	}
	if cmd.Flags().Changed("requirement") {
		in.Requirements = append([]string{}, jobRequirements...)
	}
	if cmd.Flags().Changed("skill") {
		in.Skills = make([]types.SkillRequirement, 0, len(jobSkills))
		for _, s := range jobSkills {
			name, level, _ := strings.Cut(s, ":")
			in.Skills = append(in.Skills, types.SkillRequirement{Skill: strings.TrimSpace(name), Level: types.SkillLevel(strings.TrimSpace(level))})
		}
	}
	return in, nil
}

func runJobsList(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	if listAll {
		a.printer.ShowAll()
	}
	s, err := a.dashboard().Open(cmd.Context(), dashboard.Route{View: dashboard.ViewMyJobs}.Path())
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}

func runJobsShow(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	s, err := a.dashboard().SelectJob(cmd.Context(), args[0])
	if err != nil {
		return userError(err)
	}
	return a.show(s)
}

func runJobsPost(cmd *cobra.Command, _ []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	in, err := jobInput(cmd)
	if err != nil {
		return err
	}

	d := a.dashboard()
	if _, err := d.Navigate(cmd.Context(), dashboard.ViewPostJob, nil); err != nil {
		return userError(err)
	}
	job, err := d.PostJob(cmd.Context(), in)
	if err != nil {
		return userError(err)
	}
	a.printer.PrintJob(job)
	a.printer.PrintMessage("Job posted successfully!")
	return nil
}

func runJobsEdit(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	in, err := jobInput(cmd)
	if err != nil {
		return err
	}

	job, err := a.dashboard().EditJob(cmd.Context(), args[0], in)
	if err != nil {
		return userError(err)
	}
	a.printer.PrintJob(job)
	a.printer.PrintMessage("Job updated successfully!")
	return nil
}

func runJobsDelete(cmd *cobra.Command, args []string) error {
	a, err := newAuthedApp(cmd)
	if err != nil {
		return err
	}
	confirm := newConfirmer(cmd.InOrStdin(), cmd.OutOrStdout(), assumeYes)
	err = a.dashboard().DeleteJob(cmd.Context(), args[0], confirm)
	if errors.Is(err, workflow.ErrNotConfirmed) {
		a.printer.PrintMessage("Cancelled")
		return nil
	}
	if err != nil {
		return userError(err)
	}
	a.printer.PrintMessage("Job deleted")
	return nil
}

func runJobsValidate(cmd *cobra.Command, args []string) error {
	if err := schemas.ValidateFile(schemafiles.JobPayload, args[0]); err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintMessage("Payload is valid")
	return nil
}
