// Package observability provides formatted terminal output for the dashboard CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joblify/employer-console/internal/dashboard"
	"github.com/joblify/employer-console/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output of dashboard screens
type Printer struct {
	out io.Writer
	all bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// ShowAll disables list truncation.
func (p *Printer) ShowAll() *Printer {
	p.all = true
	return p
}

func (p *Printer) limit(n int) int {
	if p.all {
		return n
	}
	return min(n, maxItemsToShow)
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMessage outputs a one-line notice box.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintMessage(msg string) {
	fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(msg, boxWidth-4))
	fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
}

// PrintScreen outputs a rendered dashboard view with its actions.
func (p *Printer) PrintScreen(s *dashboard.Screen) {
	if s == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Path: %s\n\n", s.Path))

	if s.Error != "" {
		sb.WriteString(fmt.Sprintf("⚠ %s\n", s.Error))
	} else {
		switch s.View {
		case dashboard.ViewDashboard:
			writeSummary(&sb, s.Data, p)
		case dashboard.ViewPostJob:
			writePostJob(&sb, s.Data)
		case dashboard.ViewMyJobs:
			writeJobList(&sb, s.Data, p)
		case dashboard.ViewJobDetail:
			writeJob(&sb, s.Job)
			if data, ok := s.Data.(dashboard.JobDetailData); ok && data.Deleting {
				sb.WriteString("Deleting...\n")
			}
		case dashboard.ViewApplicationList:
			if s.Job != nil {
				sb.WriteString(fmt.Sprintf("Job: %s\n\n", s.Job.Title))
			}
			writeApplications(&sb, s.Data, p)
		case dashboard.ViewProfile:
			writeProfile(&sb, s.Data)
		default:
			panic(fmt.Sprintf("observability: unhandled view %q", string(s.View)))
		}
	}

	if len(s.Actions) > 0 {
		sb.WriteString("\nActions:\n")
		writeActions(&sb, "  ", s.Actions)
	}

	p.printBox(strings.ToUpper(s.Title), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJob outputs a single job posting.
func (p *Printer) PrintJob(job *types.Job) {
	if job == nil {
		return
	}
	var sb strings.Builder
	writeJob(&sb, job)
	p.printBox("JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategories outputs a category option list.
func (p *Printer) PrintCategories(title string, cats []types.Category) {
	var sb strings.Builder
	if len(cats) == 0 {
		sb.WriteString("No categories")
	}
	for i, c := range cats {
		sb.WriteString(fmt.Sprintf("• %s (%s)", c.Name, c.ID))
		if i < len(cats)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(title, sb.String())
}

func writeActions(sb *strings.Builder, indent string, actions []dashboard.Action) {
	for _, a := range actions {
		sb.WriteString(fmt.Sprintf("%s[%s] %s  %s %s\n", indent, a.Name, a.Label, a.Method, a.Path))
	}
}

func writeSummary(sb *strings.Builder, data any, p *Printer) {
	summary, ok := data.(*dashboard.Summary)
	if !ok || summary == nil {
		return
	}
	if summary.Profile != nil {
		name := summary.Profile.Profile.CompanyName
		if name == "" {
			name = summary.Profile.Name
		}
		sb.WriteString(fmt.Sprintf("Welcome, %s\n\n", name))
	}
	sb.WriteString(fmt.Sprintf("Total jobs: %d\n", summary.TotalJobs))
	for _, st := range []types.JobStatus{types.JobStatusActive, types.JobStatusPaused, types.JobStatusClosed, types.JobStatusDraft} {
		if n := summary.StatusCounts[st]; n > 0 {
			sb.WriteString(fmt.Sprintf("  %-8s %d\n", st, n))
		}
	}
	if len(summary.RecentJobs) > 0 {
		sb.WriteString("\nRecent jobs:\n")
		count := p.limit(len(summary.RecentJobs))
		for i := 0; i < count; i++ {
			j := summary.RecentJobs[i]
			sb.WriteString(fmt.Sprintf("  • %s [%s]\n", truncate(j.Title, 40), j.Status))
		}
	}
}

func writePostJob(sb *strings.Builder, data any) {
	d, ok := data.(dashboard.PostJobData)
	if !ok {
		return
	}
	f := d.Form
	if f.EditingID != "" {
		sb.WriteString(fmt.Sprintf("Editing: %s\n", f.EditingID))
	}
	sb.WriteString(fmt.Sprintf("Title:    %s\n", f.Title))
	sb.WriteString(fmt.Sprintf("Type:     %s\n", f.JobType.Label()))
	sb.WriteString(fmt.Sprintf("Pricing:  %s\n", f.Mode.Label()))
	for _, field := range f.CompensationFields {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", field.Label, field.Value))
	}

	switch {
	case f.CategoriesPending:
		sb.WriteString("Category: loading...\n")
	case len(f.ParentOptions) == 0:
		sb.WriteString("Category: none available\n")
	default:
		names := make([]string, 0, len(f.ParentOptions))
		for _, c := range f.ParentOptions {
			names = append(names, c.Name)
		}
		sb.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(names, ", ")))
	}

	modes := make([]string, 0, len(d.PricingModes))
	for _, m := range d.PricingModes {
		modes = append(modes, string(m))
	}
	sb.WriteString(fmt.Sprintf("Pricing modes: %s\n", strings.Join(modes, ", ")))
}

func writeJobList(sb *strings.Builder, data any, p *Printer) {
	d, ok := data.(dashboard.JobListData)
	if !ok {
		return
	}
	if len(d.Jobs) == 0 {
		sb.WriteString("No jobs posted yet\n")
		return
	}
	sb.WriteString(fmt.Sprintf("%d jobs:\n\n", len(d.Jobs)))
	count := p.limit(len(d.Jobs))
	for i := 0; i < count; i++ {
		row := d.Jobs[i]
		sb.WriteString(fmt.Sprintf("• %s [%s]\n", truncate(row.Job.Title, 40), row.Job.Status))
		sb.WriteString(fmt.Sprintf("  id %s\n", row.Job.ID))
		if row.Deleting {
			sb.WriteString("  Deleting...\n")
		}
	}
	if len(d.Jobs) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more jobs\n", len(d.Jobs)-count))
	}
}

func writeJob(sb *strings.Builder, j *types.Job) {
	if j == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("Title:    %s\n", j.Title))
	sb.WriteString(fmt.Sprintf("ID:       %s\n", j.ID))
	if j.Status != "" {
		sb.WriteString(fmt.Sprintf("Status:   %s\n", j.Status))
	}
	sb.WriteString(fmt.Sprintf("Type:     %s\n", j.JobType.Label()))
	if j.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", j.Location))
	}
	if j.Category != "" {
		sb.WriteString(fmt.Sprintf("Category: %s\n", j.Category))
	}
	if j.Vacancies > 0 {
		sb.WriteString(fmt.Sprintf("Openings: %d\n", j.Vacancies))
	}
	sb.WriteString(fmt.Sprintf("Pricing:  %s\n", j.Mode().Label()))
	for _, line := range compensationLines(j.Compensation) {
		sb.WriteString("  " + line + "\n")
	}
	if len(j.Requirements) > 0 {
		sb.WriteString("\nRequirements:\n")
		for _, r := range j.Requirements {
			sb.WriteString(fmt.Sprintf("  • %s\n", r))
		}
	}
	if len(j.SkillsRequired) > 0 {
		skills := make([]string, 0, len(j.SkillsRequired))
		for _, s := range j.SkillsRequired {
			if s.Level != "" {
				skills = append(skills, fmt.Sprintf("%s (%s)", s.Skill, s.Level))
			} else {
				skills = append(skills, s.Skill)
			}
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(skills, ", ")))
	}
}

func money(v *float64) string {
	if v == nil {
		return "-"
	}
	return "$" + strconv.FormatFloat(*v, 'f', -1, 64)
}

func number(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func compensationLines(c *types.Compensation) []string {
	if c == nil {
		return nil
	}
	var lines []string
	if h := c.Hourly; h != nil {
		line := fmt.Sprintf("Rate %s/hr, est. %s hours", money(h.HourlyRate), number(h.EstimatedHours))
		if h.MinHours != nil || h.MaxHours != nil {
			line += fmt.Sprintf(" (%s to %s)", number(h.MinHours), number(h.MaxHours))
		}
		lines = append(lines, line)
	}
	if f := c.FixedPrice; f != nil {
		lines = append(lines, fmt.Sprintf("Budget %s, duration %s", money(f.TotalBudget), f.EstimatedDuration))
	}
	if m := c.Monthly; m != nil {
		lines = append(lines, fmt.Sprintf("Rate %s/month, %s hrs/week", money(m.MonthlyRate), number(m.HoursPerWeek)))
	}
	if w := c.Weekly; w != nil {
		lines = append(lines, fmt.Sprintf("Rate %s/week, %s hrs/week", money(w.WeeklyRate), number(w.HoursPerWeek)))
	}
	if pr := c.Project; pr != nil {
		lines = append(lines, fmt.Sprintf("Budget %s, deadline %s", money(pr.ProjectBudget), pr.Deadline))
	}
	return lines
}

func writeApplications(sb *strings.Builder, data any, p *Printer) {
	d, ok := data.(dashboard.ApplicationListData)
	if !ok {
		return
	}
	if len(d.Applications) == 0 {
		sb.WriteString("No applications yet\n")
		return
	}
	sb.WriteString(fmt.Sprintf("%d applications:\n\n", len(d.Applications)))
	count := p.limit(len(d.Applications))
	for i := 0; i < count; i++ {
		row := d.Applications[i]
		a := row.Application
		sb.WriteString(fmt.Sprintf("• %s <%s> [%s]\n", a.Applicant.Name, a.Applicant.Email, a.Status))
		sb.WriteString(fmt.Sprintf("  id %s\n", a.ID))
		if row.Busy {
			sb.WriteString("  Updating...\n")
		}
		writeActions(sb, "    ", row.Actions)
	}
	if len(d.Applications) > count {
		sb.WriteString(fmt.Sprintf("\n... and %d more applications\n", len(d.Applications)-count))
	}
}

func writeProfile(sb *strings.Builder, data any) {
	d, ok := data.(dashboard.ProfileData)
	if !ok || d.Profile == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("Name:     %s\n", d.Profile.Name))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", d.Profile.Email))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", d.Profile.Profile.CompanyName))
	if d.Profile.Profile.CompanyWebsite != "" {
		sb.WriteString(fmt.Sprintf("Website:  %s\n", d.Profile.Profile.CompanyWebsite))
	}
	if d.Profile.Profile.Bio != "" {
		sb.WriteString(fmt.Sprintf("Bio:      %s\n", d.Profile.Profile.Bio))
	}
	if d.Editing {
		sb.WriteString("(editing)\n")
	}
}
