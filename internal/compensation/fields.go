package compensation

import "github.com/joblify/employer-console/internal/types"

// Field describes one compensation input.
type Field struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Numeric     bool   `json:"numeric"`
	Placeholder string `json:"placeholder,omitempty"`
	Value       string `json:"value"`
}

type fieldDef struct {
	Field
	ref func(s *Selector) *string
}

var modeFields = map[types.PricingMode][]fieldDef{
	types.PricingHourly: {
		{Field{Name: "hourlyRate", Label: "Hourly Rate ($)", Numeric: true, Placeholder: "e.g., 25"}, func(s *Selector) *string { return &s.Hourly.HourlyRate }},
		{Field{Name: "estimatedHours", Label: "Estimated Hours", Numeric: true, Placeholder: "e.g., 100"}, func(s *Selector) *string { return &s.Hourly.EstimatedHours }},
		{Field{Name: "minHours", Label: "Min Hours", Numeric: true, Placeholder: "e.g., 10"}, func(s *Selector) *string { return &s.Hourly.MinHours }},
		{Field{Name: "maxHours", Label: "Max Hours", Numeric: true, Placeholder: "e.g., 200"}, func(s *Selector) *string { return &s.Hourly.MaxHours }},
	},
	types.PricingFixedPrice: {
		{Field{Name: "totalBudget", Label: "Total Budget ($)", Numeric: true, Placeholder: "e.g., 5000"}, func(s *Selector) *string { return &s.FixedPrice.TotalBudget }},
		{Field{Name: "estimatedDuration", Label: "Estimated Duration", Placeholder: "e.g., 2 weeks"}, func(s *Selector) *string { return &s.FixedPrice.EstimatedDuration }},
	},
	types.PricingMonthly: {
		{Field{Name: "monthlyRate", Label: "Monthly Rate ($)", Numeric: true, Placeholder: "e.g., 4000"}, func(s *Selector) *string { return &s.Monthly.MonthlyRate }},
		{Field{Name: "hoursPerWeek", Label: "Hours per Week", Numeric: true, Placeholder: "e.g., 40"}, func(s *Selector) *string { return &s.Monthly.HoursPerWeek }},
	},
	types.PricingWeekly: {
		{Field{Name: "weeklyRate", Label: "Weekly Rate ($)", Numeric: true, Placeholder: "e.g., 1000"}, func(s *Selector) *string { return &s.Weekly.WeeklyRate }},
		{Field{Name: "hoursPerWeek", Label: "Hours per Week", Numeric: true, Placeholder: "e.g., 40"}, func(s *Selector) *string { return &s.Weekly.HoursPerWeek }},
	},
	types.PricingProject: {
		{Field{Name: "projectBudget", Label: "Project Budget ($)", Numeric: true, Placeholder: "e.g., 8000"}, func(s *Selector) *string { return &s.Project.ProjectBudget }},
		{Field{Name: "deadline", Label: "Deadline", Placeholder: "e.g., 2025-06-30"}, func(s *Selector) *string { return &s.Project.Deadline }},
	},
}
