package types

import "sort"

// HourlyCompensation is the hourly pricing sub-object.
type HourlyCompensation struct {
	HourlyRate     *float64 `json:"hourlyRate,omitempty"`
	EstimatedHours *float64 `json:"estimatedHours,omitempty"`
	MinHours       *float64 `json:"minHours,omitempty"`
	MaxHours       *float64 `json:"maxHours,omitempty"`
}

// FixedPriceCompensation is the fixed-price pricing sub-object.
type FixedPriceCompensation struct {
	TotalBudget       *float64 `json:"totalBudget,omitempty"`
	EstimatedDuration string   `json:"estimatedDuration,omitempty"`
}

// MonthlyCompensation is the legacy monthly work arrangement sub-object.
type MonthlyCompensation struct {
	MonthlyRate  *float64 `json:"monthlyRate,omitempty"`
	HoursPerWeek *float64 `json:"hoursPerWeek,omitempty"`
}

// WeeklyCompensation is the legacy weekly work arrangement sub-object.
type WeeklyCompensation struct {
	WeeklyRate   *float64 `json:"weeklyRate,omitempty"`
	HoursPerWeek *float64 `json:"hoursPerWeek,omitempty"`
}

// ProjectCompensation is the legacy project work arrangement sub-object.
type ProjectCompensation struct {
	ProjectBudget *float64 `json:"projectBudget,omitempty"`
	Deadline      string   `json:"deadline,omitempty"`
}

// Compensation is a union keyed by pricing mode. A well-formed value carries exactly
// one non-nil member, matching the job's active pricing mode.
type Compensation struct {
	Hourly     *HourlyCompensation     `json:"hourly,omitempty"`
	FixedPrice *FixedPriceCompensation `json:"fixedPrice,omitempty"`
	Monthly    *MonthlyCompensation    `json:"monthly,omitempty"`
	Weekly     *WeeklyCompensation     `json:"weekly,omitempty"`
	Project    *ProjectCompensation    `json:"project,omitempty"`
}

// Keys returns the wire keys of the populated members, sorted.
func (c *Compensation) Keys() []string {
	if c == nil {
		return nil
	}
	var keys []string
	if c.Hourly != nil {
		keys = append(keys, PricingHourly.CompensationKey())
	}
	if c.FixedPrice != nil {
		keys = append(keys, PricingFixedPrice.CompensationKey())
	}
	if c.Monthly != nil {
		keys = append(keys, PricingMonthly.CompensationKey())
	}
	if c.Weekly != nil {
		keys = append(keys, PricingWeekly.CompensationKey())
	}
	if c.Project != nil {
		keys = append(keys, PricingProject.CompensationKey())
	}
	sort.Strings(keys)
	return keys
}

// Mode returns the pricing mode of the single populated member. It reports false
// when zero or several members are set.
func (c *Compensation) Mode() (PricingMode, bool) {
	keys := c.Keys()
	if len(keys) != 1 {
		return "", false
	}
	for _, m := range PricingModes() {
		if m.CompensationKey() == keys[0] {
			return m, true
		}
	}
	return "", false
}
