// Package compensation implements the pricing-mode selector for job compensation.
//
// Each pricing mode owns a typed draft of the values the employer typed in. Switching
// modes keeps every draft in memory, but only the active mode's draft is ever built
// into a payload.
package compensation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joblify/employer-console/internal/types"
)

// HourlyDraft holds the hourly fields as entered.
type HourlyDraft struct {
	HourlyRate     string
	EstimatedHours string
	MinHours       string
	MaxHours       string
}

// FixedPriceDraft holds the fixed-price fields as entered.
type FixedPriceDraft struct {
	TotalBudget       string
	EstimatedDuration string
}

// MonthlyDraft holds the legacy monthly fields as entered.
type MonthlyDraft struct {
	MonthlyRate  string
	HoursPerWeek string
}

// WeeklyDraft holds the legacy weekly fields as entered.
type WeeklyDraft struct {
	WeeklyRate   string
	HoursPerWeek string
}

// ProjectDraft holds the legacy project fields as entered.
type ProjectDraft struct {
	ProjectBudget string
	Deadline      string
}

// Selector tracks the active pricing mode and one draft per mode.
type Selector struct {
	mode types.PricingMode

	Hourly     HourlyDraft
	FixedPrice FixedPriceDraft
	Monthly    MonthlyDraft
	Weekly     WeeklyDraft
	Project    ProjectDraft
}

// NewSelector returns a selector with mode active. An empty mode means hourly.
func NewSelector(mode types.PricingMode) *Selector {
	if mode == "" {
		mode = types.PricingHourly
	}
	return &Selector{mode: mode}
}

// Mode returns the active pricing mode.
func (s *Selector) Mode() types.PricingMode {
	return s.mode
}

// Select makes mode active. Drafts of other modes are kept.
func (s *Selector) Select(mode types.PricingMode) error {
	if _, err := types.ParsePricingMode(string(mode)); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// Set stores value into field of the draft identified by key, which may be either the
// wire key (`fixedPrice`) or the mode name (`fixed_price`).
func (s *Selector) Set(key, field, value string) error {
	mode, ok := ModeForKey(key)
	if !ok {
		return fmt.Errorf("unknown compensation mode %q", key)
	}
	for _, def := range modeFields[mode] {
		if def.Name == field {
			*def.ref(s) = value
			return nil
		}
	}
	return fmt.Errorf("unknown %s compensation field %q", mode.CompensationKey(), field)
}

// Get returns the entered value of field in the draft identified by key.
func (s *Selector) Get(key, field string) (string, bool) {
	mode, ok := ModeForKey(key)
	if !ok {
		return "", false
	}
	for _, def := range modeFields[mode] {
		if def.Name == field {
			return *def.ref(s), true
		}
	}
	return "", false
}

// Fields describes the inputs of mode with their current values, in display order.
func (s *Selector) Fields(mode types.PricingMode) []Field {
	out := make([]Field, 0, len(modeFields[mode]))
	for _, def := range modeFields[mode] {
		f := def.Field
		f.Value = *def.ref(s)
		out = append(out, f)
	}
	return out
}

// Build returns the compensation for the active mode, or nil when its draft has no
// usable value. The result never carries more than one member.
func (s *Selector) Build() *types.Compensation {
	switch s.mode {
	case types.PricingHourly:
		d := s.Hourly
		h := &types.HourlyCompensation{
			HourlyRate:     parseNumber(d.HourlyRate),
			EstimatedHours: parseNumber(d.EstimatedHours),
			MinHours:       parseNumber(d.MinHours),
			MaxHours:       parseNumber(d.MaxHours),
		}
		if h.HourlyRate == nil && h.EstimatedHours == nil && h.MinHours == nil && h.MaxHours == nil {
			return nil
		}
		return &types.Compensation{Hourly: h}

	case types.PricingFixedPrice:
		d := s.FixedPrice
		f := &types.FixedPriceCompensation{
			TotalBudget:       parseNumber(d.TotalBudget),
			EstimatedDuration: strings.TrimSpace(d.EstimatedDuration),
		}
		if f.TotalBudget == nil && f.EstimatedDuration == "" {
			return nil
		}
		return &types.Compensation{FixedPrice: f}

	case types.PricingMonthly:
		d := s.Monthly
		m := &types.MonthlyCompensation{
			MonthlyRate:  parseNumber(d.MonthlyRate),
			HoursPerWeek: parseNumber(d.HoursPerWeek),
		}
		if m.MonthlyRate == nil && m.HoursPerWeek == nil {
			return nil
		}
		return &types.Compensation{Monthly: m}

	case types.PricingWeekly:
		d := s.Weekly
		w := &types.WeeklyCompensation{
			WeeklyRate:   parseNumber(d.WeeklyRate),
			HoursPerWeek: parseNumber(d.HoursPerWeek),
		}
		if w.WeeklyRate == nil && w.HoursPerWeek == nil {
			return nil
		}
		return &types.Compensation{Weekly: w}

	case types.PricingProject:
		d := s.Project
		p := &types.ProjectCompensation{
			ProjectBudget: parseNumber(d.ProjectBudget),
			Deadline:      strings.TrimSpace(d.Deadline),
		}
		if p.ProjectBudget == nil && p.Deadline == "" {
			return nil
		}
		return &types.Compensation{Project: p}

	default:
		panic(fmt.Sprintf("compensation: unhandled pricing mode %q", s.mode))
	}
}

// Load seeds the drafts from an existing compensation record. Every member present
// is loaded, so switching to another mode afterwards still shows its stored values.
func (s *Selector) Load(c *types.Compensation) {
	if c == nil {
		return
	}
	if h := c.Hourly; h != nil {
		s.Hourly = HourlyDraft{
			HourlyRate:     formatNumber(h.HourlyRate),
			EstimatedHours: formatNumber(h.EstimatedHours),
			MinHours:       formatNumber(h.MinHours),
			MaxHours:       formatNumber(h.MaxHours),
		}
	}
	if f := c.FixedPrice; f != nil {
		s.FixedPrice = FixedPriceDraft{
			TotalBudget:       formatNumber(f.TotalBudget),
			EstimatedDuration: f.EstimatedDuration,
		}
	}
	if m := c.Monthly; m != nil {
		s.Monthly = MonthlyDraft{MonthlyRate: formatNumber(m.MonthlyRate), HoursPerWeek: formatNumber(m.HoursPerWeek)}
	}
	if w := c.Weekly; w != nil {
		s.Weekly = WeeklyDraft{WeeklyRate: formatNumber(w.WeeklyRate), HoursPerWeek: formatNumber(w.HoursPerWeek)}
	}
	if p := c.Project; p != nil {
		s.Project = ProjectDraft{ProjectBudget: formatNumber(p.ProjectBudget), Deadline: p.Deadline}
	}
}

// Reset clears every draft and makes mode active.
func (s *Selector) Reset(mode types.PricingMode) {
	*s = *NewSelector(mode)
}

// ModeForKey resolves a wire key or mode name to a pricing mode.
func ModeForKey(key string) (types.PricingMode, bool) {
	for _, m := range types.PricingModes() {
		if key == string(m) || key == m.CompensationKey() {
			return m, true
		}
	}
	return "", false
}

// parseNumber parses a numeric input. Empty input and anything that does not parse
// to a finite number count as absent.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatNumber(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
