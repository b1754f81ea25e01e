package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule budgets the requests matching Pattern, written like a ServeMux
// pattern: "POST /login" or "DELETE /dashboard/job/{jobId}". Every path a
// rule matches draws from one budget per client. A Limit of 0 is unlimited.
type Rule struct {
	Pattern string
	Limit   int           // requests per Window
	Window  time.Duration // refill period for Limit tokens
	Burst   int           // bucket capacity; 0 means Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled       bool
	DefaultLimit  int
	DefaultWindow time.Duration
	SweepInterval time.Duration   // how often idle buckets are dropped; 0 disables
	IdleTTL       time.Duration   // buckets unused this long are dropped
	Exempt        map[string]bool // clients never limited
	Blocked       map[string]bool // clients always refused
	Rules         []Rule
}

// LoadConfig reads RATE_LIMIT_* environment variables. Malformed values keep
// their defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:       true,
		DefaultLimit:  envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow: envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		SweepInterval: envDuration("RATE_LIMIT_SWEEP_INTERVAL", 5*time.Minute),
		IdleTTL:       envDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Exempt:        clientSet(os.Getenv("RATE_LIMIT_EXEMPT")),
		Blocked:       clientSet(os.Getenv("RATE_LIMIT_BLOCKED")),
		Rules:         DefaultRules(),
	}
}

// DefaultRules budgets the dashboard's routes. Every write is forwarded to
// the job-board API, so writes are tighter than page reads, which fall under
// the default limit.
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "GET /health"},

		{Pattern: "POST /login", Limit: 10, Window: time.Minute, Burst: 5},
		{Pattern: "POST /signup", Limit: 5, Window: time.Hour, Burst: 2},

		{Pattern: "POST /dashboard/post-job", Limit: 30, Window: time.Hour, Burst: 5},
		{Pattern: "PUT /dashboard/job/{jobId}", Limit: 100, Window: time.Minute, Burst: 10},
		{Pattern: "DELETE /dashboard/job/{jobId}", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "DELETE /dashboard/my-jobs/{jobId}", Limit: 30, Window: time.Minute, Burst: 5},
		{Pattern: "PUT /dashboard/job/{jobId}/applications/{applicationId}/status", Limit: 60, Window: time.Minute, Burst: 10},
		{Pattern: "PUT /dashboard/profile", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

// clientSet parses a comma-separated list of client addresses.
func clientSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, c := range strings.Split(list, ",") {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = true
		}
	}
	return set
}
