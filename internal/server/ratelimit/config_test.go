package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		method  string
		path    string
		pattern string // empty means the default budget
	}{
		{"POST", "/login", "POST /login"},
		{"POST", "/login/", "POST /login"},
		{"GET", "/login", ""},
		{"GET", "/health", "GET /health"},
		{"PUT", "/dashboard/job/abc", "PUT /dashboard/job/{jobId}"},
		{"PUT", "/dashboard/job/", ""},
		{"DELETE", "/dashboard/my-jobs/abc", "DELETE /dashboard/my-jobs/{jobId}"},
		{"PUT", "/dashboard/job/abc/applications/app1/status", "PUT /dashboard/job/{jobId}/applications/{applicationId}/status"},
		{"PUT", "/dashboard/job/abc/applications/app1", ""},
		{"GET", "/dashboard/my-jobs", ""},
		{"OPTIONS", "/dashboard/profile", "OPTIONS /dashboard/profile"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rule := Match(tt.method, tt.path, rules)
			if tt.pattern == "" {
				assert.Nil(t, rule)
				return
			}
			require.NotNil(t, rule)
			assert.Equal(t, tt.pattern, rule.Pattern)
		})
	}
}

func TestMatch_Unlimited(t *testing.T) {
	assert.Zero(t, Match("GET", "/health", DefaultRules()).Limit)
	assert.Zero(t, Match("OPTIONS", "/anything", nil).Limit)
}

func TestRule_MalformedPatternNeverMatches(t *testing.T) {
	r := Rule{Pattern: "/login"}
	assert.False(t, r.Matches("POST", "/login"))
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_SWEEP_INTERVAL", "not a duration")
	t.Setenv("RATE_LIMIT_EXEMPT", "127.0.0.1, ::1")
	t.Setenv("RATE_LIMIT_BLOCKED", "203.0.113.9")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, time.Hour, cfg.IdleTTL)
	assert.Equal(t, map[string]bool{"127.0.0.1": true, "::1": true}, cfg.Exempt)
	assert.Equal(t, map[string]bool{"203.0.113.9": true}, cfg.Blocked)
	assert.NotEmpty(t, cfg.Rules)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
