package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const backendToken = "tok-employer"

// backend is an in-memory job-board API.
type backend struct {
	mu       sync.Mutex
	jobs     map[string]map[string]any
	statuses map[string]string
	created  []map[string]any
	deleted  []string
	profile  map[string]any
	server   *httptest.Server

	jobGetFailures int // GET /jobs/{id} answers 500 this many times first
}

func newBackend(t *testing.T) *backend {
	t.Helper()
	b := &backend{
		jobs: map[string]map[string]any{
			"abc123": {"_id": "abc123", "title": "Go developer", "description": "APIs", "requirements": []string{"Go"}, "jobType": "remote", "status": "active",
				"pricingType": "hourly", "compensation": map[string]any{"hourly": map[string]any{"hourlyRate": 45}}},
			"def456": {"_id": "def456", "title": "Designer", "description": "UI", "requirements": "Figma", "jobType": "hybrid", "status": "paused"},
		},
		statuses: map[string]string{"app1": "applied", "app2": "hired"},
		profile:  map[string]any{"_id": "u1", "name": "Acme HR", "email": "hr@acme.test", "profile": map[string]any{"companyName": "Acme"}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret" || body["role"] != "employer" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": backendToken, "user": map[string]any{"_id": "u1", "name": "Acme HR", "email": body["email"]}})
	})
	mux.HandleFunc("POST /api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] == "taken@example.com" {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "User already exists"})
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"message": "registered"})
	})
	mux.HandleFunc("GET /api/auth/profile", b.authed(func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		writeJSON(w, http.StatusOK, b.profile)
	}))
	mux.HandleFunc("PUT /api/auth/profile", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		body["_id"] = "u1"
		body["email"] = "hr@acme.test"
		b.profile = body
		writeJSON(w, http.StatusOK, body)
	}))
	mux.HandleFunc("GET /api/jobs/my", b.authed(func(w http.ResponseWriter, _ *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := make([]map[string]any, 0, len(b.jobs))
		for _, id := range []string{"abc123", "def456", "new1"} {
			if j, ok := b.jobs[id]; ok {
				list = append(list, j)
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": len(list), "data": list})
	}))
	mux.HandleFunc("GET /api/jobs/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.jobGetFailures > 0 {
			b.jobGetFailures--
			writeJSON(w, http.StatusInternalServerError, map[string]any{"message": "Database unavailable"})
			return
		}
		j, ok := b.jobs[r.PathValue("id")]
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]any{"message": "Job not found"})
			return
		}
		writeJSON(w, http.StatusOK, j)
	}))
	mux.HandleFunc("POST /api/jobs", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.created = append(b.created, body)
		job := map[string]any{"_id": "new1"}
		for k, v := range body {
			job[k] = v
		}
		b.jobs["new1"] = job
		writeJSON(w, http.StatusCreated, map[string]any{"job": job})
	}))
	mux.HandleFunc("PUT /api/jobs/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		body["_id"] = r.PathValue("id")
		b.jobs[r.PathValue("id")] = body
		writeJSON(w, http.StatusOK, body)
	}))
	mux.HandleFunc("DELETE /api/jobs/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.deleted = append(b.deleted, r.PathValue("id"))
		delete(b.jobs, r.PathValue("id"))
		writeJSON(w, http.StatusOK, map[string]any{"message": "deleted"})
	}))
	mux.HandleFunc("GET /api/applications/job/{id}", b.authed(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if r.PathValue("id") != "abc123" {
			writeJSON(w, http.StatusOK, []any{})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"data": []map[string]any{
			{"_id": "app1", "job": "abc123", "applicant": map[string]any{"_id": "c1", "name": "Ada", "email": "ada@example.com"}, "status": b.statuses["app1"]},
			{"_id": "app2", "job": "abc123", "applicant": map[string]any{"_id": "c2", "name": "Linus", "email": "linus@example.com"}, "status": b.statuses["app2"]},
		}})
	}))
	mux.HandleFunc("PUT /api/applications/{id}/status", b.authed(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		b.mu.Lock()
		defer b.mu.Unlock()
		b.statuses[r.PathValue("id")] = body["status"]
		writeJSON(w, http.StatusOK, map[string]any{"message": "updated"})
	}))
	mux.HandleFunc("GET /api/categories/parents", b.authed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]any{{"_id": "eng", "name": "Engineering"}})
	}))
	mux.HandleFunc("GET /api/categories/{id}/subcategories", b.authed(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "eng" {
			writeJSON(w, http.StatusOK, []map[string]any{})
			return
		}
		writeJSON(w, http.StatusOK, []map[string]any{{"_id": "backend", "name": "Backend", "parentId": "eng"}})
	}))

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+backendToken {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"message": "Token is not valid"})
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// setup points the console at b with a fresh credentials file, logged in
// with token when it is not empty. It returns the credentials path.
func setup(t *testing.T, b *backend, token string) string {
	t.Helper()
	for _, key := range []string{"JOBLIFY_TIMEOUT_SECONDS", "JOBLIFY_ALLOWED_ORIGINS", "JOBLIFY_VERBOSE", "PORT", "JOBLIFY_JWT_SECRET"} {
		t.Setenv(key, "")
	}

	tokenFile := filepath.Join(t.TempDir(), "credentials.json")
	t.Setenv("JOBLIFY_TOKEN_FILE", tokenFile)
	t.Setenv("JOBLIFY_API_URL", b.server.URL+"/api")

	if token != "" {
		data, err := json.Marshal(map[string]string{"token": token})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(tokenFile, data, 0o600))
	}
	return tokenFile
}

// resetFlags returns every command flag to its unset state between runs.
func resetFlags() {
	configPath, apiURL, verbose, assumeYes = "", "", false, false
	loginEmail, loginPassword = "", ""
	signupName, signupEmail, signupPassword, signupCompany, signupWebsite, signupBio = "", "", "", "", "", ""
	jobSets, jobRequirements, jobSkills, listAll = nil, nil, nil, false
	profileName, profileCompany, profileWebsite, profileBio = "", "", "", ""
	servePort = 0

	var walk func(c *cobra.Command)
	walk = func(c *cobra.Command) {
		unset := func(f *pflag.Flag) { f.Changed = false }
		c.Flags().VisitAll(unset)
		c.PersistentFlags().VisitAll(unset)
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

// runCLI executes the root command with args and stdin, returning what it
// printed.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}
