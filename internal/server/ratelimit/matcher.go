package ratelimit

import (
	"net/http"
	"strings"
)

// Matches reports whether a request with method and path falls under r.
// A {name} segment matches any single non-empty path segment.
func (r *Rule) Matches(method, path string) bool {
	ruleMethod, rulePath, ok := strings.Cut(r.Pattern, " ")
	if !ok || ruleMethod != method {
		return false
	}

	want := strings.Split(strings.Trim(rulePath, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}
	return true
}

// Match returns the first rule governing a request, or nil when the default
// budget applies. CORS preflights are never limited.
func Match(method, path string, rules []Rule) *Rule {
	if method == http.MethodOptions {
		return &Rule{Pattern: "OPTIONS " + path}
	}
	for i := range rules {
		if rules[i].Matches(method, path) {
			return &rules[i]
		}
	}
	return nil
}
