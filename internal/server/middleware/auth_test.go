package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joblify/employer-console/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator is a test implementation of TokenValidator for unit tests.
type testTokenValidator struct {
	validTokens map[string]*auth.Identity
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{
		validTokens: make(map[string]*auth.Identity),
	}
}

func (v *testTokenValidator) addValidToken(token string, id *auth.Identity) {
	v.validTokens[token] = id
}

func (v *testTokenValidator) ValidateToken(tokenString string) (*auth.Identity, error) {
	id, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return id, nil
}

func serve(t *testing.T, v TokenValidator, req *http.Request) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()
	var seen *http.Request
	handler := AuthMiddleware(v)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r
		w.WriteHeader(http.StatusOK)
	}))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w, seen
}

func TestAuthMiddleware_BearerHeader(t *testing.T) {
	v := newTestTokenValidator()
	v.addValidToken("tok-1", &auth.Identity{UserID: "u1", Role: "employer"})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("Authorization", "bearer tok-1")
	w, seen := serve(t, v, req)

	require.NotNil(t, seen, "handler should be called")
	assert.Equal(t, http.StatusOK, w.Code)

	token, err := GetToken(seen)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	id, ok := GetIdentity(seen)
	require.True(t, ok)
	assert.Equal(t, "u1", id.UserID)
}

func TestAuthMiddleware_Cookie(t *testing.T) {
	v := newTestTokenValidator()
	v.addValidToken("tok-2", nil)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/my-jobs", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "tok-2"})
	w, seen := serve(t, v, req)

	require.NotNil(t, seen)
	assert.Equal(t, http.StatusOK, w.Code)
	token, err := GetToken(seen)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", token)

	_, ok := GetIdentity(seen)
	assert.False(t, ok, "an accepted token need not name the user")
}

func TestAuthMiddleware_RejectsWithLoginRedirect(t *testing.T) {
	v := newTestTokenValidator()
	v.addValidToken("tok-1", &auth.Identity{UserID: "u1"})

	tests := []struct {
		name   string
		header string
		cookie string
	}{
		{name: "no credentials"},
		{name: "unknown token", header: "Bearer nope"},
		{name: "basic auth and no cookie", header: "Basic dXNlcjpwYXNz"},
		{name: "empty cookie", cookie: " "},
		{name: "unknown cookie", cookie: "nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/dashboard/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: TokenCookie, Value: tt.cookie})
			}
			w, seen := serve(t, v, req)

			assert.Nil(t, seen, "handler should not be called")
			assert.Equal(t, http.StatusUnauthorized, w.Code)

			var body UnauthorizedResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "/login", body.Redirect)
		})
	}
}

func TestExtractToken_HeaderWinsOverCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-header")
	req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "from-cookie"})
	assert.Equal(t, "from-header", ExtractToken(req))

	req.Header.Set("Authorization", "Bearer")
	assert.Equal(t, "from-cookie", ExtractToken(req), "malformed header falls back to the cookie")
}

func TestGetToken_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetToken(req)
	assert.Error(t, err)

	req = req.WithContext(WithToken(context.Background(), "abc"))
	token, err := GetToken(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
