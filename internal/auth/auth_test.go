package auth

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestSession_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "credentials.json")

	s, err := LoadSession(path)
	require.NoError(t, err)
	assert.False(t, s.IsAuthenticated())

	require.NoError(t, s.Save("  tok-123  "))
	assert.Equal(t, "tok-123", s.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reloaded, err := LoadSession(path)
	require.NoError(t, err)
	assert.True(t, reloaded.IsAuthenticated())
	assert.Equal(t, "tok-123", reloaded.Token())

	require.NoError(t, reloaded.Clear())
	assert.False(t, reloaded.IsAuthenticated())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	assert.NoError(t, reloaded.Clear())
}

func TestSession_SaveRejectsEmpty(t *testing.T) {
	s := NewSession("")
	assert.Error(t, s.Save("   "))
}

func TestLoadSession_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := LoadSession(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse credentials file")
}

func TestDecodeIdentity(t *testing.T) {
	tests := []struct {
		name     string
		claims   jwt.MapClaims
		wantID   string
		wantRole string
	}{
		{
			name:     "nested user",
			claims:   jwt.MapClaims{"user": map[string]any{"id": "u-1", "role": "employer"}},
			wantID:   "u-1",
			wantRole: "employer",
		},
		{
			name:   "top level id",
			claims: jwt.MapClaims{"id": "u-2"},
			wantID: "u-2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := DecodeIdentity(signToken(t, tt.claims), nil)
			require.True(t, ok)
			assert.Equal(t, tt.wantID, id.UserID)
			assert.Equal(t, tt.wantRole, id.Role)
		})
	}
}

func TestDecodeIdentity_MalformedIsNoIdentity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	id, ok := DecodeIdentity("not.a.token", logger)
	assert.False(t, ok)
	assert.Nil(t, id)
	assert.Contains(t, buf.String(), "failed to decode auth token")

	_, ok = DecodeIdentity("", logger)
	assert.False(t, ok)

	_, ok = DecodeIdentity(signToken(t, jwt.MapClaims{"role": "employer"}), logger)
	assert.False(t, ok)
}

func TestVerifyIdentity(t *testing.T) {
	valid := signToken(t, jwt.MapClaims{"user": map[string]any{"id": "u1", "role": "employer"}, "exp": time.Now().Add(time.Hour).Unix()})
	id, err := VerifyIdentity(valid, "test-secret", 0)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "employer", id.Role)

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr string
	}{
		{name: "empty", token: "", secret: "test-secret", wantErr: "token string is empty"},
		{name: "wrong secret", token: valid, secret: "other-secret", wantErr: "invalid token signature"},
		{name: "expired", token: signToken(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(-time.Hour).Unix()}), secret: "test-secret", wantErr: "token expired"},
		{name: "malformed", token: "not.a.token", secret: "test-secret", wantErr: "malformed token"},
		{name: "no user", token: signToken(t, jwt.MapClaims{"role": "employer"}), secret: "test-secret", wantErr: "no user id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := VerifyIdentity(tt.token, tt.secret, 0)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestVerifyIdentity_Leeway(t *testing.T) {
	token := signToken(t, jwt.MapClaims{"id": "u1", "exp": time.Now().Add(-10 * time.Second).Unix()})
	id, err := VerifyIdentity(token, "test-secret", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
}
