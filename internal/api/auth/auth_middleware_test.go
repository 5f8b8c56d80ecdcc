package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakbaguio/peak-baguio/internal/types"
)

func signTestToken(t *testing.T, cfg jwtTestOverrides) string {
	t.Helper()
	base := testJWTConfig()
	if cfg.issuer == "" {
		cfg.issuer = base.Issuer
	}
	if cfg.audience == "" {
		cfg.audience = base.Audience
	}
	if cfg.expiry == 0 {
		cfg.expiry = time.Hour
	}
	if cfg.role == "" {
		cfg.role = types.RoleUser
	}
	if cfg.secret == "" {
		cfg.secret = base.SecretKey
	}

	now := time.Now()
	claims := types.Claims{
		UserID: uuid.NewString(),
		Role:   cfg.role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.issuer,
			Audience:  jwt.ClaimStrings{cfg.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.expiry)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.secret))
	require.NoError(t, err)
	return signed
}

type jwtTestOverrides struct {
	issuer   string
	audience string
	role     string
	secret   string
	expiry   time.Duration
}

func runAuthenticated(t *testing.T, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	var reachedHandler bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reachedHandler = true
		_, ok := GetUserIDFromContext(r.Context())
		assert.True(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	mw := Authenticate(slog.Default(), testJWTConfig())
	req := httptest.NewRequest(http.MethodGet, "/itineraries", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	return rec, reachedHandler
}

func TestAuthenticate_ValidToken(t *testing.T) {
	rec, reached := runAuthenticated(t, signTestToken(t, jwtTestOverrides{}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	rec, reached := runAuthenticated(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	rec, reached := runAuthenticated(t, signTestToken(t, jwtTestOverrides{expiry: -time.Minute}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticate_WrongSignature(t *testing.T) {
	rec, reached := runAuthenticated(t, signTestToken(t, jwtTestOverrides{secret: "some-other-secret"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticate_WrongIssuer(t *testing.T) {
	rec, reached := runAuthenticated(t, signTestToken(t, jwtTestOverrides{issuer: "someone-else"}))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestRequireRole_BlocksNonAdmins(t *testing.T) {
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	authMW := Authenticate(slog.Default(), testJWTConfig())
	adminMW := RequireRole(slog.Default(), types.RoleAdmin)
	handler := authMW(adminMW(next))

	req := httptest.NewRequest(http.MethodGet, "/admin/reports/usage", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, jwtTestOverrides{role: types.RoleUser}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, reached)

	req = httptest.NewRequest(http.MethodGet, "/admin/reports/usage", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, jwtTestOverrides{role: types.RoleAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
