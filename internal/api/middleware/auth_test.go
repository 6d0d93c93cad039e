package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnujNayak108/DHWANI-SLOT-BOOKING/internal/api/middleware"
)

const testSecret = "test-secret"

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func signToken(t *testing.T, secret, subject, email string) string {
	t.Helper()
	claims := &middleware.Claims{
		Email: email,
		Name:  "Test User",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newAuthHandler(isAdmin func(string) bool, captured *middleware.Identity) http.Handler {
	auth := middleware.NewAuth(testSecret, isAdmin, noopLogger{})
	return auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := middleware.GetIdentity(r.Context()); ok {
			*captured = identity
		}
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuth_ValidToken(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(email string) bool { return email == "admin@example.com" }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "user-1", "user@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "user@example.com", identity.Email)
	assert.False(t, identity.IsAdmin)
}

func TestAuth_AdminResolvedByEmail(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(email string) bool { return email == "admin@example.com" }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "admin-1", "admin@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, identity.IsAdmin)
}

func TestAuth_MissingHeader(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(string) bool { return false }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, identity.UserID)
}

func TestAuth_MalformedHeader(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(string) bool { return false }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abcdef")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(string) bool { return false }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "user-1", "user@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	claims := &middleware.Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	var identity middleware.Identity
	handler := newAuthHandler(func(string) bool { return false }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_TokenWithoutSubject(t *testing.T) {
	var identity middleware.Identity
	handler := newAuthHandler(func(string) bool { return false }, &identity)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testSecret, "", "user@example.com"))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
