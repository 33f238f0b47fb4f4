package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAuthService(t *testing.T) *AuthService {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService("test-secret", "admin", string(hash))
}

func TestIssueAndParseJWT(t *testing.T) {
	a := testAuthService(t)
	tok, err := a.IssueJWT("user-1", "instructor")
	require.NoError(t, err)

	claims, err := a.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "instructor", claims.Role)
}

func TestParseRejectsForeignToken(t *testing.T) {
	a := testAuthService(t)
	other := NewAuthService("different-secret", "admin", "")
	tok, err := other.IssueJWT("user-1", "instructor")
	require.NoError(t, err)

	_, err = a.Parse(tok)
	assert.Error(t, err)
}

func TestLoginHandlerAdminBcrypt(t *testing.T) {
	a := testAuthService(t)
	h := LoginHandler(a)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"username":"admin","password":"admin-pass"}`)))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h(rec, httptest.NewRequest("POST", "/auth/login",
		strings.NewReader(`{"username":"admin","password":"wrong"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddlewareAndRoles(t *testing.T) {
	a := testAuthService(t)

	var sawRole string
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c := ClaimsFrom(r.Context()); c != nil {
			sawRole = c.Role
		}
		w.WriteHeader(http.StatusOK)
	})
	protected := JWTMiddleware(a)(RequireRole("instructor", "admin")(final))

	// No token.
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest("POST", "/api/sessions/s1/score", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Trainee token cannot trigger scoring.
	tok, err := a.IssueJWT("user-1", "trainee")
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/sessions/s1/score", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Instructor token passes with claims in context.
	tok, err = a.IssueJWT("inst-1", "instructor")
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/api/sessions/s1/score", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "instructor", sawRole)
}
