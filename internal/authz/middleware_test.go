package authz

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sparkmigrate/advisor-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signedToken(t *testing.T, sub string, roles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   sub,
		"roles": roles,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func TestAuthenticate(t *testing.T) {
	var gotUserID string
	var gotRoles []models.UserRole
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromRequest(r)
		gotRoles, _ = RolesFromRequest(r)
		w.WriteHeader(http.StatusOK)
	})
	handler := Authenticate(testSecret)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, "user-1", []string{"admin"}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", gotUserID)
	assert.Equal(t, []models.UserRole{models.RoleAdmin, models.RoleViewer}, gotRoles)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})
	handler := Authenticate(testSecret)(next)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not.a.token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/strategies", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(models.RoleAdmin)(next)

	viewerReq := httptest.NewRequest(http.MethodPost, "/api/training/runs", nil)
	viewerReq = viewerReq.WithContext(WithIdentity(viewerReq.Context(), "user-1", []models.UserRole{models.RoleViewer}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, viewerReq)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminReq := httptest.NewRequest(http.MethodPost, "/api/training/runs", nil)
	adminReq = adminReq.WithContext(WithIdentity(adminReq.Context(), "user-2", []models.UserRole{models.RoleAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, adminReq)
	assert.Equal(t, http.StatusOK, rec.Code)
}
