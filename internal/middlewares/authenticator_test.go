package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"api/internal/helpers"
	"api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-secret-key-for-jwt-signing"

func TestAuthenticate(t *testing.T) {
	var gotClaims models.UserClaims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = helpers.GetUserClaims(r.Context())
		w.WriteHeader(200)
	})
	handler := Authenticate(testJWTSecret)(next)

	t.Run("should attach claims for a valid token", func(t *testing.T) {
		token, err := helpers.NewAccessToken(testJWTSecret, 42, "staff@example.org", models.RoleLibrarian)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/stats/catalog", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
		assert.Equal(t, int32(42), gotClaims.UserID)
		assert.Equal(t, models.RoleLibrarian, gotClaims.Role)
	})

	t.Run("should reject a missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/stats/catalog", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, 403, rec.Code)
		assert.Contains(t, rec.Body.String(), "FORBIDDEN")
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		token, err := helpers.NewAccessToken("another-secret", 42, "staff@example.org", models.RoleAdmin)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/v1/stats/catalog", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, 403, rec.Code)
	})

	t.Run("should let the health probe through without a token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, 200, rec.Code)
	})
}
