package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vetclinic-booking/config"
	"vetclinic-booking/pkg/jwt"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware(t *testing.T) {
	handler := NewCORSMiddleware().Handle(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/api/bookings", nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("normal request passes through with headers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/branches", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  time.Hour,
		RefreshExpiry: 24 * time.Hour,
	})

	var seenUserID uuid.UUID
	handler := NewAuthMiddleware(jwtService, redisClient).Authenticate(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seenUserID, _ = GetUserIDFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	userID := uuid.New()
	token, tokenID, err := jwtService.GenerateAccessToken(userID, "client@example.com", 1)
	require.NoError(t, err)

	do := func(authHeader string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/bookings/me", nil)
		if authHeader != "" {
			req.Header.Set("Authorization", authHeader)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("").Code)
	})

	t.Run("not a bearer token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Basic abc").Code)
	})

	t.Run("revoked token", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+token).Code)
	})

	t.Run("live token reaches the handler", func(t *testing.T) {
		mr.Set(fmt.Sprintf("access_token:%s:%s", userID, tokenID), "1")

		rec := do("Bearer " + token)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, seenUserID)
	})

	t.Run("refresh token is rejected", func(t *testing.T) {
		refresh, refreshID, err := jwtService.GenerateRefreshToken(userID, "client@example.com", 1)
		require.NoError(t, err)
		mr.Set(fmt.Sprintf("access_token:%s:%s", userID, refreshID), "1")

		assert.Equal(t, http.StatusUnauthorized, do("Bearer "+refresh).Code)
	})
}
