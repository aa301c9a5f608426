package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/avenn/stayfinder-be/internal/policy"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	token, err := svc.GenerateToken(policy.Actor{ID: "u1", IsAdmin: true})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.True(t, claims.IsAdmin)
	require.NotNil(t, claims.ExpiresAt)
}

func TestValidateTokenRejections(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	t.Run("expired", func(t *testing.T) {
		expired := NewService("test-secret", -time.Minute)
		token, err := expired.GenerateToken(policy.Actor{ID: "u1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewService("other-secret", time.Hour)
		token, err := other.GenerateToken(policy.Actor{ID: "u1"})
		require.NoError(t, err)

		_, err = svc.ValidateToken(token)
		require.Error(t, err)
	})

	t.Run("non HMAC signing method", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u1"})
		signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		require.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not.a.token")
		require.Error(t, err)
	})
}

func TestRequireAuth(t *testing.T) {
	svc := NewService("test-secret", time.Hour)

	var gotActor policy.Actor
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := svc.RequireAuth(next)

	t.Run("missing header", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.JSONEq(t, `{"error":"missing or malformed authorization header"}`, rec.Body.String())
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		token, err := svc.GenerateToken(policy.Actor{ID: "u1", IsAdmin: false})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "u1", gotActor.ID)
		require.False(t, gotActor.IsAdmin)
	})
}

func TestRequireAdmin(t *testing.T) {
	svc := NewService("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := svc.RequireAuth(svc.RequireAdmin(next))

	t.Run("regular user is rejected", func(t *testing.T) {
		token, err := svc.GenerateToken(policy.Actor{ID: "u1"})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		token, err := svc.GenerateToken(policy.Actor{ID: "admin", IsAdmin: true})
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("without prior auth it rejects", func(t *testing.T) {
		rec := httptest.NewRecorder()
		svc.RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestActorFromContextAnonymous(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	actor := ActorFromContext(req.Context())
	require.True(t, actor.IsAnonymous())
}
