package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avenn/stayfinder-be/internal/policy"
)

// Claims defines the JWT claims structure.
type Claims struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
	jwt.RegisteredClaims
}

type contextKey string

// UserClaimsKey is the context key for authenticated user claims.
const UserClaimsKey = contextKey("userClaims")

const bearerPrefix = "Bearer "

// Service issues and validates access tokens and guards routes.
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService creates a token service signing with the given secret. Tokens
// expire after ttl.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl}
}

// GenerateToken creates a signed JWT carrying the actor's identity and role.
func (s *Service) GenerateToken(actor policy.Actor) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  actor.ID,
		IsAdmin: actor.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken parses and validates a JWT string.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// claims on the request context.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}

		claims, err := s.ValidateToken(strings.TrimPrefix(authHeader, bearerPrefix))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// It must run after RequireAuth.
func (s *Service) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserClaimsKey).(*Claims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
			return
		}
		if !claims.IsAdmin {
			writeError(w, http.StatusForbidden, "admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ActorFromContext returns the acting user derived from the request token.
// Requests that never passed RequireAuth yield the anonymous actor.
func ActorFromContext(ctx context.Context) policy.Actor {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	if !ok {
		return policy.Actor{}
	}
	return policy.Actor{ID: claims.UserID, IsAdmin: claims.IsAdmin}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
