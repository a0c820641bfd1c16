package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/frozen33/inventory/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// OwnerIDKey is the context key for the authenticated owner ID.
	OwnerIDKey contextKey = "owner_id"
	// OwnerNameKey is the context key for the owner's display name.
	OwnerNameKey contextKey = "owner_name"
)

// GetOwnerID extracts the owner ID from the context.
// Returns empty string if not found.
func GetOwnerID(ctx context.Context) string {
	ownerID, _ := ctx.Value(OwnerIDKey).(string)
	return ownerID
}

// GetOwnerName extracts the owner's display name from the context.
func GetOwnerName(ctx context.Context) string {
	name, _ := ctx.Value(OwnerNameKey).(string)
	return name
}

// WithOwner returns a copy of ctx carrying the given owner identity.
// Tests and non-HTTP hosts use it in place of RequireOwner.
func WithOwner(ctx context.Context, ownerID, name string) context.Context {
	ctx = context.WithValue(ctx, OwnerIDKey, ownerID)
	return context.WithValue(ctx, OwnerNameKey, name)
}

// RequireOwner validates the Bearer token on every request and puts the
// owner ID and display name into the request context. Requests without a
// valid token are rejected with 401.
func RequireOwner(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, auth.ErrMissingToken)
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w, auth.ErrInvalidToken)
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				unauthorized(w, err)
				return
			}

			ctx := WithOwner(r.Context(), claims.OwnerID, claims.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
