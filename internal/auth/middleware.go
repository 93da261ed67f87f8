package auth

import (
	"context"
	"net/http"
	"strings"

	httperrors "github.com/tilereveal/tilereveal/pkg/http/errors"
)

type identityKey struct{}

// Middleware resolves the current user from the Authorization header and
// stores the identity in the request context.
func Middleware(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				httperrors.RespondUnauthorized(w, httperrors.ErrCodeAuthenticationRequired, "missing bearer token")
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				code := httperrors.ErrCodeInvalidToken
				if err == ErrExpiredToken {
					code = httperrors.ErrCodeTokenExpired
				}
				httperrors.RespondUnauthorized(w, code, "platform token rejected")
				return
			}

			next.ServeHTTP(w, r.WithContext(IntoContext(r.Context(), identity)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// WebSocket clients cannot set headers; they pass the token in the query.
	return r.URL.Query().Get("token")
}

// IntoContext stores a resolved identity in ctx.
func IntoContext(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// FromContext returns the identity resolved by Middleware, if any.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(Identity)
	return identity, ok
}
