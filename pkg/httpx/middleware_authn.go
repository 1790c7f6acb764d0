package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/logisticsfuture/identity/pkg/jwtx"
	"github.com/logisticsfuture/identity/pkg/slogx"
)

// AuthnMiddleware verifies a Bearer access token on incoming requests and
// injects the subject and email claims into the request context. The auth
// endpoints themselves do not use it; it is the integration point for
// services that consume the issued access tokens.
func AuthnMiddleware(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "missing bearer token")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := codec.Verify(raw)
			if err != nil {
				writeBearerError(w, "token verification failed")
				log.Warn("access token verify failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = context.WithValue(ctx, CtxKeyUserID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyEmail, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
