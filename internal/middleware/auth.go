package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/messhub/ledger/internal/api"
	"github.com/messhub/ledger/internal/auth"
)

// TokenVerifier turns a bearer token into a caller identity
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// Authenticate requires a valid bearer token on every /api/ request and
// stores the caller identity in the request context. A nil verifier disables
// verification and every caller gets auth.Trusted.
func Authenticate(verifier TokenVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasPrefix(r.URL.Path, "/api/") {
				next.ServeHTTP(w, r)
				return
			}

			if verifier == nil {
				next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Trusted)))
				return
			}

			raw := extractBearer(r)
			if raw == "" {
				writeUnauthorized(w, "missing or malformed Authorization header")
				return
			}

			id, err := verifier.Verify(raw)
			if err != nil {
				logger.Debug("rejected bearer token", "error", err, "path", r.URL.Path)
				writeUnauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		})
	}
}

func extractBearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="messledger"`)
	api.WriteError(w, http.StatusUnauthorized, api.Error{
		ErrorKind: api.ErrorKindUnauthorized,
		Code:      "unauthorized",
		Message:   message,
	})
}
