package middleware

import (
	"net/http"

	"github.com/yash6810/Plutus/pkg/utils"
)

// APIKey rejects requests whose x-api-key header does not match the
// configured secret.
func APIKey(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("x-api-key")
			if key == "" {
				w.Header().Set("WWW-Authenticate", "ApiKey")
				utils.RespondError(w, http.StatusUnauthorized, "missing API key, include the x-api-key header")
				return
			}
			if key != secret {
				w.Header().Set("WWW-Authenticate", "ApiKey")
				utils.RespondError(w, http.StatusUnauthorized, "invalid API key")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
