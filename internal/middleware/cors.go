package middleware

import (
	"net/http"
	"slices"
	"strings"

	"docpress/internal/config"
)

// CORS returns middleware applying the configured cross-origin policy.
// Preflight requests are answered directly.
func CORS(cfg *config.CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(cfg.Origins) > 0 {
				origin := r.Header.Get("Origin")
				if slices.Contains(cfg.Origins, origin) {
					w.Header().Set("Access-Control-Allow-Origin", origin)
				}
			}

			if len(cfg.Methods) > 0 {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cfg.Methods, ", "))
			}

			if len(cfg.Headers) > 0 {
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cfg.Headers, ", "))
			}

			if cfg.Credentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
