package middleware

import (
	"net/http"

	"github.com/andysilva90/flight-fare-optimizer/internal/auth"
	"github.com/andysilva90/flight-fare-optimizer/internal/db/repositories"
)

// AuthMiddleware validates the X-API-Key header against the keys table and
// stores the resolved claims in the request context.
func AuthMiddleware(keysRepo *repositories.KeysRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			apiKey := r.Header.Get("X-API-Key")
			if apiKey == "" {
				http.Error(w, "Unauthorized. Missing API Key", http.StatusUnauthorized)
				return
			}

			keyRes, err := keysRepo.GetStatus(r.Context(), apiKey)
			if err != nil {
				http.Error(w, "Unauthorized. Invalid API Key", http.StatusUnauthorized)
				return
			}

			if !keyRes.Status {
				http.Error(w, "Unauthorized. Inactive API Key", http.StatusUnauthorized)
				return
			}

			claims := &auth.APIKeyClaims{KeyID: keyRes.ApiKey}

			ctx := auth.SetClientClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
