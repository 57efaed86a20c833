package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS builds the permissive cross-origin policy the browser clients rely
// on. allowedOrigins is a comma-separated list; empty means every origin.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	origins := []string{"*"}
	if allowedOrigins != "" {
		origins = origins[:0]
		for _, origin := range strings.Split(allowedOrigins, ",") {
			origins = append(origins, strings.TrimSpace(origin))
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}
