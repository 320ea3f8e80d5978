// file: internal/middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"go.uber.org/zap"
)

// DeviceToken resolves the bearer token to a user ID and stores it on the
// request context. Requests without a token pass through unauthenticated;
// handlers that need a user enforce it via RequireUser.
func DeviceToken(tokens services.TokenService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				logger.Debug("Rejected device token",
					zap.String("request_id", contextutils.GetRequestID(r.Context())),
					zap.Error(err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := contextutils.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that did not present a valid device token
func RequireUser(builder *response.Builder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contextutils.GetUserID(r.Context()) == 0 {
				builder.Error(w, r, services.NewUnauthorizedError("device token required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
