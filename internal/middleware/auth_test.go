// file: internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthStack(t *testing.T) (services.TokenService, http.Handler, *int64) {
	t.Helper()

	tokens := services.NewTokenService("test-secret-key", "ecotrack", time.Hour)
	logger := zap.NewNop()
	builder := response.NewBuilder(logger)

	var seenUserID int64
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID = contextutils.GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	handler := DeviceToken(tokens, logger)(RequireUser(builder)(inner))
	return tokens, handler, &seenUserID
}

func TestDeviceToken(t *testing.T) {
	tokens, handler, seenUserID := newAuthStack(t)

	token, err := tokens.Mint(42)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID int64
	}{
		{
			name:       "valid token",
			header:     "Bearer " + token,
			wantStatus: http.StatusOK,
			wantUserID: 42,
		},
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     "Bearer not-a-token",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			header:     "Basic " + token,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			*seenUserID = 0
			req := httptest.NewRequest(http.MethodGet, "/actions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, *seenUserID)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
			}
		})
	}
}

func TestDeviceToken_ForeignSignatureRejected(t *testing.T) {
	foreign := services.NewTokenService("other-secret", "ecotrack", time.Hour)
	token, err := foreign.Mint(42)
	require.NoError(t, err)

	_, handler, seenUserID := newAuthStack(t)

	req := httptest.NewRequest(http.MethodGet, "/actions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, int64(0), *seenUserID)
}
