// file: internal/handlers/api/v1/actions/actions_controller_test.go
package actions

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecotrack/internal/contextutils"
	"ecotrack/internal/models"
	"ecotrack/internal/response"
	"ecotrack/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeActionService struct {
	logAction    func(userID int64, req *services.LogActionRequest) (*models.EcoAction, error)
	listActions  func(userID int64) (*services.ActionListResult, error)
	verifyAction func(actionID int64, req *services.VerifyActionRequest) (*services.VerifyActionResult, error)
}

func (f *fakeActionService) LogAction(_ context.Context, userID int64, req *services.LogActionRequest) (*models.EcoAction, error) {
	return f.logAction(userID, req)
}

func (f *fakeActionService) ListActions(_ context.Context, userID int64) (*services.ActionListResult, error) {
	return f.listActions(userID)
}

func (f *fakeActionService) VerifyAction(_ context.Context, actionID int64, req *services.VerifyActionRequest) (*services.VerifyActionResult, error) {
	return f.verifyAction(actionID, req)
}

func (f *fakeActionService) UploadProof(_ context.Context, _ int64, _ string, _ int64, _ io.Reader) (*services.ProofUploadResult, error) {
	return nil, services.NewServiceUnavailableError("not configured")
}

func newTestRouter(svc services.ActionService) http.Handler {
	logger := zap.NewNop()
	controller := NewController(
		&services.ServiceCollection{ActionService: svc, Logger: logger},
		logger,
		response.NewBuilder(logger),
	)

	r := chi.NewRouter()
	r.Post("/actions", controller.LogAction)
	r.Get("/actions", controller.ListActions)
	r.Post("/actions/{id}/verify", controller.VerifyAction)
	return r
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body []byte) (*httptest.ResponseRecorder, response.APIResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req = req.WithContext(contextutils.WithUserID(req.Context(), 42))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var envelope response.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return rec, envelope
}

func TestLogAction(t *testing.T) {
	svc := &fakeActionService{
		logAction: func(userID int64, req *services.LogActionRequest) (*models.EcoAction, error) {
			return &models.EcoAction{
				ID:                 7,
				UserID:             userID,
				ActionType:         req.ActionType,
				PointsEarned:       25,
				VerificationStatus: models.VerificationAwaitingProof,
			}, nil
		},
	}
	router := newTestRouter(svc)

	rec, envelope := doRequest(t, router, http.MethodPost, "/actions",
		[]byte(`{"actionType":"public_transport"}`))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, envelope.Success)
	require.NotNil(t, envelope.Data)

	data := envelope.Data.(map[string]interface{})
	assert.Equal(t, "public_transport", data["action_type"])
	assert.Equal(t, float64(42), data["user_id"])
}

func TestLogAction_InvalidBody(t *testing.T) {
	router := newTestRouter(&fakeActionService{})

	rec, envelope := doRequest(t, router, http.MethodPost, "/actions", []byte(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Type)
}

func TestListActions(t *testing.T) {
	t.Run("includes today's subset", func(t *testing.T) {
		svc := &fakeActionService{
			listActions: func(userID int64) (*services.ActionListResult, error) {
				return &services.ActionListResult{
					Actions: []*models.EcoAction{
						{ID: 2, UserID: userID, ActionType: "recycling"},
						{ID: 1, UserID: userID, ActionType: "public_transport"},
					},
					TodayActions: []*models.EcoAction{
						{ID: 2, UserID: userID, ActionType: "recycling"},
					},
				}, nil
			},
		}
		router := newTestRouter(svc)

		rec, envelope := doRequest(t, router, http.MethodGet, "/actions", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, envelope.Data)

		data := envelope.Data.(map[string]interface{})
		assert.Len(t, data["actions"], 2)
		assert.Len(t, data["todayActions"], 1)
	})

	t.Run("empty history yields arrays", func(t *testing.T) {
		svc := &fakeActionService{
			listActions: func(int64) (*services.ActionListResult, error) {
				return &services.ActionListResult{
					Actions:      []*models.EcoAction{},
					TodayActions: []*models.EcoAction{},
				}, nil
			},
		}
		router := newTestRouter(svc)

		rec, _ := doRequest(t, router, http.MethodGet, "/actions", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"actions":[]`)
		assert.Contains(t, rec.Body.String(), `"todayActions":[]`)
	})
}

func TestVerifyAction(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		verify     func(actionID int64, req *services.VerifyActionRequest) (*services.VerifyActionResult, error)
		wantStatus int
		wantType   string
	}{
		{
			name: "verified action returns ledger",
			path: "/actions/7/verify",
			body: `{"status":"verified"}`,
			verify: func(actionID int64, req *services.VerifyActionRequest) (*services.VerifyActionResult, error) {
				return &services.VerifyActionResult{
					Action: &models.EcoAction{ID: actionID, VerificationStatus: models.VerificationVerified},
					Ledger: &models.RewardsLedger{UserID: 42, TotalPoints: 25, CurrentLevel: 1},
				}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "non-numeric id",
			path:       "/actions/abc/verify",
			body:       `{"status":"verified"}`,
			wantStatus: http.StatusBadRequest,
			wantType:   "VALIDATION_ERROR",
		},
		{
			name: "already resolved",
			path: "/actions/7/verify",
			body: `{"status":"verified"}`,
			verify: func(int64, *services.VerifyActionRequest) (*services.VerifyActionResult, error) {
				return nil, services.NewConflictError("action already resolved", "ACTION_RESOLVED")
			},
			wantStatus: http.StatusConflict,
			wantType:   "CONFLICT",
		},
		{
			name: "unknown action",
			path: "/actions/999/verify",
			body: `{"status":"verified"}`,
			verify: func(int64, *services.VerifyActionRequest) (*services.VerifyActionResult, error) {
				return nil, services.NewNotFoundError("action not found")
			},
			wantStatus: http.StatusNotFound,
			wantType:   "NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeActionService{verifyAction: tt.verify})

			rec, envelope := doRequest(t, router, http.MethodPost, tt.path, []byte(tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantType != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantType, envelope.Error.Type)
			} else {
				assert.True(t, envelope.Success)
			}
		})
	}
}
