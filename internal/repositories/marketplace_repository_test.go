// file: internal/repositories/marketplace_repository_test.go
package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var rewardTestColumns = []string{
	"id", "partner_name", "partner_logo", "title", "description", "category",
	"point_cost", "level_requirement", "original_value", "discount_percentage",
	"terms_conditions", "expiry_date", "stock_available", "is_active", "created_at",
}

func rewardRow(pointCost, levelRequirement, stock int) *sqlmock.Rows {
	return sqlmock.NewRows(rewardTestColumns).AddRow(
		int64(3), "GreenGrocer", nil, "10% off groceries", "Discount voucher", "food",
		pointCost, levelRequirement, nil, 10, nil, nil, stock, true, time.Now(),
	)
}

func TestMarketplaceRepository_Redeem(t *testing.T) {
	expiresAt := time.Date(2025, 4, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		mockFn  func(sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "debits points and decrements stock atomically",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 2, 4))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}).
						AddRow(1200, 3))
				mock.ExpectQuery("INSERT INTO user_reward_redemptions").
					WithArgs(int64(7), int64(3), 500, "A1B2C3D4", expiresAt).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow(int64(11), time.Now()))
				mock.ExpectExec("UPDATE user_rewards").
					WithArgs(int64(7), 500).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "aborts when points are insufficient",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 2, 4))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}).
						AddRow(120, 3))
				mock.ExpectRollback()
			},
			wantErr: ErrInsufficientPoints,
		},
		{
			name: "aborts when level requirement is not met",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 5, 4))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}).
						AddRow(1200, 3))
				mock.ExpectRollback()
			},
			wantErr: ErrLevelTooLow,
		},
		{
			name: "aborts when the locked row shows no stock",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 2, 0))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}).
						AddRow(1200, 3))
				mock.ExpectRollback()
			},
			wantErr: ErrOutOfStock,
		},
		{
			name: "rolls back everything when the stock guard hits zero rows",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 2, 1))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}).
						AddRow(1200, 3))
				mock.ExpectQuery("INSERT INTO user_reward_redemptions").
					WithArgs(int64(7), int64(3), 500, "A1B2C3D4", expiresAt).
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).
						AddRow(int64(11), time.Now()))
				mock.ExpectExec("UPDATE user_rewards").
					WithArgs(int64(7), 500).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("UPDATE marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectRollback()
			},
			wantErr: ErrOutOfStock,
		},
		{
			name: "reports unknown or inactive rewards as not found",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(sqlmock.NewRows(rewardTestColumns))
				mock.ExpectRollback()
			},
			wantErr: ErrRewardNotFound,
		},
		{
			name: "reports missing ledger before any write",
			mockFn: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery("FROM marketplace_rewards").
					WithArgs(int64(3)).
					WillReturnRows(rewardRow(500, 2, 4))
				mock.ExpectQuery("FROM user_rewards").
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"total_points", "current_level"}))
				mock.ExpectRollback()
			},
			wantErr: ErrLedgerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			manager, mock := newMockManager(t)
			tt.mockFn(mock)

			repo := NewMarketplaceRepository(manager, zap.NewNop())
			redemption, reward, err := repo.Redeem(context.Background(), 7, 3, "A1B2C3D4", expiresAt)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, redemption)
				assert.Nil(t, reward)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(11), redemption.ID)
				assert.Equal(t, 500, redemption.PointsSpent)
				assert.Equal(t, "A1B2C3D4", redemption.RedemptionCode)
				assert.Equal(t, expiresAt, redemption.ExpiresAt)
				assert.Equal(t, "10% off groceries", reward.Title)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMarketplaceRepository_GetByID_Missing(t *testing.T) {
	manager, mock := newMockManager(t)

	mock.ExpectQuery("FROM marketplace_rewards").
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(rewardTestColumns))

	repo := NewMarketplaceRepository(manager, zap.NewNop())
	reward, err := repo.GetByID(context.Background(), 404)

	require.NoError(t, err)
	assert.Nil(t, reward)
	assert.NoError(t, mock.ExpectationsWereMet())
}
