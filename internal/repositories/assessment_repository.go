// file: internal/repositories/assessment_repository.go
package repositories

import (
	"context"
	"fmt"
	"time"

	"ecotrack/internal/database"
	"ecotrack/internal/models"

	"go.uber.org/zap"
)

// assessmentRepository implements AssessmentRepository
type assessmentRepository struct {
	*BaseRepository
}

// NewAssessmentRepository creates a new assessment repository
func NewAssessmentRepository(db *database.Manager, logger *zap.Logger) AssessmentRepository {
	return &assessmentRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create stores a computed assessment. Rows are immutable; a newer row
// supersedes the previous one for "current" queries.
func (r *assessmentRepository) Create(ctx context.Context, assessment *models.Assessment) error {
	query := `
		INSERT INTO carbon_assessments (
			user_id, assessment_data,
			monthly_emissions, yearly_emissions,
			transportation_emissions, energy_emissions,
			diet_emissions, shopping_emissions, waste_emissions
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		assessment.UserID, assessment.AssessmentData,
		assessment.MonthlyEmissions, assessment.YearlyEmissions,
		assessment.TransportationEmissions, assessment.EnergyEmissions,
		assessment.DietEmissions, assessment.ShoppingEmissions,
		assessment.WasteEmissions,
	).Scan(&assessment.ID, &assessment.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create assessment: %w", err)
	}

	r.GetLogger().Info("Assessment stored",
		zap.Int64("assessment_id", assessment.ID),
		zap.Int64("user_id", assessment.UserID),
		zap.Float64("yearly_tons", assessment.YearlyEmissions),
	)

	return nil
}

// GetLatest retrieves the most recent assessment for a user joined with the
// ledger snapshot. Returns nil when the user has no assessment.
func (r *assessmentRepository) GetLatest(ctx context.Context, userID int64) (*models.Assessment, error) {
	query := `
		SELECT
			ca.id, ca.user_id, ca.assessment_data,
			ca.monthly_emissions, ca.yearly_emissions,
			ca.transportation_emissions, ca.energy_emissions,
			ca.diet_emissions, ca.shopping_emissions, ca.waste_emissions,
			ca.created_at,
			COALESCE(ur.current_streak, 0),
			COALESCE(ur.total_points, 0),
			COALESCE(ur.current_level, 1)
		FROM carbon_assessments ca
		LEFT JOIN user_rewards ur ON ca.user_id = ur.user_id
		WHERE ca.user_id = $1
		ORDER BY ca.created_at DESC
		LIMIT 1`

	var a models.Assessment
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&a.ID, &a.UserID, &a.AssessmentData,
		&a.MonthlyEmissions, &a.YearlyEmissions,
		&a.TransportationEmissions, &a.EnergyEmissions,
		&a.DietEmissions, &a.ShoppingEmissions, &a.WasteEmissions,
		&a.CreatedAt,
		&a.CurrentStreak, &a.TotalPoints, &a.CurrentLevel,
	)
	if err != nil {
		if r.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest assessment: %w", err)
	}

	return &a, nil
}

// GetTodaySavings sums the CO2 impact of the user's verified actions for
// the given UTC day.
func (r *assessmentRepository) GetTodaySavings(ctx context.Context, userID int64, day time.Time) (float64, error) {
	query := `
		SELECT COALESCE(SUM(co2_impact), 0)
		FROM eco_actions
		WHERE user_id = $1
		  AND verification_status = $2
		  AND created_at >= $3 AND created_at < $4`

	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var savings float64
	err := r.QueryRowContext(ctx, query, userID, models.VerificationVerified, dayStart, dayEnd).Scan(&savings)
	if err != nil {
		return 0, fmt.Errorf("failed to sum today's savings: %w", err)
	}

	return savings, nil
}
