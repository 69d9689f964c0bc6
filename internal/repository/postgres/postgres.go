package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/premiumcalc/backend/internal/domain"
)

const createPredictionLogs = `
	CREATE TABLE IF NOT EXISTS prediction_logs (
		id                 BIGSERIAL PRIMARY KEY,
		quote_id           UUID NOT NULL,
		age                INTEGER NOT NULL,
		gender             TEXT NOT NULL,
		bmi                DOUBLE PRECISION NOT NULL,
		children           INTEGER NOT NULL,
		smoker             TEXT NOT NULL,
		region             TEXT NOT NULL,
		annual_premium     DOUBLE PRECISION NOT NULL,
		non_smoker_premium DOUBLE PRECISION NOT NULL,
		smoker_premium     DOUBLE PRECISION NOT NULL,
		model              TEXT NOT NULL,
		negative           BOOLEAN NOT NULL DEFAULT FALSE,
		created_at         TIMESTAMPTZ NOT NULL
	)
`

// PostgresRepository implements domain.PredictionLogRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Migrate creates the prediction_logs table if it does not exist
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createPredictionLogs); err != nil {
		return fmt.Errorf("postgres: failed to create prediction_logs: %w", err)
	}
	return nil
}

// SavePrediction persists a prediction audit record to PostgreSQL
func (r *PostgresRepository) SavePrediction(ctx context.Context, entry domain.PredictionLog) error {
	query := `
		INSERT INTO prediction_logs (
			quote_id, age, gender, bmi, children, smoker, region,
			annual_premium, non_smoker_premium, smoker_premium, model, negative, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		entry.QuoteID, entry.Age, entry.Gender, entry.BMI, entry.Children, entry.Smoker, entry.Region,
		entry.Annual, entry.NonSmoker, entry.SmokerRisk, entry.Model, entry.Negative, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save prediction log: %w", err)
	}

	return nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
