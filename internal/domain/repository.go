package domain

import (
	"context"
	"time"
)

// PredictionLog is the audit record written for each successful quote
type PredictionLog struct {
	QuoteID    string
	Age        int
	Gender     string
	BMI        float64
	Children   int
	Smoker     string
	Region     string
	Annual     float64
	NonSmoker  float64
	SmokerRisk float64
	Model      string
	Negative   bool
	CreatedAt  time.Time
}

// PredictionLogRepository defines the interface for the prediction audit log.
// The domain defines it so services do not depend on a storage driver.
type PredictionLogRepository interface {
	// SavePrediction persists one audit record
	SavePrediction(ctx context.Context, entry PredictionLog) error

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
