package postgres

import (
	"context"
	"sync/atomic"

	"github.com/premiumcalc/backend/internal/domain"
)

// MockRepository implements domain.PredictionLogRepository for demo mode.
// Entries are counted and dropped.
type MockRepository struct {
	saved atomic.Int64
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SavePrediction is a no-op in mock mode
func (r *MockRepository) SavePrediction(ctx context.Context, entry domain.PredictionLog) error {
	r.saved.Add(1)
	return nil
}

// Saved returns how many entries were received
func (r *MockRepository) Saved() int64 {
	return r.saved.Load()
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
