package service

import (
	"github.com/premiumcalc/backend/internal/domain"
)

// PredictionLogRepository is re-exported from domain for convenience
type PredictionLogRepository = domain.PredictionLogRepository
