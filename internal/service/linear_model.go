package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// modelArtifact is the serialized form of a trained linear regression
type modelArtifact struct {
	Name         string    `json:"name"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

// LinearModel is a trained linear regression loaded from disk.
// It is immutable after load and safe for concurrent use.
type LinearModel struct {
	name         string
	coefficients domain.FeatureVector
	intercept    float64
}

// LoadLinearModel reads a model artifact from path
func LoadLinearModel(path string) (*LinearModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("linear_model: %w: %v", domain.ErrModelUnavailable, err)
	}
	return ParseLinearModel(data)
}

// ParseLinearModel decodes an artifact and checks its column order
func ParseLinearModel(data []byte) (*LinearModel, error) {
	var a modelArtifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("linear_model: %w: decode artifact: %v", domain.ErrModelUnavailable, err)
	}

	if len(a.Features) != domain.FeatureCount || len(a.Coefficients) != domain.FeatureCount {
		return nil, fmt.Errorf("linear_model: %w: expected %d features and coefficients, got %d and %d",
			domain.ErrModelUnavailable, domain.FeatureCount, len(a.Features), len(a.Coefficients))
	}

	m := &LinearModel{name: a.Name, intercept: a.Intercept}
	for i, name := range a.Features {
		if name != domain.FeatureNames[i] {
			return nil, fmt.Errorf("linear_model: %w: column %d is %q, expected %q",
				domain.ErrModelUnavailable, i, name, domain.FeatureNames[i])
		}
		if !utils.IsFinite(a.Coefficients[i]) {
			return nil, fmt.Errorf("linear_model: %w: coefficient %q is not finite", domain.ErrModelUnavailable, name)
		}
		m.coefficients[i] = a.Coefficients[i]
	}
	if !utils.IsFinite(a.Intercept) {
		return nil, fmt.Errorf("linear_model: %w: intercept is not finite", domain.ErrModelUnavailable)
	}

	if m.name == "" {
		m.name = "linear-regression"
	}
	if a.Version != "" {
		m.name += "@" + a.Version
	}
	return m, nil
}

// Name identifies the model in logs and quotes
func (m *LinearModel) Name() string {
	return m.name
}

// Predict returns intercept + coefficients·features
func (m *LinearModel) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("linear_model: %w: %v", domain.ErrPredictionFailure, err)
	}

	premium := m.intercept
	for i, x := range features {
		if !utils.IsFinite(x) {
			return 0, fmt.Errorf("linear_model: %w: feature %q is not finite", domain.ErrPredictionFailure, domain.FeatureNames[i])
		}
		premium += m.coefficients[i] * x
	}

	if !utils.IsFinite(premium) {
		return 0, fmt.Errorf("linear_model: %w: prediction overflowed", domain.ErrPredictionFailure)
	}
	return premium, nil
}
