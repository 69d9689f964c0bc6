package service

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/premiumcalc/backend/internal/domain"
)

// recordingPredictor returns fn(features) and remembers every call
type recordingPredictor struct {
	mu    sync.Mutex
	fn    func(domain.FeatureVector) float64
	err   error
	calls []domain.FeatureVector
}

func (p *recordingPredictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, features)
	if p.err != nil {
		return 0, p.err
	}
	return p.fn(features), nil
}

func (p *recordingPredictor) Name() string {
	return "recording"
}

// smokerSurcharge is a toy model: 100 per year of age plus 10000 for smokers
func smokerSurcharge(v domain.FeatureVector) float64 {
	return 100*v[domain.FeatureAge] + 10000*v[domain.FeatureSmoker]
}

var errModelRaised = errors.New("model raised")

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
