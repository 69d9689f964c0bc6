package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// QuoteService runs one encode → predict → derive sequence per submission
type QuoteService struct {
	model   domain.Predictor
	repo    domain.PredictionLogRepository
	metrics *Metrics
	log     *logrus.Logger
	now     func() time.Time

	wgBg sync.WaitGroup // tracks background log writes for graceful shutdown
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	model domain.Predictor,
	repo domain.PredictionLogRepository,
	metrics *Metrics,
	logger *logrus.Logger,
) *QuoteService {
	return &QuoteService{
		model:   model,
		repo:    repo,
		metrics: metrics,
		log:     logger,
		now:     time.Now,
	}
}

// ModelName returns the name of the loaded model
func (s *QuoteService) ModelName() string {
	return s.model.Name()
}

// ModelHealth checks the model collaborator when it can report health.
// A model loaded in-process is always healthy.
func (s *QuoteService) ModelHealth(ctx context.Context) error {
	if hc, ok := s.model.(interface{ Health(context.Context) error }); ok {
		return hc.Health(ctx)
	}
	return nil
}

// StorageHealth checks the prediction log repository
func (s *QuoteService) StorageHealth(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// ReportGenerated counts one exported PDF
func (s *QuoteService) ReportGenerated() {
	s.metrics.ReportsGenerated.Inc()
}

// WaitBackground blocks until all background log writes complete
func (s *QuoteService) WaitBackground() {
	s.wgBg.Wait()
}

// Quote predicts the annual premium for a profile and derives everything shown to the user.
// A quote either fully succeeds or returns an error.
func (s *QuoteService) Quote(ctx context.Context, profile domain.ClientProfile) (domain.Quote, error) {
	q, err := s.quote(ctx, profile)
	s.metrics.QuotesTotal.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"age":    profile.Age,
			"region": profile.Region,
		}).WithError(err).Warn("quote failed")
		return domain.Quote{}, err
	}
	return q, nil
}

func (s *QuoteService) quote(ctx context.Context, profile domain.ClientProfile) (domain.Quote, error) {
	if err := profile.Validate(); err != nil {
		return domain.Quote{}, err
	}

	profile, err := Canonicalize(profile)
	if err != nil {
		return domain.Quote{}, err
	}
	if profile.ClientName, err = domain.PrintableName(profile.ClientName); err != nil {
		return domain.Quote{}, err
	}

	features, err := Encode(profile)
	if err != nil {
		return domain.Quote{}, err
	}

	start := s.now()
	annual, err := s.model.Predict(ctx, features)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}
	risk, err := Compare(ctx, s.model, features)
	if err != nil {
		return domain.Quote{}, fmt.Errorf("quote: %w", err)
	}
	s.metrics.PredictionDuration.Observe(s.now().Sub(start).Seconds())

	usd := Rounded(Breakdown(utils.Round2(annual)))
	risk = domain.RiskComparison{
		NonSmoker: utils.Round2(risk.NonSmoker),
		Smoker:    utils.Round2(risk.Smoker),
	}

	q := domain.Quote{
		ID:        uuid.NewString(),
		Profile:   profile,
		Features:  features,
		USD:       usd,
		INR:       INRBreakdown(usd),
		Risk:      risk,
		Charts:    []domain.ChartConfig{BuildBreakdownChart(usd), BuildRiskChart(risk)},
		Model:     s.model.Name(),
		CreatedAt: s.now().UTC(),
	}

	s.flagNegative(&q, annual, risk)

	s.log.WithFields(logrus.Fields{
		"quote_id": q.ID,
		"annual":   usd.Annual,
		"model":    q.Model,
	}).Info("quote computed")

	s.savePredictionLog(q)
	return q, nil
}

// flagNegative reports negative model outputs. Values are never clamped.
func (s *QuoteService) flagNegative(q *domain.Quote, annual float64, risk domain.RiskComparison) {
	if annual < 0 {
		q.Anomalies = append(q.Anomalies, domain.AnomalyNegativePremium)
		s.metrics.NegativePredictions.WithLabelValues("annual").Inc()
		s.log.WithFields(logrus.Fields{
			"quote_id": q.ID,
			"annual":   annual,
			"features": q.Features,
		}).Warn("model predicted a negative annual premium")
	}

	var negative []string
	if risk.NonSmoker < 0 {
		negative = append(negative, "non_smoker")
	}
	if risk.Smoker < 0 {
		negative = append(negative, "smoker")
	}
	if len(negative) == 0 {
		return
	}

	q.Anomalies = append(q.Anomalies, domain.AnomalyNegativeRiskPremium)
	for _, p := range negative {
		s.metrics.NegativePredictions.WithLabelValues(p).Inc()
	}
	s.log.WithFields(logrus.Fields{
		"quote_id":   q.ID,
		"non_smoker": risk.NonSmoker,
		"smoker":     risk.Smoker,
		"features":   q.Features,
	}).Warn("model predicted a negative risk comparison premium")
}

// savePredictionLog writes the audit record without blocking the response
func (s *QuoteService) savePredictionLog(q domain.Quote) {
	entry := domain.PredictionLog{
		QuoteID:    q.ID,
		Age:        q.Profile.Age,
		Gender:     q.Profile.Gender,
		BMI:        q.Profile.BMI,
		Children:   q.Profile.Children,
		Smoker:     q.Profile.Smoker,
		Region:     q.Profile.Region,
		Annual:     q.USD.Annual,
		NonSmoker:  q.Risk.NonSmoker,
		SmokerRisk: q.Risk.Smoker,
		Model:      q.Model,
		Negative:   len(q.Anomalies) > 0,
		CreatedAt:  q.CreatedAt,
	}

	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.SavePrediction(ctx, entry); err != nil {
			s.log.WithError(err).WithField("quote_id", entry.QuoteID).Error("failed to save prediction log")
		}
	}()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, domain.ErrPredictionFailure):
		return "prediction_failure"
	default:
		return "error"
	}
}
