package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/pkg/utils"
)

// bridgeRequest is the body sent to the remote model service
type bridgeRequest struct {
	Features []float64 `json:"features"`
}

// bridgeResponse is the body returned by the remote model service
type bridgeResponse struct {
	Premium float64 `json:"premium"`
	Model   string  `json:"model,omitempty"`
}

// statusError is a non-200 reply from the model service
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("model service returned status %d", e.code)
}

// breakerSuccess decides which errors leave the breaker counts alone:
// a caller giving up, or a 4xx for a request the service rejected.
func breakerSuccess(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return true
	}
	var se *statusError
	return errors.As(err, &se) && se.code >= 400 && se.code < 500
}

// MLBridge handles communication with a remote model service
type MLBridge struct {
	serviceURL string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	log        *logrus.Logger
}

// NewMLBridge creates a new ML bridge
func NewMLBridge(serviceURL string, timeout time.Duration, logger *logrus.Logger) *MLBridge {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	b := &MLBridge{
		serviceURL: serviceURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}

	b.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "ml-bridge",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: breakerSuccess,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("circuit breaker state changed")
		},
	})

	return b
}

// Name identifies the remote model
func (b *MLBridge) Name() string {
	return "remote:" + b.serviceURL
}

// Predict calls the remote model service. Failures are returned, never replaced by a fallback value.
func (b *MLBridge) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	result, err := b.breaker.Execute(func() (interface{}, error) {
		return b.predict(ctx, features)
	})
	if err != nil {
		return 0, fmt.Errorf("ml_bridge: %w: %v", domain.ErrPredictionFailure, err)
	}
	return result.(float64), nil
}

func (b *MLBridge) predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	// Prepare request body
	body, err := json.Marshal(bridgeRequest{Features: features[:]})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request
	url := fmt.Sprintf("%s/predict", b.serviceURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	// Execute request
	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &statusError{code: resp.StatusCode}
	}

	// Parse response
	var prediction bridgeResponse
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return 0, fmt.Errorf("failed to decode response: %w", err)
	}
	if !utils.IsFinite(prediction.Premium) {
		return 0, fmt.Errorf("model service returned a non-finite premium")
	}

	return prediction.Premium, nil
}

// Health checks ML service connectivity
func (b *MLBridge) Health(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", b.serviceURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("ml_bridge: failed to create health request: %w", err)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ml_bridge: health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ml_bridge: health check returned status %d", resp.StatusCode)
	}

	return nil
}
