package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/internal/repository/postgres"
	"github.com/premiumcalc/backend/internal/service"
)

type stubPredictor struct {
	annual func(domain.FeatureVector) float64
	err    error
}

func (p stubPredictor) Predict(ctx context.Context, v domain.FeatureVector) (float64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.annual(v), nil
}

func (p stubPredictor) Name() string { return "stub" }

func flat1200(v domain.FeatureVector) float64 {
	return 1200 + 20000*v[domain.FeatureSmoker]
}

func newTestApp(model domain.Predictor) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	registry := prometheus.NewRegistry()
	quotes := service.NewQuoteService(model, postgres.NewMockRepository(), service.NewMetrics(registry), logger)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	SetupRoutes(app, NewHandler(quotes, logger), registry)
	return app
}

const quoteJSON = `{
	"client_name": "Asha",
	"age": 30,
	"gender": "Male",
	"bmi": 25,
	"children": 2,
	"smoker": "No",
	"region": "Northeast"
}`

func formBody() string {
	v := url.Values{}
	v.Set("client_name", "Asha")
	v.Set("age", "30")
	v.Set("gender", "Male")
	v.Set("bmi", "25.5")
	v.Set("children", "2")
	v.Set("smoker", "No")
	v.Set("region", "Northeast")
	return v.Encode()
}

func TestCreateQuote_OK(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(quoteJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Success bool         `json:"success"`
		Data    domain.Quote `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Equal(t, domain.FeatureVector{30, 1, 25, 2, 0, 2}, body.Data.Features)
	assert.Equal(t, 100.0, body.Data.USD.Monthly)
	assert.Equal(t, 8300.0, body.Data.INR.Monthly)
	assert.Equal(t, 21200.0, body.Data.Risk.Smoker)
	assert.Len(t, body.Data.Charts, 2)
}

func TestCreateQuote_InvalidRegion(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	payload := strings.Replace(quoteJSON, "Northeast", "Midwest", 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "region")
}

func TestCreateQuote_BadJSON(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(`{invalid-json}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateQuote_PredictionFailure(t *testing.T) {
	app := newTestApp(stubPredictor{err: fmt.Errorf("%w: model raised", domain.ErrPredictionFailure)})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(quoteJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestQuoteReport_ReturnsPDFAttachment(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/report", strings.NewReader(quoteJSON))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Asha_insurance_report.pdf")

	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))
	assert.Contains(t, string(pdf), "Client Name: Asha")
}

func TestIndex_RendersForm(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Medical Insurance Price Predictor")
	assert.Contains(t, string(body), `name="region"`)
	assert.NotContains(t, string(body), "Predicted Insurance Premium")
}

func TestSubmitForm_RendersResults(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(formBody()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "Predicted Insurance Premium")
	assert.Contains(t, page, "$1200.00")
	assert.Contains(t, page, "$100.00")
	assert.Contains(t, page, "Smoker vs Non-Smoker Annual Premium")
	assert.Contains(t, page, "Smoker Surcharge:</strong> $20000.00")
	assert.Contains(t, page, "Smoker Status / Premium ($)")
	assert.Contains(t, page, "Download Report as PDF")
	assert.NotContains(t, page, "negative premium")
}

func TestSubmitForm_InvalidAgeShowsError(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	form := strings.Replace(formBody(), "age=30", "age=99", 1)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "must be at most 80")
}

func TestSubmitForm_NegativePremiumWarning(t *testing.T) {
	app := newTestApp(stubPredictor{annual: func(domain.FeatureVector) float64 { return -500 }})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(formBody()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "negative premium")
}

func TestSubmitForm_NegativeRiskComparisonWarning(t *testing.T) {
	app := newTestApp(stubPredictor{annual: func(v domain.FeatureVector) float64 {
		return -441.78 + 23823.68*v[domain.FeatureSmoker]
	}})

	form := strings.Replace(formBody(), "smoker=No", "smoker=Yes", 1)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	page := string(body)
	assert.Contains(t, page, "negative premium in the smoker risk comparison")
	assert.NotContains(t, page, "negative premium for this profile")
}

func TestQuoteReport_NameWithPathSeparator(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	payload := strings.Replace(quoteJSON, `"Asha"`, `"A/B"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/report", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="A_B_insurance_report.pdf"`)
}

func TestQuoteReport_AccentedNameMatchesFilename(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	payload := strings.Replace(quoteJSON, `"Asha"`, `"Śarma"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/report", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), `filename="Sarma_insurance_report.pdf"`)
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(pdf), "Client Name: Sarma")
}

func TestQuoteReport_UnrenderableNameIsBadRequest(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	payload := strings.Replace(quoteJSON, `"Asha"`, `"张伟"`, 1)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes/report", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDownloadReport_Form(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(formBody()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "Asha_insurance_report.pdf")
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "stub", body["model"])
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(stubPredictor{annual: flat1200})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/quotes", strings.NewReader(quoteJSON))
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `premium_quotes_total{outcome="ok"} 1`)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusBadRequest, statusFor(domain.NewValidationError("age", "too old", 99)))
	assert.Equal(t, fiber.StatusBadGateway, statusFor(fmt.Errorf("x: %w", domain.ErrPredictionFailure)))
	assert.Equal(t, fiber.StatusInternalServerError, statusFor(fmt.Errorf("boom")))
}
