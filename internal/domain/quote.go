package domain

import (
	"context"
	"time"
)

// FeatureCount is the width of the model input
const FeatureCount = 6

// FeatureNames is the column order the model was trained on
var FeatureNames = [FeatureCount]string{"age", "sex", "bmi", "children", "smoker", "region"}

// Positions inside a FeatureVector
const (
	FeatureAge = iota
	FeatureGender
	FeatureBMI
	FeatureChildren
	FeatureSmoker
	FeatureRegion
)

// FeatureVector is the encoded model input in FeatureNames order
type FeatureVector [FeatureCount]float64

// WithSmoker returns a copy with only the smoker code replaced
func (v FeatureVector) WithSmoker(code float64) FeatureVector {
	v[FeatureSmoker] = code
	return v
}

// Predictor is the trained model collaborator
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
	Name() string
}

// PremiumBreakdown splits an annual premium into shorter periods
type PremiumBreakdown struct {
	Annual     float64 `json:"annual"`
	HalfYearly float64 `json:"half_yearly"`
	Quarterly  float64 `json:"quarterly"`
	Monthly    float64 `json:"monthly"`
}

// RiskComparison holds annual premiums for the same profile as non-smoker and smoker
type RiskComparison struct {
	NonSmoker float64 `json:"non_smoker"`
	Smoker    float64 `json:"smoker"`
}

// Difference is the extra annual cost attributed to smoking
func (r RiskComparison) Difference() float64 {
	return r.Smoker - r.NonSmoker
}

// ChartPoint is one bar
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartConfig is a renderer-independent bar chart
type ChartConfig struct {
	ChartType string       `json:"chart_type"`
	Title     string       `json:"title"`
	XAxis     string       `json:"x_axis,omitempty"`
	YAxis     string       `json:"y_axis"`
	Data      []ChartPoint `json:"data"`
	Colors    []string     `json:"colors"`
}

// Anomaly codes attached to a quote
const (
	AnomalyNegativePremium     = "negative_premium"
	AnomalyNegativeRiskPremium = "negative_risk_premium"
)

// Quote is the full result of one form submission
type Quote struct {
	ID        string           `json:"id"`
	Profile   ClientProfile    `json:"profile"`
	Features  FeatureVector    `json:"features"`
	USD       PremiumBreakdown `json:"usd"`
	INR       PremiumBreakdown `json:"inr"`
	Risk      RiskComparison   `json:"risk_comparison"`
	Charts    []ChartConfig    `json:"charts"`
	Anomalies []string         `json:"anomalies,omitempty"`
	Model     string           `json:"model"`
	CreatedAt time.Time        `json:"created_at"`
}

// HasAnomaly reports whether the given anomaly code was raised
func (q Quote) HasAnomaly(code string) bool {
	for _, a := range q.Anomalies {
		if a == code {
			return true
		}
	}
	return false
}
