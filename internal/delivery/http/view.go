package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/premiumcalc/backend/internal/domain"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"usd": func(v float64) string { return fmt.Sprintf("$%.2f", v) },
	"inr": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
}).ParseFS(templateFS, "templates/index.html"))

type barView struct {
	Label   string
	Value   float64
	Percent string
	Color   string
}

type chartView struct {
	Title string
	XAxis string
	YAxis string
	Bars  []barView
}

type pageView struct {
	Profile       domain.ClientProfile
	Genders       []string
	SmokerOptions []string
	Regions       []string
	Error         string
	Quote         *domain.Quote
	Negative      bool
	NegativeRisk  bool
	Charts        []chartView
}

func newPageView(profile domain.ClientProfile) pageView {
	return pageView{
		Profile:       profile,
		Genders:       []string{domain.GenderMale, domain.GenderFemale},
		SmokerOptions: []string{domain.SmokerYes, domain.SmokerNo},
		Regions: []string{
			domain.RegionSoutheast, domain.RegionSouthwest,
			domain.RegionNortheast, domain.RegionNorthwest,
		},
	}
}

func (v *pageView) setQuote(q domain.Quote) {
	v.Quote = &q
	v.Profile = q.Profile
	v.Negative = q.HasAnomaly(domain.AnomalyNegativePremium)
	v.NegativeRisk = q.HasAnomaly(domain.AnomalyNegativeRiskPremium)
	v.Charts = make([]chartView, 0, len(q.Charts))
	for _, c := range q.Charts {
		v.Charts = append(v.Charts, toChartView(c))
	}
}

// toChartView scales bars against the largest positive value
func toChartView(c domain.ChartConfig) chartView {
	top := 0.0
	for _, p := range c.Data {
		if p.Value > top {
			top = p.Value
		}
	}

	view := chartView{
		Title: c.Title,
		XAxis: c.XAxis,
		YAxis: c.YAxis,
		Bars:  make([]barView, 0, len(c.Data)),
	}
	for i, p := range c.Data {
		pct := 0.0
		if top > 0 && p.Value > 0 {
			pct = p.Value / top * 100
		}
		color := "#1f77b4"
		if i < len(c.Colors) {
			color = c.Colors[i]
		}
		view.Bars = append(view.Bars, barView{
			Label:   p.Label,
			Value:   p.Value,
			Percent: fmt.Sprintf("%.1f", pct),
			Color:   color,
		})
	}
	return view
}

func renderPage(v pageView) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("http: failed to render page: %w", err)
	}
	return buf.Bytes(), nil
}
