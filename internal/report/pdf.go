// Package report renders a quote as a one-page PDF.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/premiumcalc/backend/internal/domain"
)

// ContentType of generated reports
const ContentType = "application/pdf"

// page geometry in points, Letter portrait
const (
	pageHeight  = 792.0
	leftMargin  = 50.0
	indentLeft  = 70.0
	titleLeft   = 200.0
	lineSpacing = 20.0
)

// pathSeparators would be cut by the download's base-name handling
var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// Filename returns the download name for a client's report
func Filename(clientName string) string {
	return fmt.Sprintf("%s_insurance_report.pdf", pathSeparators.Replace(clientName))
}

// Generate renders the quote and returns the PDF bytes with the download filename.
// The content stream is left uncompressed.
func Generate(q domain.Quote) ([]byte, string, error) {
	name, err := domain.PrintableName(q.Profile.ClientName)
	if err != nil {
		return nil, "", fmt.Errorf("report: %w", err)
	}

	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(false)
	pdf.SetTitle("Insurance Premium Report", false)
	pdf.SetCreator("premiumcalc", false)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// reportlab-style coordinates: y counts up from the bottom of the page
	draw := func(x, y float64, text string) {
		pdf.Text(x, pageHeight-y, tr(text))
	}

	pdf.SetFont("Helvetica", "B", 18)
	draw(titleLeft, 750, "Insurance Premium Report")

	pdf.SetFont("Helvetica", "", 12)
	y := 700.0
	for _, line := range profileLines(name, q.Profile) {
		draw(leftMargin, y, line)
		y -= lineSpacing
	}

	y = 540
	for _, line := range breakdownLines(q.USD, q.INR) {
		draw(leftMargin, y, line)
		y -= lineSpacing
	}

	draw(leftMargin, 440, "Smoker Risk Factor Comparison:")
	draw(indentLeft, 420, "Non-Smoker: "+usd(q.Risk.NonSmoker))
	draw(indentLeft, 400, "Smoker: "+usd(q.Risk.Smoker))
	draw(indentLeft, 380, "Smoker Surcharge: "+usd(q.Risk.Difference()))

	pdf.SetFont("Helvetica", "I", 10)
	y = 340
	for _, note := range anomalyNotes(q) {
		draw(leftMargin, y, note)
		y -= 15
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("report: failed to render pdf: %w", err)
	}
	return buf.Bytes(), Filename(name), nil
}

func anomalyNotes(q domain.Quote) []string {
	var notes []string
	if q.HasAnomaly(domain.AnomalyNegativePremium) {
		notes = append(notes, "Note: the model predicted a negative premium for this profile.")
	}
	if q.HasAnomaly(domain.AnomalyNegativeRiskPremium) {
		notes = append(notes, "Note: the model predicted a negative premium in the smoker risk comparison.")
	}
	return notes
}

func profileLines(name string, p domain.ClientProfile) []string {
	return []string{
		"Client Name: " + name,
		"Age: " + strconv.Itoa(p.Age),
		"Gender: " + p.Gender,
		"Smoker: " + p.Smoker,
		"Region: " + p.Region,
		"BMI: " + strconv.FormatFloat(p.BMI, 'f', -1, 64),
		"Children: " + strconv.Itoa(p.Children),
	}
}

func breakdownLines(u, i domain.PremiumBreakdown) []string {
	return []string{
		fmt.Sprintf("Predicted Annual Premium: %s ~ %s", usd(u.Annual), inr(i.Annual)),
		fmt.Sprintf("Half-Yearly: %s ~ %s", usd(u.HalfYearly), inr(i.HalfYearly)),
		fmt.Sprintf("Quarterly: %s ~ %s", usd(u.Quarterly), inr(i.Quarterly)),
		fmt.Sprintf("Monthly: %s ~ %s", usd(u.Monthly), inr(i.Monthly)),
	}
}

func usd(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

func inr(v float64) string {
	return fmt.Sprintf("INR %.2f", v)
}
