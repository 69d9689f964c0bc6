package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/premiumcalc/backend/internal/domain"
	"github.com/premiumcalc/backend/internal/report"
	"github.com/premiumcalc/backend/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	quotes *service.QuoteService
	log    *logrus.Logger
}

// NewHandler creates a new handler
func NewHandler(quotes *service.QuoteService, logger *logrus.Logger) *Handler {
	return &Handler{
		quotes: quotes,
		log:    logger,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	ctx := c.UserContext()

	status := fiber.StatusOK
	body := fiber.Map{
		"status":  "ok",
		"service": "premium-predictor",
		"version": "1.0.0",
		"model":   h.quotes.ModelName(),
	}

	if err := h.quotes.ModelHealth(ctx); err != nil {
		status = fiber.StatusServiceUnavailable
		body["status"] = "degraded"
		body["model_error"] = err.Error()
	}
	if err := h.quotes.StorageHealth(ctx); err != nil {
		body["status"] = "degraded"
		body["storage_error"] = err.Error()
	}

	return c.Status(status).JSON(body)
}

// Index renders the empty form
func (h *Handler) Index(c *fiber.Ctx) error {
	return h.page(c, fiber.StatusOK, newPageView(domain.NewDefaultProfile()))
}

// SubmitForm predicts from the HTML form and renders the results page
func (h *Handler) SubmitForm(c *fiber.Ctx) error {
	profile := domain.NewDefaultProfile()
	if err := c.BodyParser(&profile); err != nil {
		view := newPageView(domain.NewDefaultProfile())
		view.Error = "Invalid form submission"
		return h.page(c, fiber.StatusBadRequest, view)
	}

	view := newPageView(profile)
	quote, err := h.quotes.Quote(c.UserContext(), profile)
	if err != nil {
		view.Error = userMessage(err)
		return h.page(c, statusFor(err), view)
	}

	view.setQuote(quote)
	return h.page(c, fiber.StatusOK, view)
}

// DownloadReport predicts from the HTML form and returns the PDF
func (h *Handler) DownloadReport(c *fiber.Ctx) error {
	profile := domain.NewDefaultProfile()
	if err := c.BodyParser(&profile); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid form submission")
	}
	return h.sendReport(c, profile)
}

// CreateQuote returns a quote as JSON
func (h *Handler) CreateQuote(c *fiber.Ctx) error {
	var profile domain.ClientProfile
	if err := c.BodyParser(&profile); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	quote, err := h.quotes.Quote(c.UserContext(), profile)
	if err != nil {
		return fiber.NewError(statusFor(err), userMessage(err))
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    quote,
	})
}

// QuoteReport returns the PDF for a JSON profile
func (h *Handler) QuoteReport(c *fiber.Ctx) error {
	var profile domain.ClientProfile
	if err := c.BodyParser(&profile); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return h.sendReport(c, profile)
}

func (h *Handler) sendReport(c *fiber.Ctx, profile domain.ClientProfile) error {
	quote, err := h.quotes.Quote(c.UserContext(), profile)
	if err != nil {
		return fiber.NewError(statusFor(err), userMessage(err))
	}

	pdf, filename, err := report.Generate(quote)
	if err != nil {
		h.log.WithError(err).WithField("quote_id", quote.ID).Error("report generation failed")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to generate report")
	}
	h.quotes.ReportGenerated()

	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, report.ContentType)
	return c.Send(pdf)
}

func (h *Handler) page(c *fiber.Ctx, status int, view pageView) error {
	body, err := renderPage(view)
	if err != nil {
		h.log.WithError(err).Error("page render failed")
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(body)
}

// statusFor maps the error taxonomy onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrPredictionFailure):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func userMessage(err error) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, domain.ErrPredictionFailure):
		return "Prediction failed, please try again later"
	default:
		return "Internal Server Error"
	}
}
