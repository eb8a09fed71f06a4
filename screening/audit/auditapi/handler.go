package auditapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/audit"
	"github.com/hirelens/hirelens/screening/resume"
)

type AuditHandlers struct {
	calculator *audit.FairnessCalculator
	scanner    *audit.ProtectedScanner
	resumes    resume.Repository
}

func NewAuditHandlers(
	calculator *audit.FairnessCalculator,
	scanner *audit.ProtectedScanner,
	resumes resume.Repository,
) *AuditHandlers {
	return &AuditHandlers{
		calculator: calculator,
		scanner:    scanner,
		resumes:    resumes,
	}
}

func (h *AuditHandlers) RegisterRoutes(app *fiber.App) {
	auditGroup := app.Group("/api/v1/audit")

	auditGroup.Post("/fairness", h.CalculateFairness)
	auditGroup.Post("/scan", h.ScanProtected)
}

// fairnessRequest is one scored, group-labeled candidate batch. Outcomes
// are optional; without them selection_threshold decides who counts as
// selected.
type fairnessRequest struct {
	Scores             []float64 `json:"scores"`
	Groups             []string  `json:"groups"`
	Outcomes           []bool    `json:"outcomes,omitempty"`
	SelectionThreshold float64   `json:"selection_threshold,omitempty"`
}

// CalculateFairness runs the fairness metrics over a candidate batch
// POST /api/v1/audit/fairness
func (h *AuditHandlers) CalculateFairness(c *fiber.Ctx) error {
	var req fairnessRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if len(req.Scores) == 0 {
		return audit.ErrInvalidAuditInput().
			WithDetail("reason", "scores must not be empty")
	}

	threshold := req.SelectionThreshold
	if threshold == 0 {
		threshold = 0.5
	}

	report, err := h.calculator.Calculate(req.Scores, req.Groups, req.Outcomes, threshold)
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// scanRequest names a stored parse or carries raw text to scan. The ID
// wins when both are present.
type scanRequest struct {
	ResumeID string `json:"resume_id,omitempty"`
	Text     string `json:"text,omitempty"`
}

// ScanProtected detects protected-attribute indicators in resume text
// POST /api/v1/audit/scan
func (h *AuditHandlers) ScanProtected(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	text := req.Text
	if req.ResumeID != "" {
		stored, err := h.resumes.GetByID(c.Context(), kernel.ResumeID(req.ResumeID))
		if err != nil {
			return err
		}
		if stored.Result.Preprocessed != nil {
			text = stored.Result.Preprocessed.CleanedText
		}
	}

	if strings.TrimSpace(text) == "" {
		return audit.ErrInvalidAuditInput().
			WithDetail("reason", "resume_id or text is required")
	}

	return c.JSON(h.scanner.Scan(text))
}
