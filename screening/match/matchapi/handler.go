package matchapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/jobdesc"
	"github.com/hirelens/hirelens/screening/match"
	"github.com/hirelens/hirelens/screening/resume"
)

type MatchHandlers struct {
	engine       *match.Engine
	resumes      resume.Repository
	jds          jobdesc.Repository
	resumeParser *parse.ResumeParser
	jdParser     *parse.JDParser
}

func NewMatchHandlers(
	engine *match.Engine,
	resumes resume.Repository,
	jds jobdesc.Repository,
	resumeParser *parse.ResumeParser,
	jdParser *parse.JDParser,
) *MatchHandlers {
	return &MatchHandlers{
		engine:       engine,
		resumes:      resumes,
		jds:          jds,
		resumeParser: resumeParser,
		jdParser:     jdParser,
	}
}

func (h *MatchHandlers) RegisterRoutes(app *fiber.App) {
	matches := app.Group("/api/v1/matches")

	matches.Post("/", h.ScoreMatch)
}

// scoreRequest references stored records by ID or carries inline texts.
// IDs win when both are present.
type scoreRequest struct {
	ResumeID         string `json:"resume_id,omitempty"`
	JobDescriptionID string `json:"jd_id,omitempty"`

	ResumeText         string `json:"resume_text,omitempty"`
	JobDescriptionText string `json:"jd_text,omitempty"`
}

// ScoreMatch scores one resume against one job description
// POST /api/v1/matches
func (h *MatchHandlers) ScoreMatch(c *fiber.Ctx) error {
	var req scoreRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	resumeResult, err := h.resolveResume(c, &req)
	if err != nil {
		return err
	}

	jdResult, err := h.resolveJD(c, &req)
	if err != nil {
		return err
	}

	result := h.engine.Match(resumeResult, jdResult)
	return c.JSON(result)
}

func (h *MatchHandlers) resolveResume(c *fiber.Ctx, req *scoreRequest) (*parse.ResumeParseResult, error) {
	if req.ResumeID != "" {
		stored, err := h.resumes.GetByID(c.Context(), kernel.ResumeID(req.ResumeID))
		if err != nil {
			return nil, match.ErrResumeNotFound().WithDetail("resume_id", req.ResumeID)
		}
		return &stored.Result, nil
	}

	if req.ResumeText != "" {
		result := h.resumeParser.ParseText(req.ResumeText)
		return &result, nil
	}

	return nil, match.ErrInvalidMatchRequest().
		WithDetail("reason", "resume_id or resume_text is required")
}

func (h *MatchHandlers) resolveJD(c *fiber.Ctx, req *scoreRequest) (*parse.JDParseResult, error) {
	if req.JobDescriptionID != "" {
		stored, err := h.jds.GetByID(c.Context(), kernel.JobDescriptionID(req.JobDescriptionID))
		if err != nil {
			return nil, match.ErrJobDescNotFound().WithDetail("jd_id", req.JobDescriptionID)
		}
		return &stored.Parsed, nil
	}

	if req.JobDescriptionText != "" {
		result := h.jdParser.ParseText(req.JobDescriptionText)
		return &result, nil
	}

	return nil, match.ErrInvalidMatchRequest().
		WithDetail("reason", "jd_id or jd_text is required")
}
