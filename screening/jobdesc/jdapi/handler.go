package jdapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/jobdesc"
	"github.com/hirelens/hirelens/screening/jobdesc/jdsrv"
)

type Handlers struct {
	service *jdsrv.Service
}

func NewHandlers(service *jdsrv.Service) *Handlers {
	return &Handlers{service: service}
}

func (h *Handlers) RegisterRoutes(app *fiber.App) {
	jds := app.Group("/api/v1/jobdescriptions")

	jds.Post("/", h.CreateJobDescription)
	jds.Get("/", h.ListJobDescriptions)
	jds.Get("/:id", h.GetJobDescription)
	jds.Delete("/:id", h.DeleteJobDescription)
}

// CreateJobDescription parses posting text and stores the result.
// POST /api/v1/jobdescriptions
func (h *Handlers) CreateJobDescription(c *fiber.Ctx) error {
	var req jobdesc.CreateJobDescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.CreateFromText(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetJobDescription retrieves one stored job description.
// GET /api/v1/jobdescriptions/:id
func (h *Handlers) GetJobDescription(c *fiber.Ctx) error {
	id := kernel.JobDescriptionID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job description ID",
		})
	}

	response, err := h.service.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(response)
}

// ListJobDescriptions lists stored job descriptions, newest first.
// GET /api/v1/jobdescriptions?page=1&page_size=20
func (h *Handlers) ListJobDescriptions(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	page, err := h.service.List(c.Context(), pagination)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// DeleteJobDescription removes a stored job description.
// DELETE /api/v1/jobdescriptions/:id
func (h *Handlers) DeleteJobDescription(c *fiber.Ctx) error {
	id := kernel.JobDescriptionID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job description ID",
		})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}
