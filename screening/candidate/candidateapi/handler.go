package candidateapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/candidate"
)

type Handlers struct {
	repo candidate.Repository
}

func NewHandlers(repo candidate.Repository) *Handlers {
	return &Handlers{repo: repo}
}

func (h *Handlers) RegisterRoutes(app *fiber.App) {
	candidates := app.Group("/api/v1/candidates")

	candidates.Get("/", h.ListCandidates)
	candidates.Get("/:id", h.GetCandidate)
}

// GetCandidate retrieves a candidate projection by ID.
// GET /api/v1/candidates/:id
func (h *Handlers) GetCandidate(c *fiber.Ctx) error {
	id := kernel.CandidateID(c.Params("id"))
	if id.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid candidate ID",
		})
	}

	found, err := h.repo.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(found)
}

// ListCandidates lists candidate projections, newest first.
// GET /api/v1/candidates?page=1&page_size=20
func (h *Handlers) ListCandidates(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	page, err := h.repo.List(c.Context(), pagination)
	if err != nil {
		return err
	}
	return c.JSON(page)
}
