package resumeapi

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/hirelens/hirelens/internal/extract"
	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/fsx"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/resume"
	"github.com/hirelens/hirelens/screening/resume/resumesrv"
)

type ResumeHandlers struct {
	service    *resumesrv.Service
	fileSystem fsx.FileSystem
	extractor  *extract.Extractor
}

func NewResumeHandlers(service *resumesrv.Service, fileSystem fsx.FileSystem) *ResumeHandlers {
	return &ResumeHandlers{
		service:    service,
		fileSystem: fileSystem,
		extractor:  extract.NewExtractor(),
	}
}

func (h *ResumeHandlers) RegisterRoutes(app *fiber.App) {
	resumes := app.Group("/api/v1/resumes")

	// Parsing
	resumes.Post("/parse", h.ParseResume)          // Upload a file (ASYNC)
	resumes.Post("/parse-sync", h.ParseResumeText) // Parse raw text (SYNC)

	// Job management
	resumes.Get("/jobs/stats", h.GetJobStats)
	resumes.Get("/jobs/:job_id", h.GetJobStatus)
	resumes.Get("/jobs", h.ListJobs)
	resumes.Post("/jobs/:job_id/cancel", h.CancelJob)
	resumes.Post("/jobs/:job_id/retry", h.RetryJob)

	// Stored parses
	resumes.Get("/:id", h.GetResume)
	resumes.Delete("/:id", h.DeleteResume)
	resumes.Get("/", h.ListResumes)
}

// ParseResume accepts an uploaded file and queues it for background parsing
// POST /api/v1/resumes/parse
func (h *ResumeHandlers) ParseResume(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file is required",
		})
	}

	if file.Size > parse.MaxFileSize {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(fiber.Map{
			"error":    "file too large",
			"max_size": parse.MaxFileSize,
			"size":     file.Size,
		})
	}

	if !h.extractor.Supports(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":                "unsupported file type",
			"supported_extensions": h.extractor.SupportedExtensions(),
			"file_extension":       filepath.Ext(file.Filename),
		})
	}

	uploadedFile, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer uploadedFile.Close()

	// Storage layout: resumes/{year}/{month}/{uuid}{ext}
	now := time.Now()
	filePath := h.fileSystem.Join(
		"resumes",
		fmt.Sprintf("%d", now.Year()),
		fmt.Sprintf("%02d", now.Month()),
		uuid.NewString()+filepath.Ext(file.Filename),
	)

	if err := h.fileSystem.WriteFileStream(c.Context(), filePath, uploadedFile); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "failed to upload file to storage",
			"details": err.Error(),
		})
	}

	jobResponse, err := h.service.EnqueueParse(c.Context(), filePath, file.Filename)
	if err != nil {
		// Queueing failed, so the stored file has no job pointing at it.
		_ = h.fileSystem.DeleteFile(c.Context(), filePath)
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":    "Resume upload successful, processing started",
		"job":        jobResponse,
		"status_url": fmt.Sprintf("/api/v1/resumes/jobs/%s", jobResponse.JobID),
	})
}

// ParseResumeText parses raw resume text synchronously
// POST /api/v1/resumes/parse-sync
func (h *ResumeHandlers) ParseResumeText(c *fiber.Ctx) error {
	var req resume.ParseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	response, err := h.service.ParseText(c.Context(), req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// GetResume retrieves a stored parse by ID
// GET /api/v1/resumes/:id
func (h *ResumeHandlers) GetResume(c *fiber.Ctx) error {
	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	response, err := h.service.GetResume(c.Context(), resumeID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// DeleteResume removes a stored parse
// DELETE /api/v1/resumes/:id
func (h *ResumeHandlers) DeleteResume(c *fiber.Ctx) error {
	resumeID := kernel.ResumeID(c.Params("id"))
	if resumeID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid resume ID",
		})
	}

	if err := h.service.DeleteResume(c.Context(), resumeID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListResumes lists stored parses with pagination
// GET /api/v1/resumes
func (h *ResumeHandlers) ListResumes(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	response, err := h.service.ListResumes(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetJobStatus retrieves the status of a processing job
// GET /api/v1/resumes/jobs/:job_id
func (h *ResumeHandlers) GetJobStatus(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	response, err := h.service.GetJobStatus(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// ListJobs lists processing jobs with pagination
// GET /api/v1/resumes/jobs
func (h *ResumeHandlers) ListJobs(c *fiber.Ctx) error {
	pagination := kernel.PaginationOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 20),
	}

	response, err := h.service.ListJobs(c.Context(), pagination)
	if err != nil {
		return err
	}

	return c.JSON(response)
}

// GetJobStats summarizes the processing queue
// GET /api/v1/resumes/jobs/stats
func (h *ResumeHandlers) GetJobStats(c *fiber.Ctx) error {
	stats, err := h.service.GetJobStats(c.Context())
	if err != nil {
		return err
	}

	return c.JSON(stats)
}

// CancelJob cancels a job that has not completed
// POST /api/v1/resumes/jobs/:job_id/cancel
func (h *ResumeHandlers) CancelJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	if err := h.service.CancelJob(c.Context(), jobID); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Job cancelled",
		"job_id":  jobID,
	})
}

// RetryJob manually requeues a failed job
// POST /api/v1/resumes/jobs/:job_id/retry
func (h *ResumeHandlers) RetryJob(c *fiber.Ctx) error {
	jobID := kernel.JobID(c.Params("job_id"))
	if jobID.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid job ID",
		})
	}

	response, err := h.service.RetryFailedJob(c.Context(), jobID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusAccepted).JSON(response)
}
