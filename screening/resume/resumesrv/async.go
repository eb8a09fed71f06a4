package resumesrv

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/resume"
)

// EnqueueParse creates a job record for an uploaded file and pushes it on
// the ready queue for the worker pool.
func (s *Service) EnqueueParse(ctx context.Context, filePath, fileName string) (*resume.JobStatusResponse, error) {
	logx.Infof("Queueing resume for async processing: File=%s", fileName)

	jobID := kernel.NewJobID(uuid.NewString())
	job := &resume.ProcessingJob{
		ID:                 jobID,
		Status:             resume.JobStatusPending,
		FilePath:           filePath,
		FileName:           fileName,
		AttemptCount:       0,
		MaxAttempts:        s.maxAttempts,
		ProgressPercentage: 0,
		CreatedAt:          time.Now(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, resume.ErrJobCreationFailed().
			WithDetail("file_name", fileName).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		// Mark the job failed if it never made the queue.
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to enqueue", map[string]any{
			"error": err.Error(),
		})

		return nil, resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Job queued successfully: JobID=%s", jobID)

	return &resume.JobStatusResponse{
		JobID:     jobID,
		Status:    resume.JobStatusPending,
		Message:   "Resume queued for processing",
		Progress:  0,
		CreatedAt: job.CreatedAt,
	}, nil
}

// ProcessJob runs one queued parse end to end. Workers call this with
// the job decoded off the queue.
func (s *Service) ProcessJob(ctx context.Context, job *resume.ProcessingJob) error {
	logx.Infof("Processing job: JobID=%s, Attempt=%d/%d", job.ID, job.AttemptCount+1, job.MaxAttempts)

	if err := s.jobRepo.MarkAsProcessing(ctx, job.ID); err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetail("status", "processing").
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepExtracting, 25)

	fileData, err := s.files.ReadFile(ctx, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "file_read_failed", err)
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepParsing, 50)

	result := s.parser.ParseBytes(fileData, job.FileName)
	if !result.Success() {
		return s.handleJobError(ctx, job, "parsing_failed",
			fmt.Errorf("parse produced no usable fields: %v", result.Errors))
	}

	// Same bytes already parsed: complete against the existing record
	// instead of storing a duplicate.
	if result.FileHash != "" {
		if existing, lookupErr := s.repo.GetByHash(ctx, result.FileHash); lookupErr == nil && existing != nil {
			logx.Infof("Duplicate upload detected: JobID=%s, ExistingResumeID=%s", job.ID, existing.ID)
			if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, existing.ID); err != nil {
				logx.Errorf("Failed to mark job as completed: %v", err)
			}
			_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 100)
			return nil
		}
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 75)

	stored, err := s.persistResult(ctx, result, job.FileName, job.FilePath)
	if err != nil {
		return s.handleJobError(ctx, job, "save_failed", err)
	}

	if err := s.jobRepo.MarkAsCompleted(ctx, job.ID, stored.ID); err != nil {
		logx.Errorf("Failed to mark job as completed: %v", err)
		// The parse was stored, so the job itself did not fail.
	}

	_ = s.jobRepo.UpdateProgress(ctx, job.ID, resume.StepSaving, 100)

	logx.Infof("Job completed successfully: JobID=%s, ResumeID=%s", job.ID, stored.ID)
	return nil
}

// handleJobError applies the retry policy: exponential backoff through the
// delayed queue until attempts run out, then a permanent failure.
func (s *Service) handleJobError(ctx context.Context, job *resume.ProcessingJob, errorType string, err error) error {
	job.AttemptCount++

	errorDetails := map[string]any{
		"error":        err.Error(),
		"error_type":   errorType,
		"attempt":      job.AttemptCount,
		"max_attempts": job.MaxAttempts,
		"file_path":    job.FilePath,
		"file_name":    job.FileName,
	}

	if job.AttemptCount < job.MaxAttempts {
		// Exponential backoff: 2^attempt minutes
		retryDelay := time.Duration(1<<uint(job.AttemptCount)) * time.Minute
		nextRetry := time.Now().Add(retryDelay)
		job.NextRetryAt = &nextRetry

		logx.Warnf("Job failed, will retry: JobID=%s, Attempt=%d/%d, NextRetry=%v, Error=%s",
			job.ID, job.AttemptCount, job.MaxAttempts, nextRetry, errorType)

		if queueErr := s.queue.EnqueueDelayed(ctx, job.ID, job, retryDelay); queueErr != nil {
			logx.Errorf("Failed to enqueue for retry: %v", queueErr)

			_ = s.jobRepo.MarkAsFailed(ctx, job.ID,
				fmt.Sprintf("%s (retry enqueue failed)", errorType),
				errorDetails)

			return resume.ErrJobRetryFailed().
				WithDetail("job_id", job.ID).
				WithDetail("error_type", errorType).
				WithDetails(errorDetails)
		}

		job.ErrorMessage = fmt.Sprintf("%s (will retry)", errorType)
		job.ErrorDetails = errorDetails
		job.Status = resume.JobStatusPending

		if updateErr := s.jobRepo.Update(ctx, job); updateErr != nil {
			logx.Errorf("Failed to update job for retry: %v", updateErr)
		}

		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", job.ID).
			WithDetail("error_type", errorType).
			WithDetail("will_retry", true).
			WithDetail("next_retry_at", nextRetry).
			WithDetails(errorDetails)
	}

	logx.Errorf("Job permanently failed: JobID=%s, Error=%s, Attempts=%d/%d",
		job.ID, errorType, job.AttemptCount, job.MaxAttempts)

	_ = s.jobRepo.MarkAsFailed(ctx, job.ID, errorType, errorDetails)

	return resume.ErrJobMaxRetries().
		WithDetail("job_id", job.ID).
		WithDetail("error_type", errorType).
		WithDetail("final_attempt", job.AttemptCount).
		WithDetails(errorDetails)
}

// GetJobStatus retrieves the current status of a job.
func (s *Service) GetJobStatus(ctx context.Context, jobID kernel.JobID) (*resume.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, resume.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}

	response := &resume.JobStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		Progress:  job.ProgressPercentage,
		CreatedAt: job.CreatedAt,
	}

	switch job.Status {
	case resume.JobStatusPending:
		if job.AttemptCount > 0 {
			response.Message = fmt.Sprintf("Job pending retry (attempt %d/%d)", job.AttemptCount, job.MaxAttempts)
		} else {
			response.Message = "Job queued and waiting to be processed"
		}
		if job.NextRetryAt != nil {
			response.NextRetryAt = job.NextRetryAt
		}

	case resume.JobStatusProcessing:
		response.Message = fmt.Sprintf("Processing resume: %v", job.CurrentStep)
		response.CurrentStep = job.CurrentStep
		response.StartedAt = job.StartedAt

	case resume.JobStatusCompleted:
		response.Message = "Resume processed successfully"
		response.ResumeID = job.ResumeID
		response.CompletedAt = job.CompletedAt

	case resume.JobStatusFailed:
		response.Message = job.ErrorMessage
		response.Error = &resume.JobError{
			Message: job.ErrorMessage,
			Details: job.ErrorDetails,
		}
		response.FailedAt = job.FailedAt
		response.AttemptCount = job.AttemptCount

	case resume.JobStatusCancelled:
		response.Message = "Job cancelled"
		response.FailedAt = job.FailedAt
	}

	return response, nil
}

// ListJobs retrieves processing jobs, newest first.
func (s *Service) ListJobs(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ProcessingJob], error) {
	jobs, err := s.jobRepo.List(ctx, pagination)
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeJobNotFound, err)
	}
	return jobs, nil
}

// CancelJob cancels a job that has not completed. An actively running job
// is only marked; the worker finishes its current pass.
func (s *Service) CancelJob(ctx context.Context, jobID kernel.JobID) error {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return resume.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}

	if job.IsTerminal() {
		return resume.ErrJobAlreadyDone().
			WithDetail("job_id", jobID).
			WithDetail("status", job.Status)
	}

	if job.Status == resume.JobStatusProcessing {
		logx.Warnf("Attempting to cancel job that is currently processing: %s", jobID)
	}

	now := time.Now()
	job.Status = resume.JobStatusCancelled
	job.FailedAt = &now
	job.ErrorMessage = "Job cancelled by user"
	job.ErrorDetails = map[string]any{
		"cancelled_at": now,
	}

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return resume.ErrJobUpdateFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Job cancelled: JobID=%s", jobID)
	return nil
}

// RetryFailedJob manually requeues a failed job with a fresh attempt count.
func (s *Service) RetryFailedJob(ctx context.Context, jobID kernel.JobID) (*resume.JobStatusResponse, error) {
	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, resume.ErrJobNotFound().
			WithDetail("job_id", jobID)
	}

	if job.Status != resume.JobStatusFailed {
		return nil, resume.ErrInvalidJobStatus().
			WithDetail("job_id", jobID).
			WithDetail("current_status", job.Status).
			WithDetail("required_status", resume.JobStatusFailed)
	}

	job.Status = resume.JobStatusPending
	job.AttemptCount = 0
	job.ErrorMessage = ""
	job.ErrorDetails = nil
	job.FailedAt = nil
	job.NextRetryAt = nil
	job.ProgressPercentage = 0
	job.CurrentStep = nil

	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, resume.ErrJobUpdateFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	if err := s.queue.Enqueue(ctx, jobID, job); err != nil {
		_ = s.jobRepo.MarkAsFailed(ctx, jobID, "failed to re-enqueue", map[string]any{
			"error": err.Error(),
		})

		return nil, resume.ErrQueueEnqueueFailed().
			WithDetail("job_id", jobID).
			WithDetails(map[string]any{
				"error": err.Error(),
			})
	}

	logx.Infof("Job manually retried: JobID=%s", jobID)

	return &resume.JobStatusResponse{
		JobID:     jobID,
		Status:    resume.JobStatusPending,
		Message:   "Job requeued for processing",
		Progress:  0,
		CreatedAt: job.CreatedAt,
	}, nil
}

// GetJobStats summarizes the processing queue.
func (s *Service) GetJobStats(ctx context.Context) (*resume.JobStatsResponse, error) {
	allJobs, err := s.jobRepo.List(ctx, kernel.PaginationOptions{
		Page:     1,
		PageSize: 1000,
	})
	if err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeJobNotFound, err)
	}

	stats := &resume.JobStatsResponse{
		TotalJobs: len(allJobs.Items),
	}

	totalProgress := 0
	var oldestPending *time.Time
	var newestCompleted *time.Time

	for i := range allJobs.Items {
		job := &allJobs.Items[i]
		switch job.Status {
		case resume.JobStatusPending:
			stats.PendingJobs++
			if oldestPending == nil || job.CreatedAt.Before(*oldestPending) {
				createdAt := job.CreatedAt
				oldestPending = &createdAt
			}
		case resume.JobStatusProcessing:
			stats.ProcessingJobs++
		case resume.JobStatusCompleted:
			stats.CompletedJobs++
			if job.CompletedAt != nil && (newestCompleted == nil || job.CompletedAt.After(*newestCompleted)) {
				newestCompleted = job.CompletedAt
			}
		case resume.JobStatusFailed:
			stats.FailedJobs++
		case resume.JobStatusCancelled:
			stats.CancelledJobs++
		}

		totalProgress += job.ProgressPercentage
	}

	if len(allJobs.Items) > 0 {
		stats.AverageProgress = float64(totalProgress) / float64(len(allJobs.Items))
	}

	stats.OldestPendingJob = oldestPending
	stats.LastCompletedJob = newestCompleted

	return stats, nil
}
