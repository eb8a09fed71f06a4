package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/resume"
	"github.com/hirelens/hirelens/screening/resume/resumesrv"
)

// ResumeWorker runs a pool of goroutines draining the job queue, plus a
// mover goroutine that promotes due retries.
type ResumeWorker struct {
	service *resumesrv.Service
	queue   resume.JobQueue
	workers int
}

func NewResumeWorker(service *resumesrv.Service, queue resume.JobQueue, workers int) *ResumeWorker {
	return &ResumeWorker{
		service: service,
		queue:   queue,
		workers: workers,
	}
}

func (w *ResumeWorker) Start(ctx context.Context) {
	logx.Infof("Starting %d resume workers", w.workers)

	go w.moveDelayedJobs(ctx)

	for i := 0; i < w.workers; i++ {
		go w.processJobs(ctx, i)
	}
}

func (w *ResumeWorker) processJobs(ctx context.Context, workerID int) {
	logx.Infof("Worker %d started", workerID)

	for {
		select {
		case <-ctx.Done():
			logx.Infof("Worker %d stopping", workerID)
			return
		default:
			data, err := w.queue.Dequeue(ctx, 5*time.Second)
			if err != nil {
				logx.Errorf("Worker %d dequeue error: %v", workerID, err)
				continue
			}

			// Nil data means the dequeue timed out with no jobs.
			if len(data) == 0 {
				continue
			}

			var job resume.ProcessingJob
			if err := json.Unmarshal(data, &job); err != nil {
				logx.Errorf("Worker %d unmarshal error: %v (data: %s)", workerID, err, string(data))
				continue
			}

			// A job cancelled while waiting in the queue is skipped.
			if current, err := w.service.GetJobStatus(ctx, job.ID); err == nil &&
				current.Status == resume.JobStatusCancelled {
				logx.Infof("Worker %d skipping cancelled job: %s", workerID, job.ID)
				continue
			}

			logx.Infof("Worker %d processing job: %s", workerID, job.ID)
			if err := w.service.ProcessJob(ctx, &job); err != nil {
				logx.Errorf("Worker %d job failed: %v", workerID, err)
			}
		}
	}
}

func (w *ResumeWorker) moveDelayedJobs(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := w.queue.MoveDelayedToReady(ctx)
			if err != nil {
				logx.Errorf("Failed to move delayed jobs: %v", err)
			} else if count > 0 {
				logx.Infof("Moved %d delayed jobs to ready queue", count)
			}
		}
	}
}
