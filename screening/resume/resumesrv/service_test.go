package resumesrv

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/candidate"
	"github.com/hirelens/hirelens/screening/resume"
)

const sampleResumeText = `Jane Smith
jane.smith@brightwave.io | (555) 123-4567 | linkedin.com/in/janesmith

SUMMARY
Senior software engineer with eight years of experience building
distributed backend systems in Go and Python.

SKILLS
Go, Python, PostgreSQL, Redis, Docker, Kubernetes, AWS

EXPERIENCE
Senior Software Engineer - Acme Corp
January 2019 - Present
- Led the migration of a monolith to microservices
- Built the event ingestion pipeline handling 50k msg/s

Software Engineer - Widget Inc
June 2015 - December 2018
- Developed REST APIs and background workers

EDUCATION
B.S. Computer Science, State University, 2015
`

// ----------------------------------------------------------------------------
// Fakes
// ----------------------------------------------------------------------------

type fakeRepo struct {
	byID    map[kernel.ResumeID]*resume.ParsedResume
	byHash  map[string]*resume.ParsedResume
	failing bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byID:   make(map[kernel.ResumeID]*resume.ParsedResume),
		byHash: make(map[string]*resume.ParsedResume),
	}
}

func (f *fakeRepo) Create(_ context.Context, r *resume.ParsedResume) error {
	if f.failing {
		return errors.New("db down")
	}
	f.byID[r.ID] = r
	if r.FileHash != "" {
		f.byHash[r.FileHash] = r
	}
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, resume.ErrResumeNotFound()
	}
	return r, nil
}

func (f *fakeRepo) GetByHash(_ context.Context, hash string) (*resume.ParsedResume, error) {
	r, ok := f.byHash[hash]
	if !ok {
		return nil, resume.ErrResumeNotFound()
	}
	return r, nil
}

func (f *fakeRepo) SetCandidateID(_ context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error {
	r, ok := f.byID[id]
	if !ok {
		return resume.ErrResumeNotFound()
	}
	r.CandidateID = &candidateID
	return nil
}

func (f *fakeRepo) List(_ context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ParsedResume], error) {
	items := make([]resume.ParsedResume, 0, len(f.byID))
	for _, r := range f.byID {
		items = append(items, *r)
	}
	return &kernel.Paginated[resume.ParsedResume]{
		Items: items,
		Page:  kernel.Page{Number: 1, Size: len(items), Total: len(items)},
	}, nil
}

func (f *fakeRepo) Delete(_ context.Context, id kernel.ResumeID) error {
	delete(f.byID, id)
	return nil
}

type fakeJobRepo struct {
	jobs map[kernel.JobID]*resume.ProcessingJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[kernel.JobID]*resume.ProcessingJob)}
}

func (f *fakeJobRepo) Create(_ context.Context, job *resume.ProcessingJob) error {
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *resume.ProcessingJob) error {
	if _, ok := f.jobs[job.ID]; !ok {
		return fmt.Errorf("job not found: %s", job.ID)
	}
	copied := *job
	f.jobs[job.ID] = &copied
	return nil
}

func (f *fakeJobRepo) GetByID(_ context.Context, jobID kernel.JobID) (*resume.ProcessingJob, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job not found: %s", jobID)
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[resume.ProcessingJob], error) {
	items := make([]resume.ProcessingJob, 0, len(f.jobs))
	for _, j := range f.jobs {
		items = append(items, *j)
	}
	return &kernel.Paginated[resume.ProcessingJob]{
		Items: items,
		Page:  kernel.Page{Number: 1, Size: len(items), Total: len(items)},
	}, nil
}

func (f *fakeJobRepo) MarkAsProcessing(_ context.Context, jobID kernel.JobID) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	now := time.Now()
	job.Status = resume.JobStatusProcessing
	job.StartedAt = &now
	return nil
}

func (f *fakeJobRepo) MarkAsCompleted(_ context.Context, jobID kernel.JobID, resumeID kernel.ResumeID) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	now := time.Now()
	job.Status = resume.JobStatusCompleted
	job.ResumeID = &resumeID
	job.CompletedAt = &now
	job.ProgressPercentage = 100
	return nil
}

func (f *fakeJobRepo) MarkAsFailed(_ context.Context, jobID kernel.JobID, errorMsg string, errorDetails map[string]any) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	now := time.Now()
	job.Status = resume.JobStatusFailed
	job.FailedAt = &now
	job.ErrorMessage = errorMsg
	job.ErrorDetails = errorDetails
	return nil
}

func (f *fakeJobRepo) UpdateProgress(_ context.Context, jobID kernel.JobID, step resume.ProcessingStep, percentage int) error {
	job, ok := f.jobs[jobID]
	if !ok {
		return fmt.Errorf("job not found: %s", jobID)
	}
	job.CurrentStep = &step
	job.ProgressPercentage = percentage
	return nil
}

type enqueuedJob struct {
	jobID   kernel.JobID
	delayed bool
	delay   time.Duration
}

type fakeQueue struct {
	entries []enqueuedJob
	failing bool
}

func (f *fakeQueue) Enqueue(_ context.Context, jobID kernel.JobID, _ any) error {
	if f.failing {
		return errors.New("redis down")
	}
	f.entries = append(f.entries, enqueuedJob{jobID: jobID})
	return nil
}

func (f *fakeQueue) Dequeue(_ context.Context, _ time.Duration) ([]byte, error) {
	return nil, nil
}

func (f *fakeQueue) EnqueueDelayed(_ context.Context, jobID kernel.JobID, _ any, delay time.Duration) error {
	if f.failing {
		return errors.New("redis down")
	}
	f.entries = append(f.entries, enqueuedJob{jobID: jobID, delayed: true, delay: delay})
	return nil
}

func (f *fakeQueue) MoveDelayedToReady(_ context.Context) (int, error) { return 0, nil }
func (f *fakeQueue) Size(_ context.Context) (int64, error)            { return int64(len(f.entries)), nil }
func (f *fakeQueue) DelayedSize(_ context.Context) (int64, error)     { return 0, nil }

type fakeCandidateRepo struct {
	byEmail map[string]*candidate.Candidate
}

func newFakeCandidateRepo() *fakeCandidateRepo {
	return &fakeCandidateRepo{byEmail: make(map[string]*candidate.Candidate)}
}

func (f *fakeCandidateRepo) Create(_ context.Context, c *candidate.Candidate) error {
	if _, ok := f.byEmail[c.Email]; ok {
		return candidate.ErrRegistry.New(candidate.CodeAlreadyExists)
	}
	f.byEmail[c.Email] = c
	return nil
}

func (f *fakeCandidateRepo) GetByID(_ context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	for _, c := range f.byEmail {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, candidate.ErrRegistry.New(candidate.CodeNotFound)
}

func (f *fakeCandidateRepo) GetByEmail(_ context.Context, email string) (*candidate.Candidate, error) {
	c, ok := f.byEmail[email]
	if !ok {
		return nil, candidate.ErrRegistry.New(candidate.CodeNotFound)
	}
	return c, nil
}

func (f *fakeCandidateRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	items := make([]candidate.Candidate, 0, len(f.byEmail))
	for _, c := range f.byEmail {
		items = append(items, *c)
	}
	return &kernel.Paginated[candidate.Candidate]{Items: items}, nil
}

func (f *fakeCandidateRepo) Delete(_ context.Context, _ kernel.CandidateID) error { return nil }

type fakeFiles struct {
	contents map[string][]byte
}

func (f *fakeFiles) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, ok := f.contents[path]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

func newService(t *testing.T) (*Service, *fakeRepo, *fakeJobRepo, *fakeCandidateRepo, *fakeQueue, *fakeFiles) {
	t.Helper()
	repo := newFakeRepo()
	jobRepo := newFakeJobRepo()
	candidates := newFakeCandidateRepo()
	queue := &fakeQueue{}
	files := &fakeFiles{contents: make(map[string][]byte)}
	svc := NewService(repo, jobRepo, candidates, parse.NewResumeParser(), files, queue, 3)
	return svc, repo, jobRepo, candidates, queue, files
}

// ----------------------------------------------------------------------------
// Sync parse
// ----------------------------------------------------------------------------

func TestParseText_EmptyTextRejected(t *testing.T) {
	svc, _, _, _, _, _ := newService(t)

	_, err := svc.ParseText(context.Background(), resume.ParseTextRequest{Text: "   \n "})
	require.Error(t, err)
}

func TestParseText_StoresParseAndProjectsCandidate(t *testing.T) {
	svc, repo, _, candidates, _, _ := newService(t)

	resp, err := svc.ParseText(context.Background(), resume.ParseTextRequest{
		Text:     sampleResumeText,
		FileName: "jane.txt",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "jane.smith@brightwave.io", resp.Result.Contact.Email)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CandidateID)

	projected, err := candidates.GetByEmail(context.Background(), "jane.smith@brightwave.io")
	require.NoError(t, err)
	assert.Equal(t, *stored.CandidateID, projected.ID)
	assert.Equal(t, stored.ID, projected.ResumeID)
}

func TestParseText_DuplicateEmailLinksExistingCandidate(t *testing.T) {
	svc, repo, _, candidates, _, _ := newService(t)

	first, err := svc.ParseText(context.Background(), resume.ParseTextRequest{Text: sampleResumeText})
	require.NoError(t, err)

	second, err := svc.ParseText(context.Background(), resume.ParseTextRequest{Text: sampleResumeText + "\nExtra line."})
	require.NoError(t, err)

	existing, err := candidates.GetByEmail(context.Background(), "jane.smith@brightwave.io")
	require.NoError(t, err)

	firstStored, _ := repo.GetByID(context.Background(), first.ID)
	secondStored, _ := repo.GetByID(context.Background(), second.ID)
	require.NotNil(t, firstStored.CandidateID)
	require.NotNil(t, secondStored.CandidateID)
	assert.Equal(t, existing.ID, *firstStored.CandidateID)
	assert.Equal(t, existing.ID, *secondStored.CandidateID)
}

// ----------------------------------------------------------------------------
// Async pipeline
// ----------------------------------------------------------------------------

func TestEnqueueParse_CreatesJobAndEnqueues(t *testing.T) {
	svc, _, jobRepo, _, queue, _ := newService(t)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/2026/08/x.txt", "jane.txt")
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, resp.Status)

	job, err := jobRepo.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, "resumes/2026/08/x.txt", job.FilePath)
	assert.Equal(t, 3, job.MaxAttempts)

	require.Len(t, queue.entries, 1)
	assert.Equal(t, resp.JobID, queue.entries[0].jobID)
	assert.False(t, queue.entries[0].delayed)
}

func TestEnqueueParse_QueueFailureMarksJobFailed(t *testing.T) {
	svc, _, jobRepo, _, queue, _ := newService(t)
	queue.failing = true

	_, err := svc.EnqueueParse(context.Background(), "resumes/x.txt", "x.txt")
	require.Error(t, err)

	// The only job record must be in failed state.
	jobs, err := jobRepo.List(context.Background(), kernel.PaginationOptions{})
	require.NoError(t, err)
	require.Len(t, jobs.Items, 1)
	assert.Equal(t, resume.JobStatusFailed, jobs.Items[0].Status)
}

func TestProcessJob_SuccessCompletesAndStoresParse(t *testing.T) {
	svc, repo, jobRepo, _, queue, files := newService(t)
	files.contents["resumes/jane.txt"] = []byte(sampleResumeText)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/jane.txt", "jane.txt")
	require.NoError(t, err)

	job, err := jobRepo.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)

	require.NoError(t, svc.ProcessJob(context.Background(), job))

	updated, err := jobRepo.GetByID(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCompleted, updated.Status)
	assert.Equal(t, 100, updated.ProgressPercentage)
	require.NotNil(t, updated.ResumeID)

	stored, err := repo.GetByID(context.Background(), *updated.ResumeID)
	require.NoError(t, err)
	assert.Equal(t, "jane.smith@brightwave.io", stored.Result.Contact.Email)

	// Only the original enqueue, no retry entries.
	assert.Len(t, queue.entries, 1)
}

func TestProcessJob_DuplicateBytesCompleteAgainstExistingParse(t *testing.T) {
	svc, repo, jobRepo, _, _, files := newService(t)
	files.contents["resumes/a.txt"] = []byte(sampleResumeText)
	files.contents["resumes/b.txt"] = []byte(sampleResumeText)

	first, err := svc.EnqueueParse(context.Background(), "resumes/a.txt", "a.txt")
	require.NoError(t, err)
	firstJob, _ := jobRepo.GetByID(context.Background(), first.JobID)
	require.NoError(t, svc.ProcessJob(context.Background(), firstJob))

	second, err := svc.EnqueueParse(context.Background(), "resumes/b.txt", "b.txt")
	require.NoError(t, err)
	secondJob, _ := jobRepo.GetByID(context.Background(), second.JobID)
	require.NoError(t, svc.ProcessJob(context.Background(), secondJob))

	firstDone, _ := jobRepo.GetByID(context.Background(), first.JobID)
	secondDone, _ := jobRepo.GetByID(context.Background(), second.JobID)
	require.NotNil(t, firstDone.ResumeID)
	require.NotNil(t, secondDone.ResumeID)
	assert.Equal(t, *firstDone.ResumeID, *secondDone.ResumeID)

	// Only one stored parse despite two completed jobs.
	all, err := repo.List(context.Background(), kernel.PaginationOptions{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 1)
}

func TestProcessJob_FailureSchedulesDelayedRetryWithBackoff(t *testing.T) {
	svc, _, jobRepo, _, queue, _ := newService(t)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/missing.txt", "missing.txt")
	require.NoError(t, err)
	job, _ := jobRepo.GetByID(context.Background(), resp.JobID)

	err = svc.ProcessJob(context.Background(), job)
	require.Error(t, err)

	// One ready enqueue plus one delayed retry at 2^1 minutes.
	require.Len(t, queue.entries, 2)
	retry := queue.entries[1]
	assert.True(t, retry.delayed)
	assert.Equal(t, 2*time.Minute, retry.delay)

	updated, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	assert.Equal(t, resume.JobStatusPending, updated.Status)
	assert.Equal(t, 1, updated.AttemptCount)
	assert.NotNil(t, updated.NextRetryAt)
}

func TestProcessJob_MaxAttemptsMarksPermanentFailure(t *testing.T) {
	svc, _, jobRepo, _, queue, _ := newService(t)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/missing.txt", "missing.txt")
	require.NoError(t, err)

	// Simulate a job already on its last attempt.
	job, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	job.AttemptCount = 2
	require.NoError(t, jobRepo.Update(context.Background(), job))

	job, _ = jobRepo.GetByID(context.Background(), resp.JobID)
	err = svc.ProcessJob(context.Background(), job)
	require.Error(t, err)

	updated, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	assert.Equal(t, resume.JobStatusFailed, updated.Status)
	assert.NotNil(t, updated.FailedAt)

	// No retry entry was added.
	assert.Len(t, queue.entries, 1)
}

// ----------------------------------------------------------------------------
// Job management
// ----------------------------------------------------------------------------

func TestRetryFailedJob_OnlyFailedJobsAreRetryable(t *testing.T) {
	svc, _, jobRepo, _, queue, _ := newService(t)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/x.txt", "x.txt")
	require.NoError(t, err)

	_, err = svc.RetryFailedJob(context.Background(), resp.JobID)
	require.Error(t, err)

	require.NoError(t, jobRepo.MarkAsFailed(context.Background(), resp.JobID, "parsing_failed", nil))

	retried, err := svc.RetryFailedJob(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusPending, retried.Status)

	updated, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	assert.Equal(t, 0, updated.AttemptCount)
	assert.Empty(t, updated.ErrorMessage)

	// Original enqueue plus the manual retry.
	assert.Len(t, queue.entries, 2)
}

func TestCancelJob_CompletedJobRejected(t *testing.T) {
	svc, _, jobRepo, _, _, files := newService(t)
	files.contents["resumes/jane.txt"] = []byte(sampleResumeText)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/jane.txt", "jane.txt")
	require.NoError(t, err)
	job, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	require.NoError(t, svc.ProcessJob(context.Background(), job))

	err = svc.CancelJob(context.Background(), resp.JobID)
	require.Error(t, err)
}

func TestCancelJob_PendingJobCancelled(t *testing.T) {
	svc, _, jobRepo, _, _, _ := newService(t)

	resp, err := svc.EnqueueParse(context.Background(), "resumes/x.txt", "x.txt")
	require.NoError(t, err)

	require.NoError(t, svc.CancelJob(context.Background(), resp.JobID))

	updated, _ := jobRepo.GetByID(context.Background(), resp.JobID)
	assert.Equal(t, resume.JobStatusCancelled, updated.Status)

	status, err := svc.GetJobStatus(context.Background(), resp.JobID)
	require.NoError(t, err)
	assert.Equal(t, resume.JobStatusCancelled, status.Status)
}

func TestGetJobStats_CountsByStatus(t *testing.T) {
	svc, _, jobRepo, _, _, files := newService(t)
	files.contents["resumes/jane.txt"] = []byte(sampleResumeText)

	done, err := svc.EnqueueParse(context.Background(), "resumes/jane.txt", "jane.txt")
	require.NoError(t, err)
	doneJob, _ := jobRepo.GetByID(context.Background(), done.JobID)
	require.NoError(t, svc.ProcessJob(context.Background(), doneJob))

	_, err = svc.EnqueueParse(context.Background(), "resumes/pending.txt", "pending.txt")
	require.NoError(t, err)

	cancelled, err := svc.EnqueueParse(context.Background(), "resumes/c.txt", "c.txt")
	require.NoError(t, err)
	require.NoError(t, svc.CancelJob(context.Background(), cancelled.JobID))

	stats, err := svc.GetJobStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalJobs)
	assert.Equal(t, 1, stats.CompletedJobs)
	assert.Equal(t, 1, stats.PendingJobs)
	assert.Equal(t, 1, stats.CancelledJobs)
	require.NotNil(t, stats.LastCompletedJob)
}
