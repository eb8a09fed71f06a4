package resumesrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/errx"
	"github.com/hirelens/hirelens/pkg/fsx"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/candidate"
	"github.com/hirelens/hirelens/screening/resume"
)

const DefaultMaxAttempts = 3

type Service struct {
	repo       resume.Repository
	jobRepo    resume.JobRepository
	candidates candidate.Repository
	parser     *parse.ResumeParser
	files      fsx.FileReader
	queue      resume.JobQueue

	maxAttempts int
}

func NewService(
	repo resume.Repository,
	jobRepo resume.JobRepository,
	candidates candidate.Repository,
	parser *parse.ResumeParser,
	files fsx.FileReader,
	queue resume.JobQueue,
	maxAttempts int,
) *Service {
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Service{
		repo:        repo,
		jobRepo:     jobRepo,
		candidates:  candidates,
		parser:      parser,
		files:       files,
		queue:       queue,
		maxAttempts: maxAttempts,
	}
}

// ParseText runs the pipeline synchronously on raw text and stores the
// result. Text input has no bytes to hash, so no dedup applies.
func (s *Service) ParseText(ctx context.Context, req resume.ParseTextRequest) (*resume.ResumeResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, resume.ErrEmptyText()
	}

	result := s.parser.ParseText(req.Text)

	fileName := req.FileName
	if fileName == "" {
		fileName = "inline-text"
	}

	stored, err := s.persistResult(ctx, result, fileName, "")
	if err != nil {
		return nil, err
	}
	return resume.ToResponse(stored), nil
}

// GetResume retrieves a stored parse by ID.
func (s *Service) GetResume(ctx context.Context, id kernel.ResumeID) (*resume.ResumeResponse, error) {
	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return resume.ToResponse(stored), nil
}

// ListResumes lists stored parses, newest first.
func (s *Service) ListResumes(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[resume.ResumeSummary], error) {
	page, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}

	summaries := make([]resume.ResumeSummary, 0, len(page.Items))
	for i := range page.Items {
		summaries = append(summaries, resume.ToSummary(&page.Items[i]))
	}

	return &kernel.Paginated[resume.ResumeSummary]{
		Items: summaries,
		Page:  page.Page,
	}, nil
}

// DeleteResume removes a stored parse.
func (s *Service) DeleteResume(ctx context.Context, id kernel.ResumeID) error {
	return s.repo.Delete(ctx, id)
}

// persistResult stores the parse and, when the parse yielded an email,
// projects and stores a candidate record linked back to the parse.
func (s *Service) persistResult(ctx context.Context, result parse.ResumeParseResult, fileName, filePath string) (*resume.ParsedResume, error) {
	stored := &resume.ParsedResume{
		ID:                   kernel.NewResumeID(uuid.NewString()),
		FileName:             fileName,
		FilePath:             filePath,
		FileHash:             result.FileHash,
		Result:               result,
		OverallConfidence:    result.OverallConfidence,
		ParseQualityScore:    result.ParseQualityScore,
		TotalExperienceYears: result.TotalExperienceYears,
		SkillCount:           result.SkillCount,
		CreatedAt:            time.Now(),
	}

	if err := s.repo.Create(ctx, stored); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err).
			WithDetail("file_name", fileName)
	}

	candidateID, err := s.projectCandidate(ctx, stored)
	if err != nil {
		// A failed projection never loses the parse itself.
		logx.Warnf("Candidate projection failed for resume %s: %v", stored.ID, err)
	} else if candidateID != nil {
		stored.CandidateID = candidateID
		if err := s.repo.SetCandidateID(ctx, stored.ID, *candidateID); err != nil {
			logx.Warnf("Failed to link candidate %s to resume %s: %v", candidateID, stored.ID, err)
		}
	}

	return stored, nil
}

// projectCandidate converts the parse into a candidate record. A parse
// without an email produces no candidate; an email collision links the
// existing candidate instead of failing the parse.
func (s *Service) projectCandidate(ctx context.Context, stored *resume.ParsedResume) (*kernel.CandidateID, error) {
	create, ok := s.parser.ToCandidateCreate(&stored.Result)
	if !ok {
		return nil, nil
	}

	model := candidate.FromCreate(
		kernel.NewCandidateID(uuid.NewString()),
		stored.ID,
		create,
		stored.Result.TotalExperienceYears,
		stored.Result.HighestEducation,
	)

	err := s.candidates.Create(ctx, model)
	if err == nil {
		logx.Infof("Candidate created: id=%s email=%s resume=%s", model.ID, model.Email, stored.ID)
		return &model.ID, nil
	}

	if e, isErrx := err.(*errx.Error); isErrx && e.Code == candidate.CodeAlreadyExists {
		existing, lookupErr := s.candidates.GetByEmail(ctx, create.Email)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return &existing.ID, nil
	}
	return nil, err
}
