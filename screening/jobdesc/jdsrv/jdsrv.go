package jdsrv

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/pkg/logx"
	"github.com/hirelens/hirelens/screening/jobdesc"
)

type Service struct {
	repo   jobdesc.Repository
	parser *parse.JDParser
}

func NewService(repo jobdesc.Repository, parser *parse.JDParser) *Service {
	return &Service{repo: repo, parser: parser}
}

// CreateFromText parses raw posting text and stores the result. Explicit
// title/company on the request win over parsed values.
func (s *Service) CreateFromText(ctx context.Context, req jobdesc.CreateJobDescriptionRequest) (*jobdesc.JobDescriptionResponse, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, jobdesc.ErrEmptyText()
	}

	result := s.parser.ParseText(text)
	if !result.Success() {
		return nil, jobdesc.ErrParseFailed().
			WithDetail("warnings", result.Warnings).
			WithDetail("errors", result.Errors)
	}

	title := req.Title
	if title == "" {
		title = result.Title
	}
	if title == "" {
		title = "Untitled Position"
	}
	company := req.Company
	if company == "" {
		company = result.CompanyName
	}

	jd := &jobdesc.JobDescription{
		ID:        kernel.NewJobDescriptionID(uuid.NewString()),
		Title:     title,
		Company:   company,
		RawText:   text,
		Parsed:    result,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, jd); err != nil {
		return nil, jobdesc.ErrRegistry.NewWithCause(jobdesc.CodeStoreFailed, err).
			WithDetail("title", title)
	}

	logx.Infof("Job description created: id=%s title=%q skills=%d",
		jd.ID, jd.Title, len(result.RequiredSkills))
	return jobdesc.ToResponse(jd), nil
}

func (s *Service) Get(ctx context.Context, id kernel.JobDescriptionID) (*jobdesc.JobDescriptionResponse, error) {
	jd, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return jobdesc.ToResponse(jd), nil
}

func (s *Service) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[jobdesc.JobDescriptionSummary], error) {
	page, err := s.repo.List(ctx, pagination)
	if err != nil {
		return nil, err
	}

	summaries := make([]jobdesc.JobDescriptionSummary, 0, len(page.Items))
	for i := range page.Items {
		summaries = append(summaries, jobdesc.ToSummary(&page.Items[i]))
	}

	return &kernel.Paginated[jobdesc.JobDescriptionSummary]{
		Items: summaries,
		Page:  page.Page,
	}, nil
}

func (s *Service) Delete(ctx context.Context, id kernel.JobDescriptionID) error {
	return s.repo.Delete(ctx, id)
}
