package jdsrv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/jobdesc"
)

const sampleJDText = `Senior Backend Engineer
Acme Corp - San Francisco, CA (Remote)

Responsibilities:
- Design and operate Go microservices
- Own the PostgreSQL data layer

Requirements:
- 5+ years of backend experience
- Proficiency in Go and PostgreSQL
- Experience with Redis and Docker

Nice to have:
- Kubernetes
- AWS
`

type fakeJDRepo struct {
	byID map[kernel.JobDescriptionID]*jobdesc.JobDescription
}

func newFakeJDRepo() *fakeJDRepo {
	return &fakeJDRepo{byID: make(map[kernel.JobDescriptionID]*jobdesc.JobDescription)}
}

func (f *fakeJDRepo) Create(_ context.Context, jd *jobdesc.JobDescription) error {
	f.byID[jd.ID] = jd
	return nil
}

func (f *fakeJDRepo) GetByID(_ context.Context, id kernel.JobDescriptionID) (*jobdesc.JobDescription, error) {
	jd, ok := f.byID[id]
	if !ok {
		return nil, jobdesc.ErrNotFound()
	}
	return jd, nil
}

func (f *fakeJDRepo) List(_ context.Context, _ kernel.PaginationOptions) (*kernel.Paginated[jobdesc.JobDescription], error) {
	items := make([]jobdesc.JobDescription, 0, len(f.byID))
	for _, jd := range f.byID {
		items = append(items, *jd)
	}
	return &kernel.Paginated[jobdesc.JobDescription]{
		Items: items,
		Page:  kernel.Page{Number: 1, Size: len(items), Total: len(items)},
	}, nil
}

func (f *fakeJDRepo) Delete(_ context.Context, id kernel.JobDescriptionID) error {
	delete(f.byID, id)
	return nil
}

func newService() (*Service, *fakeJDRepo) {
	repo := newFakeJDRepo()
	return NewService(repo, parse.NewJDParser(parse.NewSkillsParser())), repo
}

func TestCreateFromText_EmptyTextRejected(t *testing.T) {
	svc, _ := newService()

	_, err := svc.CreateFromText(context.Background(), jobdesc.CreateJobDescriptionRequest{Text: "  \n "})
	require.Error(t, err)
}

func TestCreateFromText_ParsesAndStores(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.CreateFromText(context.Background(), jobdesc.CreateJobDescriptionRequest{Text: sampleJDText})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.NotEmpty(t, resp.Title)

	stored, err := repo.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, stored.Parsed.RequiredSkills)
}

func TestCreateFromText_ExplicitTitleWins(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.CreateFromText(context.Background(), jobdesc.CreateJobDescriptionRequest{
		Text:    sampleJDText,
		Title:   "Staff Engineer",
		Company: "Initech",
	})
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", resp.Title)
	assert.Equal(t, "Initech", resp.Company)
}

func TestGetAndList(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateFromText(context.Background(), jobdesc.CreateJobDescriptionRequest{Text: sampleJDText})
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	page, err := svc.List(context.Background(), kernel.PaginationOptions{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, created.ID, page.Items[0].ID)
}

func TestDelete_RemovesRecord(t *testing.T) {
	svc, repo := newService()

	created, err := svc.CreateFromText(context.Background(), jobdesc.CreateJobDescriptionRequest{Text: sampleJDText})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	_, err = repo.GetByID(context.Background(), created.ID)
	require.Error(t, err)
}
