package candidateinfra

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/hirelens/hirelens/internal/parse"
	"github.com/hirelens/hirelens/pkg/kernel"
	"github.com/hirelens/hirelens/screening/candidate"
)

type PostgresCandidateRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidateRepository(db *sqlx.DB) candidate.Repository {
	return &PostgresCandidateRepository{db: db}
}

// dbCandidate flattens the nested lists into JSONB columns.
type dbCandidate struct {
	ID       string `db:"id"`
	ResumeID string `db:"resume_id"`

	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`
	Phone     string `db:"phone"`

	LinkedInURL  string `db:"linkedin_url"`
	GitHubURL    string `db:"github_url"`
	PortfolioURL string `db:"portfolio_url"`

	City    string `db:"city"`
	State   string `db:"state"`
	Country string `db:"country"`

	Headline string `db:"headline"`

	Skills         []byte `db:"skills"`
	WorkExperience []byte `db:"work_experience"`
	Education      []byte `db:"education"`

	TotalExperienceYears float64 `db:"total_experience_years"`
	HighestEducation     string  `db:"highest_education"`

	CreatedAt time.Time `db:"created_at"`
}

const candidateColumns = `
	id, resume_id, first_name, last_name, email, phone,
	linkedin_url, github_url, portfolio_url,
	city, state, country, headline,
	skills, work_experience, education,
	total_experience_years, highest_education, created_at
`

func (r *PostgresCandidateRepository) Create(ctx context.Context, c *candidate.Candidate) error {
	row, err := toDBCandidate(c)
	if err != nil {
		return fmt.Errorf("convert candidate: %w", err)
	}

	query := `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9,
			$10, $11, $12, $13,
			$14, $15, $16,
			$17, $18, $19
		)
	`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.ResumeID, row.FirstName, row.LastName, row.Email, row.Phone,
		row.LinkedInURL, row.GitHubURL, row.PortfolioURL,
		row.City, row.State, row.Country, row.Headline,
		row.Skills, row.WorkExperience, row.Education,
		row.TotalExperienceYears, row.HighestEducation, row.CreatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return candidate.ErrRegistry.NewWithCause(candidate.CodeAlreadyExists, err).
				WithDetail("email", c.Email)
		}
		return fmt.Errorf("create candidate: %w", err)
	}
	return nil
}

func (r *PostgresCandidateRepository) GetByID(ctx context.Context, id kernel.CandidateID) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`

	var row dbCandidate
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrNotFound().WithDetail("candidate_id", id)
		}
		return nil, fmt.Errorf("get candidate: %w", err)
	}
	return toDomainCandidate(&row)
}

func (r *PostgresCandidateRepository) GetByEmail(ctx context.Context, email string) (*candidate.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates WHERE email = $1`

	var row dbCandidate
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if err == sql.ErrNoRows {
			return nil, candidate.ErrNotFound().WithDetail("email", email)
		}
		return nil, fmt.Errorf("get candidate by email: %w", err)
	}
	return toDomainCandidate(&row)
}

func (r *PostgresCandidateRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[candidate.Candidate], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidates`); err != nil {
		return nil, fmt.Errorf("count candidates: %w", err)
	}

	query := `
		SELECT ` + candidateColumns + `
		FROM candidates
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var rows []dbCandidate
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	items := make([]candidate.Candidate, 0, len(rows))
	for i := range rows {
		c, err := toDomainCandidate(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}

	return &kernel.Paginated[candidate.Candidate]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
		},
	}, nil
}

func (r *PostgresCandidateRepository) Delete(ctx context.Context, id kernel.CandidateID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete candidate: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return candidate.ErrNotFound().WithDetail("candidate_id", id)
	}
	return nil
}

func toDBCandidate(c *candidate.Candidate) (*dbCandidate, error) {
	skills, err := json.Marshal(c.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills: %w", err)
	}
	workExp, err := json.Marshal(c.WorkExperience)
	if err != nil {
		return nil, fmt.Errorf("marshal work experience: %w", err)
	}
	education, err := json.Marshal(c.Education)
	if err != nil {
		return nil, fmt.Errorf("marshal education: %w", err)
	}

	return &dbCandidate{
		ID:                   c.ID.String(),
		ResumeID:             c.ResumeID.String(),
		FirstName:            c.FirstName,
		LastName:             c.LastName,
		Email:                c.Email,
		Phone:                c.Phone,
		LinkedInURL:          c.LinkedInURL,
		GitHubURL:            c.GitHubURL,
		PortfolioURL:         c.PortfolioURL,
		City:                 c.City,
		State:                c.State,
		Country:              c.Country,
		Headline:             c.Headline,
		Skills:               skills,
		WorkExperience:       workExp,
		Education:            education,
		TotalExperienceYears: c.TotalExperienceYears,
		HighestEducation:     c.HighestEducation,
		CreatedAt:            c.CreatedAt,
	}, nil
}

func toDomainCandidate(row *dbCandidate) (*candidate.Candidate, error) {
	c := &candidate.Candidate{
		ID:                   kernel.CandidateID(row.ID),
		ResumeID:             kernel.ResumeID(row.ResumeID),
		FirstName:            row.FirstName,
		LastName:             row.LastName,
		Email:                row.Email,
		Phone:                row.Phone,
		LinkedInURL:          row.LinkedInURL,
		GitHubURL:            row.GitHubURL,
		PortfolioURL:         row.PortfolioURL,
		City:                 row.City,
		State:                row.State,
		Country:              row.Country,
		Headline:             row.Headline,
		TotalExperienceYears: row.TotalExperienceYears,
		HighestEducation:     row.HighestEducation,
		CreatedAt:            row.CreatedAt,
	}

	if len(row.Skills) > 0 {
		var skills []parse.CandidateSkill
		if err := json.Unmarshal(row.Skills, &skills); err != nil {
			return nil, fmt.Errorf("unmarshal skills for %s: %w", row.ID, err)
		}
		c.Skills = skills
	}
	if len(row.WorkExperience) > 0 {
		var exp []parse.CandidateExperience
		if err := json.Unmarshal(row.WorkExperience, &exp); err != nil {
			return nil, fmt.Errorf("unmarshal work experience for %s: %w", row.ID, err)
		}
		c.WorkExperience = exp
	}
	if len(row.Education) > 0 {
		var edu []parse.CandidateEducation
		if err := json.Unmarshal(row.Education, &edu); err != nil {
			return nil, fmt.Errorf("unmarshal education for %s: %w", row.ID, err)
		}
		c.Education = edu
	}

	return c, nil
}
