package resumeinfra

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
	"github.com/hirelens/hirelens/screening/resume"
)

type PostgresResumeRepository struct {
	db *sqlx.DB
}

func NewPostgresResumeRepository(db *sqlx.DB) resume.Repository {
	return &PostgresResumeRepository{db: db}
}

// dbResume stores the full parse result as JSONB alongside the scalar
// columns the list and dedup queries need.
type dbResume struct {
	ID          string  `db:"id"`
	FileName    string  `db:"file_name"`
	FilePath    string  `db:"file_path"`
	FileHash    string  `db:"file_hash"`
	CandidateID *string `db:"candidate_id"`

	Result []byte `db:"result"`

	OverallConfidence    float64 `db:"overall_confidence"`
	ParseQualityScore    float64 `db:"parse_quality_score"`
	TotalExperienceYears float64 `db:"total_experience_years"`
	SkillCount           int     `db:"skill_count"`

	CreatedAt time.Time `db:"created_at"`
}

const resumeColumns = `
	id, file_name, file_path, file_hash, candidate_id, result,
	overall_confidence, parse_quality_score, total_experience_years, skill_count,
	created_at`

func (r *PostgresResumeRepository) Create(ctx context.Context, pr *resume.ParsedResume) error {
	query := `
		INSERT INTO parsed_resumes (
			id, file_name, file_path, file_hash, candidate_id, result,
			overall_confidence, parse_quality_score, total_experience_years, skill_count,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11
		)
	`

	dbModel, err := toDBResume(pr)
	if err != nil {
		return fmt.Errorf("convert to db resume: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		dbModel.ID, dbModel.FileName, dbModel.FilePath, dbModel.FileHash, dbModel.CandidateID, dbModel.Result,
		dbModel.OverallConfidence, dbModel.ParseQualityScore, dbModel.TotalExperienceYears, dbModel.SkillCount,
		dbModel.CreatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err).
				WithDetail("id", pr.ID)
		}
		return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	return nil
}

func (r *PostgresResumeRepository) GetByID(ctx context.Context, id kernel.ResumeID) (*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes WHERE id = $1`

	var dbModel dbResume
	err := r.db.GetContext(ctx, &dbModel, query, id.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrResumeNotFound().WithDetail("id", id)
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	return toDomainResume(&dbModel)
}

func (r *PostgresResumeRepository) GetByHash(ctx context.Context, hash string) (*resume.ParsedResume, error) {
	query := `SELECT ` + resumeColumns + ` FROM parsed_resumes WHERE file_hash = $1 ORDER BY created_at DESC LIMIT 1`

	var dbModel dbResume
	err := r.db.GetContext(ctx, &dbModel, query, hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, resume.ErrResumeNotFound().WithDetail("file_hash", hash)
		}
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	return toDomainResume(&dbModel)
}

func (r *PostgresResumeRepository) SetCandidateID(ctx context.Context, id kernel.ResumeID, candidateID kernel.CandidateID) error {
	query := `UPDATE parsed_resumes SET candidate_id = $2 WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String(), candidateID.String())
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("id", id)
	}

	return nil
}

func (r *PostgresResumeRepository) List(
	ctx context.Context,
	pagination kernel.PaginationOptions,
) (*kernel.Paginated[resume.ParsedResume], error) {
	pagination = pagination.Normalize()

	countQuery := `SELECT COUNT(*) FROM parsed_resumes`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	query := `SELECT ` + resumeColumns + `
		FROM parsed_resumes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	var dbModels []dbResume
	if err := r.db.SelectContext(ctx, &dbModels, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	items := make([]resume.ParsedResume, 0, len(dbModels))
	for i := range dbModels {
		pr, err := toDomainResume(&dbModels[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *pr)
	}

	return &kernel.Paginated[resume.ParsedResume]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
		},
	}, nil
}

func (r *PostgresResumeRepository) Delete(ctx context.Context, id kernel.ResumeID) error {
	query := `DELETE FROM parsed_resumes WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id.String())
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return resume.ErrRegistry.NewWithCause(resume.CodeStoreFailed, err)
	}

	if rows == 0 {
		return resume.ErrResumeNotFound().WithDetail("id", id)
	}

	return nil
}

func toDBResume(pr *resume.ParsedResume) (*dbResume, error) {
	resultJSON, err := json.Marshal(pr.Result)
	if err != nil {
		return nil, fmt.Errorf("marshal parse result: %w", err)
	}

	var candidateID *string
	if pr.CandidateID != nil {
		idStr := pr.CandidateID.String()
		candidateID = &idStr
	}

	return &dbResume{
		ID:                   pr.ID.String(),
		FileName:             pr.FileName,
		FilePath:             pr.FilePath,
		FileHash:             pr.FileHash,
		CandidateID:          candidateID,
		Result:               resultJSON,
		OverallConfidence:    pr.OverallConfidence,
		ParseQualityScore:    pr.ParseQualityScore,
		TotalExperienceYears: pr.TotalExperienceYears,
		SkillCount:           pr.SkillCount,
		CreatedAt:            pr.CreatedAt,
	}, nil
}

func toDomainResume(dbModel *dbResume) (*resume.ParsedResume, error) {
	var result parse.ResumeParseResult
	if err := json.Unmarshal(dbModel.Result, &result); err != nil {
		return nil, fmt.Errorf("unmarshal parse result for %s: %w", dbModel.ID, err)
	}

	var candidateID *kernel.CandidateID
	if dbModel.CandidateID != nil {
		id := kernel.CandidateID(*dbModel.CandidateID)
		candidateID = &id
	}

	return &resume.ParsedResume{
		ID:                   kernel.ResumeID(dbModel.ID),
		FileName:             dbModel.FileName,
		FilePath:             dbModel.FilePath,
		FileHash:             dbModel.FileHash,
		CandidateID:          candidateID,
		Result:               result,
		OverallConfidence:    dbModel.OverallConfidence,
		ParseQualityScore:    dbModel.ParseQualityScore,
		TotalExperienceYears: dbModel.TotalExperienceYears,
		SkillCount:           dbModel.SkillCount,
		CreatedAt:            dbModel.CreatedAt,
	}, nil
}
