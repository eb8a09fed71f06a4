package jdinfra

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
	"github.com/hirelens/hirelens/screening/jobdesc"
)

type PostgresJobDescriptionRepository struct {
	db *sqlx.DB
}

func NewPostgresJobDescriptionRepository(db *sqlx.DB) jobdesc.Repository {
	return &PostgresJobDescriptionRepository{db: db}
}

type dbJobDescription struct {
	ID        string    `db:"id"`
	Title     string    `db:"title"`
	Company   string    `db:"company"`
	RawText   string    `db:"raw_text"`
	Parsed    []byte    `db:"parsed"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *PostgresJobDescriptionRepository) Create(ctx context.Context, jd *jobdesc.JobDescription) error {
	parsed, err := json.Marshal(jd.Parsed)
	if err != nil {
		return fmt.Errorf("marshal parsed payload: %w", err)
	}

	query := `
		INSERT INTO job_descriptions (id, title, company, raw_text, parsed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		jd.ID.String(), jd.Title, jd.Company, jd.RawText, parsed, jd.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("job description already exists: %w", err)
		}
		return fmt.Errorf("create job description: %w", err)
	}
	return nil
}

func (r *PostgresJobDescriptionRepository) GetByID(ctx context.Context, id kernel.JobDescriptionID) (*jobdesc.JobDescription, error) {
	query := `
		SELECT id, title, company, raw_text, parsed, created_at
		FROM job_descriptions
		WHERE id = $1
	`

	var row dbJobDescription
	if err := r.db.GetContext(ctx, &row, query, id.String()); err != nil {
		if err == sql.ErrNoRows {
			return nil, jobdesc.ErrNotFound().WithDetail("jd_id", id)
		}
		return nil, fmt.Errorf("get job description: %w", err)
	}
	return toDomainJD(&row)
}

func (r *PostgresJobDescriptionRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[jobdesc.JobDescription], error) {
	pagination = pagination.Normalize()

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM job_descriptions`); err != nil {
		return nil, fmt.Errorf("count job descriptions: %w", err)
	}

	query := `
		SELECT id, title, company, raw_text, parsed, created_at
		FROM job_descriptions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var rows []dbJobDescription
	if err := r.db.SelectContext(ctx, &rows, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, fmt.Errorf("list job descriptions: %w", err)
	}

	items := make([]jobdesc.JobDescription, 0, len(rows))
	for i := range rows {
		jd, err := toDomainJD(&rows[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *jd)
	}

	return &kernel.Paginated[jobdesc.JobDescription]{
		Items: items,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
		},
	}, nil
}

func (r *PostgresJobDescriptionRepository) Delete(ctx context.Context, id kernel.JobDescriptionID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM job_descriptions WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete job description: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return jobdesc.ErrNotFound().WithDetail("jd_id", id)
	}
	return nil
}

func toDomainJD(row *dbJobDescription) (*jobdesc.JobDescription, error) {
	var parsed parse.JDParseResult
	if err := json.Unmarshal(row.Parsed, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal parsed payload for %s: %w", row.ID, err)
	}

	return &jobdesc.JobDescription{
		ID:        kernel.JobDescriptionID(row.ID),
		Title:     row.Title,
		Company:   row.Company,
		RawText:   row.RawText,
		Parsed:    parsed,
		CreatedAt: row.CreatedAt,
	}, nil
}
