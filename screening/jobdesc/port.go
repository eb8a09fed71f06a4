package jobdesc

import (
	"context"

	"github.com/hirelens/hirelens/pkg/kernel"
)

type Repository interface {
	Create(ctx context.Context, jd *JobDescription) error
	GetByID(ctx context.Context, id kernel.JobDescriptionID) (*JobDescription, error)
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[JobDescription], error)
	Delete(ctx context.Context, id kernel.JobDescriptionID) error
}
