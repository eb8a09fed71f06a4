package candidate

import (
	"context"

	"github.com/hirelens/hirelens/pkg/kernel"
)

type Repository interface {
	// Create stores a new candidate projection.
	Create(ctx context.Context, c *Candidate) error

	// GetByID retrieves a candidate by ID.
	GetByID(ctx context.Context, id kernel.CandidateID) (*Candidate, error)

	// GetByEmail retrieves a candidate by email, the projection's natural key.
	GetByEmail(ctx context.Context, email string) (*Candidate, error)

	// List retrieves candidates ordered most-recent-first.
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Candidate], error)

	// Delete removes a candidate.
	Delete(ctx context.Context, id kernel.CandidateID) error
}
