package scrape

import (
	"context"

	"github.com/bastiwasti/jobsearch/internal/domain"
)

// Repository is the narrow persistence surface the pipeline needs. The
// SQLite store implements it; tests substitute fakes.
type Repository interface {
	// FindJobByURL looks up a job by its normalized URL. Returns
	// (nil, nil) when no row exists.
	FindJobByURL(ctx context.Context, url string) (*domain.JobRecord, error)
	InsertJob(ctx context.Context, job *domain.JobRecord) (int64, error)
	CreateRun(ctx context.Context, trigger string) (*domain.Run, error)
	UpdateRun(ctx context.Context, run *domain.Run) error
}
