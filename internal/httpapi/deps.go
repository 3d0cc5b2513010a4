package httpapi

import (
	"context"

	"github.com/bastiwasti/jobsearch/internal/config"
	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/events"
	"github.com/bastiwasti/jobsearch/internal/scrape"
	"github.com/bastiwasti/jobsearch/internal/store"
)

type Deps struct {
	DB  *store.DB
	Hub *events.Hub
	Cfg config.Config

	// ScrapeStatus guards the one-run-at-a-time invariant
	ScrapeStatus *StatusTracker

	// Scrape entrypoint (injected for testability)
	RunScrape func(ctx context.Context, repo scrape.Repository, opts scrape.Options) (*domain.Run, error)
}
