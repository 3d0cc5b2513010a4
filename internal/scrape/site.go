package scrape

import (
	"context"

	"github.com/bastiwasti/jobsearch/internal/browser"
	"github.com/bastiwasti/jobsearch/internal/domain"
)

// Site is the contract every job-site adapter implements. Adapters are
// added and removed without touching the orchestrator or each other;
// all per-site quirks (pagination, load-more clicks, search fan-out)
// live behind Fetch.
//
// Fetch performs all network and page interaction and returns the
// loaded HTML, concatenating page content when pagination is involved.
// Sites whose descriptor has NeedsBrowser=false receive a nil session
// and do their own HTTP fetching.
//
// Parse extracts every listing it can find from that HTML. It applies
// no business filtering (that is the exclusion filter's job) and skips
// malformed cards instead of failing the whole page; an error is only
// returned when the document itself is unreadable.
type Site interface {
	Descriptor() domain.Descriptor
	SearchURL() string
	Fetch(ctx context.Context, sess *browser.Session) (string, error)
	Parse(html string) ([]domain.RawListing, error)
}

// SearchConfig carries per-run search parameters into adapter
// factories. Which keys matter depends on the site.
type SearchConfig struct {
	Keywords    []string
	Locations   []string
	MaxSearches int // cap on search fan-out, 0 = no cap
	MaxPages    int // cap on pagination depth, 0 = adapter default
}
