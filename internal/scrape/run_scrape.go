package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bastiwasti/jobsearch/internal/browser"
	"github.com/bastiwasti/jobsearch/internal/domain"
)

// Options configures one scrape run.
type Options struct {
	Sites       []string // site names; empty = all registered
	Search      SearchConfig
	DryRun      bool   // scrape and filter but never touch the repository
	MaxSites    int    // cap on sites per run, 0 = no cap
	Trigger     string // manual (default), api, scheduled
	Concurrency int    // sites in flight at once; <=1 = sequential
	Headless    bool
}

type siteOutcome struct {
	name     string
	kept     []domain.Listing
	found    int
	excluded int
	err      error
}

// RunScrape drives the whole pipeline across the targeted sites: one
// shared browser, a fresh isolated session per site, fetch → parse →
// normalize → exclusion filter → dedup store. A site that fails is
// recorded on the run and the rest continue; the run itself always
// finishes "completed". Counters and inserts happen only in the
// drain loop below, so they need no locking even when sites run
// concurrently.
func RunScrape(ctx context.Context, repo Repository, opts Options) (*domain.Run, error) {
	var sites []Site
	if len(opts.Sites) > 0 {
		for _, name := range opts.Sites {
			s, err := Get(name, opts.Search)
			if err != nil {
				return nil, err
			}
			sites = append(sites, s)
		}
	} else {
		sites = All(opts.Search)
	}
	if len(sites) == 0 {
		return nil, errors.New("no sites registered")
	}
	if opts.MaxSites > 0 && len(sites) > opts.MaxSites {
		sites = sites[:opts.MaxSites]
	}

	if opts.Trigger == "" {
		opts.Trigger = "manual"
	}

	var run *domain.Run
	if opts.DryRun {
		run = &domain.Run{
			StartedAt: time.Now().UTC(),
			Status:    "running",
			Trigger:   opts.Trigger,
		}
	} else {
		r, err := repo.CreateRun(ctx, opts.Trigger)
		if err != nil {
			return nil, fmt.Errorf("create run: %w", err)
		}
		run = r
	}
	run.SitesScraped = len(sites)

	eng := browser.NewEngine(opts.Headless)
	defer func() {
		// every exit path releases the browser process
		if err := eng.Stop(); err != nil {
			log.Printf("[scrape] browser stop: %v", err)
		}
	}()

	limit := opts.Concurrency
	if limit < 1 {
		limit = 1
	}

	results := make(chan siteOutcome, len(sites))
	var g errgroup.Group
	g.SetLimit(limit)
	for _, site := range sites {
		site := site
		g.Go(func() error {
			results <- scrapeSite(ctx, eng, site)
			return nil
		})
	}
	_ = g.Wait()
	close(results)

	for out := range results {
		if out.err != nil {
			log.Printf("[scrape:%s] error: %v", out.name, out.err)
			run.Errors = append(run.Errors, domain.RunError{Site: out.name, Error: out.err.Error()})
			continue
		}
		run.JobsFound += out.found
		run.JobsExcluded += out.excluded
		if opts.DryRun {
			continue
		}
		run.JobsNew += StoreListings(ctx, repo, out.kept, run.ID, "css")
	}

	now := time.Now().UTC()
	run.CompletedAt = &now
	run.Status = "completed" // site failures never fail the run
	if !opts.DryRun {
		if err := repo.UpdateRun(ctx, run); err != nil {
			return run, fmt.Errorf("finalize run: %w", err)
		}
	}

	log.Printf("[scrape] done: sites=%d found=%d excluded=%d new=%d errors=%d",
		run.SitesScraped, run.JobsFound, run.JobsExcluded, run.JobsNew, len(run.Errors))
	return run, nil
}

// scrapeSite runs one site's full fetch/parse/filter cycle on its own
// session. The session is closed when the work unit ends, success or
// not, and a panicking adapter is converted into a site failure so it
// cannot take the run down.
func scrapeSite(ctx context.Context, eng *browser.Engine, site Site) (out siteOutcome) {
	d := site.Descriptor()
	out.name = d.Name

	defer func() {
		if r := recover(); r != nil {
			out.err = fmt.Errorf("panic: %v", r)
		}
	}()

	var sess *browser.Session
	if d.NeedsBrowser {
		// lazy, idempotent: first browser site launches the process
		if err := eng.Start(); err != nil {
			out.err = err
			return out
		}
		s, err := eng.NewSession()
		if err != nil {
			out.err = err
			return out
		}
		sess = s
		defer func() { _ = sess.Close() }()
	}

	log.Printf("[scrape:%s] fetching %s", d.Name, site.SearchURL())
	html, err := site.Fetch(ctx, sess)
	if err != nil {
		out.err = fmt.Errorf("fetch: %w", err)
		return out
	}

	raws, err := site.Parse(html)
	if err != nil {
		out.err = fmt.Errorf("parse: %w", err)
		return out
	}
	out.found = len(raws)

	for _, raw := range raws {
		l := Canonicalize(raw)
		if !PassesExclusion(l.Title, l.Description, l.Location, l.Company) {
			out.excluded++
			continue
		}
		out.kept = append(out.kept, l)
	}
	log.Printf("[scrape:%s] parsed=%d excluded=%d", d.Name, out.found, out.excluded)
	return out
}
