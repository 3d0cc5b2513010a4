package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bastiwasti/jobsearch/internal/config"
	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/events"
	"github.com/bastiwasti/jobsearch/internal/scrape"
	"github.com/bastiwasti/jobsearch/internal/store"
)

type ScrapeHandler struct {
	DB           *store.DB
	Cfg          config.Config
	ScrapeStatus *StatusTracker
	Hub          *events.Hub
	RunScrape    func(ctx context.Context, repo scrape.Repository, opts scrape.Options) (*domain.Run, error)
}

type runRequest struct {
	Sites  []string `json:"sites"`
	DryRun bool     `json:"dry_run"`
}

func (h ScrapeHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.ScrapeStatus.Snapshot())
}

// Run kicks off a scrape in the background. One run at a time; the
// status endpoint tells the UI when it finished.
func (h ScrapeHandler) Run(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req) // empty body = all sites
	}

	if !h.ScrapeStatus.TryStart() {
		writeJSON(w, map[string]any{"ok": false, "msg": "already running"})
		return
	}

	go func() {
		opts := scrape.Options{
			Sites:  req.Sites,
			DryRun: req.DryRun,
			Search: scrape.SearchConfig{
				Keywords:    h.Cfg.Search.Keywords,
				Locations:   h.Cfg.Search.Locations,
				MaxSearches: h.Cfg.Search.MaxSearches,
				MaxPages:    h.Cfg.Search.MaxPages,
			},
			MaxSites:    h.Cfg.Scrape.MaxSites,
			Concurrency: h.Cfg.Scrape.Concurrency,
			Headless:    h.Cfg.Scrape.Headless,
			Trigger:     "api",
		}
		run, err := h.RunScrape(context.Background(), h.DB, opts)
		if err != nil {
			h.ScrapeStatus.Finish(0, err)
			return
		}
		h.ScrapeStatus.Finish(run.JobsNew, nil)
		h.Hub.Publish(events.New(events.TypeRunCompleted, map[string]any{
			"run_id":   run.ID,
			"jobs_new": run.JobsNew,
		}))
		if run.JobsNew > 0 {
			h.Hub.Publish(events.New(events.TypeJobCreated, nil))
		}
	}()

	writeJSON(w, map[string]any{"ok": true})
}
