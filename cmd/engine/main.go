package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/bastiwasti/jobsearch/internal/config"
	"github.com/bastiwasti/jobsearch/internal/events"
	"github.com/bastiwasti/jobsearch/internal/httpapi"
	"github.com/bastiwasti/jobsearch/internal/scheduler"
	"github.com/bastiwasti/jobsearch/internal/scrape"
	"github.com/bastiwasti/jobsearch/internal/store"
)

func main() {
	// Data dir: env wins (a wrapper app can pass one), else local folder.
	dataDir := os.Getenv("JOBSEARCH_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir. A second instance would race on SQLite
	// and double-scrape, so refuse to start.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	held, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock %s: %v", lock.Path(), err)
	}
	if !held {
		log.Fatalf("another engine is already running on %s", dataDir)
	}
	defer lock.Unlock()

	cfgPath := filepath.Join(dataDir, "config.yml")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[config] %s not found, using defaults", cfgPath)
			cfg = config.Default()
		} else {
			log.Fatalf("config load failed (%s): %v", cfgPath, err)
		}
	}
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = dataDir
	}

	dbPath := filepath.Join(dataDir, "jobsearch.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := store.Migrate(db.Pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hub := events.NewHub()
	tracker := httpapi.NewStatusTracker()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:           db,
		Hub:          hub,
		Cfg:          cfg,
		ScrapeStatus: tracker,
		RunScrape:    scrape.RunScrape,
	})

	if cfg.Scrape.ScheduleMinutes > 0 {
		interval := time.Duration(cfg.Scrape.ScheduleMinutes) * time.Minute
		go scheduler.Every(context.Background(), interval, "scrape", func(ctx context.Context) error {
			return runScheduled(ctx, db, cfg, hub, tracker)
		})
	}

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)

	srv := &http.Server{
		Handler:           httpapi.Chain(mux, httpapi.AccessLog, httpapi.Recover, httpapi.Cors),
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Fatal(srv.Serve(ln))
}

// runScheduled mirrors the API trigger but skips quietly when a run
// is already in flight.
func runScheduled(ctx context.Context, db *store.DB, cfg config.Config, hub *events.Hub, tracker *httpapi.StatusTracker) error {
	if !tracker.TryStart() {
		log.Printf("[scheduler] scrape already running, skipping tick")
		return nil
	}

	run, err := scrape.RunScrape(ctx, db, scrape.Options{
		Search: scrape.SearchConfig{
			Keywords:    cfg.Search.Keywords,
			Locations:   cfg.Search.Locations,
			MaxSearches: cfg.Search.MaxSearches,
			MaxPages:    cfg.Search.MaxPages,
		},
		Sites:       cfg.Scrape.Sites,
		MaxSites:    cfg.Scrape.MaxSites,
		Concurrency: cfg.Scrape.Concurrency,
		Headless:    cfg.Scrape.Headless,
		Trigger:     "scheduled",
	})
	if err != nil {
		tracker.Finish(0, err)
		return err
	}

	tracker.Finish(run.JobsNew, nil)
	hub.Publish(events.New(events.TypeRunCompleted, map[string]any{
		"run_id":   run.ID,
		"jobs_new": run.JobsNew,
	}))
	if run.JobsNew > 0 {
		hub.Publish(events.New(events.TypeJobCreated, nil))
	}
	return nil
}
