package httpapi

import (
	"net/http"
	"time"
)

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{"ok": true, "time": time.Now().Format(time.RFC3339)})
	})

	// Jobs
	jh := JobsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:   jh.GetByPath,   // /jobs/{id}
		http.MethodPatch: jh.PatchByPath, // /jobs/{id}
	}))

	// Runs
	rh := RunsHandler{DB: d.DB}
	mux.HandleFunc("/runs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.List,
	}))
	mux.HandleFunc("/runs/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.GetByPath,
	}))

	// Sites
	sth := SitesHandler{}
	mux.HandleFunc("/sites", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sth.List,
	}))

	// Scrape
	sch := ScrapeHandler{
		DB:           d.DB,
		Cfg:          d.Cfg,
		ScrapeStatus: d.ScrapeStatus,
		Hub:          d.Hub,
		RunScrape:    d.RunScrape,
	}
	mux.HandleFunc("/scrape/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sch.Status,
	}))
	mux.HandleFunc("/scrape/run", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sch.Run,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
