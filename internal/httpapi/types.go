package httpapi

import (
	"sync"
	"time"
)

// ScrapeStatus is the engine's last-run snapshot served at
// /scrape/status.
type ScrapeStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastNew   int    `json:"last_new"`
	Running   bool   `json:"running"`
}

// StatusTracker serializes run start/finish transitions so concurrent
// triggers (API request, scheduler tick) can never both start a run.
type StatusTracker struct {
	mu sync.Mutex
	st ScrapeStatus
}

func NewStatusTracker() *StatusTracker {
	return &StatusTracker{}
}

func (t *StatusTracker) Snapshot() ScrapeStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st
}

// TryStart marks a run in flight. Returns false when one already is.
func (t *StatusTracker) TryStart() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.st.Running {
		return false
	}
	t.st.Running = true
	t.st.LastRunAt = time.Now().Format(time.RFC3339)
	return true
}

// Finish records the outcome of the run started by TryStart and clears
// the running flag.
func (t *StatusTracker) Finish(jobsNew int, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := time.Now().Format(time.RFC3339)
	t.st.Running = false
	t.st.LastRunAt = now
	if err != nil {
		t.st.LastError = err.Error()
		return
	}
	t.st.LastError = ""
	t.st.LastOkAt = now
	t.st.LastNew = jobsNew
}
