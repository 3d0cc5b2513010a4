package domain

import "time"

// Job workflow statuses (user-mutable via the review API).
const (
	StatusNew          = "new"
	StatusInterested   = "interested"
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusRejected     = "rejected"
	StatusOffer        = "offer"
)

// JobRecord is a persisted listing. Rows are created only by the scrape
// pipeline; afterwards only the review fields (bookmark, hidden, notes,
// status, applied) change. Rows are never deleted, only hidden.
type JobRecord struct {
	ID               int64          `json:"id"`
	RunID            int64          `json:"run_id,omitempty"`
	Title            string         `json:"title"`
	Company          string         `json:"company"`
	Location         string         `json:"location"`
	URL              string         `json:"url"`
	Description      string         `json:"description,omitempty"`
	Salary           string         `json:"salary,omitempty"`
	JobType          JobType        `json:"job_type,omitempty"`
	Remote           RemoteMode     `json:"remote,omitempty"`
	PostedDate       *time.Time     `json:"posted_date,omitempty"`
	SourceSite       string         `json:"source_site"`
	ExtractionMethod string         `json:"extraction_method"`
	RawData          map[string]any `json:"raw_data,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`

	IsBookmarked bool       `json:"is_bookmarked"`
	IsHidden     bool       `json:"is_hidden"`
	Notes        string     `json:"notes,omitempty"`
	AppliedAt    *time.Time `json:"applied_at,omitempty"`
	Status       string     `json:"status"`
	RefinedAt    *time.Time `json:"refined_at,omitempty"`
}

// RunError records one failed site within a run.
type RunError struct {
	Site  string `json:"site"`
	Error string `json:"error"`
}

// Run is one execution of the scrape pipeline. A run with failed sites
// still completes; failures live in Errors.
type Run struct {
	ID           int64      `json:"id"`
	StartedAt    time.Time  `json:"started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	Status       string     `json:"status"` // running, completed
	SitesScraped int        `json:"sites_scraped"`
	JobsFound    int        `json:"jobs_found"`
	JobsExcluded int        `json:"jobs_excluded"`
	JobsNew      int        `json:"jobs_new"`
	Errors       []RunError `json:"errors,omitempty"`
	Trigger      string     `json:"trigger"` // manual, api, scheduled
}

// Descriptor is static registration metadata for one site adapter.
type Descriptor struct {
	Name         string `json:"name"`
	BaseURL      string `json:"base_url"`
	NeedsBrowser bool   `json:"needs_browser"`
}
