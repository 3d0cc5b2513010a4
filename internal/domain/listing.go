package domain

import "time"

// JobType is the canonical employment-type classification.
type JobType string

const (
	JobTypeFullTime   JobType = "full-time"
	JobTypePartTime   JobType = "part-time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
	JobTypeUnknown    JobType = ""
)

// RemoteMode is the canonical remote-work classification.
type RemoteMode string

const (
	RemoteModeRemote  RemoteMode = "remote"
	RemoteModeHybrid  RemoteMode = "hybrid"
	RemoteModeOnSite  RemoteMode = "on-site"
	RemoteModeUnknown RemoteMode = ""
)

// RawListing is what a site parser extracts from a page, before any
// normalization. JobType, Remote and PostedDate hold whatever text the
// page showed ("Vollzeit", "vor 3 Tagen", ...). Extra is an open bag of
// site-specific fields; values must stay flat scalars
// (string/number/bool) so persistence stays well-typed.
type RawListing struct {
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	Salary      string
	JobType     string
	Remote      string
	PostedDate  string
	Source      string
	Extra       map[string]any
}

// Listing is a RawListing after field normalization: classified job
// type and remote mode, resolved posted date, canonical URL.
type Listing struct {
	Title       string
	Company     string
	Location    string
	URL         string
	Description string
	Salary      string
	JobType     JobType
	Remote      RemoteMode
	PostedDate  *time.Time
	Source      string
	Extra       map[string]any
}
