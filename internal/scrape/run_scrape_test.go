package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiwasti/jobsearch/internal/browser"
	"github.com/bastiwasti/jobsearch/internal/domain"
)

// fakeSite needs no browser, so runs never touch playwright.
type fakeSite struct {
	name     string
	listings []domain.RawListing
	fetchErr error
	parseErr error
	panics   bool
}

func (f *fakeSite) Descriptor() domain.Descriptor {
	return domain.Descriptor{Name: f.name, BaseURL: "https://" + f.name + ".test", NeedsBrowser: false}
}

func (f *fakeSite) SearchURL() string { return "https://" + f.name + ".test/search" }

func (f *fakeSite) Fetch(ctx context.Context, sess *browser.Session) (string, error) {
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return "<html></html>", nil
}

func (f *fakeSite) Parse(html string) ([]domain.RawListing, error) {
	if f.panics {
		panic("selector went sideways")
	}
	if f.parseErr != nil {
		return nil, f.parseErr
	}
	return f.listings, nil
}

// register installs fakes in the adapter registry for one test.
func register(t *testing.T, sites ...*fakeSite) {
	t.Helper()
	ensureRegistry()
	for _, s := range sites {
		s := s
		registry[s.name] = func(sc SearchConfig) (Site, error) { return s, nil }
	}
	t.Cleanup(func() {
		for _, s := range sites {
			delete(registry, s.name)
		}
	})
}

func rawl(title, url string) domain.RawListing {
	return domain.RawListing{Title: title, Company: "Acme", URL: url, Source: "test"}
}

func TestRunScrape(t *testing.T) {
	siteA := &fakeSite{
		name: "sitea",
		listings: []domain.RawListing{
			rawl("Head of Data", "https://a.test/jobs/1"),
			rawl("Junior Analyst", "https://a.test/jobs/2"), // excluded
			rawl("Data Platform Lead", "https://a.test/jobs/3?utm_source=x"),
			rawl("Data Platform Lead", "https://a.test/jobs/3/"), // dup of 3
			rawl("BI Manager", "https://a.test/jobs/4"),          // pre-existing
		},
	}
	siteB := &fakeSite{name: "siteb", fetchErr: errors.New("blocked")}
	register(t, siteA, siteB)

	repo := newFakeRepo()
	repo.jobs["https://a.test/jobs/4"] = &domain.JobRecord{ID: 99, URL: "https://a.test/jobs/4"}

	run, err := RunScrape(context.Background(), repo, Options{
		Sites:   []string{"sitea", "siteb"},
		Trigger: "api",
	})
	require.NoError(t, err)

	assert.Equal(t, "completed", run.Status, "site failures never fail the run")
	assert.Equal(t, 2, run.SitesScraped)
	assert.Equal(t, 5, run.JobsFound)
	assert.Equal(t, 1, run.JobsExcluded)
	assert.Equal(t, 2, run.JobsNew)
	require.NotNil(t, run.CompletedAt)
	require.Len(t, run.Errors, 1)
	assert.Equal(t, "siteb", run.Errors[0].Site)
	assert.Contains(t, run.Errors[0].Error, "blocked")
	assert.Equal(t, "api", run.Trigger)

	assert.Equal(t, 1, repo.created)
	assert.Equal(t, 1, repo.updated)
	assert.NotNil(t, repo.jobs["https://a.test/jobs/1"])
	assert.NotNil(t, repo.jobs["https://a.test/jobs/3"])
	assert.Nil(t, repo.jobs["https://a.test/jobs/2"])
}

func TestRunScrapeConcurrent(t *testing.T) {
	siteA := &fakeSite{name: "conca", listings: []domain.RawListing{rawl("Data Lead", "https://a.test/j/1")}}
	siteB := &fakeSite{name: "concb", listings: []domain.RawListing{rawl("AI Director", "https://b.test/j/1")}}
	siteC := &fakeSite{name: "concc", listings: []domain.RawListing{rawl("Head of BI", "https://c.test/j/1")}}
	register(t, siteA, siteB, siteC)

	repo := newFakeRepo()
	run, err := RunScrape(context.Background(), repo, Options{
		Sites:       []string{"conca", "concb", "concc"},
		Concurrency: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, run.SitesScraped)
	assert.Equal(t, 3, run.JobsFound)
	assert.Equal(t, 3, run.JobsNew)
	assert.Empty(t, run.Errors)
	assert.Equal(t, "manual", run.Trigger)
}

func TestRunScrapeDryRun(t *testing.T) {
	siteA := &fakeSite{
		name: "drya",
		listings: []domain.RawListing{
			rawl("Head of Data", "https://a.test/jobs/1"),
			rawl("Junior Analyst", "https://a.test/jobs/2"),
		},
	}
	register(t, siteA)

	repo := newFakeRepo()
	run, err := RunScrape(context.Background(), repo, Options{
		Sites:  []string{"drya"},
		DryRun: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, run.JobsFound)
	assert.Equal(t, 1, run.JobsExcluded)
	assert.Equal(t, 0, run.JobsNew)
	assert.Equal(t, "completed", run.Status)

	// dry runs never touch persistence
	assert.Equal(t, 0, repo.created)
	assert.Equal(t, 0, repo.updated)
	assert.Empty(t, repo.jobs)
}

func TestRunScrapePanicBecomesSiteError(t *testing.T) {
	register(t, &fakeSite{name: "boom", panics: true})

	repo := newFakeRepo()
	run, err := RunScrape(context.Background(), repo, Options{Sites: []string{"boom"}})
	require.NoError(t, err)

	assert.Equal(t, "completed", run.Status)
	require.Len(t, run.Errors, 1)
	assert.Contains(t, run.Errors[0].Error, "panic")
}

func TestRunScrapeUnknownSite(t *testing.T) {
	repo := newFakeRepo()
	_, err := RunScrape(context.Background(), repo, Options{Sites: []string{"nope"}})
	require.Error(t, err)
	assert.Equal(t, 0, repo.created, "nothing persisted when site resolution fails")
}

func TestRunScrapeMaxSites(t *testing.T) {
	siteA := &fakeSite{name: "maxa", listings: []domain.RawListing{rawl("Data Lead", "https://a.test/m/1")}}
	siteB := &fakeSite{name: "maxb", listings: []domain.RawListing{rawl("AI Lead", "https://b.test/m/1")}}
	register(t, siteA, siteB)

	repo := newFakeRepo()
	run, err := RunScrape(context.Background(), repo, Options{
		Sites:    []string{"maxa", "maxb"},
		MaxSites: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, run.SitesScraped)
	assert.Equal(t, 1, run.JobsFound)
}
