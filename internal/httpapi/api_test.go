package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiwasti/jobsearch/internal/config"
	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/events"
	"github.com/bastiwasti/jobsearch/internal/scrape"
	"github.com/bastiwasti/jobsearch/internal/store"
)

type testAPI struct {
	db  *store.DB
	srv *httptest.Server
}

func newTestAPI(t *testing.T, runScrape func(context.Context, scrape.Repository, scrape.Options) (*domain.Run, error)) *testAPI {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	mux := NewMux(Deps{
		DB:           db,
		Hub:          events.NewHub(),
		Cfg:          config.Default(),
		ScrapeStatus: NewStatusTracker(),
		RunScrape:    runScrape,
	})
	srv := httptest.NewServer(Chain(mux, Recover))
	t.Cleanup(srv.Close)
	return &testAPI{db: db, srv: srv}
}

func (a *testAPI) get(t *testing.T, path string, out any) *http.Response {
	t.Helper()
	res, err := http.Get(a.srv.URL + path)
	require.NoError(t, err)
	defer res.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(res.Body).Decode(out))
	}
	return res
}

func seedJob(t *testing.T, db *store.DB, title, url, source string) *domain.JobRecord {
	t.Helper()
	rec := &domain.JobRecord{Title: title, Company: "Acme", URL: url, SourceSite: source}
	_, err := db.InsertJob(context.Background(), rec)
	require.NoError(t, err)
	return rec
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	var body map[string]any
	res := api.get(t, "/health", &body)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, true, body["ok"])
}

func TestJobsListAndGet(t *testing.T) {
	api := newTestAPI(t, nil)
	seedJob(t, api.db, "Head of Data", "https://x.test/1", "xing")
	rec := seedJob(t, api.db, "BI Manager", "https://a.test/1", "amazon")

	var jobs []domain.JobRecord
	res := api.get(t, "/jobs", &jobs)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Len(t, jobs, 2)

	jobs = nil
	api.get(t, "/jobs?source=amazon", &jobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "BI Manager", jobs[0].Title)

	var one domain.JobRecord
	res = api.get(t, "/jobs/"+itoa(rec.ID), &one)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "BI Manager", one.Title)

	res = api.get(t, "/jobs/99999", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	res = api.get(t, "/jobs/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJobsPatch(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := seedJob(t, api.db, "Head of Data", "https://x.test/1", "xing")

	body, _ := json.Marshal(map[string]any{
		"is_bookmarked": true,
		"notes":         "looks promising",
		"status":        domain.StatusInterested,
	})
	req, err := http.NewRequest(http.MethodPatch, api.srv.URL+"/jobs/"+itoa(rec.ID), bytes.NewReader(body))
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var got domain.JobRecord
	require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
	assert.True(t, got.IsBookmarked)
	assert.Equal(t, "looks promising", got.Notes)
	assert.Equal(t, domain.StatusInterested, got.Status)
}

func TestJobsMethodNotAllowed(t *testing.T) {
	api := newTestAPI(t, nil)
	req, err := http.NewRequest(http.MethodDelete, api.srv.URL+"/jobs", nil)
	require.NoError(t, err)
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestSitesList(t *testing.T) {
	api := newTestAPI(t, nil)
	var sites []domain.Descriptor
	res := api.get(t, "/sites", &sites)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, sites, 3)
	names := []string{sites[0].Name, sites[1].Name, sites[2].Name}
	assert.Equal(t, []string{"amazon", "google", "xing"}, names)
}

func TestRunsEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)
	run, err := api.db.CreateRun(context.Background(), "api")
	require.NoError(t, err)

	var runs []domain.Run
	res := api.get(t, "/runs", &runs)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, runs, 1)

	var one domain.Run
	res = api.get(t, "/runs/"+itoa(run.ID), &one)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "api", one.Trigger)

	res = api.get(t, "/runs/555", nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestScrapeRunAndStatus(t *testing.T) {
	fake := func(ctx context.Context, repo scrape.Repository, opts scrape.Options) (*domain.Run, error) {
		assert.Equal(t, "api", opts.Trigger)
		now := time.Now().UTC()
		return &domain.Run{ID: 7, Status: "completed", JobsNew: 4, CompletedAt: &now, Trigger: opts.Trigger}, nil
	}
	api := newTestAPI(t, fake)

	var st ScrapeStatus
	api.get(t, "/scrape/status", &st)
	assert.False(t, st.Running)

	res, err := http.Post(api.srv.URL+"/scrape/run", "application/json", bytes.NewReader([]byte(`{"sites":["xing"]}`)))
	require.NoError(t, err)
	defer res.Body.Close()
	var ack map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ack))
	assert.Equal(t, true, ack["ok"])

	require.Eventually(t, func() bool {
		var s ScrapeStatus
		api.get(t, "/scrape/status", &s)
		return !s.Running && s.LastNew == 4
	}, 2*time.Second, 20*time.Millisecond)

	var final ScrapeStatus
	api.get(t, "/scrape/status", &final)
	assert.Empty(t, final.LastError)
	assert.NotEmpty(t, final.LastOkAt)
}

func TestScrapeRunRejectsConcurrent(t *testing.T) {
	block := make(chan struct{})
	fake := func(ctx context.Context, repo scrape.Repository, opts scrape.Options) (*domain.Run, error) {
		<-block
		return &domain.Run{Status: "completed"}, nil
	}
	api := newTestAPI(t, fake)
	defer close(block)

	res, err := http.Post(api.srv.URL+"/scrape/run", "application/json", nil)
	require.NoError(t, err)
	res.Body.Close()

	res, err = http.Post(api.srv.URL+"/scrape/run", "application/json", nil)
	require.NoError(t, err)
	defer res.Body.Close()
	var ack map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&ack))
	assert.Equal(t, false, ack["ok"], "second run while busy is refused")
}

func TestStatusTrackerSingleStart(t *testing.T) {
	tr := NewStatusTracker()

	// racing triggers (API request vs scheduler tick) must yield
	// exactly one started run
	const n = 16
	var wg sync.WaitGroup
	started := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started <- tr.TryStart()
		}()
	}
	wg.Wait()
	close(started)

	wins := 0
	for ok := range started {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
	assert.True(t, tr.Snapshot().Running)

	tr.Finish(3, nil)
	st := tr.Snapshot()
	assert.False(t, st.Running)
	assert.Equal(t, 3, st.LastNew)
	assert.Empty(t, st.LastError)
	assert.True(t, tr.TryStart(), "tracker is free again after Finish")
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
