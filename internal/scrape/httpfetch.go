package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bastiwasti/jobsearch/internal/scrape/util"
)

const httpUserAgent = "jobsearch/1.0 (+local)"

// HTTPFetcher is the shared fetch path for adapters that do not need a
// rendering browser (Descriptor.NeedsBrowser == false). Requests are
// paced per host.
type HTTPFetcher struct {
	hc  *http.Client
	lim *util.HostLimiter
}

func NewHTTPFetcher(reqPerSec float64) *HTTPFetcher {
	if reqPerSec <= 0 {
		reqPerSec = 1
	}
	return &HTTPFetcher{
		hc:  &http.Client{Timeout: 20 * time.Second},
		lim: util.NewHostLimiter(reqPerSec, 1),
	}
}

// Get fetches one URL and returns the body as HTML.
func (f *HTTPFetcher) Get(ctx context.Context, url string) (string, error) {
	if err := f.lim.WaitURL(ctx, url); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", httpUserAgent)

	res, err := f.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return "", fmt.Errorf("get %s: status %d", url, res.StatusCode)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(b), nil
}
