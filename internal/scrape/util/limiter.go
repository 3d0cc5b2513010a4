package util

import (
	"context"
	"net/url"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter rate-limits outbound requests per hostname so plain-HTTP
// adapters stay polite to the sites they hit.
type HostLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	limit rate.Limit
	burst int
}

func NewHostLimiter(reqPerSec float64, burst int) *HostLimiter {
	return &HostLimiter{
		hosts: make(map[string]*rate.Limiter),
		limit: rate.Limit(reqPerSec),
		burst: burst,
	}
}

func (hl *HostLimiter) limiterFor(host string) *rate.Limiter {
	hl.mu.Lock()
	defer hl.mu.Unlock()
	if lim, ok := hl.hosts[host]; ok {
		return lim
	}
	lim := rate.NewLimiter(hl.limit, hl.burst)
	hl.hosts[host] = lim
	return lim
}

// WaitURL blocks until the host of raw may be hit again.
func (hl *HostLimiter) WaitURL(ctx context.Context, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return hl.limiterFor("_").Wait(ctx)
	}
	return hl.limiterFor(u.Host).Wait(ctx)
}
