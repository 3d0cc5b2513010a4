package util

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostLimiterPacesPerHost(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	ctx := context.Background()

	// distinct hosts get independent buckets, so neither blocks
	start := time.Now()
	require.NoError(t, hl.WaitURL(ctx, "https://a.test/x"))
	require.NoError(t, hl.WaitURL(ctx, "https://b.test/x"))
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestHostLimiterCancelled(t *testing.T) {
	hl := NewHostLimiter(0.001, 1) // effectively frozen after the first token
	ctx := context.Background()
	require.NoError(t, hl.WaitURL(ctx, "https://a.test/x"))

	cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.Error(t, hl.WaitURL(cctx, "https://a.test/y"))
}

func TestHostLimiterUnparsableURL(t *testing.T) {
	hl := NewHostLimiter(1000, 1)
	assert.NoError(t, hl.WaitURL(context.Background(), "::not a url::"))
}
