package scrape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesSorted(t *testing.T) {
	assert.Equal(t, []string{"amazon", "google", "xing"}, Names())
}

func TestGetKnownSite(t *testing.T) {
	s, err := Get("xing", SearchConfig{Keywords: []string{"data"}})
	require.NoError(t, err)
	d := s.Descriptor()
	assert.Equal(t, "xing", d.Name)
	assert.True(t, d.NeedsBrowser)
}

func TestGetUnknownSiteListsKnown(t *testing.T) {
	_, err := Get("monster", SearchConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown site "monster"`)
	assert.Contains(t, err.Error(), "amazon, google, xing")
}

func TestAllBuildsEveryAdapter(t *testing.T) {
	sites := All(SearchConfig{})
	require.Len(t, sites, 3)
	// All iterates Names(), so adapter order is deterministic
	assert.Equal(t, "amazon", sites[0].Descriptor().Name)
	assert.Equal(t, "google", sites[1].Descriptor().Name)
	assert.Equal(t, "xing", sites[2].Descriptor().Name)
}
