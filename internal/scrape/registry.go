package scrape

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/bastiwasti/jobsearch/internal/scrape/sites/amazon"
	"github.com/bastiwasti/jobsearch/internal/scrape/sites/google"
	"github.com/bastiwasti/jobsearch/internal/scrape/sites/xing"
)

// Factory builds a site adapter for one run.
type Factory func(sc SearchConfig) (Site, error)

// The registry is an explicit table so the available adapter set is
// statically auditable. Populated once on first use, immutable after.
var (
	registryOnce sync.Once
	registry     map[string]Factory
)

func builtinFactories() map[string]Factory {
	return map[string]Factory{
		"xing": func(sc SearchConfig) (Site, error) {
			return xing.New(xing.Config{
				Keywords:    sc.Keywords,
				Cities:      sc.Locations,
				MaxSearches: sc.MaxSearches,
				MaxLoads:    sc.MaxPages,
			})
		},
		"amazon": func(sc SearchConfig) (Site, error) {
			return amazon.New(amazon.Config{MaxLoads: sc.MaxPages})
		},
		"google": func(sc SearchConfig) (Site, error) {
			return google.New(google.Config{MaxPages: sc.MaxPages})
		},
	}
}

func ensureRegistry() {
	registryOnce.Do(func() {
		registry = builtinFactories()
	})
}

// Get builds the named site adapter. Unknown names list what is
// registered so the operator can see the valid set.
func Get(name string, sc SearchConfig) (Site, error) {
	ensureRegistry()
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown site %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	s, err := factory(sc)
	if err != nil {
		return nil, fmt.Errorf("init site %q: %w", name, err)
	}
	return s, nil
}

// All builds every registered adapter. A factory that fails excludes
// only that adapter.
func All(sc SearchConfig) []Site {
	ensureRegistry()
	out := make([]Site, 0, len(registry))
	for _, name := range Names() {
		s, err := registry[name](sc)
		if err != nil {
			log.Printf("[registry] warning: skipping site %q: %v", name, err)
			continue
		}
		out = append(out, s)
	}
	return out
}

// Names returns registered site names, sorted.
func Names() []string {
	ensureRegistry()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
