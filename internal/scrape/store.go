package scrape

import (
	"context"
	"log"
	"time"

	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/scrape/util"
)

// StoreListings deduplicates listings against persisted records by
// normalized URL and inserts the new ones, tagged with the owning run
// and extraction method. A failing item is logged and skipped so the
// rest of the batch still lands. Returns the number of rows actually
// inserted.
func StoreListings(ctx context.Context, repo Repository, listings []domain.Listing, runID int64, method string) int {
	added := 0
	for _, l := range listings {
		u := util.NormalizeURL(l.URL)
		if u == "" {
			log.Printf("[store:%s] skipping listing without url title=%q", l.Source, l.Title)
			continue
		}

		existing, err := repo.FindJobByURL(ctx, u)
		if err != nil {
			log.Printf("[store:%s] lookup error url=%q: %v", l.Source, u, err)
			continue
		}
		if existing != nil {
			// already known; the expected, silent dedup outcome
			continue
		}

		rec := &domain.JobRecord{
			RunID:            runID,
			Title:            l.Title,
			Company:          l.Company,
			Location:         l.Location,
			URL:              u,
			Description:      l.Description,
			Salary:           l.Salary,
			JobType:          l.JobType,
			Remote:           l.Remote,
			PostedDate:       l.PostedDate,
			SourceSite:       l.Source,
			ExtractionMethod: method,
			RawData:          l.Extra,
			CreatedAt:        time.Now().UTC(),
			Status:           domain.StatusNew,
		}
		if _, err := repo.InsertJob(ctx, rec); err != nil {
			log.Printf("[store:%s] insert error url=%q: %v", l.Source, u, err)
			continue
		}
		added++
	}
	return added
}
