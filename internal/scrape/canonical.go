package scrape

import (
	"strings"

	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/scrape/util"
)

// Canonicalize runs the field normalizers over a parsed listing. When a
// site left the typed fields empty it falls back to classifying the
// broader text the card did carry.
func Canonicalize(raw domain.RawListing) domain.Listing {
	l := domain.Listing{
		Title:       util.CleanText(raw.Title),
		Company:     util.CleanText(raw.Company),
		Location:    util.CleanText(raw.Location),
		URL:         util.NormalizeURL(raw.URL),
		Description: strings.TrimSpace(raw.Description),
		Salary:      util.CleanText(raw.Salary),
		Source:      raw.Source,
		Extra:       raw.Extra,
	}

	l.JobType = util.ClassifyJobType(raw.JobType)
	if l.JobType == domain.JobTypeUnknown {
		l.JobType = util.ClassifyJobType(raw.Title)
	}

	l.Remote = util.ClassifyRemote(raw.Remote)
	if l.Remote == domain.RemoteModeUnknown {
		l.Remote = util.ClassifyRemote(raw.Location + " " + raw.Title)
	}

	posted := raw.PostedDate
	if posted == "" {
		if v, ok := raw.Extra["posted_date"].(string); ok {
			posted = v
		}
	}
	l.PostedDate = util.ParsePostedDate(posted)

	return l
}
