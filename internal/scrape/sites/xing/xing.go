package xing

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/bastiwasti/jobsearch/internal/browser"
	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/scrape/util"
)

const (
	siteName = "xing"
	baseURL  = "https://www.xing.com/jobs/search"
)

type Config struct {
	Keywords    []string
	Cities      []string
	MaxSearches int           // cap on the keyword x location fan-out, 0 = all
	MaxLoads    int           // "Mehr" clicks per search, ~20 jobs each
	Delay       time.Duration // settle time after navigation / click
}

// Site scrapes XING job search. The board paginates via an AJAX "Mehr"
// button, so Fetch captures page content after every click and
// concatenates the snapshots.
type Site struct {
	cfg Config
}

func New(cfg Config) (*Site, error) {
	if len(cfg.Keywords) == 0 {
		cfg.Keywords = []string{"data", "ai", "analytics"}
	}
	if len(cfg.Cities) == 0 {
		cfg.Cities = []string{"Cologne", "Dusseldorf", "Dortmund", "Essen", "Bonn"}
	}
	if cfg.MaxLoads <= 0 {
		cfg.MaxLoads = 5
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 2 * time.Second
	}
	return &Site{cfg: cfg}, nil
}

func (s *Site) Descriptor() domain.Descriptor {
	return domain.Descriptor{Name: siteName, BaseURL: baseURL, NeedsBrowser: true}
}

func (s *Site) SearchURL() string { return baseURL }

func (s *Site) Fetch(ctx context.Context, sess *browser.Session) (string, error) {
	page := sess.Page()
	var parts []string

	type search struct{ location, workplace string }
	searches := make([]search, 0, len(s.cfg.Cities)+1)
	for _, city := range s.cfg.Cities {
		searches = append(searches, search{location: city})
	}
	searches = append(searches, search{workplace: "full-remote"})

	done := 0
	for _, sr := range searches {
		for _, kw := range s.cfg.Keywords {
			if s.cfg.MaxSearches > 0 && done >= s.cfg.MaxSearches {
				return strings.Join(parts, "\n"), nil
			}
			if err := ctx.Err(); err != nil {
				return "", err
			}

			u := baseURL + "?keywords=" + url.QueryEscape(kw)
			if sr.location != "" {
				u += "&location=" + url.QueryEscape(sr.location)
			} else {
				u += "&workplace=" + sr.workplace
			}

			if _, err := page.Goto(u, playwright.PageGotoOptions{
				WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			}); err != nil {
				return "", fmt.Errorf("xing goto %s: %w", u, err)
			}
			page.WaitForTimeout(float64(s.cfg.Delay.Milliseconds()))
			browser.DismissCookieBanner(page)

			// "Mehr" appends ~20 jobs per click; one snapshot at
			// the end carries the whole accumulated list
			browser.ClickLoadMore(page, `button:has-text("Mehr")`, s.cfg.MaxLoads-1, s.cfg.Delay)

			html, err := page.Content()
			if err != nil {
				return "", fmt.Errorf("xing page content: %w", err)
			}
			parts = append(parts, html)

			done++
			browser.RandomDelay(500, 1500)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func (s *Site) Parse(html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("xing parse: %w", err)
	}

	var out []domain.RawListing
	doc.Find(`[data-testid="job-search-result"]`).Each(func(_ int, card *goquery.Selection) {
		title := util.CleanText(card.Find("h2, h3").First().Text())
		href, _ := card.Find("a").First().Attr("href")
		if title == "" || href == "" {
			return // malformed card, keep going with siblings
		}

		var company, location, salary, posted string
		lines := strings.Split(card.Text(), "\n")
		for i, line := range lines {
			line = util.CleanText(line)
			if line == "" || line == title {
				continue
			}
			low := strings.ToLower(line)
			switch {
			case s.looksLikeLocation(line):
				location = line
			case strings.Contains(line, "€") && (strings.Contains(line, "–") || strings.Contains(line, "-")):
				salary = line
			case strings.Contains(low, "ago") || strings.Contains(low, "vor ") ||
				strings.Contains(low, "gestern") || strings.Contains(low, "heute"):
				posted = line
			case company == "" && i < len(lines)/2:
				company = line
			}
		}

		out = append(out, domain.RawListing{
			Title:      title,
			Company:    company,
			Location:   location,
			URL:        util.AbsURL("https://www.xing.com", href),
			Salary:     salary,
			PostedDate: posted,
			Source:     siteName,
			Extra: map[string]any{
				"salary":      salary,
				"posted_date": posted,
			},
		})
	})
	return out, nil
}

func (s *Site) looksLikeLocation(line string) bool {
	for _, city := range s.cfg.Cities {
		if strings.Contains(line, city) {
			return true
		}
	}
	return strings.Contains(line, "Remote") ||
		strings.Contains(line, "Berlin") ||
		strings.Contains(line, "München")
}
