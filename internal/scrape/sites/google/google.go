package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/bastiwasti/jobsearch/internal/browser"
	"github.com/bastiwasti/jobsearch/internal/domain"
	"github.com/bastiwasti/jobsearch/internal/scrape/util"
)

const (
	siteName = "google"
	baseURL  = "https://www.google.com/about/careers/applications/"
)

type Config struct {
	MaxPages int
	Delay    time.Duration
}

// Site scrapes the Google careers SPA. Pagination is plain numbered
// pages via the page query parameter; the search itself is pinned to
// full-time roles in Germany.
type Site struct {
	cfg Config
}

func New(cfg Config) (*Site, error) {
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = 3
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 2 * time.Second
	}
	return &Site{cfg: cfg}, nil
}

func (s *Site) Descriptor() domain.Descriptor {
	return domain.Descriptor{Name: siteName, BaseURL: baseURL, NeedsBrowser: true}
}

func (s *Site) SearchURL() string {
	return baseURL + "jobs/results/?location=Germany&employment_type=FULL_TIME"
}

func (s *Site) Fetch(ctx context.Context, sess *browser.Session) (string, error) {
	page := sess.Page()
	var parts []string

	for n := 1; n <= s.cfg.MaxPages; n++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		u := s.SearchURL()
		if n > 1 {
			u = fmt.Sprintf("%s&page=%d", u, n)
		}
		if _, err := page.Goto(u, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateNetworkidle,
		}); err != nil {
			return "", fmt.Errorf("google goto page %d: %w", n, err)
		}
		page.WaitForTimeout(float64(s.cfg.Delay.Milliseconds()))
		// the result list renders lazily as the viewport moves
		browser.ScrollToLoad(page, 3, s.cfg.Delay/2)

		html, err := page.Content()
		if err != nil {
			return "", fmt.Errorf("google page content: %w", err)
		}
		parts = append(parts, html)
	}
	return strings.Join(parts, "\n"), nil
}

func (s *Site) Parse(html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("google parse: %w", err)
	}

	var out []domain.RawListing
	doc.Find("li.lLd3Je").Each(func(_ int, card *goquery.Selection) {
		title := util.CleanText(card.Find("h3.QJPWVe").First().Text())
		href, _ := card.Find("a[href]").First().Attr("href")
		if title == "" || href == "" {
			return
		}

		// job URLs carry search context in the query; strip it
		u := util.AbsURL(baseURL, href)
		if i := strings.Index(u, "?"); i >= 0 {
			u = u[:i]
		}

		var locs []string
		seen := map[string]bool{}
		card.Find("span.r0wTof").Each(func(_ int, span *goquery.Selection) {
			loc := strings.TrimSpace(strings.TrimPrefix(util.CleanText(span.Text()), ";"))
			if loc != "" && !seen[loc] {
				seen[loc] = true
				locs = append(locs, loc)
			}
		})

		experience := util.CleanText(card.Find(".VfPpkd-vQzf8d").First().Text())
		desc := util.CleanText(card.Find(".VfPpkd-IqDDtd").First().Text())

		out = append(out, domain.RawListing{
			Title:       title,
			Company:     "Google",
			Location:    strings.Join(locs, "; "),
			URL:         u,
			Description: desc,
			JobType:     "full-time", // search is restricted to FULL_TIME
			Source:      siteName,
			Extra: map[string]any{
				"experience_level": experience,
			},
		})
	})
	return out, nil
}
