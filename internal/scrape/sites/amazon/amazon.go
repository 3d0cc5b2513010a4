package amazon

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
	siteName = "amazon"
	baseURL  = "https://www.amazon.jobs/en/search"
)

type Config struct {
	MaxLoads int           // load-more rounds, 10 jobs each
	Delay    time.Duration // the board needs generous settle time
}

// Site scrapes amazon.jobs. Primary pagination is a load-more button;
// when the board renders numbered page buttons instead, Fetch falls
// back to clicking those.
type Site struct {
	cfg Config
}

func New(cfg Config) (*Site, error) {
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

	if _, err := page.Goto(s.SearchURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		return "", fmt.Errorf("amazon goto: %w", err)
	}
	page.WaitForTimeout(float64(s.cfg.Delay.Milliseconds()))
	browser.DismissCookieBanner(page)

	html, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("amazon page content: %w", err)
	}
	parts := []string{html}

	for i := 0; i < s.cfg.MaxLoads-1; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		btn := page.Locator(".load-more").First()
		if err := btn.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(3000),
		}); err != nil {
			break
		}
		if err := btn.Click(); err != nil {
			break
		}
		page.WaitForTimeout(float64(s.cfg.Delay.Milliseconds()))
		if html, err := page.Content(); err == nil {
			parts = append(parts, html)
		}
	}

	// no load-more seen: the board may use numbered page buttons
	if len(parts) == 1 {
		for _, n := range fallbackPages(s.cfg.MaxLoads) {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			btn := page.Locator(fmt.Sprintf(`.page-button:has-text("%d")`, n)).First()
			if err := btn.WaitFor(playwright.LocatorWaitForOptions{
				State:   playwright.WaitForSelectorStateVisible,
				Timeout: playwright.Float(3000),
			}); err != nil {
				break
			}
			if err := btn.Click(); err != nil {
				break
			}
			page.WaitForTimeout(float64(s.cfg.Delay.Milliseconds()))
			if html, err := page.Content(); err == nil {
				parts = append(parts, html)
			}
		}
	}

	return strings.Join(parts, "\n"), nil
}

// fallbackPages is the numbered-button click sequence, depth-matched to
// the load-more path (MaxLoads-1 extra snapshots either way).
func fallbackPages(maxLoads int) []int {
	var pages []int
	for n := 2; n <= maxLoads; n++ {
		pages = append(pages, n)
	}
	return pages
}

func (s *Site) Parse(html string) ([]domain.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("amazon parse: %w", err)
	}

	var out []domain.RawListing
	doc.Find(".job[data-job-id]").Each(func(_ int, card *goquery.Selection) {
		jobID, _ := card.Attr("data-job-id")

		titleLink := card.Find(".job-title a.job-link").First()
		title := util.CleanText(titleLink.Text())
		href, _ := titleLink.Attr("href")
		if title == "" || href == "" {
			return
		}

		location := util.CleanText(card.Find(".location-and-id ul li:first-child").First().Text())
		posted := util.CleanText(card.Find(".posting-date").First().Text())
		updated := util.CleanText(card.Find(".meta.time-elapsed").First().Text())
		desc := util.CleanText(card.Find(".description .qualifications-preview").First().Text())

		out = append(out, domain.RawListing{
			Title:       title,
			Company:     "Amazon",
			Location:    location,
			URL:         util.AbsURL(baseURL, href),
			Description: desc,
			PostedDate:  posted,
			Source:      siteName,
			Extra: map[string]any{
				"job_id":       jobID,
				"posted_date":  posted,
				"updated_time": updated,
			},
		})
	})
	return out, nil
}
