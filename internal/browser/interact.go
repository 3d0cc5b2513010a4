package browser

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

var cookieSelectors = []string{
	"button[id*='accept']",
	"button[class*='accept']",
	"button[data-testid*='accept']",
	"button:has-text('Accept')",
	"button:has-text('Akzeptieren')",
	"button:has-text('Alle akzeptieren')",
	"button:has-text('Accept all')",
	"button:has-text('I agree')",
}

// DismissCookieBanner clicks the first visible consent button it finds.
// Fails silently; a stuck banner just means less page content.
func DismissCookieBanner(page playwright.Page) {
	for _, sel := range cookieSelectors {
		btn := page.Locator(sel).First()
		visible, err := btn.IsVisible()
		if err != nil || !visible {
			continue
		}
		if err := btn.Click(playwright.LocatorClickOptions{
			Timeout: playwright.Float(1000),
		}); err == nil {
			return
		}
	}
}

// ScrollToLoad scrolls to the bottom repeatedly to trigger lazy
// loading, stopping early once the page height stops growing.
func ScrollToLoad(page playwright.Page, maxScrolls int, delay time.Duration) {
	for i := 0; i < maxScrolls; i++ {
		prev, _ := page.Evaluate("document.body.scrollHeight")
		if _, err := page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
			return
		}
		page.WaitForTimeout(float64(delay.Milliseconds()))
		next, _ := page.Evaluate("document.body.scrollHeight")
		if fmt.Sprint(next) == fmt.Sprint(prev) {
			return
		}
	}
}

// ClickLoadMore clicks a load-more button until it stops appearing or
// maxClicks is reached.
func ClickLoadMore(page playwright.Page, selector string, maxClicks int, delay time.Duration) {
	for i := 0; i < maxClicks; i++ {
		btn := page.Locator(selector).First()
		if err := btn.WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateVisible,
			Timeout: playwright.Float(2000),
		}); err != nil {
			return
		}
		if err := btn.Click(); err != nil {
			return
		}
		page.WaitForTimeout(float64(delay.Milliseconds()))
	}
}

// RandomDelay sleeps between min and max milliseconds to keep request
// pacing irregular.
func RandomDelay(minMs, maxMs int) {
	time.Sleep(time.Duration(rand.Intn(maxMs-minMs+1)+minMs) * time.Millisecond)
}
