package browser

import (
	"errors"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// ErrNotStarted is returned when a session is requested before Start.
// That is a programming error in the caller, not a transient condition.
var ErrNotStarted = errors.New("browser engine not started")

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Engine owns one shared Chromium process for the duration of a scrape
// run and hands out isolated sessions to site adapters. Start is
// idempotent, Stop is safe even if Start never ran, and NewSession may
// be called from concurrent goroutines.
type Engine struct {
	headless bool

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
}

func NewEngine(headless bool) *Engine {
	return &Engine{headless: headless}
}

func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return nil
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	b, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(e.headless),
	})
	if err != nil {
		_ = pw.Stop()
		return fmt.Errorf("launch chromium: %w", err)
	}
	e.pw = pw
	e.browser = b
	return nil
}

// NewSession creates a fresh browser context with its own cookie jar
// and storage. Closing one session never affects another or the shared
// browser process.
func (e *Engine) NewSession() (*Session, error) {
	e.mu.Lock()
	b := e.browser
	e.mu.Unlock()
	if b == nil {
		return nil, ErrNotStarted
	}

	ctx, err := b.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(userAgent),
		Viewport:  &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}
	page, err := ctx.NewPage()
	if err != nil {
		_ = ctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return &Session{ctx: ctx, page: page}, nil
}

func (e *Engine) Stop() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var first error
	if e.browser != nil {
		if err := e.browser.Close(); err != nil && first == nil {
			first = err
		}
		e.browser = nil
	}
	if e.pw != nil {
		if err := e.pw.Stop(); err != nil && first == nil {
			first = err
		}
		e.pw = nil
	}
	return first
}

// Session is an isolated browsing context lent to one adapter for one
// work unit. The orchestrator closes it when the work unit ends.
type Session struct {
	ctx  playwright.BrowserContext
	page playwright.Page
}

func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) Close() error {
	if s == nil || s.ctx == nil {
		return nil
	}
	return s.ctx.Close()
}
