// Own the one browsing session a run gets: serialized navigation,
// paced requests, teardown guaranteed exactly once

package crawl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-jobtrends-automation/utils"
)

// Driver abstracts the browser page behind a session so tests can
// substitute a fake.
type Driver interface {
	//Goto navigates to url and returns the rendered page content
	Goto(url string) (string, error)

	//Close tears the browser stack down
	Close() error
}

// Options configures a session.
type Options struct {
	Headless bool
	//DelayMin/DelayMax bound the random pause between consecutive navigations
	DelayMin time.Duration
	DelayMax time.Duration
}

// Session is a single stateful browsing session. A browser page has one
// current document, so navigation calls are serialized; the session must
// not be shared with a second concurrent run.
type Session struct {
	driver   Driver
	delayMin time.Duration
	delayMax time.Duration

	mu        sync.Mutex
	navigated bool

	closeOnce sync.Once
	closeErr  error
}

// Open launches a headless browser and wraps it in a Session. The caller
// must Close it, including on error paths.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not launch playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("could not launch browser: %w", err)
	}

	page, err := browser.NewPage()
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("could not create page: %w", err)
	}

	return newSession(&playwrightDriver{pw: pw, browser: browser, page: page}, opts), nil
}

func newSession(d Driver, opts Options) *Session {
	return &Session{
		driver:   d,
		delayMin: opts.DelayMin,
		delayMax: opts.DelayMax,
	}
}

// Navigate loads url and returns the page content. Calls are serialized and
// a random delay from the configured window separates consecutive
// navigations, to stay under the source's anti-bot radar.
func (s *Session) Navigate(ctx context.Context, url string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if s.navigated && s.delayMax > 0 {
		if err := utils.RandomDelay(ctx, s.delayMin, s.delayMax); err != nil {
			return "", err
		}
	}
	s.navigated = true

	return s.driver.Goto(url)
}

// Close tears the session down. Safe to call more than once and from defer
// on every error path; only the first call reaches the driver.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.driver.Close()
	})
	return s.closeErr
}

type playwrightDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

func (d *playwrightDriver) Goto(url string) (string, error) {
	if _, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return "", err
	}
	return d.page.Content()
}

func (d *playwrightDriver) Close() error {
	var errs []error
	if err := d.page.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.browser.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := d.pw.Stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
