// Package browser wraps headless Chrome behind a small Driver/Session
// interface so the scrape adapters can be tested against fakes and so every
// OS-level browser process is released on every exit path.
package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/chromedp"
)

// Session is one exclusive browser page. Sessions are never shared across
// concurrent searches: page state is not reentrant.
type Session interface {
	// Navigate loads url and, when waitSelector is non-empty, blocks until an
	// element matching it is present.
	Navigate(url, waitSelector string) error
	// PageHTML returns the rendered markup of the current page.
	PageHTML() (string, error)
	// Close tears the session down. Must be called on every exit path.
	Close()
}

// Driver creates sessions. The chromedp implementation spawns a headless
// Chrome per session; test fakes return canned markup.
type Driver interface {
	NewSession(ctx context.Context) (Session, error)
}

// ChromeDriver is the production Driver backed by chromedp.
type ChromeDriver struct {
	opts []chromedp.ExecAllocatorOption
}

// NewChromeDriver configures a headless Chrome driver.
func NewChromeDriver() *ChromeDriver {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	return &ChromeDriver{opts: opts}
}

// NewSession spawns a fresh Chrome context scoped to ctx. Cancelling ctx (for
// example on a per-source timeout) abandons the session; Close releases it
// explicitly.
func (d *ChromeDriver) NewSession(ctx context.Context) (Session, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, d.opts...)
	taskCtx, cancelTask := chromedp.NewContext(allocCtx)

	// Start the browser now so session creation fails fast if Chrome is absent.
	if err := chromedp.Run(taskCtx); err != nil {
		cancelTask()
		cancelAlloc()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &chromeSession{
		ctx: taskCtx,
		cancel: func() {
			cancelTask()
			cancelAlloc()
		},
	}, nil
}

type chromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *chromeSession) Navigate(url, waitSelector string) error {
	actions := []chromedp.Action{chromedp.Navigate(url)}
	if waitSelector != "" {
		actions = append(actions, chromedp.WaitReady(waitSelector, chromedp.ByQuery))
	}
	if err := chromedp.Run(s.ctx, actions...); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

func (s *chromeSession) PageHTML() (string, error) {
	var html string
	if err := chromedp.Run(s.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("reading page markup: %w", err)
	}
	return html, nil
}

func (s *chromeSession) Close() {
	s.cancel()
}
