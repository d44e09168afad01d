package google

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"job-scraper/config"
	"job-scraper/scraper"
	"job-scraper/utils"
)

// NextState is what the next-page control looked like after a page was read.
type NextState int

const (
	NextMissing NextState = iota
	NextDisabled
	NextReady
)

func (s NextState) String() string {
	switch s {
	case NextReady:
		return "ready"
	case NextDisabled:
		return "disabled"
	default:
		return "missing"
	}
}

// Page is the part of a browser tab the paginator drives.
type Page interface {
	Navigate(url string) error
	WaitReady(selector string, timeout time.Duration) error
	HTML() (string, error)
	NextControl(selector string) (NextState, error)
	ClickNext(selector string) error
	URL() string
}

// Session owns one headless Chrome process and one tab in it.
type Session struct {
	allocCancel context.CancelFunc
	tabCtx      context.Context
	tabCancel   context.CancelFunc
	closeOnce   sync.Once
}

// OpenSession launches Chrome. Cancelling ctx kills the browser.
func OpenSession(ctx context.Context, cfg *config.Config) (*Session, error) {
	utils.Info("Launching Chrome browser...")
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, utils.BrowserOpts(cfg.Headless, cfg.BrowserUserAgent)...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	utils.Success("Browser ready")
	return &Session{
		allocCancel: allocCancel,
		tabCtx:      tabCtx,
		tabCancel:   tabCancel,
	}, nil
}

// WithSession opens a session, hands it to fn and closes it however fn exits,
// panics included.
func WithSession(ctx context.Context, cfg *config.Config, fn func(*Session) error) error {
	s, err := OpenSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	return fn(s)
}

// Close shuts the browser down. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		utils.Info("Closing browser...")
		if err := chromedp.Cancel(s.tabCtx); err != nil && !errors.Is(err, context.Canceled) {
			utils.Debug("graceful browser close failed: %v", err)
		}
		s.tabCancel()
		s.allocCancel()
	})
}

func (s *Session) Navigate(url string) error {
	if err := chromedp.Run(s.tabCtx, chromedp.Navigate(url), utils.HideWebDriver()); err != nil {
		return &scraper.FetchError{URL: url, Err: err}
	}
	return nil
}

// WaitReady blocks until selector is present in the DOM or timeout passes.
func (s *Session) WaitReady(selector string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.tabCtx, timeout)
	defer cancel()

	err := chromedp.Run(ctx, chromedp.WaitReady(selector, chromedp.ByQuery))
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &scraper.TimeoutError{Selector: selector, Wait: timeout}
	}
	return fmt.Errorf("wait for %q: %w", selector, err)
}

func (s *Session) HTML() (string, error) {
	var html string
	if err := chromedp.Run(s.tabCtx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("read rendered page: %w", err)
	}
	return html, nil
}

func (s *Session) URL() string {
	var location string
	if err := chromedp.Run(s.tabCtx, chromedp.Location(&location)); err != nil {
		return ""
	}
	return location
}

const nextControlJS = `(() => {
	const el = document.querySelector(%s);
	if (!el) return "missing";
	const style = window.getComputedStyle(el);
	const hidden = el.offsetParent === null || style.visibility === "hidden" || style.display === "none";
	const disabled = el.hasAttribute("disabled") || el.getAttribute("aria-disabled") === "true";
	return hidden || disabled ? "disabled" : "ready";
})()`

const clickJS = `(() => {
	const el = document.querySelector(%s);
	if (!el) return false;
	el.click();
	return true;
})()`

func (s *Session) NextControl(selector string) (NextState, error) {
	var state string
	if err := chromedp.Run(s.tabCtx, chromedp.Evaluate(fmt.Sprintf(nextControlJS, jsString(selector)), &state)); err != nil {
		return NextMissing, fmt.Errorf("inspect next-page control: %w", err)
	}

	switch state {
	case "ready":
		return NextReady, nil
	case "disabled":
		return NextDisabled, nil
	default:
		return NextMissing, nil
	}
}

// ClickNext clicks through script, which also works when an overlay covers the control.
func (s *Session) ClickNext(selector string) error {
	var clicked bool
	if err := chromedp.Run(s.tabCtx, chromedp.Evaluate(fmt.Sprintf(clickJS, jsString(selector)), &clicked)); err != nil {
		return fmt.Errorf("click next-page control: %w", err)
	}
	if !clicked {
		return fmt.Errorf("next-page control %q vanished before click", selector)
	}
	return nil
}

func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
