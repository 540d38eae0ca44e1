package fetch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const renderTimeout = 45 * time.Second

// showMoreSelectors expand collapsed descriptions on common job boards
var showMoreSelectors = []string{
	`button[aria-label*="Show more"]`,
	`button[aria-label*="see more"]`,
	`.show-more-less-html__button`,
}

// RenderWithBrowser loads url in headless Chrome and returns the rendered HTML.
// Requires Chrome or Chromium on the host.
func RenderWithBrowser(ctx context.Context, url string) (string, error) {
	ctx, cancel := newBrowserContext(ctx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, renderTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(2*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			for _, sel := range showMoreSelectors {
				// missing buttons are expected
				_ = chromedp.Click(sel, chromedp.ByQuery, chromedp.AtLeast(0)).Do(ctx)
			}
			return nil
		}),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("browser: %w", err)
	}
	return html, nil
}

// newBrowserContext creates a headless browser context with quiet logging
func newBrowserContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		msg := fmt.Sprintf(format, v...)
		if strings.Contains(msg, "could not unmarshal event") {
			return
		}
		slog.Debug("chromedp", slog.String("msg", msg))
	}))

	return ctx, func() {
		cancelCtx()
		cancelAlloc()
	}
}
