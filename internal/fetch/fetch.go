// Package fetch downloads job descriptions from job board URLs.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxBodySize caps downloads at 2MB
	maxBodySize = 2 << 20
	// MinContentLength is the text length below which a page is assumed to be
	// rendered client side
	MinContentLength = 200
	userAgent        = "Mozilla/5.0 (compatible; Resumatch/1.0)"
)

var ErrNoContent = errors.New("no job description found on page")

// jobSelectors are tried in order; the first one present on the page wins
var jobSelectors = []string{
	".job-description",
	"#job-description",
	".jobs-description-content__text",
	".show-more-less-html__markup",
	".posting-content",
	".job-details",
	"#job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	"#content",
}

// noiseSelectors are removed before text is extracted
const noiseSelectors = "nav, footer, header, script, style, noscript, form, .cookie-banner, .sidebar"

// Renderer returns the HTML of a page after client side rendering
type Renderer func(ctx context.Context, url string) (string, error)

// Fetcher retrieves job description text from a URL
type Fetcher struct {
	Client     *http.Client
	Timeout    time.Duration
	UseBrowser bool
	Render     Renderer
	Logger     *slog.Logger
}

// New returns a Fetcher using client. When useBrowser is set, pages with too
// little static text are rendered in headless Chrome.
func New(client *http.Client, timeout time.Duration, useBrowser bool, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		Client:     client,
		Timeout:    timeout,
		UseBrowser: useBrowser,
		Render:     RenderWithBrowser,
		Logger:     logger,
	}
}

// Fetch downloads url and returns the job description text on it
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, fetchErr := f.get(ctx, url)
	if fetchErr != nil && !f.UseBrowser {
		return "", fetchErr
	}

	text := ""
	if fetchErr == nil {
		var err error
		if text, err = ExtractText(html); err != nil {
			return "", err
		}
	}

	if f.UseBrowser && f.Render != nil && len(text) < MinContentLength {
		f.Logger.Debug("static page too thin, rendering in browser",
			slog.String("url", url), slog.Int("length", len(text)))
		rendered, rerr := f.Render(ctx, url)
		if rerr != nil {
			if text != "" {
				f.Logger.Warn("browser render failed, keeping static text", slog.String("url", url), slog.Any("error", rerr))
				return text, nil
			}
			return "", fmt.Errorf("render %s: %w", url, rerr)
		}
		if rtext, rerr := ExtractText(rendered); rerr == nil && len(rtext) > len(text) {
			text = rtext
		}
	}

	if text == "" {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "", ErrNoContent
	}
	return text, nil
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	if f.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	// some sites block the default Go user agent
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("fetch URL: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(body), nil
}

// ExtractText returns the main text of a job posting page. Plain text input
// comes back with whitespace collapsed.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc.Find(noiseSelectors).Remove()

	var content *goquery.Selection
	for _, sel := range jobSelectors {
		if s := doc.Find(sel); s.Length() > 0 {
			content = s.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	text := strings.Join(strings.Fields(content.Text()), " ")
	if text == "" {
		if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
			text = strings.TrimSpace(desc)
		}
	}
	return text, nil
}
