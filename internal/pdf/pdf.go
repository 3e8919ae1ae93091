// Package pdf prints rendered contract pages to PDF with a headless browser.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single print job.
const DefaultTimeout = 30 * time.Second

// A4 paper size in inches.
const (
	paperWidth  = 8.27
	paperHeight = 11.69
	margin      = 0.4
)

// ErrEmptyDocument is returned when there is no HTML to print.
var ErrEmptyDocument = errors.New("pdf: empty document")

// Renderer prints an HTML document to PDF bytes.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints through a headless Chrome/Chromium started per job.
// Requires Chrome/Chromium to be installed on the system.
type ChromeRenderer struct {
	timeout  time.Duration
	execPath string
	logger   *zap.Logger
}

// Option configures a ChromeRenderer.
type Option func(*ChromeRenderer)

// WithTimeout sets the per-job timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(r *ChromeRenderer) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithExecPath points at a specific browser binary.
func WithExecPath(path string) Option {
	return func(r *ChromeRenderer) {
		r.execPath = path
	}
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *ChromeRenderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewChromeRenderer returns a renderer with the given options applied.
func NewChromeRenderer(opts ...Option) *ChromeRenderer {
	r := &ChromeRenderer{timeout: DefaultTimeout, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Timeout returns the per-job timeout.
func (r *ChromeRenderer) Timeout() time.Duration {
	return r.timeout
}

// Render loads html into a blank page and prints it on A4 with backgrounds.
func (r *ChromeRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	if html == "" {
		return nil, ErrEmptyDocument
	}

	start := time.Now()
	r.logger.Debug("starting headless browser", zap.Int("html_bytes", len(html)))

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return fmt.Errorf("failed to get frame tree: %w", err)
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = data
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}

	r.logger.Debug("printed pdf",
		zap.Int("pdf_bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}
