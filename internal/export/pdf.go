package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Engine turns rendered print HTML into artifact bytes.
type Engine interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// A4 paper geometry in inches (210mm x 297mm).
const (
	paperWidthIn  = 8.27
	paperHeightIn = 11.69
)

// ChromeEngine renders HTML to PDF with a headless Chrome instance.
// Requires Chrome/Chromium on the system; CHROME_PATH overrides discovery.
type ChromeEngine struct {
	Timeout time.Duration
}

// NewChromeEngine returns an engine with a sane generation timeout.
func NewChromeEngine() *ChromeEngine {
	return &ChromeEngine{Timeout: 60 * time.Second}
}

// RenderPDF writes the HTML to a temp file, loads it in headless Chrome and
// prints it to an A4 PDF.
func (e *ChromeEngine) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		opts = append(opts, chromedp.ExecPath(p))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := e.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
	defer cancelTimeout()

	tmpDir, err := os.MkdirTemp("", "cv-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "cv.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write render input: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(browserCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidthIn).
				WithPaperHeight(paperHeightIn).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("pdf generation failed: %w", err)
	}
	return pdf, nil
}
