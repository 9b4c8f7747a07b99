package service

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"distribuidora-mauri/models"
)

// ChromeEngine prints the server's own catalog render page to PDF with
// headless Chrome. It is the alternative export engine, selected with
// EXPORT_ENGINE=chrome; the HTML layout and the native layout share the
// same page grouping, so both engines honor the catalog pagination.
type ChromeEngine struct {
	baseURL string
}

// NewChromeEngine creates a new ChromeEngine.
func NewChromeEngine(baseURL string) *ChromeEngine {
	return &ChromeEngine{baseURL: baseURL}
}

// Ensure ChromeEngine implements CatalogEngine
var _ CatalogEngine = (*ChromeEngine)(nil)

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// GeneratePDF navigates to the catalog render page for the selection
// and prints it to an A4 PDF.
func (e *ChromeEngine) GeneratePDF(ctx context.Context, selection ExportSelection, _ []models.CatalogPage) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
		chromedp.Flag("enable-print-preview", true),
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	renderURL := fmt.Sprintf("%s/catalog/render?category=%s&q=%s",
		e.baseURL,
		url.QueryEscape(string(selection.Category)),
		url.QueryEscape(selection.Term),
	)

	var pdfBuf []byte

	// 794px is 210mm at 96 DPI; the large viewport height keeps every
	// page of the catalog rendered before printing.
	err := chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 5000),
		chromedp.Navigate(renderURL),
		chromedp.WaitReady("body"),
		chromedp.Sleep(1500*time.Millisecond),
		// Wait for fonts and images to load before printing.
		chromedp.Evaluate(`
			(function() {
				return Promise.all([
					document.fonts.ready,
					Promise.all(Array.from(document.querySelectorAll('img')).map(img => {
						return new Promise((resolve) => {
							if (img.complete && img.naturalWidth > 0 && img.naturalHeight > 0) {
								resolve();
								return;
							}
							const timeout = setTimeout(() => resolve(), 5000);
							img.onload = () => { clearTimeout(timeout); resolve(); };
							img.onerror = () => { clearTimeout(timeout); resolve(); };
						});
					}))
				]);
			})();
		`, nil),
		chromedp.Sleep(500*time.Millisecond),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			// A4: 8.27" x 11.69". Page breaks come from the CSS
			// page-break-after of the render layout.
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				WithMarginRight(0).
				Do(ctx)
			return err
		}),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}
