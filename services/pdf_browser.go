package services

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// PDF engine names
const (
	PDFEngineNative  = "native"
	PDFEngineBrowser = "browser"
)

// RenderBrowserPDF renders HTML content to PDF using headless Chrome. It is
// the high-fidelity engine for templates that rely on full CSS; the native
// engine (RenderPDF) needs no browser and is the default.
func RenderBrowserPDF(htmlContent string, opts PDFOptions, chromePath string) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.DisableGPU,
	)
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	defer allocCancel()

	ctx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	var paperWidth, paperHeight float64
	switch opts.PageSize {
	case "legal":
		paperWidth, paperHeight = 8.5, 14.0
	case "A4":
		paperWidth, paperHeight = 8.27, 11.69
	default: // letter
		paperWidth, paperHeight = 8.5, 11.0
	}
	if opts.PageOrientation == "landscape" {
		paperWidth, paperHeight = paperHeight, paperWidth
	}

	marginTop := float64(opts.MarginTop) / 72.0
	marginBottom := float64(opts.MarginBottom) / 72.0
	marginLeft := float64(opts.MarginLeft) / 72.0
	marginRight := float64(opts.MarginRight) / 72.0

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.Sleep(100),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(marginTop).
				WithMarginBottom(marginBottom).
				WithMarginLeft(marginLeft).
				WithMarginRight(marginRight).
				WithPrintBackground(true).
				WithDisplayHeaderFooter(false).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return pdfBuf, nil
}

// GenerateDocumentPDF renders substituted document HTML to PDF bytes with
// the selected engine. The native engine flattens the HTML and paginates it
// itself; the browser engine wraps it with the legal stylesheet and prints
// through headless Chrome.
func GenerateDocumentPDF(content string, opts PDFOptions, engine, chromePath string) ([]byte, error) {
	if engine == PDFEngineBrowser {
		return RenderBrowserPDF(WrapHTMLForPDF(content), opts, chromePath)
	}
	flat := Flatten(content)
	return RenderPDF(flat.Text, flat.Spans, opts)
}
