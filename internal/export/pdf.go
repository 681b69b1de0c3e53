package export

import (
	"context"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/codebuildervaibhav/meeting-minutes/internal/types"
)

// pdf prints the HTML rendering through headless Chrome
func (e *Exporter) pdf(ctx context.Context, doc *Document) (*File, error) {
	html, err := HTML(doc)
	if err != nil {
		return nil, types.InternalError("failed to render document", err)
	}

	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if e.opts.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(e.opts.ChromePath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	ctx, cancel = chromedp.NewContext(allocCtx)
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	e.logger.Debug("printing pdf", zap.Int("html_bytes", len(html)))

	var buf []byte
	err = chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, types.InternalError("failed to print pdf", err)
	}

	return &File{
		Name:        fileName(doc.GeneratedAt, "pdf"),
		ContentType: "application/pdf",
		Data:        buf,
	}, nil
}
