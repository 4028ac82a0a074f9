package viewerpdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
)

// chromeEngine is a headless browser launched and owned by the library.
type chromeEngine struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	settle        time.Duration
}

func launchChrome(cfg converterConfig) (*chromeEngine, error) {
	chromePath := cfg.chromePath
	if chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("viewerpdf: starting browser: %w", err)
	}

	return &chromeEngine{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		settle:        cfg.settle,
	}, nil
}

// open loads pageURL in a new tab and waits for the viewer to settle.
func (e *chromeEngine) open(ctx context.Context, pageURL string) (Host, func(), error) {
	if pageURL == "" {
		return nil, nil, fmt.Errorf("viewerpdf: a page URL is required")
	}

	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	stop := context.AfterFunc(ctx, tabCancel)
	release := func() {
		stop()
		tabCancel()
	}

	if err := chromedp.Run(tabCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(e.settle),
	); err != nil {
		release()
		return nil, nil, fmt.Errorf("viewerpdf: opening %s: %w", pageURL, err)
	}
	return &chromeHost{tab: tabCtx}, release, nil
}

func (e *chromeEngine) close() {
	e.browserCancel()
	e.allocCancel()
}

// chromeHost reads a tab through chromedp.
type chromeHost struct {
	tab context.Context
}

func awaitPromise(p *runtime.EvaluateParams) *runtime.EvaluateParams {
	return p.WithAwaitPromise(true)
}

func (h *chromeHost) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return chromedp.Run(h.tab, actions...)
}

func (h *chromeHost) call(ctx context.Context, res any, fn string, args ...any) error {
	expr, err := callScript(fn, args...)
	if err != nil {
		return err
	}
	return h.run(ctx, chromedp.Evaluate(expr, res, awaitPromise))
}

func (h *chromeHost) Location(ctx context.Context) (string, error) {
	var loc string
	if err := h.run(ctx, chromedp.Location(&loc)); err != nil {
		return "", err
	}
	return loc, nil
}

func (h *chromeHost) Title(ctx context.Context) (string, error) {
	var title string
	if err := h.run(ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

func (h *chromeHost) Images(ctx context.Context) ([]PageImage, error) {
	var infos []imageInfo
	if err := h.call(ctx, &infos, listImagesJS); err != nil {
		return nil, err
	}
	return toPageImages(infos), nil
}

func (h *chromeHost) FetchImage(ctx context.Context, src string) ([]byte, error) {
	var encoded string
	if err := h.call(ctx, &encoded, fetchImageJS, src); err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (h *chromeHost) ShowStatus(ctx context.Context, msg string) error {
	var ok bool
	return h.call(ctx, &ok, showStatusJS, overlayID, msg)
}

func (h *chromeHost) RemoveStatus(ctx context.Context) error {
	var ok bool
	return h.call(ctx, &ok, removeStatusJS, overlayID)
}
