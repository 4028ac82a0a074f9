package viewerpdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-rod/rod"
)

// remoteEngine is a browser the user started with remote debugging
// enabled. The library attaches to the user's tabs and never closes them.
type remoteEngine struct {
	browser *rod.Browser
	cancel  context.CancelFunc
	hosts   []string
}

func connectRemote(cfg converterConfig) (*remoteEngine, error) {
	ctx, cancel := context.WithCancel(context.Background())
	browser := rod.New().Context(ctx).ControlURL(cfg.remoteURL)
	if err := browser.Connect(); err != nil {
		cancel()
		return nil, fmt.Errorf("viewerpdf: connecting to %s: %w", cfg.remoteURL, err)
	}
	return &remoteEngine{
		browser: browser,
		cancel:  cancel,
		hosts:   cfg.allowedHosts,
	}, nil
}

// open finds the open tab showing pageURL. With no URL it picks the first
// tab on an allowed host.
func (e *remoteEngine) open(ctx context.Context, pageURL string) (Host, func(), error) {
	pages, err := e.browser.Context(ctx).Pages()
	if err != nil {
		return nil, nil, fmt.Errorf("viewerpdf: listing tabs: %w", err)
	}
	pattern := e.tabPattern(pageURL)
	page, err := pages.FindByURL(pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("viewerpdf: no open tab matches %q: %w", pattern, err)
	}
	return &remoteHost{page: page}, func() {}, nil
}

func (e *remoteEngine) tabPattern(pageURL string) string {
	if pageURL != "" {
		return regexp.QuoteMeta(pageURL)
	}
	if len(e.hosts) == 0 {
		return "."
	}
	quoted := make([]string, len(e.hosts))
	for i, h := range e.hosts {
		quoted[i] = regexp.QuoteMeta(h)
	}
	return strings.Join(quoted, "|")
}

func (e *remoteEngine) close() {
	e.cancel()
}

// remoteHost reads a user's tab through rod.
type remoteHost struct {
	page *rod.Page
}

func (h *remoteHost) Location(ctx context.Context) (string, error) {
	info, err := h.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.URL, nil
}

func (h *remoteHost) Title(ctx context.Context) (string, error) {
	info, err := h.page.Context(ctx).Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

func (h *remoteHost) Images(ctx context.Context) ([]PageImage, error) {
	obj, err := h.page.Context(ctx).Eval(listImagesJS)
	if err != nil {
		return nil, err
	}
	var infos []imageInfo
	if err := obj.Value.Unmarshal(&infos); err != nil {
		return nil, fmt.Errorf("viewerpdf: decoding image list: %w", err)
	}
	return toPageImages(infos), nil
}

func (h *remoteHost) FetchImage(ctx context.Context, src string) ([]byte, error) {
	obj, err := h.page.Context(ctx).Eval(fetchImageJS, src)
	if err != nil {
		return nil, err
	}
	return base64.StdEncoding.DecodeString(obj.Value.Str())
}

func (h *remoteHost) ShowStatus(ctx context.Context, msg string) error {
	_, err := h.page.Context(ctx).Eval(showStatusJS, overlayID, msg)
	return err
}

func (h *remoteHost) RemoveStatus(ctx context.Context) error {
	_, err := h.page.Context(ctx).Eval(removeStatusJS, overlayID)
	return err
}
