package viewerpdf

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
)

// Converter captures document viewer pages through Chrome.
//
// A Converter owns one browser, launched headless or attached to a
// running instance (see [WithRemoteURL]), which is started in the
// background by [NewConverter] and reused across captures. Only one
// capture runs at a time; a second concurrent call fails with
// [ErrRunInProgress].
//
// Call [Converter.Close] when the Converter is no longer needed to release
// browser resources.
type Converter struct {
	cfg    converterConfig
	log    *slog.Logger
	engine *engineLoader

	mu      sync.Mutex
	closed  bool
	running bool
}

// NewConverter creates a Converter with the given options and starts its
// browser. It returns without waiting for the browser; use
// [Converter.Ready] to wait explicitly.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}
	if w, h := cfg.pageSize.dimensions(cfg.orientation); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("viewerpdf: invalid page size %vx%v", w, h)
	}

	log := cfg.logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	start := func() (engine, error) {
		if cfg.remoteURL != "" {
			log.Debug("connecting to browser", "url", cfg.remoteURL)
			e, err := connectRemote(cfg)
			if err != nil {
				return nil, err
			}
			return e, nil
		}
		log.Debug("launching browser", "path", cfg.chromePath, "autoDownload", cfg.autoDownload)
		e, err := launchChrome(cfg)
		if err != nil {
			return nil, err
		}
		return e, nil
	}

	return &Converter{
		cfg:    cfg,
		log:    log,
		engine: loadEngine(start),
	}, nil
}

// Ready waits until the browser is available. It returns an error
// wrapping [ErrEngineUnavailable] if the browser could not be started.
func (c *Converter) Ready(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	_, err := c.engine.wait(ctx)
	return err
}

// Close releases all resources held by the Converter, including the
// browser process. Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()

	c.engine.shutdown()
	return nil
}

// Capture captures the viewer page at pageURL with profile p and hands the
// output to saver. When attached to a running browser, pageURL selects
// the open tab and may be empty to use the first tab on an allowed host.
func (c *Converter) Capture(ctx context.Context, pageURL string, p Profile, saver Saver) (*Result, error) {
	if err := c.begin(); err != nil {
		return nil, err
	}
	defer c.end()

	if pageURL != "" {
		if _, err := url.ParseRequestURI(pageURL); err != nil {
			return nil, fmt.Errorf("viewerpdf: invalid URL %q: %w", pageURL, err)
		}
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	eng, err := c.engine.wait(ctx)
	if err != nil {
		if c.cfg.reporter != nil {
			c.cfg.reporter.Status(msgEngineFailed)
		}
		c.log.Error("browser unavailable", "error", err)
		return nil, err
	}

	host, release, err := eng.open(ctx, pageURL)
	if err != nil {
		return nil, err
	}
	defer release()

	return c.job(p, saver).Run(ctx, host)
}

func (c *Converter) job(p Profile, saver Saver) *Job {
	return &Job{
		Profile:      p,
		PageSize:     c.cfg.pageSize,
		Orientation:  c.cfg.orientation,
		AllowedHosts: c.cfg.allowedHosts,
		Saver:        saver,
		Reporter:     c.cfg.reporter,
		Overlay:      c.cfg.overlay,
		Logger:       c.log,
	}
}

// begin marks a capture as running.
func (c *Converter) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if c.running {
		return ErrRunInProgress
	}
	c.running = true
	return nil
}

func (c *Converter) end() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

// --- Package-level convenience functions ---

// Capture captures a viewer page using a temporary [Converter]. This is
// convenient for one-off captures. For repeated use, create a [Converter]
// with [NewConverter] to reuse the browser instance.
func Capture(ctx context.Context, pageURL string, p Profile, saver Saver, opts ...Option) (*Result, error) {
	conv, err := NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	defer conv.Close()
	return conv.Capture(ctx, pageURL, p, saver)
}
