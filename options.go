package viewerpdf

import (
	"log/slog"
	"time"
)

// DefaultHosts lists the viewer hosts a capture accepts by default.
var DefaultHosts = []string{"docs.google.com"}

// converterConfig holds internal configuration for a Converter.
type converterConfig struct {
	chromePath   string
	autoDownload bool
	remoteURL    string
	timeout      time.Duration
	settle       time.Duration
	noSandbox    bool
	headless     string
	allowedHosts []string
	pageSize     PageSize
	orientation  Orientation
	overlay      bool
	reporter     Reporter
	logger       *slog.Logger
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:      10 * time.Minute,
		settle:       2 * time.Second,
		headless:     "new",
		allowedHosts: DefaultHosts,
		pageSize:     A4,
		orientation:  Portrait,
	}
}

// Option configures a [Converter].
type Option func(*converterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *converterConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload downloads a compatible Chromium build if needed and
// uses it instead of a system browser.
func WithAutoDownload() Option {
	return func(c *converterConfig) {
		c.autoDownload = true
	}
}

// WithRemoteURL attaches to an already running browser through its
// DevTools websocket URL instead of launching one. Captures then run in
// the user's own tab, so pages they have scrolled through are available.
// The status overlay is enabled in this mode.
func WithRemoteURL(wsURL string) Option {
	return func(c *converterConfig) {
		c.remoteURL = wsURL
		c.overlay = true
	}
}

// WithTimeout sets the maximum duration for a single capture.
// Defaults to 10 minutes. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithSettle sets how long a freshly opened page is given to render its
// first pages before the capture starts. Defaults to 2 seconds.
func WithSettle(d time.Duration) Option {
	return func(c *converterConfig) {
		c.settle = d
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *converterConfig) {
		c.noSandbox = true
	}
}

// WithAllowedHosts restricts captures to pages whose host name contains
// one of hosts. Passing no hosts disables the check.
func WithAllowedHosts(hosts ...string) Option {
	return func(c *converterConfig) {
		c.allowedHosts = hosts
	}
}

// WithPageSize sets the output page size and orientation. Defaults to
// A4 portrait.
func WithPageSize(size PageSize, o Orientation) Option {
	return func(c *converterConfig) {
		c.pageSize = size
		c.orientation = o
	}
}

// WithOverlay shows run progress in a small overlay inside the page.
func WithOverlay(enabled bool) Option {
	return func(c *converterConfig) {
		c.overlay = enabled
	}
}

// WithReporter sends run progress to r.
func WithReporter(r Reporter) Option {
	return func(c *converterConfig) {
		c.reporter = r
	}
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *converterConfig) {
		c.logger = l
	}
}
