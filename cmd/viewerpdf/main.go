// viewerpdf saves a document shown in a web document viewer as a PDF or
// as one PNG per page.
//
// Usage:
//
//	viewerpdf pdf [options] <url>
//	viewerpdf hires [options] <url>
//	viewerpdf images [options] <url>
//
// The viewer only renders pages that have been scrolled into view. For
// long documents start Chrome with --remote-debugging-port=9222, scroll
// through the document and pass --remote with the browser's websocket URL.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alexflint/go-arg"

	viewerpdf "github.com/porticus-lab/go-viewer-pdf"
)

type captureCmd struct {
	URL string `arg:"positional" help:"URL of the document; may be omitted with --remote"`
}

type args struct {
	PDF     *captureCmd `arg:"subcommand:pdf" help:"save the document as a PDF"`
	HighRes *captureCmd `arg:"subcommand:hires" help:"save a high-resolution PDF"`
	Images  *captureCmd `arg:"subcommand:images" help:"save every page as a PNG image"`

	Output    string        `arg:"-o,--output,env:VIEWERPDF_OUTPUT" default:"." help:"output directory"`
	Remote    string        `arg:"--remote,env:VIEWERPDF_REMOTE" help:"DevTools websocket URL of a running Chrome"`
	Chrome    string        `arg:"--chrome,env:VIEWERPDF_CHROME" help:"path to the Chrome executable"`
	Download  bool          `arg:"--download" help:"download Chromium if no browser is installed"`
	NoSandbox bool          `arg:"--no-sandbox" help:"disable the Chrome sandbox (needed as root)"`
	Timeout   time.Duration `arg:"--timeout" default:"10m" help:"maximum duration of the capture"`
	Settle    time.Duration `arg:"--settle" default:"2s" help:"time given to a freshly opened page to render"`
	Hosts     []string      `arg:"--host,separate" help:"allowed viewer host, repeatable (default docs.google.com)"`
	AnyHost   bool          `arg:"--any-host" help:"accept pages on any host"`
	Page      string        `arg:"--page" default:"a4" help:"output page size: a3, a4, a5, letter, legal, tabloid"`
	Landscape bool          `arg:"--landscape" help:"use landscape pages"`
	Overlay   bool          `arg:"--overlay" help:"show progress inside the page"`
	Stdout    bool          `arg:"--stdout" help:"write the PDF to standard output instead of a file"`
	Quiet     bool          `arg:"-q,--quiet" help:"no progress bar"`
	Verbose   bool          `arg:"-v,--verbose" help:"debug logging"`
	JSON      bool          `arg:"--json" help:"log as JSON"`
}

func (args) Description() string {
	return "viewerpdf - save documents from web document viewers\n"
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var a args
	p := arg.MustParse(&a)
	if p.Subcommand() == nil {
		p.Fail("missing command: pdf, hires or images")
	}

	logger := newLogger(a.Verbose, a.JSON)
	slog.SetDefault(logger)

	profile, cmd := a.profile()
	if cmd.URL == "" && a.Remote == "" {
		p.Fail("a document URL is required unless --remote is set")
	}
	if a.Stdout && profile.Images {
		p.Fail("--stdout only works with pdf and hires")
	}

	size, err := parsePageSize(a.Page)
	if err != nil {
		return err
	}

	opts, err := a.options(logger, size)
	if err != nil {
		return err
	}
	var reporter *barReporter
	if !a.Quiet {
		reporter = newBarReporter(os.Stderr)
		opts = append(opts, viewerpdf.WithReporter(reporter))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var saver viewerpdf.Saver = viewerpdf.DirSaver{Dir: a.Output}
	if a.Stdout {
		saver = viewerpdf.SaverFunc(func(string, []byte) error { return nil })
	}

	start := time.Now()
	res, err := viewerpdf.Capture(ctx, cmd.URL, profile, saver, opts...)
	if reporter != nil {
		reporter.Close()
	}
	if err != nil {
		if errors.Is(err, viewerpdf.ErrNoPages) {
			return fmt.Errorf("%w: scroll through the entire document first, then try again", err)
		}
		return err
	}

	if err := emit(os.Stdout, res, a.Stdout); err != nil {
		return err
	}
	logger.Info("capture finished",
		"pages", res.Pages(),
		"files", len(res.Files()),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

// emit writes the PDF itself to w in stdout mode, otherwise the names of
// the saved files.
func emit(w io.Writer, res *viewerpdf.Result, stdout bool) error {
	if stdout {
		_, err := res.WriteTo(w)
		return err
	}
	for _, name := range res.Files() {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

// profile returns the capture profile and arguments of the chosen command.
func (a *args) profile() (viewerpdf.Profile, *captureCmd) {
	switch {
	case a.HighRes != nil:
		return viewerpdf.HighRes, a.HighRes
	case a.Images != nil:
		return viewerpdf.Images, a.Images
	default:
		return viewerpdf.Baseline, a.PDF
	}
}

func (a *args) options(logger *slog.Logger, size viewerpdf.PageSize) ([]viewerpdf.Option, error) {
	orientation := viewerpdf.Portrait
	if a.Landscape {
		orientation = viewerpdf.Landscape
	}

	opts := []viewerpdf.Option{
		viewerpdf.WithLogger(logger),
		viewerpdf.WithTimeout(a.Timeout),
		viewerpdf.WithSettle(a.Settle),
		viewerpdf.WithPageSize(size, orientation),
	}
	switch {
	case a.AnyHost:
		opts = append(opts, viewerpdf.WithAllowedHosts())
	case len(a.Hosts) > 0:
		opts = append(opts, viewerpdf.WithAllowedHosts(a.Hosts...))
	}
	if a.Remote != "" {
		if a.Chrome != "" || a.Download {
			return nil, errors.New("--remote cannot be combined with --chrome or --download")
		}
		opts = append(opts, viewerpdf.WithRemoteURL(a.Remote))
	}
	if a.Chrome != "" {
		opts = append(opts, viewerpdf.WithChromePath(a.Chrome))
	}
	if a.Download {
		opts = append(opts, viewerpdf.WithAutoDownload())
	}
	if a.NoSandbox {
		opts = append(opts, viewerpdf.WithNoSandbox())
	}
	if a.Overlay {
		opts = append(opts, viewerpdf.WithOverlay(true))
	}
	return opts, nil
}

var pageSizes = map[string]viewerpdf.PageSize{
	"a3":      viewerpdf.A3,
	"a4":      viewerpdf.A4,
	"a5":      viewerpdf.A5,
	"letter":  viewerpdf.Letter,
	"legal":   viewerpdf.Legal,
	"tabloid": viewerpdf.Tabloid,
}

func parsePageSize(name string) (viewerpdf.PageSize, error) {
	size, ok := pageSizes[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return viewerpdf.PageSize{}, fmt.Errorf("unknown page size %q", name)
	}
	return size, nil
}

func newLogger(verbose, json bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if json {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
