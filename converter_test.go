package viewerpdf_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	viewerpdf "github.com/porticus-lab/go-viewer-pdf"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func newTestConverter(t *testing.T, opts ...viewerpdf.Option) *viewerpdf.Converter {
	t.Helper()
	skipIfNoChrome(t)
	opts = append([]viewerpdf.Option{
		viewerpdf.WithNoSandbox(),
		viewerpdf.WithAllowedHosts(),
		viewerpdf.WithSettle(500 * time.Millisecond),
	}, opts...)
	c, err := viewerpdf.NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// viewerPage renders three pages into blob images the way a document
// viewer does, plus a small icon that is not a page.
const viewerPage = `<!DOCTYPE html>
<html>
<head><title>Quarterly Report</title></head>
<body>
<img src="data:image/gif;base64,R0lGODlhAQABAAAAACw=" width="16" height="16">
<div id="pages"></div>
<script>
for (let i = 0; i < 3; i++) {
  const canvas = document.createElement('canvas');
  canvas.width = 400;
  canvas.height = 560;
  const g = canvas.getContext('2d');
  g.fillStyle = 'white';
  g.fillRect(0, 0, 400, 560);
  g.fillStyle = 'black';
  g.font = '48px sans-serif';
  g.fillText('Page ' + (i + 1), 40, 100);
  canvas.toBlob((blob) => {
    const img = document.createElement('img');
    img.width = 400;
    img.height = 560;
    img.src = URL.createObjectURL(blob);
    document.getElementById('pages').appendChild(img);
  });
}
</script>
</body>
</html>`

func newViewerServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(viewerPage))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// isPDF checks whether data starts with the PDF magic number.
func isPDF(data []byte) bool {
	return len(data) > 4 && string(data[:5]) == "%PDF-"
}

func TestCapture_Baseline(t *testing.T) {
	c := newTestConverter(t)
	srv := newViewerServer(t)
	dir := t.TempDir()

	res, err := c.Capture(context.Background(), srv.URL, viewerpdf.Baseline, viewerpdf.DirSaver{Dir: dir})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Pages() != 3 {
		t.Errorf("pages = %d, want 3", res.Pages())
	}
	if res.Name() != "quarterly_report.pdf" {
		t.Errorf("name = %q", res.Name())
	}
	data, err := os.ReadFile(filepath.Join(dir, res.Name()))
	if err != nil {
		t.Fatalf("reading saved PDF: %v", err)
	}
	if !isPDF(data) {
		t.Fatal("saved file is not a PDF")
	}
}

func TestCapture_HighRes(t *testing.T) {
	c := newTestConverter(t)
	srv := newViewerServer(t)

	res, err := c.Capture(context.Background(), srv.URL, viewerpdf.HighRes, viewerpdf.DirSaver{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Name() != "quarterly_report_high_res.pdf" {
		t.Errorf("name = %q", res.Name())
	}
	if res.Pages() != 3 {
		t.Errorf("pages = %d, want 3", res.Pages())
	}
}

func TestCapture_Images(t *testing.T) {
	c := newTestConverter(t)
	srv := newViewerServer(t)
	dir := t.TempDir()

	res, err := c.Capture(context.Background(), srv.URL, viewerpdf.Images, viewerpdf.DirSaver{Dir: dir})
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	for _, name := range []string{"page-1.png", "page-2.png", "page-3.png"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if len(res.Files()) != 3 {
		t.Errorf("files = %v", res.Files())
	}
}

func TestCapture_NoPages(t *testing.T) {
	c := newTestConverter(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>nothing rendered</p></body></html>"))
	}))
	defer srv.Close()
	dir := t.TempDir()

	_, err := c.Capture(context.Background(), srv.URL, viewerpdf.Baseline, viewerpdf.DirSaver{Dir: dir})
	if !errors.Is(err, viewerpdf.ErrNoPages) {
		t.Fatalf("err = %v, want ErrNoPages", err)
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 0 {
		t.Errorf("files written: %v", entries)
	}
}

// startUserBrowser launches a Chrome with remote debugging, the way a user
// would before attaching, and returns its DevTools websocket URL.
func startUserBrowser(t *testing.T) string {
	t.Helper()
	skipIfNoChrome(t)
	bin, ok := launcher.LookPath()
	if !ok {
		t.Skip("skipping: no browser found by the launcher")
	}
	l := launcher.New().Bin(bin).NoSandbox(true).Headless(true)
	ws, err := l.Launch()
	if err != nil {
		t.Fatalf("launching browser: %v", err)
	}
	t.Cleanup(l.Kill)
	return ws
}

func TestCapture_Remote(t *testing.T) {
	ws := startUserBrowser(t)
	srv := newViewerServer(t)

	// Open the document in the user's browser and let the viewer render.
	browser := rod.New().ControlURL(ws)
	if err := browser.Connect(); err != nil {
		t.Fatalf("connecting: %v", err)
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: srv.URL})
	if err != nil {
		t.Fatalf("opening tab: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := page.Context(ctx).Wait(rod.Eval(`() => document.querySelectorAll('img[src^="blob:"]').length === 3`)); err != nil {
		t.Fatalf("waiting for pages: %v", err)
	}

	c, err := viewerpdf.NewConverter(
		viewerpdf.WithRemoteURL(ws),
		viewerpdf.WithAllowedHosts("127.0.0.1"),
	)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	defer c.Close()

	// No URL: the tab is found by host.
	var saved []string
	res, err := c.Capture(ctx, "", viewerpdf.Baseline, viewerpdf.SaverFunc(func(name string, _ []byte) error {
		saved = append(saved, name)
		return nil
	}))
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if res.Pages() != 3 {
		t.Errorf("pages = %d, want 3", res.Pages())
	}
	if res.Name() != "quarterly_report.pdf" {
		t.Errorf("name = %q", res.Name())
	}
	if len(saved) != 1 || saved[0] != res.Name() {
		t.Errorf("saved %v", saved)
	}
	if !isPDF(res.Bytes()) {
		t.Fatal("output is not a valid PDF")
	}

	// The overlay is removed and the user's tab stays open.
	obj, err := page.Context(ctx).Eval(`() => document.getElementById('pdf-converter-loading') === null`)
	if err != nil {
		t.Fatalf("reading overlay: %v", err)
	}
	if !obj.Value.Bool() {
		t.Error("status overlay still present after the capture")
	}
}

func TestCapture_WrongHost(t *testing.T) {
	c := newTestConverter(t, viewerpdf.WithAllowedHosts("docs.google.com"))
	srv := newViewerServer(t)

	_, err := c.Capture(context.Background(), srv.URL, viewerpdf.Baseline, viewerpdf.DirSaver{Dir: t.TempDir()})
	if !errors.Is(err, viewerpdf.ErrWrongHost) {
		t.Errorf("err = %v, want ErrWrongHost", err)
	}
}

func TestCapture_InvalidURL(t *testing.T) {
	c := newTestConverter(t)
	_, err := c.Capture(context.Background(), "not-a-url", viewerpdf.Baseline, viewerpdf.DirSaver{Dir: t.TempDir()})
	if err == nil {
		t.Fatal("expected error for invalid URL")
	}
}

func TestConverter_CloseIdempotent(t *testing.T) {
	skipIfNoChrome(t)
	c, err := viewerpdf.NewConverter(viewerpdf.WithNoSandbox())
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestConverter_UsedAfterClose(t *testing.T) {
	skipIfNoChrome(t)
	c, err := viewerpdf.NewConverter(viewerpdf.WithNoSandbox())
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	c.Close()

	_, err = c.Capture(context.Background(), "https://docs.google.com/x", viewerpdf.Baseline, viewerpdf.DirSaver{})
	if !errors.Is(err, viewerpdf.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestNewConverter_InvalidPageSize(t *testing.T) {
	_, err := viewerpdf.NewConverter(viewerpdf.WithPageSize(viewerpdf.PageSize{Width: -1, Height: 10}, viewerpdf.Portrait))
	if err == nil {
		t.Error("expected error for negative page size")
	}
}

func TestCapture_PackageLevel(t *testing.T) {
	skipIfNoChrome(t)
	srv := newViewerServer(t)

	res, err := viewerpdf.Capture(context.Background(), srv.URL, viewerpdf.Baseline, viewerpdf.DirSaver{Dir: t.TempDir()},
		viewerpdf.WithNoSandbox(),
		viewerpdf.WithAllowedHosts(),
		viewerpdf.WithSettle(500*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Capture: %v", err)
	}
	if !isPDF(res.Bytes()) {
		t.Fatal("output is not a valid PDF")
	}
}

func TestAllPageSizes(t *testing.T) {
	skipIfNoChrome(t)
	srv := newViewerServer(t)

	sizes := []struct {
		name string
		size viewerpdf.PageSize
	}{
		{"A3", viewerpdf.A3},
		{"A4", viewerpdf.A4},
		{"A5", viewerpdf.A5},
		{"Letter", viewerpdf.Letter},
		{"Legal", viewerpdf.Legal},
		{"Tabloid", viewerpdf.Tabloid},
	}

	for _, s := range sizes {
		t.Run(s.name, func(t *testing.T) {
			c := newTestConverter(t, viewerpdf.WithPageSize(s.size, viewerpdf.Portrait))
			res, err := c.Capture(context.Background(), srv.URL, viewerpdf.Baseline, viewerpdf.SaverFunc(func(string, []byte) error { return nil }))
			if err != nil {
				t.Fatalf("Capture(%s): %v", s.name, err)
			}
			if !isPDF(res.Bytes()) {
				t.Errorf("Capture(%s): output is not a valid PDF", s.name)
			}
		})
	}
}
