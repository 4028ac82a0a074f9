// Package viewerpdf saves documents from web document viewers that render
// each page as an image, such as view-only Google Docs.
//
// The viewer draws every page into a browser-held blob image. A capture
// collects those images from the page, rasterizes each one, fits it onto
// a fixed output page and assembles the result into a PDF, or saves each
// page as its own PNG.
//
// # Capturing
//
// For one-off captures use the package-level helper:
//
//	res, err := viewerpdf.Capture(ctx, docURL, viewerpdf.Baseline, viewerpdf.DirSaver{Dir: "."})
//
// For repeated captures create a [Converter], which reuses the browser:
//
//	c, err := viewerpdf.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	res, err := c.Capture(ctx, docURL, viewerpdf.HighRes, viewerpdf.DirSaver{Dir: "out"})
//
// The viewer only renders pages that have been scrolled into view. To
// capture a long document, start Chrome with --remote-debugging-port,
// scroll through the document and attach with [WithRemoteURL]:
//
//	c, err := viewerpdf.NewConverter(viewerpdf.WithRemoteURL("ws://127.0.0.1:9222/devtools/browser/..."))
//
// # Profiles
//
// [Baseline] rasterizes pages at their rendered size and places them at
// the top of each A4 page. [HighRes] rasterizes at twice the size, drops
// images narrower than 100 pixels, centres pages and works in batches of
// five. [Images] writes page-1.png, page-2.png, ... instead of a PDF.
//
// # Building blocks
//
// The pieces of a capture are exported for use with other hosts:
// [Collect] and [FilterCandidates] pick the page images, [Rasterize] draws
// them, [ComputeGeometry] fits them to a page, [Assembler] builds the
// document, [Scheduler] paces the work and [FileName] names the output.
// A [Job] ties them together against any [Host].
package viewerpdf
