package viewerpdf

import "context"

// PageImage is one image element found in the viewer page.
type PageImage struct {
	Index  int    // Position in document order.
	Src    string // Source locator as reported by the page.
	Width  int    // Rendered width in CSS pixels.
	Height int    // Rendered height in CSS pixels.
}

// Host is the viewer page a capture runs against.
//
// A Host only reads page content. The one thing it writes is the status
// overlay, which it creates on first use and removes on request.
type Host interface {
	// Location returns the URL of the page.
	Location(ctx context.Context) (string, error)

	// Title returns the document title.
	Title(ctx context.Context) (string, error)

	// Images lists every image element in document order.
	Images(ctx context.Context) ([]PageImage, error)

	// FetchImage returns the encoded bytes behind an image source.
	FetchImage(ctx context.Context, src string) ([]byte, error)

	// ShowStatus creates or updates the status overlay.
	ShowStatus(ctx context.Context, msg string) error

	// RemoveStatus removes the status overlay if present.
	RemoveStatus(ctx context.Context) error
}
