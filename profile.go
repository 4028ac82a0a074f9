package viewerpdf

import "time"

// Format is the encoding of a rasterized page.
type Format string

// Supported raster formats.
const (
	FormatJPEG Format = "JPEG"
	FormatPNG  Format = "PNG"
)

// ext returns the file extension used when the raster is saved on its own.
func (f Format) ext() string {
	if f == FormatPNG {
		return ".png"
	}
	return ".jpg"
}

// Profile bundles the settings that distinguish one capture variant from
// another: how pages are picked, how sharply they are rasterized, how the
// work is paced and how the output is named.
type Profile struct {
	// Name identifies the profile in logs.
	Name string

	// Scale multiplies the rendered page size when rasterizing. Values
	// below 1 are treated as 1.
	Scale int

	// MinWidth excludes images whose rendered width is not greater than
	// this many pixels. Zero keeps every blob image.
	MinWidth int

	// BatchSize is the number of pages processed between yields. Zero
	// processes every page in a single pass.
	BatchSize int

	// Yield is the pause between batches.
	Yield time.Duration

	// Placement is the vertical placement policy for PDF pages.
	Placement Placement

	// Format is the raster encoding.
	Format Format

	// Compress enables stream compression in the generated PDF.
	Compress bool

	// Suffix is appended to the sanitized document title.
	Suffix string

	// DefaultName is used when the document has no usable title.
	DefaultName string

	// Images writes every page as its own file instead of one PDF.
	Images bool
}

// Built-in profiles.
var (
	// Baseline rasterizes at the rendered size and builds the PDF in one
	// synchronous pass, top-anchoring every page.
	Baseline = Profile{
		Name:        "baseline",
		Scale:       1,
		Placement:   TopAnchored,
		Format:      FormatJPEG,
		Suffix:      ".pdf",
		DefaultName: "google-doc.pdf",
	}

	// HighRes rasterizes at twice the rendered size, skips small
	// decorative images and paces the work in batches of five.
	HighRes = Profile{
		Name:        "high-res",
		Scale:       2,
		MinWidth:    100,
		BatchSize:   5,
		Yield:       50 * time.Millisecond,
		Placement:   Centered,
		Format:      FormatJPEG,
		Compress:    true,
		Suffix:      "_high_res.pdf",
		DefaultName: "google-doc-high-res.pdf",
	}

	// Images saves every page as page-N.png, one file every 500ms.
	Images = Profile{
		Name:      "images",
		Scale:     1,
		BatchSize: 1,
		Yield:     500 * time.Millisecond,
		Format:    FormatPNG,
		Images:    true,
	}
)

func (p Profile) scale() int {
	if p.Scale < 1 {
		return 1
	}
	return p.Scale
}
