package viewerpdf

// PageSize represents paper dimensions in millimetres.
type PageSize struct {
	Width  float64 // Width in millimetres.
	Height float64 // Height in millimetres.
}

// Standard paper sizes.
var (
	A3      = PageSize{Width: 297, Height: 420}
	A4      = PageSize{Width: 210, Height: 297}
	A5      = PageSize{Width: 148, Height: 210}
	Letter  = PageSize{Width: 215.9, Height: 279.4}
	Legal   = PageSize{Width: 215.9, Height: 355.6}
	Tabloid = PageSize{Width: 279.4, Height: 431.8}
)

// Orientation represents the page orientation.
type Orientation int

const (
	// Portrait is the default vertical orientation.
	Portrait Orientation = iota
	// Landscape rotates the page to horizontal orientation.
	Landscape
)

// dimensions returns the page width and height in millimetres,
// accounting for orientation. A zero size resolves to A4.
func (s PageSize) dimensions(o Orientation) (width, height float64) {
	if s == (PageSize{}) {
		s = A4
	}
	if o == Landscape {
		return s.Height, s.Width
	}
	return s.Width, s.Height
}

// Placement selects where a page image sits vertically once it has been
// fitted to the page. Horizontally it is always centred.
type Placement int

const (
	// TopAnchored places the image at the top edge of the page.
	TopAnchored Placement = iota
	// Centered centres the image vertically as well.
	Centered
)

func (p Placement) String() string {
	switch p {
	case TopAnchored:
		return "top"
	case Centered:
		return "center"
	}
	return "unknown"
}

// Geometry is the placement of an image on a page, in page units.
type Geometry struct {
	X, Y          float64
	Width, Height float64
}

// ComputeGeometry fits a source image of srcW×srcH pixels onto a page of
// pageW×pageH units, keeping the aspect ratio. The image takes the full
// page width unless that would overflow the page height, in which case it
// takes the full height instead.
//
// All arguments must be positive.
func ComputeGeometry(pageW, pageH, srcW, srcH float64, placement Placement) Geometry {
	ratio := srcH / srcW

	w := pageW
	h := w * ratio
	if h > pageH {
		h = pageH
		w = h / ratio
	}

	g := Geometry{
		X:      (pageW - w) / 2,
		Width:  w,
		Height: h,
	}
	if placement == Centered {
		g.Y = (pageH - h) / 2
	}
	return g
}
