package viewerpdf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
)

// Document is the PDF being assembled. It starts with one blank page.
type Document interface {
	// PageSize returns the size of the current page.
	PageSize() (width, height float64)

	// AddPage starts a new blank page.
	AddPage()

	// PlaceImage draws buf onto the current page at g. The name must be
	// unique within the document.
	PlaceImage(name string, buf RasterBuffer, g Geometry) error

	// Output serializes the document.
	Output(w io.Writer) error
}

// documentConfig describes the page layout of a new document.
type documentConfig struct {
	Size        PageSize
	Orientation Orientation
	Compress    bool
	Title       string
}

// pdfDocument implements Document on top of gofpdf, measuring in
// millimetres with no margins.
type pdfDocument struct {
	pdf *gofpdf.Fpdf
}

func newPDFDocument(cfg documentConfig) *pdfDocument {
	w, h := cfg.Size.dimensions(Portrait)
	orientation := "P"
	if cfg.Orientation == Landscape {
		orientation = "L"
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(cfg.Compress)
	pdf.SetCreator("viewerpdf", true)
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, true)
	}
	pdf.AddPage()

	return &pdfDocument{pdf: pdf}
}

func (d *pdfDocument) PageSize() (float64, float64) {
	return d.pdf.GetPageSize()
}

func (d *pdfDocument) AddPage() {
	d.pdf.AddPage()
}

func (d *pdfDocument) PlaceImage(name string, buf RasterBuffer, g Geometry) error {
	opts := gofpdf.ImageOptions{ImageType: string(buf.Format)}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(buf.Data))
	d.pdf.ImageOptions(name, g.X, g.Y, g.Width, g.Height, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("viewerpdf: placing %s: %w", name, err)
	}
	return nil
}

func (d *pdfDocument) Output(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("viewerpdf: writing pdf: %w", err)
	}
	return nil
}
