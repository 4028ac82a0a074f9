package viewerpdf

import "fmt"

// Assembler appends one page per rasterized image to a [Document], in the
// order the images were discovered.
type Assembler struct {
	doc   Document
	pages int
}

// NewAssembler returns an Assembler writing into doc. The document's
// initial page receives the first image.
func NewAssembler(doc Document) *Assembler {
	return &Assembler{doc: doc}
}

// PageSize returns the size of the page the next image will land on.
func (a *Assembler) PageSize() (float64, float64) {
	return a.doc.PageSize()
}

// AppendPage places buf at g on a page of its own. index is the image's
// discovery position; appends must arrive as 0, 1, 2, ...
func (a *Assembler) AppendPage(index int, buf RasterBuffer, g Geometry) error {
	if index != a.pages {
		return fmt.Errorf("%w: got page %d, want %d", ErrOutOfOrder, index, a.pages)
	}
	if a.pages > 0 {
		a.doc.AddPage()
	}
	if err := a.doc.PlaceImage(fmt.Sprintf("page-%d", index+1), buf, g); err != nil {
		return err
	}
	a.pages++
	return nil
}

// Pages returns the number of pages appended so far.
func (a *Assembler) Pages() int {
	return a.pages
}
