package viewerpdf

import "io"

// Result describes the outcome of a capture.
//
// For a PDF capture it also holds the generated document. For an image
// capture the pages have already been handed to the [Saver] and only
// their names are kept.
type Result struct {
	name  string
	data  []byte
	pages int
	files []string
}

// Name returns the file name the PDF was saved under, or "" for an
// image capture.
func (r *Result) Name() string {
	return r.name
}

// Pages returns the number of captured pages.
func (r *Result) Pages() int {
	return r.pages
}

// Files returns the names of every saved artifact, in page order for
// image captures.
func (r *Result) Files() []string {
	return r.files
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}
