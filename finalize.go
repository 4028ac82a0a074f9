package viewerpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Saver delivers a finished artifact under the given file name.
type Saver interface {
	Save(name string, data []byte) error
}

// DirSaver saves artifacts as files in a directory.
type DirSaver struct {
	Dir  string
	Perm os.FileMode // Defaults to 0o644.
}

// Save writes data to Dir/name. The name is reduced to its base so that a
// title can never escape the directory.
func (s DirSaver) Save(name string, data []byte) error {
	perm := s.Perm
	if perm == 0 {
		perm = 0o644
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("viewerpdf: creating output directory: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("viewerpdf: saving %s: %w", name, err)
	}
	return nil
}

// SaverFunc adapts a function to the [Saver] interface.
type SaverFunc func(name string, data []byte) error

// Save calls f(name, data).
func (f SaverFunc) Save(name string, data []byte) error {
	return f(name, data)
}

// finalizePDF serializes the assembled document and checks that the
// result is a well-formed PDF holding exactly the expected pages.
func finalizePDF(doc Document, wantPages int) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	data := buf.Bytes()
	if err := validatePDF(data, wantPages); err != nil {
		return nil, err
	}
	return data, nil
}

func validatePDF(data []byte, wantPages int) error {
	conf := model.NewDefaultConfiguration()
	if err := api.Validate(bytes.NewReader(data), conf); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	n, err := api.PageCount(bytes.NewReader(data), conf)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if n != wantPages {
		return fmt.Errorf("%w: %d pages, want %d", ErrInvalidOutput, n, wantPages)
	}
	return nil
}
