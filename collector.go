package viewerpdf

import (
	"context"
	"fmt"
	"strings"
)

// blobScheme marks image data held in browser memory. The viewer renders
// every document page into such a blob, while icons and avatars come from
// network URLs.
const blobScheme = "blob:"

// FilterCandidates keeps the images that look like rendered document pages:
// the source must be a blob locator and, if minWidth is positive, the
// rendered width must exceed it. Document order is preserved.
func FilterCandidates(images []PageImage, minWidth int) []PageImage {
	var pages []PageImage
	for _, img := range images {
		if !strings.HasPrefix(img.Src, blobScheme) {
			continue
		}
		if minWidth > 0 && img.Width <= minWidth {
			continue
		}
		pages = append(pages, img)
	}
	return pages
}

// Collect lists the rendered page images currently attached to the host
// page. It never scrolls or otherwise forces pages to load; if nothing is
// found it returns [ErrNoPages].
func Collect(ctx context.Context, host Host, p Profile) ([]PageImage, error) {
	images, err := host.Images(ctx)
	if err != nil {
		return nil, fmt.Errorf("viewerpdf: listing images: %w", err)
	}
	pages := FilterCandidates(images, p.MinWidth)
	if len(pages) == 0 {
		return nil, ErrNoPages
	}
	return pages, nil
}
