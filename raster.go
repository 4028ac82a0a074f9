package viewerpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // registered for image.Decode
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"  // registered for image.Decode
	_ "golang.org/x/image/webp" // registered for image.Decode
)

// maxRasterPixels bounds the bitmap a single page may allocate.
const maxRasterPixels = 1 << 28

// RasterBuffer is one page encoded as an image.
type RasterBuffer struct {
	Data   []byte
	Format Format
	Width  int // Pixel width.
	Height int // Pixel height.
}

// DecodeImage decodes the bytes fetched for a page image.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decoding source: %v", ErrRasterize, err)
	}
	return img, nil
}

// Rasterize draws src onto a fresh bitmap of (w*scale)×(h*scale) pixels,
// stretching it to fill, and encodes the result. JPEG output is written at
// maximum quality on a white background. Bitmaps above 1<<28 pixels are
// refused.
//
// Each call allocates its own bitmap so that only one page is held in
// memory at a time.
func Rasterize(src image.Image, w, h, scale int, format Format) (RasterBuffer, error) {
	if scale < 1 {
		scale = 1
	}
	if w <= 0 || h <= 0 {
		return RasterBuffer{}, fmt.Errorf("%w: invalid size %dx%d", ErrRasterize, w, h)
	}

	limit := maxRasterPixels / scale
	if w > limit || h > limit || (w*scale)*(h*scale) > maxRasterPixels {
		return RasterBuffer{}, fmt.Errorf("%w: size %dx%d at scale %d too large", ErrRasterize, w, h, scale)
	}

	dw, dh := w*scale, h*scale
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if format != FormatPNG {
		draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case FormatPNG:
		if err := png.Encode(&buf, dst); err != nil {
			return RasterBuffer{}, fmt.Errorf("%w: encoding png: %v", ErrRasterize, err)
		}
	case FormatJPEG:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 100}); err != nil {
			return RasterBuffer{}, fmt.Errorf("%w: encoding jpeg: %v", ErrRasterize, err)
		}
	default:
		return RasterBuffer{}, fmt.Errorf("%w: unsupported format %q", ErrRasterize, format)
	}

	return RasterBuffer{
		Data:   buf.Bytes(),
		Format: format,
		Width:  dw,
		Height: dh,
	}, nil
}
