package viewerpdf

import "errors"

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Converter].
	ErrClosed = errors.New("viewerpdf: converter is closed")

	// ErrWrongHost is returned when the page is not served by one of the
	// allowed viewer hosts. No work is done.
	ErrWrongHost = errors.New("viewerpdf: page is not on a supported document viewer")

	// ErrNoPages is returned when no rendered page images were found.
	// The viewer loads pages lazily, so the user has to scroll through the
	// whole document before capturing.
	ErrNoPages = errors.New("viewerpdf: no document pages found")

	// ErrEngineUnavailable is returned when the browser could not be started.
	ErrEngineUnavailable = errors.New("viewerpdf: browser engine unavailable")

	// ErrRunInProgress is returned when a capture is started while another
	// one is still running on the same Converter.
	ErrRunInProgress = errors.New("viewerpdf: a capture is already running")

	// ErrRasterize is returned when a page image could not be drawn or encoded.
	ErrRasterize = errors.New("viewerpdf: rasterizing page failed")

	// ErrOutOfOrder is returned when pages are appended out of discovery order.
	ErrOutOfOrder = errors.New("viewerpdf: page appended out of order")

	// ErrInvalidOutput is returned when the assembled PDF fails validation.
	ErrInvalidOutput = errors.New("viewerpdf: assembled document is invalid")
)
