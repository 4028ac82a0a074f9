package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// barReporter shows capture progress as a terminal progress bar. Status
// messages before the first page are printed as plain lines.
type barReporter struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

func newBarReporter(w io.Writer) *barReporter {
	return &barReporter{w: w}
}

func (r *barReporter) Status(msg string) {
	if r.bar != nil {
		r.bar.Describe(msg)
		return
	}
	fmt.Fprintln(r.w, msg)
}

func (r *barReporter) Progress(done, total int) {
	if r.bar == nil {
		r.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(r.w),
			progressbar.OptionSetDescription("Capturing pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(r.w)
			}),
		)
	}
	_ = r.bar.Set(done)
}

// Close finishes the bar, if one was started.
func (r *barReporter) Close() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}
