package viewerpdf

import (
	"context"
	"log/slog"
	"time"
)

// Delays before the status overlay of a finished run is removed.
const (
	successDismissDelay = 3 * time.Second
	failureDismissDelay = 5 * time.Second
)

// run is the state of one capture: how many pages there are, how many
// are done and what the user is currently told. It owns the status
// overlay and removes it when the run ends.
type run struct {
	host     Host
	overlay  bool
	reporter Reporter
	log      *slog.Logger

	total     int
	processed int
	status    string

	// wait replaces the dismiss delay in tests.
	wait func(ctx context.Context, d time.Duration)
}

func newRun(host Host, overlay bool, reporter Reporter, log *slog.Logger) *run {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &run{
		host:     host,
		overlay:  overlay,
		reporter: reporter,
		log:      log,
		wait:     sleepContext,
	}
}

// update sets the current status message.
func (r *run) update(ctx context.Context, msg string) {
	r.status = msg
	r.log.Debug("status", "msg", msg, "processed", r.processed, "total", r.total)
	r.reporter.Status(msg)
	if !r.overlay {
		return
	}
	if err := r.host.ShowStatus(ctx, msg); err != nil {
		r.log.Debug("status overlay not updated", "error", err)
	}
}

// advance records one more finished page.
func (r *run) advance() {
	r.processed++
	r.reporter.Progress(r.processed, r.total)
}

// succeed reports msg and tears the run down after the success delay.
func (r *run) succeed(ctx context.Context, msg string) {
	r.update(ctx, msg)
	r.dismiss(ctx, successDismissDelay)
}

// fail reports msg and tears the run down after the failure delay.
func (r *run) fail(ctx context.Context, msg string) {
	r.update(ctx, msg)
	r.dismiss(ctx, failureDismissDelay)
}

func (r *run) dismiss(ctx context.Context, d time.Duration) {
	if !r.overlay {
		return
	}
	r.wait(ctx, d)
	if err := r.host.RemoveStatus(context.WithoutCancel(ctx)); err != nil {
		r.log.Debug("status overlay not removed", "error", err)
	}
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
