package viewerpdf

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
)

// Job is a single capture of a viewer page: collect the rendered pages,
// rasterize them and save either one PDF or one image per page.
//
// A Job runs against any [Host]. [Converter] builds Jobs for pages it
// opens in Chrome.
type Job struct {
	// Profile selects the capture variant. See [Baseline], [HighRes] and
	// [Images].
	Profile Profile

	// PageSize and Orientation describe the PDF pages. Defaults to A4
	// portrait.
	PageSize    PageSize
	Orientation Orientation

	// AllowedHosts restricts the job to pages whose host name contains
	// one of these values. Empty disables the check.
	AllowedHosts []string

	// Saver receives the finished artifacts. Required.
	Saver Saver

	// Reporter receives progress. Optional.
	Reporter Reporter

	// Overlay shows progress inside the page.
	Overlay bool

	// Logger defaults to discarding everything.
	Logger *slog.Logger

	// newDocument and wait replace the PDF backend and the dismiss delay
	// in tests.
	newDocument func(documentConfig) Document
	wait        func(ctx context.Context, d time.Duration)
}

// Run executes the job against host.
func (j *Job) Run(ctx context.Context, host Host) (*Result, error) {
	if j.Saver == nil {
		return nil, errors.New("viewerpdf: job has no saver")
	}
	log := j.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	log = log.With("profile", j.Profile.Name)

	r := newRun(host, j.Overlay, j.Reporter, log)
	if j.wait != nil {
		r.wait = j.wait
	}

	if err := j.checkHost(ctx, host); err != nil {
		log.Warn("capture refused", "error", err)
		r.reporter.Status(msgWrongHost)
		return nil, err
	}

	r.update(ctx, msgPreparing)

	pages, err := Collect(ctx, host, j.Profile)
	if err != nil {
		if errors.Is(err, ErrNoPages) {
			log.Info("no page images found")
			r.fail(ctx, msgNoPages)
		} else {
			r.fail(ctx, msgFailed+err.Error())
		}
		return nil, err
	}
	r.total = len(pages)
	log.Info("collected pages", "count", len(pages))

	title, err := host.Title(ctx)
	if err != nil {
		log.Debug("title unavailable, using default name", "error", err)
		title = ""
	}

	var res *Result
	if j.Profile.Images {
		res, err = j.extract(ctx, r, host, pages)
	} else {
		res, err = j.assemble(ctx, r, host, pages, title)
	}
	if err != nil {
		log.Error("capture failed", "error", err, "processed", r.processed)
		r.fail(ctx, msgFailed+err.Error())
		return nil, err
	}
	return res, nil
}

func (j *Job) checkHost(ctx context.Context, host Host) error {
	if len(j.AllowedHosts) == 0 {
		return nil
	}
	loc, err := host.Location(ctx)
	if err != nil {
		return fmt.Errorf("viewerpdf: reading page location: %w", err)
	}
	u, err := url.Parse(loc)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrWrongHost, loc)
	}
	for _, allowed := range j.AllowedHosts {
		if strings.Contains(u.Hostname(), allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongHost, u.Hostname())
}

// assemble builds a single PDF with one page per image.
func (j *Job) assemble(ctx context.Context, r *run, host Host, pages []PageImage, title string) (*Result, error) {
	p := j.Profile
	if p.Scale > 1 {
		r.update(ctx, "Starting high-resolution PDF conversion...")
	} else {
		r.update(ctx, "Converting document to PDF...")
	}

	newDoc := j.newDocument
	if newDoc == nil {
		newDoc = func(cfg documentConfig) Document { return newPDFDocument(cfg) }
	}
	doc := newDoc(documentConfig{
		Size:        j.PageSize,
		Orientation: j.Orientation,
		Compress:    p.Compress,
		Title:       title,
	})
	asm := NewAssembler(doc)

	n := len(pages)
	r.update(ctx, fmt.Sprintf("Processing %d document pages...", n))

	sched := &Scheduler{
		BatchSize: p.BatchSize,
		Delay:     p.Yield,
		OnState: func(state SchedulerState, done int) {
			if state == AwaitingYield {
				r.update(ctx, fmt.Sprintf("Processed %d of %d pages... (Please wait)", done, n))
			}
		},
	}
	_, err := sched.Run(ctx, n, func(ctx context.Context, i int) error {
		pg := pages[i]
		r.update(ctx, fmt.Sprintf("Processing page %d of %d...", i+1, n))

		buf, err := j.rasterize(ctx, host, pg)
		if err != nil {
			return err
		}
		pw, ph := asm.PageSize()
		g := ComputeGeometry(pw, ph, float64(pg.Width), float64(pg.Height), p.Placement)
		if err := asm.AppendPage(i, buf, g); err != nil {
			return err
		}
		r.advance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.update(ctx, fmt.Sprintf("PDF creation complete with %d pages. Preparing download...", asm.Pages()))
	data, err := finalizePDF(doc, asm.Pages())
	if err != nil {
		return nil, err
	}

	name := FileName(title, p)
	if err := j.Saver.Save(name, data); err != nil {
		return nil, err
	}
	r.log.Info("saved pdf", "name", name, "pages", asm.Pages(), "bytes", len(data))

	if p.Scale > 1 {
		r.succeed(ctx, msgHighResDone)
	} else {
		r.succeed(ctx, msgPDFDone)
	}
	return &Result{name: name, data: data, pages: asm.Pages(), files: []string{name}}, nil
}

// extract saves each page as its own image file, one after another.
func (j *Job) extract(ctx context.Context, r *run, host Host, pages []PageImage) (*Result, error) {
	p := j.Profile
	n := len(pages)
	r.update(ctx, fmt.Sprintf("Found %d document images. Starting extraction...", n))

	files := make([]string, 0, n)
	sched := &Scheduler{BatchSize: p.BatchSize, Delay: p.Yield}
	_, err := sched.Run(ctx, n, func(ctx context.Context, i int) error {
		r.update(ctx, fmt.Sprintf("Extracting image %d of %d...", i+1, n))

		buf, err := j.rasterize(ctx, host, pages[i])
		if err != nil {
			return err
		}
		name := ImageFileName(i+1, buf.Format)
		if err := j.Saver.Save(name, buf.Data); err != nil {
			return err
		}
		files = append(files, name)
		r.advance()
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("saved images", "count", len(files))
	r.succeed(ctx, fmt.Sprintf("✅ Completed! Extracted %d images.", len(files)))
	return &Result{pages: len(files), files: files}, nil
}

func (j *Job) rasterize(ctx context.Context, host Host, pg PageImage) (RasterBuffer, error) {
	data, err := host.FetchImage(ctx, pg.Src)
	if err != nil {
		return RasterBuffer{}, fmt.Errorf("%w: fetching image %d: %v", ErrRasterize, pg.Index, err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return RasterBuffer{}, err
	}
	return Rasterize(img, pg.Width, pg.Height, j.Profile.scale(), j.Profile.Format)
}
