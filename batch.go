package viewerpdf

import (
	"context"
	"time"
)

// SchedulerState is a step in the lifecycle of a [Scheduler] run.
type SchedulerState int

const (
	Idle SchedulerState = iota
	ProcessingBatch
	AwaitingYield
	Complete
	FailedNoPages
	Failed
)

func (s SchedulerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case ProcessingBatch:
		return "processing"
	case AwaitingYield:
		return "yielding"
	case Complete:
		return "complete"
	case FailedNoPages:
		return "no-pages"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// BatchStats summarises a finished [Scheduler] run.
type BatchStats struct {
	Processed int
	Batches   int
	Yields    int
}

// Scheduler runs work over an ordered list in fixed-size batches, pausing
// between batches so that the rest of the program gets a turn.
//
// A zero Scheduler processes every item in one batch with no pause.
type Scheduler struct {
	// BatchSize is the number of items per batch. Zero or negative means
	// all items in a single batch.
	BatchSize int

	// Delay is the pause between batches.
	Delay time.Duration

	// OnState, if set, is called on every state transition.
	OnState func(state SchedulerState, processed int)

	// sleep replaces the pause in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Run calls work for item indices 0..n-1, in order, each exactly once.
// It stops at the first error. If n is zero Run ends in [FailedNoPages]
// and returns [ErrNoPages].
func (s *Scheduler) Run(ctx context.Context, n int, work func(ctx context.Context, i int) error) (BatchStats, error) {
	var stats BatchStats
	s.enter(Idle, 0)

	if n == 0 {
		s.enter(FailedNoPages, 0)
		return stats, ErrNoPages
	}

	size := s.BatchSize
	if size <= 0 || size > n {
		size = n
	}

	for start := 0; start < n; start += size {
		if start > 0 {
			s.enter(AwaitingYield, stats.Processed)
			if err := s.pause(ctx); err != nil {
				s.enter(Failed, stats.Processed)
				return stats, err
			}
			stats.Yields++
		}

		s.enter(ProcessingBatch, stats.Processed)
		stats.Batches++
		end := min(start+size, n)
		for i := start; i < end; i++ {
			if err := work(ctx, i); err != nil {
				s.enter(Failed, stats.Processed)
				return stats, err
			}
			stats.Processed++
		}
	}

	s.enter(Complete, stats.Processed)
	return stats, nil
}

func (s *Scheduler) enter(state SchedulerState, processed int) {
	if s.OnState != nil {
		s.OnState(state, processed)
	}
}

func (s *Scheduler) pause(ctx context.Context) error {
	if s.sleep != nil {
		return s.sleep(ctx, s.Delay)
	}
	if s.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
