package viewerpdf

import (
	"context"
	"fmt"
)

// engine is the browser a Converter captures through.
type engine interface {
	// open returns a Host for pageURL and a function releasing it.
	open(ctx context.Context, pageURL string) (Host, func(), error)
	close()
}

// engineLoader starts an engine once, in the background, and lets any
// number of callers wait for it to become ready.
type engineLoader struct {
	done chan struct{}
	eng  engine
	err  error
}

func loadEngine(start func() (engine, error)) *engineLoader {
	l := &engineLoader{done: make(chan struct{})}
	go func() {
		defer close(l.done)
		l.eng, l.err = start()
	}()
	return l
}

// wait blocks until the engine is ready or ctx is done.
func (l *engineLoader) wait(ctx context.Context) (engine, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-l.done:
	}
	if l.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEngineUnavailable, l.err)
	}
	return l.eng, nil
}

// shutdown waits for a pending start to finish and closes the engine.
func (l *engineLoader) shutdown() {
	<-l.done
	if l.eng != nil {
		l.eng.close()
	}
}
