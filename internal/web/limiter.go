package web

// limiter.go bounds how many previews are computed at once. A caller that
// cannot get a slot within maxWait is turned away with errTooManyPreviews.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
)

var errTooManyPreviews = errors.New("too many concurrent previews")

type previewLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int32
}

func newPreviewLimiter(maxConcurrent int, maxWait time.Duration) *previewLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	return &previewLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// acquire takes a slot; the caller must release it.
func (l *previewLimiter) acquire(ctx context.Context) error {
	wait, cancel := context.WithTimeout(ctx, l.maxWait)
	defer cancel()

	select {
	case l.slots <- struct{}{}:
		l.active.Add(1)
		return nil
	case <-wait.Done():
		if err := ctx.Err(); err != nil {
			return err
		}
		return errTooManyPreviews
	}
}

func (l *previewLimiter) release() {
	l.active.Add(-1)
	<-l.slots
}

// available reports free slots.
func (l *previewLimiter) available() int {
	return cap(l.slots) - len(l.slots)
}

// waitForDrain blocks until no preview is running or ctx ends.
func (l *previewLimiter) waitForDrain(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for l.active.Load() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}
