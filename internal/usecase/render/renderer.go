// Package render produces month views for a calendar surface. A new Render supersedes
// the one in flight: its context is cancelled and its result never reaches the sink.
package render

import (
	"context"
	"log/slog"
	"sync"

	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/usecase/queries"
)

type Source interface {
	Month(ctx context.Context, surface fsm.Surface) (*queries.MonthView, error)
}

type Sink interface {
	Publish(view *queries.MonthView)
	Fail(surface fsm.Surface, err error)
}

type Renderer struct {
	source Source
	sink   Sink
	logger *slog.Logger

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc

	inflight sync.WaitGroup
}

func NewRenderer(source Source, sink Sink, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{source: source, sink: sink, logger: logger}
}

// Render starts building the view for surface and returns immediately.
func (r *Renderer) Render(ctx context.Context, surface fsm.Surface) {
	r.mu.Lock()
	r.supersedeLocked()
	gen := r.generation
	rctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.inflight.Add(1)
	r.mu.Unlock()

	go func() {
		defer r.inflight.Done()
		defer cancel()

		view, err := r.source.Month(rctx, surface)

		// Publishing under the lock keeps a newer Render from starting between the
		// generation check and the sink call.
		r.mu.Lock()
		defer r.mu.Unlock()
		if gen != r.generation {
			r.logger.Debug("discarding superseded render", slog.String("month", surface.Month.String()))
			return
		}
		r.cancel = nil
		if err != nil {
			r.sink.Fail(surface, err)
			return
		}
		r.sink.Publish(view)
	}()
}

// Cancel drops the render in flight without starting another.
func (r *Renderer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.supersedeLocked()
}

func (r *Renderer) Wait() {
	r.inflight.Wait()
}

func (r *Renderer) supersedeLocked() {
	r.generation++
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
