// Package selection drives the two-click state machine for one calendar surface,
// running interval validation asynchronously and applying only the latest outcome.
package selection

import (
	"context"
	"log/slog"
	"sync"

	"lodge-booking/internal/domain/calendar"
	fsm "lodge-booking/internal/domain/selection"
)

type Validator interface {
	Validate(ctx context.Context, surface fsm.Surface, span calendar.DateRange) error
}

// Hooks are called outside the controller lock, from the goroutine that applied the
// transition. A nil hook is skipped.
type Hooks struct {
	OnSelectionChanged func(*calendar.DateRange)
	OnValidationFailed func(error)
}

type Controller struct {
	validator Validator
	hooks     Hooks
	logger    *slog.Logger

	mu         sync.Mutex
	state      fsm.State
	surface    fsm.Surface
	generation uint64
	cancel     context.CancelFunc

	inflight sync.WaitGroup
}

func NewController(v Validator, surface fsm.Surface, hooks Hooks, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		validator: v,
		hooks:     hooks,
		logger:    logger,
		surface:   surface,
	}
}

func (c *Controller) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Surface() fsm.Surface {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.surface
}

// Click feeds a day into the state machine. A click that completes a span starts a
// validation and supersedes any validation still running.
func (c *Controller) Click(ctx context.Context, d calendar.Date) {
	c.mu.Lock()
	step := fsm.Click(c.state, d)
	c.state = step.State
	if step.Changed || step.Validate != nil {
		c.supersedeLocked()
	}

	var gen uint64
	var vctx context.Context
	var surface fsm.Surface
	if step.Validate != nil {
		gen = c.generation
		vctx, c.cancel = context.WithCancel(ctx)
		surface = c.surface
		c.inflight.Add(1)
	}
	c.mu.Unlock()

	if step.Changed {
		c.notifyChanged(step.State)
	}
	if step.Validate == nil {
		return
	}

	span := *step.Validate
	go func() {
		defer c.inflight.Done()
		err := c.validator.Validate(vctx, surface, span)
		c.apply(gen, span, err)
	}()
}

func (c *Controller) Hover(d calendar.Date) (calendar.DateRange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fsm.Hover(c.state, d)
}

func (c *Controller) Reset() {
	c.mu.Lock()
	c.supersedeLocked()
	step := fsm.Reset(c.state)
	c.state = step.State
	c.mu.Unlock()

	if step.Changed {
		c.notifyChanged(step.State)
	}
}

// SetSurface switches the calendar. Moving to another month keeps the selection;
// another room or exclusion resets it.
func (c *Controller) SetSurface(s fsm.Surface) {
	c.mu.Lock()
	same := c.surface.SameTarget(s)
	c.surface = s
	c.mu.Unlock()

	if !same {
		c.Reset()
	}
}

// Wait blocks until every started validation has returned.
func (c *Controller) Wait() {
	c.inflight.Wait()
}

func (c *Controller) apply(gen uint64, span calendar.DateRange, outcome error) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.logger.Debug("discarding superseded validation", slog.String("span", span.String()))
		return
	}
	c.cancel = nil
	step := fsm.Resolve(c.state, span, outcome)
	c.state = step.State
	c.mu.Unlock()

	if step.Err != nil && c.hooks.OnValidationFailed != nil {
		c.hooks.OnValidationFailed(step.Err)
	}
	if step.Changed {
		c.notifyChanged(step.State)
	}
}

// supersedeLocked invalidates the validation in flight, if any.
func (c *Controller) supersedeLocked() {
	c.generation++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) notifyChanged(s fsm.State) {
	if c.hooks.OnSelectionChanged != nil {
		c.hooks.OnSelectionChanged(s.Selection())
	}
}
