package selection

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"lodge-booking/internal/domain/calendar"
	fsm "lodge-booking/internal/domain/selection"
	"lodge-booking/internal/pkg/clock"
	"lodge-booking/internal/pkg/errs"
	"lodge-booking/internal/usecase/queries"
	"lodge-booking/internal/usecase/render"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errs.New("selection session not found")

// Snapshot is a session's state after its last operation settled.
type Snapshot struct {
	ID        uuid.UUID
	Surface   fsm.Surface
	State     fsm.State
	Selection *calendar.DateRange
	// LastFailure is the validation failure reported since the previous snapshot.
	LastFailure error
	// Month is the latest rendered view of the surface, nil until one is published.
	Month *queries.MonthView
	// RenderFailure explains a nil Month after a failed render. It holds until a later
	// render succeeds.
	RenderFailure error
}

// Session is a controller driven over a request/response boundary. Each operation waits
// for the validation it started, so the snapshot it returns is settled.
type Session struct {
	id       uuid.UUID
	ctrl     *Controller
	renderer *render.Renderer
	logger   *slog.Logger

	mu       sync.Mutex
	failure   error
	view      *queries.MonthView
	renderErr error
	lastSeen  time.Time
}

func (s *Session) ID() uuid.UUID { return s.id }

func (s *Session) Click(ctx context.Context, d calendar.Date) Snapshot {
	s.ctrl.Click(ctx, d)
	s.ctrl.Wait()
	return s.Snapshot()
}

func (s *Session) Hover(d calendar.Date) (calendar.DateRange, bool) {
	return s.ctrl.Hover(d)
}

func (s *Session) Reset() Snapshot {
	s.ctrl.Reset()
	return s.Snapshot()
}

// Navigate moves the session to another month of the same surface and renders it.
func (s *Session) Navigate(ctx context.Context, m calendar.Month) Snapshot {
	surface := s.ctrl.Surface()
	surface.Month = m
	s.ctrl.SetSurface(surface)
	s.render(ctx, surface)
	return s.Snapshot()
}

func (s *Session) render(ctx context.Context, surface fsm.Surface) {
	if s.renderer == nil {
		return
	}
	s.renderer.Render(ctx, surface)
	s.renderer.Wait()
}

func (s *Session) Publish(view *queries.MonthView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
	s.renderErr = nil
}

func (s *Session) Fail(surface fsm.Surface, err error) {
	s.logger.Warn("month render failed",
		slog.String("session", s.id.String()),
		slog.String("month", surface.Month.String()),
		slog.Any("error", err))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = nil
	s.renderErr = err
}

func (s *Session) Snapshot() Snapshot {
	st := s.ctrl.State()
	s.mu.Lock()
	failure := s.failure
	s.failure = nil
	view, renderErr := s.view, s.renderErr
	s.mu.Unlock()

	return Snapshot{
		ID:            s.id,
		Surface:       s.ctrl.Surface(),
		State:         st,
		Selection:     st.Selection(),
		LastFailure:   failure,
		Month:         view,
		RenderFailure: renderErr,
	}
}

func (s *Session) recordFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Registry keeps the selection sessions of one process. Sessions idle for longer than
// idleTTL are dropped when a new one is opened. With a nil source sessions carry no
// month view.
type Registry struct {
	validator Validator
	source    render.Source
	clock     clock.Clock
	idleTTL   time.Duration
	logger    *slog.Logger

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

func NewRegistry(v Validator, source render.Source, c clock.Clock, idleTTL time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		validator: v,
		source:    source,
		clock:     c,
		idleTTL:   idleTTL,
		logger:    logger,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Open starts a session on surface. The session id doubles as the booking-session token,
// so the session never conflicts with its own holds.
func (r *Registry) Open(ctx context.Context, surface fsm.Surface) *Session {
	id := uuid.New()
	if surface.Exclusion.SessionToken == uuid.Nil {
		surface.Exclusion.SessionToken = id
	}

	s := &Session{id: id, logger: r.logger, lastSeen: r.clock.Now()}
	s.ctrl = NewController(r.validator, surface, Hooks{OnValidationFailed: s.recordFailure}, r.logger)
	if r.source != nil {
		s.renderer = render.NewRenderer(r.source, s, r.logger)
	}

	r.mu.Lock()
	r.pruneLocked()
	r.sessions[id] = s
	r.mu.Unlock()

	s.render(ctx, surface)
	return s
}

func (r *Registry) Get(id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || r.expired(s) {
		delete(r.sessions, id)
		return nil, errs.Mark(errs.Newf("session %s", id), ErrSessionNotFound)
	}
	s.touch(r.clock.Now())
	return s, nil
}

func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.ctrl.Reset()
		if s.renderer != nil {
			s.renderer.Cancel()
		}
	}
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) pruneLocked() {
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
			r.logger.Debug("selection session expired", slog.String("session", id.String()))
		}
	}
}

func (r *Registry) expired(s *Session) bool {
	return r.idleTTL > 0 && r.clock.Now().Sub(s.idleSince()) > r.idleTTL
}
