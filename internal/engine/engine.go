// Package engine implements the recipe shelf's state machine: the edit
// session, the aggregate view state, and the remote calls that feed it.
//
// State transitions are pure. Remote calls go through [Engine.Execute],
// which may run on any goroutine; its [Event] result must be folded back
// with [Apply] on the goroutine that owns the State.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/ottoshelf/internal/domain"
	"github.com/hammamikhairi/ottoshelf/internal/logger"
)

// Option configures the engine.
type Option func(*Engine)

// WithOpTimeout bounds every remote call. Zero, the default, means calls
// run until the caller's context ends.
func WithOpTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.opTimeout = d
	}
}

// Op is a remote mutation.
type Op int

const (
	OpCreate Op = iota
	OpUpdate
	OpDelete
)

// String returns a human-readable op.
func (o Op) String() string {
	switch o {
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Request is a remote mutation waiting to be executed.
type Request struct {
	Op    Op
	ID    string // target for update and delete
	Draft domain.Draft
}

// Engine runs remote calls on behalf of the view. It depends only on the
// RecipeStore interface and is fully testable with fakes.
type Engine struct {
	store     domain.RecipeStore
	log       *logger.Logger
	opTimeout time.Duration
}

// New creates an engine with the given dependencies and options.
func New(store domain.RecipeStore, log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		log:   log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the whole collection.
func (e *Engine) Load(ctx context.Context) Event {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	items, err := e.store.FetchAll(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrFetch, err)
		e.log.Error("loading recipes: %v", err)
		return LoadFailed{Err: err}
	}
	e.log.Info("loaded %d recipes", len(items))
	return Loaded{Items: items}
}

// Submit validates the open form. It returns the state with the error
// slot set and no request when a field is empty, so nothing reaches the
// network. With the form closed it returns no request.
func (e *Engine) Submit(s State) (State, *Request) {
	sess := s.Session
	if !sess.Open() {
		return s, nil
	}

	if err := sess.Fields.Validate(); err != nil {
		e.log.Debug("submit rejected: %v", err)
		s.Err = domain.UserMessage(err)
		return s, nil
	}

	if sess.Mode == domain.EditEditing {
		return s, &Request{Op: OpUpdate, ID: sess.TargetID(), Draft: sess.Fields}
	}
	return s, &Request{Op: OpCreate, Draft: sess.Fields}
}

// DeleteRequest builds the request that removes id.
func (e *Engine) DeleteRequest(id string) Request {
	return Request{Op: OpDelete, ID: id}
}

// Execute performs req against the store and reports the outcome. It
// never mutates State and is safe to call from any goroutine.
func (e *Engine) Execute(ctx context.Context, req Request) Event {
	ctx, cancel := e.withTimeout(ctx)
	defer cancel()

	switch req.Op {
	case OpCreate:
		r, err := e.store.Create(ctx, req.Draft)
		if err != nil {
			return e.submitFailed(req, err)
		}
		e.log.Info("created recipe %s (%s)", r.ID, r.Name)
		e.log.Debug("create response: %+v", r)
		return Created{Recipe: r}

	case OpUpdate:
		r, err := e.store.Update(ctx, req.ID, req.Draft)
		if err != nil {
			return e.submitFailed(req, err)
		}
		e.log.Info("updated recipe %s (%s)", r.ID, r.Name)
		e.log.Debug("update response: %+v", r)
		return Updated{Recipe: r}

	case OpDelete:
		if err := e.store.Remove(ctx, req.ID); err != nil {
			err = fmt.Errorf("%w: %w", domain.ErrDelete, err)
			e.log.Warn("deleting recipe %s: %v", req.ID, err)
			return DeleteFailed{ID: req.ID, Err: err}
		}
		e.log.Info("deleted recipe %s", req.ID)
		return Deleted{ID: req.ID}
	}

	e.log.Error("unknown op %d", req.Op)
	return nil
}

// Run executes req and applies the outcome to s in one step. Used where
// blocking is acceptable.
func (e *Engine) Run(ctx context.Context, s State, req *Request) State {
	if req == nil {
		return s
	}
	return Apply(s, e.Execute(ctx, *req))
}

func (e *Engine) submitFailed(req Request, err error) Event {
	err = fmt.Errorf("%w: %s: %w", domain.ErrSubmit, req.Op, err)
	e.log.Warn("submitting recipe: %v", err)
	return SubmitFailed{Op: req.Op, Err: err}
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.opTimeout)
}
