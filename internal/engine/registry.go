package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/blankline/internal/boundary"
	"github.com/dshills/blankline/internal/config"
	"github.com/dshills/blankline/internal/logging"
	"github.com/dshills/blankline/internal/pattern"
)

// Registry owns the engines for all activated buffers. Pattern
// compilation is shared across engines through one pattern registry.
type Registry struct {
	mu       sync.RWMutex
	tables   *config.Tables
	patterns *pattern.Registry
	engines  map[string]*Engine
	log      *logging.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithTables sets the configuration tables.
func WithTables(t *config.Tables) Option {
	return func(r *Registry) {
		if t != nil {
			r.tables = t
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry creates a registry. Without options it uses the stock
// configuration and the default logger.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tables:   config.Default(),
		patterns: pattern.NewRegistry(),
		engines:  make(map[string]*Engine),
		log:      logging.Default().WithComponent("engine"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Activate creates an engine for a buffer, resolving its style and
// actions from the tables. fileID is typically a path, modeID a
// language or major-mode name. Returns ErrAlreadyActivated when the
// buffer already has an engine.
func (r *Registry) Activate(bufID string, content Content, fileID, modeID string) (*Engine, error) {
	if content == nil {
		return nil, ErrNilContent
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.engines[bufID]; ok {
		return nil, ErrAlreadyActivated
	}

	e := &Engine{
		id:       uuid.NewString(),
		bufID:    bufID,
		content:  content,
		fileID:   fileID,
		modeID:   modeID,
		patterns: r.patterns,
		tracker:  boundary.NewTracker(content.Len()),
		cursor:   -1,
		log:      r.log.WithField("buffer", bufID),
	}
	e.resolve(r.tables)
	r.engines[bufID] = e

	r.log.Debug("activated buffer %s (file=%s mode=%s kinds=%d)",
		bufID, fileID, modeID, e.st.Len())
	return e, nil
}

// Deactivate drops the engine for a buffer.
func (r *Registry) Deactivate(bufID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.engines[bufID]; !ok {
		return ErrNotActivated
	}
	delete(r.engines, bufID)
	r.log.Debug("deactivated buffer %s", bufID)
	return nil
}

// Get returns the engine for a buffer.
func (r *Registry) Get(bufID string) (*Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[bufID]
	return e, ok
}

// Len returns the number of active engines.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.engines)
}

// Tables returns the registry's configuration tables.
func (r *Registry) Tables() *config.Tables {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tables
}

// Reresolve recomputes the style and action set of every active engine
// from the current tables. Called after a configuration reload.
// Boundary state is preserved.
func (r *Registry) Reresolve() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.engines {
		e.mu.Lock()
		e.resolve(r.tables)
		e.mu.Unlock()
	}
	r.log.Debug("re-resolved %d engines", len(r.engines))
}
