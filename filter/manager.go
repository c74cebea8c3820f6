package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/rs/zerolog"
)

// Manager holds named filters and applies them to result records
type Manager struct {
	compiler Compiler
	filters  map[string]Filter
	logger   zerolog.Logger
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// WithLogger sets the logger used to report records that fail evaluation
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]Filter),
		logger:   zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilters compiles and registers named filters. Nothing is
// registered if any expression fails to compile.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]Filter, len(filters))

	for name, expression := range filters {
		f, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = f
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (Filter, bool) {
	m.mu.RLock()
	f, exists := m.filters[name]
	m.mu.RUnlock()
	return f, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the registered filter called nameOrExpression, or compiles
// the argument as an ad-hoc expression.
func (m *Manager) Resolve(nameOrExpression string) (Filter, error) {
	if f, ok := m.GetFilter(nameOrExpression); ok {
		return f, nil
	}
	return m.compiler.Compile(nameOrExpression)
}

// Apply returns the records matching f, in order. Records that fail
// evaluation are logged and treated as non-matching.
func (m *Manager) Apply(ctx context.Context, f Filter, records []Record) ([]Record, error) {
	matches := make([]Record, 0, len(records))
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ok, err := f.Match(record)
		if err != nil {
			m.logger.Debug().Err(err).Msg("Skipping record")
			continue
		}
		if ok {
			matches = append(matches, record)
		}
	}
	return matches, nil
}
