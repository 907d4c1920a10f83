package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cleared-dev/smsledger/internal/model"
)

var (
	// ErrUnsupported is returned when a source cannot run in this environment.
	ErrUnsupported = errors.New("message source not supported")
	// ErrAccessDenied is returned when a source refuses access to its messages.
	ErrAccessDenied = errors.New("message access denied")
	// ErrUnknownSource is returned when no source is registered under a name.
	ErrUnknownSource = errors.New("unknown message source")
	// ErrNotAcknowledged is returned by Commit when the ledger was written but
	// the source could not be told so.
	ErrNotAcknowledged = errors.New("import saved but not acknowledged")
)

// Source supplies raw bank messages. Capability probing lives here so the
// parsing core only ever sees the resulting batch.
type Source interface {
	Name() string
	IsSupported() bool
	RequestAccess(ctx context.Context) bool
	Messages(ctx context.Context) ([]model.RawMessage, error)
}

// AckFunc confirms that the messages of one read were committed.
type AckFunc func(ctx context.Context) error

// Acknowledger is implemented by sources that consume their input once an
// import has been committed. The returned AckFunc covers exactly the
// messages returned with it, so concurrent reads do not affect each other.
type Acknowledger interface {
	Read(ctx context.Context) ([]model.RawMessage, AckFunc, error)
}

// Registry holds named message sources.
type Registry struct {
	sources map[string]Source
}

// NewRegistry creates an empty source registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// Register adds a source. Panics on duplicate name.
func (r *Registry) Register(s Source) {
	key := strings.ToLower(s.Name())
	if _, ok := r.sources[key]; ok {
		panic("duplicate message source: " + key)
	}
	r.sources[key] = s
}

// Get returns the source called name, or nil.
func (r *Registry) Get(name string) Source {
	return r.sources[strings.ToLower(name)]
}

// Lookup is Get with an error naming the registered sources.
func (r *Registry) Lookup(name string) (Source, error) {
	if s := r.Get(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownSource, name, strings.Join(r.Names(), ", "))
}

// Names returns the registered source names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sources))
	for n := range r.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry returns a registry with the demo and file sources.
func DefaultRegistry(repoRoot string, now func() time.Time) *Registry {
	r := NewRegistry()
	r.Register(NewDemoSource(now))
	r.Register(NewFileSource(repoRoot))
	return r
}
