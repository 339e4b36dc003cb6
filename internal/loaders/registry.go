package loaders

import (
	"fmt"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.LoaderRegistry = (*Registry)(nil)

// Registry maps file types to loaders, honouring loader priority.
type Registry struct {
	byType   map[domain.FileType]driven.Loader
	fallback driven.Loader
}

// NewRegistry creates an empty loader registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[domain.FileType]driven.Loader),
	}
}

// Register adds a loader for all the file types it declares.
// When two loaders claim the same type, the higher priority wins.
func (r *Registry) Register(l driven.Loader) {
	for _, t := range l.FileTypes() {
		existing, ok := r.byType[t]
		if !ok || l.Priority() > existing.Priority() {
			r.byType[t] = l
		}
	}
}

// SetFallback sets the loader used for types without a registration.
func (r *Registry) SetFallback(l driven.Loader) {
	r.fallback = l
}

// LoaderFor returns the loader for a file type, or the fallback.
func (r *Registry) LoaderFor(t domain.FileType) (driven.Loader, error) {
	if l, ok := r.byType[t]; ok {
		return l, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedType, t)
}
