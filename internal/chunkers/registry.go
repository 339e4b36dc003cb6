// Package chunkers provides chunker implementations and a registry for
// selecting them by name.
package chunkers

import (
	"fmt"

	"github.com/mindsonic-labs/mindsonic/internal/core/domain"
	"github.com/mindsonic-labs/mindsonic/internal/core/ports/driven"
)

// Registry maps chunker names to implementations.
type Registry struct {
	byName      map[string]driven.Chunker
	defaultName string
}

// NewRegistry creates an empty chunker registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]driven.Chunker),
	}
}

// Register adds a chunker under its name. Registering a name twice
// replaces the earlier entry.
func (r *Registry) Register(c driven.Chunker) {
	r.byName[c.Name()] = c
}

// SetDefault marks the named chunker as the default.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: chunker %s", domain.ErrNotFound, name)
	}
	r.defaultName = name
	return nil
}

// Get returns the chunker registered under name.
func (r *Registry) Get(name string) (driven.Chunker, error) {
	c, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: chunker %s", domain.ErrNotFound, name)
	}
	return c, nil
}

// Default returns the default chunker.
func (r *Registry) Default() (driven.Chunker, error) {
	if r.defaultName == "" {
		return nil, fmt.Errorf("%w: no default chunker", domain.ErrNotFound)
	}
	return r.Get(r.defaultName)
}
