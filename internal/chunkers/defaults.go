package chunkers

import (
	"github.com/mindsonic-labs/mindsonic/internal/chunkers/recursive"
)

// RegisterDefaults registers the built-in chunkers with the registry
// and makes the recursive chunker the default. The size and overlap
// apply to every registered chunker built here.
func RegisterDefaults(r *Registry, chunkSize, overlap int) error {
	c, err := recursive.New(
		recursive.WithChunkSize(chunkSize),
		recursive.WithOverlap(overlap),
	)
	if err != nil {
		return err
	}

	r.Register(c)
	return r.SetDefault(c.Name())
}
