package idmap

import (
	"github.com/thrustcurve/dataformat/internal/sync"
)

// Floor is the first integer handed out. It sits above any identifier the
// legacy numeric API ever issued.
const Floor int64 = 1000001

// Registry is a bidirectional string/integer identifier mapping. It is safe
// for concurrent use.
type Registry struct {
	mu    sync.Mutex
	toInt map[string]int64
	toStr map[int64]string
	next  int64
}

// New returns an empty registry whose first assignment is Floor.
func New() *Registry {
	return &Registry{
		toInt: make(map[string]int64),
		toStr: make(map[int64]string),
		next:  Floor,
	}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry, creating it on first use.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = New()
	})
	return defaultRegistry
}

// LookupOrAssign returns the integer for id, assigning the next one from the
// cursor when id has not been seen before.
func (r *Registry) LookupOrAssign(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n, ok := r.toInt[id]; ok {
		return n
	}
	n := r.next
	r.next++
	r.toInt[id] = n
	r.toStr[n] = id
	return n
}

// ReverseLookup returns the identifier that was assigned n, if any.
func (r *Registry) ReverseLookup(n int64) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.toStr[n]
	return id, ok
}

// Len returns the number of identifiers assigned so far.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.toInt)
}
