// Package typelib provides the in-memory type library: the registry that
// assigns each distinct declared type a stable identifier so generated
// declarations never collide. Its lifecycle spans one compilation run and
// it is owned by the compiler context, passed explicitly to consumers.
package typelib

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gnana997/tsmeta/pkg/typeref"
)

// ErrNilType is returned when a registration carries no type identity.
// Callers must propagate it; a fabricated id would silently produce
// colliding generated output.
var ErrNilType = errors.New("typelib: nil type handle")

// Entry is one registered type.
type Entry struct {
	ID   string
	Name string
	Path string
}

// MemoryLibrary is a mutex-guarded typeref.Library. Registration is
// idempotent on type identity: re-registering the same declared type from
// any call site returns the id minted first. Distinct types with the same
// name and path never collapse; later ones get a disambiguating suffix.
type MemoryLibrary struct {
	mu      sync.Mutex
	byType  map[string]string // TypeKey → id
	taken   map[string]bool   // issued ids
	entries []Entry
}

// NewMemoryLibrary creates an empty library.
func NewMemoryLibrary() *MemoryLibrary {
	return &MemoryLibrary{
		byType: make(map[string]string),
		taken:  make(map[string]bool),
	}
}

// Add registers a declared type and returns its stable id. Implements
// typeref.Library.
func (l *MemoryLibrary) Add(t typeref.TypeHandle, name, path string) (string, error) {
	if t == nil {
		return "", ErrNilType
	}
	key := t.TypeKey()
	if key == "" {
		return "", fmt.Errorf("typelib: empty type key for %q in %s", name, path)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if id, ok := l.byType[key]; ok {
		return id, nil
	}

	id := path + "::" + name
	for n := 2; l.taken[id]; n++ {
		id = fmt.Sprintf("%s::%s$%d", path, name, n)
	}

	l.byType[key] = id
	l.taken[id] = true
	l.entries = append(l.entries, Entry{ID: id, Name: name, Path: path})
	return id, nil
}

// Entries returns a snapshot of all registrations in insertion order, for
// the typings emitter.
func (l *MemoryLibrary) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of registered types.
func (l *MemoryLibrary) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
