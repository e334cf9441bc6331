package chat

import (
	"sync"

	"github.com/sandevgo/quillbot/internal/core"
)

// Entry pairs one Session with one ContextStore under a session key.
type Entry struct {
	Session  *Session
	Contexts *ContextStore
}

// Registry maps opaque session keys to their Session/ContextStore pair,
// creating pairs lazily on first use. Entries are never evicted: the map
// grows for the life of the process. Whether idle sessions should expire is
// an open product question; no TTL is applied here.
type Registry struct {
	mu        sync.Mutex
	entries   map[string]*Entry
	completer core.Completer
	model     string
	maxTokens int
}

func NewRegistry(completer core.Completer, model string, maxTokens int) *Registry {
	return &Registry{
		entries:   make(map[string]*Entry),
		completer: completer,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Resolve returns the pair bound to key, creating it atomically when the key
// has not been seen. Concurrent first resolves of the same key yield the
// same single pair.
func (r *Registry) Resolve(key string) *Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		entry = &Entry{
			Session:  NewSession(r.completer, r.model, r.maxTokens),
			Contexts: NewContextStore(),
		}
		r.entries[key] = entry
	}
	return entry
}

// Lookup returns the pair bound to key without creating one.
func (r *Registry) Lookup(key string) (*Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	return entry, ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
