package chat

import (
	"strings"
	"sync"
	"time"
)

// ContextEntry is one named snippet of background text.
type ContextEntry struct {
	Name    string    `json:"name"`
	Content string    `json:"content"`
	AddedAt time.Time `json:"added_at"`
}

// ContextStore is an ordered name-to-snippet registry. Re-adding a name
// replaces its content in place (last write wins) but keeps its position.
type ContextStore struct {
	mu      sync.Mutex
	entries map[string]*ContextEntry
	order   []string
	now     func() time.Time
}

func NewContextStore() *ContextStore {
	return &ContextStore{
		entries: make(map[string]*ContextEntry),
		now:     time.Now,
	}
}

// Add inserts or overwrites the entry for name. Empty name and content are
// accepted.
func (c *ContextStore) Add(name, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[name]; !ok {
		c.order = append(c.order, name)
	}
	c.entries[name] = &ContextEntry{
		Name:    name,
		Content: content,
		AddedAt: c.now(),
	}
}

// Get returns the content for name. The second result is false when the name
// is unknown; unknown names never error.
func (c *ContextStore) Get(name string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[name]
	if !ok {
		return "", false
	}
	return entry.Content, true
}

// Names returns the registered names in first-insertion order.
func (c *ContextStore) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

func (c *ContextStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// FormatAll renders every entry as "[name]\n{content}\n", blocks joined by a
// single newline, in insertion order. Empty store renders to "".
func (c *ContextStore) FormatAll() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.order) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(c.order))
	for _, name := range c.order {
		entry := c.entries[name]
		blocks = append(blocks, "["+entry.Name+"]\n"+entry.Content+"\n")
	}
	return strings.Join(blocks, "\n")
}
