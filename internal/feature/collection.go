package feature

import "sync"

// Collection maps feature identities to their live layers for the current
// project. It is externally owned relative to the rotation core: membership
// can change at any time, and consumers read it at call time.
type Collection struct {
	mu     sync.RWMutex
	layers map[string]Layer
}

// NewCollection creates an empty Collection.
func NewCollection() *Collection {
	return &Collection{
		layers: make(map[string]Layer),
	}
}

// Get retrieves a layer by feature ID.
func (c *Collection) Get(id string) (Layer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.layers[id]
	return l, ok
}

// Set stores a layer by feature ID.
func (c *Collection) Set(id string, l Layer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers[id] = l
}

// Delete removes a layer by feature ID.
func (c *Collection) Delete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layers, id)
}

// Reset clears all layers from the collection.
func (c *Collection) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layers = make(map[string]Layer)
}

// Len returns the number of layers.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.layers)
}

// Each calls fn for every layer present when Each was invoked.
func (c *Collection) Each(fn func(id string, l Layer)) {
	c.mu.RLock()
	snapshot := make(map[string]Layer, len(c.layers))
	for id, l := range c.layers {
		snapshot[id] = l
	}
	c.mu.RUnlock()

	for id, l := range snapshot {
		fn(id, l)
	}
}
