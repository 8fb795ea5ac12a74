package project

import (
	"sync"

	"github.com/trhaseeb/geo-report/internal/feature"
)

// Context holds the current project document for the session.
type Context struct {
	mu  sync.RWMutex
	doc *Document
}

// NewContext creates a Context holding a fresh untitled project.
func NewContext() *Context {
	return &Context{
		doc: NewDocument("Untitled project", "", "osm"),
	}
}

// Get returns the current project document.
func (c *Context) Get() *Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.doc
}

// Set replaces the current project document.
func (c *Context) Set(doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.doc = doc
}

// AddFeature appends a feature to the current document. An existing feature
// with the same ID is replaced.
func (c *Context) AddFeature(f feature.Feature) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.doc.Features {
		if existing.ID == f.ID {
			c.doc.Features[i] = f
			return
		}
	}
	c.doc.Features = append(c.doc.Features, f)
}

// RemoveFeature drops a feature by ID and reports whether it was present.
func (c *Context) RemoveFeature(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.doc.Features {
		if existing.ID == id {
			c.doc.Features = append(c.doc.Features[:i], c.doc.Features[i+1:]...)
			return true
		}
	}
	return false
}
