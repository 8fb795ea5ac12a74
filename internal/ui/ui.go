// Package ui models the host's control surface. Elements are looked up by
// identity at render time; a headless host simply has none registered, and
// every renderer treats an absent element as a no-op.
package ui

import "sync"

// Element is any addressable control on the host surface.
type Element interface {
	ElementID() string
}

// ValueSetter is implemented by elements whose displayed value can be set
// programmatically.
type ValueSetter interface {
	SetValue(text string)
}

// ValueGetter is implemented by elements whose displayed value can be read.
type ValueGetter interface {
	Value() string
}

// NumericInput is an editable field showing the rotation in whole degrees.
type NumericInput struct {
	id    string
	value string

	mu       sync.Mutex
	onCommit []func(text string)
}

// NewNumericInput creates a NumericInput with the given element ID.
func NewNumericInput(id string) *NumericInput {
	return &NumericInput{id: id}
}

// ElementID returns the element identity.
func (n *NumericInput) ElementID() string { return n.id }

// SetValue updates the displayed text without firing commit callbacks.
func (n *NumericInput) SetValue(text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.value = text
}

// Value returns the displayed text.
func (n *NumericInput) Value() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.value
}

// OnCommit registers a callback fired when the user commits an edit.
func (n *NumericInput) OnCommit(fn func(text string)) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.onCommit = append(n.onCommit, fn)
}

// Commit simulates the user typing text and committing it. The displayed
// value updates and all commit callbacks fire with the raw text.
func (n *NumericInput) Commit(text string) {
	n.mu.Lock()
	n.value = text
	callbacks := make([]func(string), len(n.onCommit))
	copy(callbacks, n.onCommit)
	n.mu.Unlock()

	for _, fn := range callbacks {
		fn(text)
	}
}

// TextLabel is a read-only readout element.
type TextLabel struct {
	id string

	mu    sync.Mutex
	value string
}

// NewTextLabel creates a TextLabel with the given element ID.
func NewTextLabel(id string) *TextLabel {
	return &TextLabel{id: id}
}

// ElementID returns the element identity.
func (l *TextLabel) ElementID() string { return l.id }

// SetValue updates the displayed text.
func (l *TextLabel) SetValue(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.value = text
}

// Value returns the displayed text.
func (l *TextLabel) Value() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

// Registry holds the elements the host actually created. Lookup misses are
// normal, not errors.
type Registry struct {
	mu       sync.RWMutex
	elements map[string]Element
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{elements: make(map[string]Element)}
}

// Add registers an element under its own ID.
func (r *Registry) Add(e Element) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.elements[e.ElementID()] = e
}

// Remove drops an element by ID.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.elements, id)
}

// Lookup returns the element with the given ID, or false when the host
// never created it.
func (r *Registry) Lookup(id string) (Element, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.elements[id]
	return e, ok
}
