// Package rotation implements the map rotation core: a single canonical
// rotation value per project, a capability probe for the host's map widget,
// and a coordinator that keeps every surface (map bearing, rotation control,
// input field, readout, marker icons) in agreement with that value.
package rotation

import "sync"

// Normalize wraps degrees into the canonical range [0, 360).
func Normalize(degrees int) int {
	m := degrees % 360
	if m < 0 {
		m += 360
	}
	return m
}

// State holds the canonical rotation value in whole degrees [0, 360).
type State struct {
	mu      sync.RWMutex
	degrees int
}

// NewState creates a State at 0 degrees.
func NewState() *State {
	return &State{}
}

// Get returns the current rotation value.
func (s *State) Get() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degrees
}

// Set stores a rotation value, wrapping it into [0, 360), and returns the
// stored value.
func (s *State) Set(degrees int) int {
	v := Normalize(degrees)
	s.mu.Lock()
	s.degrees = v
	s.mu.Unlock()
	return v
}
