// Package project models the geo-report project document and the bridge
// between the live session and its persisted form.
package project

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trhaseeb/geo-report/internal/feature"
)

// Document is the persisted project: basemap choice, features, and the map
// rotation at the moment of export.
type Document struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Author    string            `json:"author,omitempty"`
	Basemap   string            `json:"basemap,omitempty"`
	Rotation  int               `json:"rotation"`
	Features  []feature.Feature `json:"features"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// NewDocument creates an empty project document.
func NewDocument(title, author, basemap string) *Document {
	now := time.Now().UTC()
	return &Document{
		ID:        uuid.NewString(),
		Title:     title,
		Author:    author,
		Basemap:   basemap,
		Features:  make([]feature.Feature, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	cp := *d
	cp.Features = make([]feature.Feature, len(d.Features))
	copy(cp.Features, d.Features)
	return &cp
}

// Encode serializes the document to JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode project document: %w", err)
	}
	return data, nil
}
