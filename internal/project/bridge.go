package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/trhaseeb/geo-report/internal/feature"
	"github.com/trhaseeb/geo-report/internal/rotation"
)

// documentWire mirrors Document for decoding, with the rotation field kept
// raw so a damaged value degrades that one field instead of failing the
// whole import.
type documentWire struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Author    string            `json:"author"`
	Basemap   string            `json:"basemap"`
	Rotation  json.RawMessage   `json:"rotation"`
	Features  []feature.Feature `json:"features"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Bridge connects the live session (document, marker layers, rotation) to
// the persisted document form. Export captures the session verbatim; Import
// replaces it wholesale and re-synchronizes every rotation surface.
type Bridge struct {
	logger  *slog.Logger
	session *Context
	coord   *rotation.Coordinator
	markers *feature.Collection
}

// NewBridge creates a Bridge over the given session.
func NewBridge(logger *slog.Logger, session *Context, coord *rotation.Coordinator, markers *feature.Collection) *Bridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{
		logger:  logger,
		session: session,
		coord:   coord,
		markers: markers,
	}
}

// Export returns a snapshot of the session as a document, with the rotation
// field carrying the current value verbatim.
func (b *Bridge) Export() *Document {
	doc := b.session.Get().Clone()
	doc.Rotation = b.coord.Value()
	doc.UpdatedAt = time.Now().UTC()
	return doc
}

// Decode parses a persisted document. Structural damage fails the decode;
// a missing, malformed, or out-of-range rotation field does not, it falls
// back to 0 so the rest of the project still imports.
func (b *Bridge) Decode(data []byte) (*Document, error) {
	return Decode(b.logger, data)
}

// Decode parses a persisted document with a lenient rotation field.
func Decode(logger *slog.Logger, data []byte) (*Document, error) {
	var wire documentWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("failed to decode project document: %w", err)
	}

	doc := &Document{
		ID:        wire.ID,
		Title:     wire.Title,
		Author:    wire.Author,
		Basemap:   wire.Basemap,
		Rotation:  decodeRotation(logger, wire.Rotation),
		Features:  wire.Features,
		CreatedAt: wire.CreatedAt,
		UpdatedAt: wire.UpdatedAt,
	}
	if doc.Features == nil {
		doc.Features = make([]feature.Feature, 0)
	}
	return doc, nil
}

func decodeRotation(logger *slog.Logger, raw json.RawMessage) int {
	if len(raw) == 0 || string(raw) == "null" {
		logger.Warn("project document has no rotation field, using 0")
		return 0
	}

	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("project document rotation is malformed, using 0",
			"raw", string(raw), "error", err)
		return 0
	}
	if v < 0 || v >= 360 {
		logger.Warn("project document rotation is out of range, using 0",
			"degrees", v)
		return 0
	}
	return v
}

// Import replaces the session with the given document: the marker layers
// are rebuilt from its features and the rotation is fanned out to every
// surface unconditionally, so no stale UI state survives the load.
func (b *Bridge) Import(doc *Document) {
	b.session.Set(doc)

	b.markers.Reset()
	for _, f := range doc.Features {
		b.markers.Set(f.ID, feature.BuildLayer(f))
	}

	b.coord.LoadFromPersisted(doc.Rotation)

	b.logger.Info("project imported",
		"id", doc.ID,
		"title", doc.Title,
		"features", len(doc.Features),
		"rotation", doc.Rotation)
}

// ImportData decodes and imports a persisted document in one step.
func (b *Bridge) ImportData(data []byte) (*Document, error) {
	doc, err := b.Decode(data)
	if err != nil {
		return nil, err
	}
	b.Import(doc)
	return doc, nil
}

// Reset discards the session: a fresh untitled document, no marker layers,
// rotation back to 0 with a full fan-out.
func (b *Bridge) Reset() {
	current := b.session.Get()
	b.session.Set(NewDocument("Untitled project", current.Author, current.Basemap))
	b.markers.Reset()
	b.coord.Reset()
}
