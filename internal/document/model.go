// Package document wraps one persisted canvas: identity and canvas
// metadata plus the entity records the scene codec produces. The live
// scene is materialized on demand and written back wholesale.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
	"github.com/vectorpad/vectorpad/engine-go/internal/typeid"
)

const (
	DefaultWidth      = 1280.0
	DefaultHeight     = 720.0
	DefaultBackground = "#1a1a2e"
)

// Document is the persisted unit: one canvas and its entities in
// z-order. Timestamps are RFC 3339 UTC strings.
type Document struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Width      float64              `json:"width"`
	Height     float64              `json:"height"`
	Background string               `json:"background"`
	CreatedAt  string               `json:"createdAt,omitempty"`
	UpdatedAt  string               `json:"updatedAt,omitempty"`
	Entities   []scene.EntityRecord `json:"entities"`
}

// NewEmptyDocument creates a named document with the stock canvas and no
// entities.
func NewEmptyDocument(name string) *Document {
	if name == "" {
		name = "Untitled"
	}
	now := timestamp()
	return &Document{
		ID:         typeid.NewDocumentID(),
		Name:       name,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
		CreatedAt:  now,
		UpdatedAt:  now,
		Entities:   []scene.EntityRecord{},
	}
}

// Scene materializes a live scene from the stored records.
func (d *Document) Scene() (*scene.Scene, error) {
	return scene.DecodeScene(d.Entities)
}

// SetScene replaces the stored records with the scene's current state
// and touches the update timestamp.
func (d *Document) SetScene(sc *scene.Scene) {
	d.Entities = scene.EncodeScene(sc)
	d.UpdatedAt = timestamp()
}

// Marshal serializes the document as compact JSON.
func (d *Document) Marshal() ([]byte, error) {
	return json.Marshal(d)
}

// MarshalIndent serializes the document with two-space indentation, for
// files people read.
func (d *Document) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Parse deserializes a document without validating it.
func Parse(data []byte) (*Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &d, nil
}

// Validate checks structural soundness: a present id, a positive canvas,
// decodable records, and no duplicated entity id anywhere in the tree.
func (d *Document) Validate() error {
	if d.ID == "" {
		return errors.New("document id is empty")
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("canvas %gx%g is not positive", d.Width, d.Height)
	}
	if _, err := scene.DecodeScene(d.Entities); err != nil {
		return err
	}
	seen := make(map[string]bool)
	return checkIDs(d.Entities, seen)
}

func checkIDs(recs []scene.EntityRecord, seen map[string]bool) error {
	for _, rec := range recs {
		if rec.ID == "" {
			return fmt.Errorf("entity %q has no id", rec.Name)
		}
		if seen[rec.ID] {
			return fmt.Errorf("duplicate entity id %q", rec.ID)
		}
		seen[rec.ID] = true
		if err := checkIDs(rec.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

// CountEntities returns the number of entities in the tree, groups and
// their children included.
func (d *Document) CountEntities() int {
	return countRecords(d.Entities)
}

func countRecords(recs []scene.EntityRecord) int {
	n := 0
	for _, rec := range recs {
		n += 1 + countRecords(rec.Children)
	}
	return n
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
