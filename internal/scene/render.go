package scene

import (
	"encoding/json"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

// DrawEntry is one renderable shape handed to the rasterizing frontend:
// the world transform fully resolved through ancestor groups, plus the
// active geometry source. Exactly one of Rings, Vertices, or Commands is
// populated, in that order of precedence.
type DrawEntry struct {
	ID           string         `json:"id"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Rotation     float64        `json:"rotation"`
	Scale        float64        `json:"scale"`
	Fill         *string        `json:"fill,omitempty"`
	Stroke       *string        `json:"stroke,omitempty"`
	StrokeWeight float64        `json:"strokeWeight,omitempty"`
	Opacity      float64        `json:"opacity"`
	Commands     CommandList    `json:"commands,omitempty"`
	Vertices     []geom.Point   `json:"vertices,omitempty"`
	Rings        [][]geom.Point `json:"rings,omitempty"`
}

// CompileDrawList flattens the scene into painter's order (bottom first).
// Invisible entities and their subtrees are skipped.
func CompileDrawList(s *Scene) []DrawEntry {
	var out []DrawEntry
	for _, e := range s.Entities {
		compileEntity(e, geom.Identity(), &out)
	}
	return out
}

func compileEntity(e Entity, parent geom.Transform, out *[]DrawEntry) {
	if !e.IsVisible() {
		return
	}
	world := parent.Compose(e.Transform())

	switch v := e.(type) {
	case *Shape:
		entry := DrawEntry{
			ID:           v.ID,
			X:            world.TX,
			Y:            world.TY,
			Rotation:     world.Rotation,
			Scale:        world.Scale,
			Fill:         v.Fill,
			Stroke:       v.Stroke,
			StrokeWeight: v.StrokeWeight,
			Opacity:      v.Opacity,
		}
		switch {
		case len(v.Rings) > 0:
			entry.Rings = v.Rings
		case v.Vertices != nil:
			entry.Vertices = v.Vertices
		default:
			entry.Commands = CommandList(v.Commands)
		}
		*out = append(*out, entry)
	case *Group:
		for _, child := range v.Children {
			compileEntity(child, world, out)
		}
	}
}

// DrawListToJSON serializes a draw list for the frontend.
func DrawListToJSON(entries []DrawEntry) (string, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}
