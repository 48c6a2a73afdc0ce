package scene

import "github.com/vectorpad/vectorpad/engine-go/internal/geom"

// EntityType tags the two node types in serialized form.
type EntityType string

const (
	TypeShape EntityType = "shape"
	TypeGroup EntityType = "group"
)

// Entity is a scene node: a Shape or a Group. The concrete structs expose
// their fields directly; the interface carries only what generic scene and
// interaction code needs.
type Entity interface {
	EntityID() string
	Type() EntityType

	// Transform returns the entity's own transform (not composed with any
	// ancestors).
	Transform() geom.Transform
	// SetTransform writes the transform back to the entity's fields.
	SetTransform(t geom.Transform)

	IsVisible() bool
	IsLocked() bool

	// Bounds returns the local-space bounding box, ok=false when the
	// entity has no geometry.
	Bounds() (geom.Rect, bool)
	// HitTest reports whether the world point lands on the entity. The
	// point is inverse-transformed into local space and tested against
	// the local bounding box; geometry-exact hits are out of scope.
	HitTest(x, y float64) bool

	// Clone returns an independent deep copy sharing no mutable state
	// with the original. The id is preserved.
	Clone() Entity
}

// hitLocalBounds implements the shared bounding-box hit rule.
func hitLocalBounds(e Entity, x, y float64) bool {
	b, ok := e.Bounds()
	if !ok {
		return false
	}
	local := e.Transform().Invert(geom.Pt(x, y))
	return b.Contains(local.X, local.Y)
}

// WorldBounds returns the axis-aligned box of the entity's transformed
// local bounds.
func WorldBounds(e Entity) (geom.Rect, bool) {
	b, ok := e.Bounds()
	if !ok {
		return geom.Rect{}, false
	}
	return e.Transform().ApplyRect(b), true
}
