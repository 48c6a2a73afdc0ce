package scene

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/typeid"
)

// Group is a container entity. Children live in the group's coordinate
// space and are owned exclusively: an entity is either top-level in the
// scene or a child of exactly one group.
type Group struct {
	ID   string
	Name string

	X        float64
	Y        float64
	Rotation float64
	Scale    float64

	Visible bool
	Locked  bool

	Children []Entity
}

// NewGroup creates an empty visible group at the origin.
func NewGroup() *Group {
	return &Group{
		ID:      typeid.NewGroupID(),
		Scale:   1,
		Visible: true,
	}
}

func (g *Group) EntityID() string { return g.ID }

func (g *Group) Type() EntityType { return TypeGroup }

func (g *Group) Transform() geom.Transform {
	return geom.NewTransform(g.X, g.Y, g.Rotation, g.Scale)
}

func (g *Group) SetTransform(t geom.Transform) {
	g.X, g.Y = t.TX, t.TY
	g.Rotation = t.Rotation
	g.Scale = t.Scale
}

func (g *Group) IsVisible() bool { return g.Visible }

func (g *Group) IsLocked() bool { return g.Locked }

// Bounds unions the children's local boxes offset by each child's (x, y).
// Child rotation and scale are ignored; the box is an approximation.
func (g *Group) Bounds() (geom.Rect, bool) {
	var out geom.Rect
	found := false
	for _, child := range g.Children {
		b, ok := child.Bounds()
		if !ok {
			continue
		}
		t := child.Transform()
		b.X += t.TX
		b.Y += t.TY
		if !found {
			out = b
			found = true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

func (g *Group) HitTest(x, y float64) bool {
	if !g.Visible {
		return false
	}
	return hitLocalBounds(g, x, y)
}

// FindChild returns the direct or nested child with the given id.
func (g *Group) FindChild(id string) Entity {
	for _, child := range g.Children {
		if child.EntityID() == id {
			return child
		}
		if sub, ok := child.(*Group); ok {
			if found := sub.FindChild(id); found != nil {
				return found
			}
		}
	}
	return nil
}
