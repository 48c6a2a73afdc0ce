package scene

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/typeid"
)

// Clone returns an independent deep copy of the shape. Every slice and
// pointer field is duplicated; the id stays the same.
func (s *Shape) Clone() Entity {
	dup := &Shape{
		ID:           s.ID,
		Name:         s.Name,
		X:            s.X,
		Y:            s.Y,
		Rotation:     s.Rotation,
		Scale:        s.Scale,
		Fill:         cloneColor(s.Fill),
		Stroke:       cloneColor(s.Stroke),
		StrokeWeight: s.StrokeWeight,
		Opacity:      s.Opacity,
		Visible:      s.Visible,
		Locked:       s.Locked,
	}
	if s.Commands != nil {
		dup.Commands = make([]Command, len(s.Commands))
		for i, c := range s.Commands {
			dup.Commands[i] = c.clone()
		}
	}
	if s.Vertices != nil {
		dup.Vertices = make([]geom.Point, len(s.Vertices))
		copy(dup.Vertices, s.Vertices)
	}
	if s.Rings != nil {
		dup.Rings = make([][]geom.Point, len(s.Rings))
		for i, ring := range s.Rings {
			dup.Rings[i] = make([]geom.Point, len(ring))
			copy(dup.Rings[i], ring)
		}
	}
	return dup
}

// Clone returns an independent deep copy of the group and its subtree.
func (g *Group) Clone() Entity {
	dup := &Group{
		ID:       g.ID,
		Name:     g.Name,
		X:        g.X,
		Y:        g.Y,
		Rotation: g.Rotation,
		Scale:    g.Scale,
		Visible:  g.Visible,
		Locked:   g.Locked,
	}
	if g.Children != nil {
		dup.Children = make([]Entity, len(g.Children))
		for i, child := range g.Children {
			dup.Children[i] = child.Clone()
		}
	}
	return dup
}

func cloneColor(c *string) *string {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}

// CloneWithNewIDs deep-copies an entity and assigns fresh ids throughout,
// for duplicate-style operations where the copy joins the same scene.
func CloneWithNewIDs(e Entity) Entity {
	dup := e.Clone()
	reassignIDs(dup)
	return dup
}

func reassignIDs(e Entity) {
	switch v := e.(type) {
	case *Shape:
		v.ID = typeid.NewShapeID()
	case *Group:
		v.ID = typeid.NewGroupID()
		for _, child := range v.Children {
			reassignIDs(child)
		}
	}
}
