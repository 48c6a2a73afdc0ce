package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/booleanops"
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// duplicateOffset shifts clones so they don't land exactly on their
// originals.
const duplicateOffset = 10.0

// commitPoint closes any open coalescing burst and records the current
// state as the undo point for the discrete operation about to run.
func (e *Editor) commitPoint() {
	e.log.EndCoalesce()
	e.log.Commit(e.scene)
}

// DeleteSelection removes every selected entity. Reports whether
// anything was removed.
func (e *Editor) DeleteSelection() bool {
	resolved := e.selection.Resolve(e.scene)
	if len(resolved) == 0 {
		return false
	}
	e.commitPoint()
	for _, ent := range resolved {
		e.scene.Remove(ent.EntityID())
	}
	e.selection.Clear()
	if e.activeVertex != nil && e.shapeByID(e.activeVertex.ShapeID) == nil {
		e.activeVertex = nil
	}
	e.resetCycle()
	return true
}

// DeleteActiveVertex removes the active vertex when its shape would keep
// at least 3 points; undersized polygons silently refuse.
func (e *Editor) DeleteActiveVertex() bool {
	if e.activeVertex == nil {
		return false
	}
	sh := e.shapeByID(e.activeVertex.ShapeID)
	if sh == nil || sh.Locked {
		return false
	}
	if !canDeletePoint(sh, e.activeVertex.Index) {
		return false
	}
	e.commitPoint()
	deletePointAt(sh, e.activeVertex.Index)
	e.activeVertex = nil
	return true
}

// InsertVertex splits the picked outline edge, placing a new point at the
// world position and making it the active vertex. Only vertex lists and
// polylines accept new points.
func (e *Editor) InsertVertex(ref EdgeRef, x, y float64) bool {
	sh := e.shapeByID(ref.ShapeID)
	if sh == nil || sh.Locked {
		return false
	}
	if !canInsertPoint(sh, ref.Index) {
		return false
	}
	local := sh.Transform().Invert(geom.Pt(x, y))
	e.commitPoint()
	insertPointAfter(sh, ref.Index, local)
	e.activeVertex = &VertexRef{ShapeID: sh.ID, Index: ref.Index + 1}
	return true
}

func canInsertPoint(sh *scene.Shape, index int) bool {
	if index < 0 {
		return false
	}
	if len(sh.Vertices) > 0 {
		return index < len(sh.Vertices)
	}
	for _, c := range sh.Commands {
		cmd, ok := c.(*scene.Polyline)
		if !ok {
			index -= commandPointCount(c)
			if index < 0 {
				return false
			}
			continue
		}
		if index < len(cmd.Points) {
			return true
		}
		index -= len(cmd.Points)
	}
	return false
}

// GroupSelection wraps the selected top-level entities into a new group
// at the center of their combined bounds, rewriting child coordinates so
// world positions are unchanged. Needs at least two entities.
func (e *Editor) GroupSelection() (*scene.Group, bool) {
	resolved := e.selection.Resolve(e.scene)
	if len(resolved) < 2 {
		return nil, false
	}
	bounds, ok := e.SelectionBounds()
	if !ok {
		return nil, false
	}
	e.commitPoint()

	origin := bounds.Center()
	g := scene.NewGroup()
	g.Name = "Group"
	g.X, g.Y = origin.X, origin.Y

	// Children keep their scene stacking order inside the group; the
	// group itself takes the topmost member's z position.
	selected := make(map[string]bool, len(resolved))
	top := 0
	for _, ent := range resolved {
		selected[ent.EntityID()] = true
		if i := e.scene.IndexOf(ent.EntityID()); i > top {
			top = i
		}
	}
	var ordered []scene.Entity
	for _, ent := range e.scene.Entities {
		if selected[ent.EntityID()] {
			ordered = append(ordered, ent)
		}
	}
	for _, ent := range ordered {
		e.scene.Remove(ent.EntityID())
		t := ent.Transform()
		t.TX -= origin.X
		t.TY -= origin.Y
		ent.SetTransform(t)
		g.Children = append(g.Children, ent)
	}
	e.scene.Insert(top-(len(ordered)-1), g)
	e.selection.Set(g.ID)
	e.resetCycle()
	return g, true
}

// UngroupSelection dissolves each selected group, reinserting its
// children at the group's z position with their world transforms
// composed in, and selects the freed children.
func (e *Editor) UngroupSelection() bool {
	var groups []*scene.Group
	for _, ent := range e.selection.Resolve(e.scene) {
		if g, ok := ent.(*scene.Group); ok {
			groups = append(groups, g)
		}
	}
	if len(groups) == 0 {
		return false
	}
	e.commitPoint()

	var freed []string
	for _, g := range groups {
		at := e.scene.IndexOf(g.ID)
		if at < 0 {
			continue
		}
		e.scene.Remove(g.ID)
		parent := g.Transform()
		for i, child := range g.Children {
			child.SetTransform(parent.Compose(child.Transform()))
			e.scene.Insert(at+i, child)
			freed = append(freed, child.EntityID())
		}
		g.Children = nil
	}
	e.selection.Set(freed...)
	e.resetCycle()
	return true
}

// Duplicate clones the selection with fresh ids, offsets the clones, and
// selects them.
func (e *Editor) Duplicate() bool {
	resolved := e.selection.Resolve(e.scene)
	if len(resolved) == 0 {
		return false
	}
	e.commitPoint()
	var ids []string
	for _, ent := range resolved {
		dup := scene.CloneWithNewIDs(ent)
		t := dup.Transform()
		t.TX += duplicateOffset
		t.TY += duplicateOffset
		dup.SetTransform(t)
		e.scene.Add(dup)
		ids = append(ids, dup.EntityID())
	}
	e.selection.Set(ids...)
	return true
}

// RaiseSelection moves each selected entity one z step up.
func (e *Editor) RaiseSelection() bool {
	ids := e.selectionTopFirst()
	if len(ids) == 0 || e.selectionOccupiesTop(len(ids)) {
		return false
	}
	e.commitPoint()
	for _, id := range ids {
		e.scene.Raise(id)
	}
	return true
}

// LowerSelection moves each selected entity one z step down.
func (e *Editor) LowerSelection() bool {
	ids := e.selectionBottomFirst()
	if len(ids) == 0 || e.selectionOccupiesBottom(len(ids)) {
		return false
	}
	e.commitPoint()
	for _, id := range ids {
		e.scene.Lower(id)
	}
	return true
}

// SelectionToFront moves the selection to the top of the z-order,
// keeping its internal stacking.
func (e *Editor) SelectionToFront() bool {
	ids := e.selectionBottomFirst()
	if len(ids) == 0 || e.selectionOccupiesTop(len(ids)) {
		return false
	}
	e.commitPoint()
	for _, id := range ids {
		e.scene.ToFront(id)
	}
	return true
}

// SelectionToBack moves the selection to the bottom of the z-order,
// keeping its internal stacking.
func (e *Editor) SelectionToBack() bool {
	ids := e.selectionTopFirst()
	if len(ids) == 0 || e.selectionOccupiesBottom(len(ids)) {
		return false
	}
	e.commitPoint()
	for _, id := range ids {
		e.scene.ToBack(id)
	}
	return true
}

func (e *Editor) selectionTopFirst() []string {
	resolved := e.selection.Resolve(e.scene)
	var ids []string
	for i := len(e.scene.Entities) - 1; i >= 0; i-- {
		for _, ent := range resolved {
			if ent == e.scene.Entities[i] {
				ids = append(ids, ent.EntityID())
			}
		}
	}
	return ids
}

func (e *Editor) selectionBottomFirst() []string {
	ids := e.selectionTopFirst()
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids
}

func (e *Editor) selectionOccupiesTop(k int) bool {
	n := len(e.scene.Entities)
	if k > n {
		return false
	}
	for i := n - k; i < n; i++ {
		if !e.selection.Contains(e.scene.Entities[i].EntityID()) {
			return false
		}
	}
	return true
}

func (e *Editor) selectionOccupiesBottom(k int) bool {
	if k > len(e.scene.Entities) {
		return false
	}
	for i := 0; i < k; i++ {
		if !e.selection.Contains(e.scene.Entities[i].EntityID()) {
			return false
		}
	}
	return true
}

// SetFillColor sets the fill of every selected shape; nil clears it.
func (e *Editor) SetFillColor(c *string) bool {
	var dirty []*scene.Shape
	for _, sh := range e.selectedShapes() {
		if !sameColor(sh.Fill, c) {
			dirty = append(dirty, sh)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, sh := range dirty {
		sh.Fill = copyColor(c)
	}
	return true
}

// SetStrokeColor sets the stroke of every selected shape; nil clears it.
func (e *Editor) SetStrokeColor(c *string) bool {
	var dirty []*scene.Shape
	for _, sh := range e.selectedShapes() {
		if !sameColor(sh.Stroke, c) {
			dirty = append(dirty, sh)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, sh := range dirty {
		sh.Stroke = copyColor(c)
	}
	return true
}

// SetStrokeWeight sets the stroke weight of every selected shape. Zero
// renders as no stroke.
func (e *Editor) SetStrokeWeight(w float64) bool {
	if w < 0 {
		w = 0
	}
	var dirty []*scene.Shape
	for _, sh := range e.selectedShapes() {
		if sh.StrokeWeight != w {
			dirty = append(dirty, sh)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, sh := range dirty {
		sh.StrokeWeight = w
	}
	return true
}

// SetOpacity sets the opacity of every selected shape, clamped to [0,1].
func (e *Editor) SetOpacity(o float64) bool {
	if o < 0 {
		o = 0
	} else if o > 1 {
		o = 1
	}
	var dirty []*scene.Shape
	for _, sh := range e.selectedShapes() {
		if sh.Opacity != o {
			dirty = append(dirty, sh)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, sh := range dirty {
		sh.Opacity = o
	}
	return true
}

// SetVisible shows or hides every selected entity.
func (e *Editor) SetVisible(v bool) bool {
	var dirty []scene.Entity
	for _, ent := range e.selection.Resolve(e.scene) {
		if ent.IsVisible() != v {
			dirty = append(dirty, ent)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, ent := range dirty {
		switch t := ent.(type) {
		case *scene.Shape:
			t.Visible = v
		case *scene.Group:
			t.Visible = v
		}
	}
	return true
}

// SetLocked locks or unlocks every selected entity.
func (e *Editor) SetLocked(v bool) bool {
	var dirty []scene.Entity
	for _, ent := range e.selection.Resolve(e.scene) {
		if ent.IsLocked() != v {
			dirty = append(dirty, ent)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, ent := range dirty {
		switch t := ent.(type) {
		case *scene.Shape:
			t.Locked = v
		case *scene.Group:
			t.Locked = v
		}
	}
	return true
}

// SetName renames every selected entity.
func (e *Editor) SetName(name string) bool {
	var dirty []scene.Entity
	for _, ent := range e.selection.Resolve(e.scene) {
		switch t := ent.(type) {
		case *scene.Shape:
			if t.Name != name {
				dirty = append(dirty, ent)
			}
		case *scene.Group:
			if t.Name != name {
				dirty = append(dirty, ent)
			}
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, ent := range dirty {
		switch t := ent.(type) {
		case *scene.Shape:
			t.Name = name
		case *scene.Group:
			t.Name = name
		}
	}
	return true
}

// BakeSelection folds rotation and scale into each selected entity's
// geometry, leaving identity transforms. Untransformed entities record
// nothing.
func (e *Editor) BakeSelection() bool {
	var dirty []scene.Entity
	for _, ent := range e.selection.Resolve(e.scene) {
		t := ent.Transform()
		if t.Rotation != 0 || t.Scale != 1 {
			dirty = append(dirty, ent)
		}
	}
	if len(dirty) == 0 {
		return false
	}
	e.commitPoint()
	for _, ent := range dirty {
		scene.ApplyScale(ent, e.canvasW, e.canvasH)
		scene.ApplyRotate(ent)
	}
	return true
}

// UnionSelection replaces exactly two selected shapes with their polygon
// union. The merged shape takes the lower shape's appearance and the
// upper shape's z position. Degenerate or non-overlapping input leaves
// the scene untouched and reports failure.
func (e *Editor) UnionSelection() (*scene.Shape, bool) {
	resolved := e.selection.Resolve(e.scene)
	if len(resolved) != 2 {
		return nil, false
	}
	a, okA := resolved[0].(*scene.Shape)
	b, okB := resolved[1].(*scene.Shape)
	if !okA || !okB {
		return nil, false
	}
	ia := e.scene.IndexOf(a.ID)
	ib := e.scene.IndexOf(b.ID)
	lower, upper := a, b
	if ib < ia {
		lower, upper = b, a
	}
	merged, ok := booleanops.Union(lower, upper)
	if !ok {
		return nil, false
	}
	at := max(ia, ib)

	e.commitPoint()
	e.scene.Remove(a.ID)
	e.scene.Remove(b.ID)
	e.scene.Insert(at-1, merged)
	e.selection.Set(merged.ID)
	e.resetCycle()
	return merged, true
}

// AppendShapes adds imported shapes on top of the scene as a single
// history step and selects them. Returns how many were added.
func (e *Editor) AppendShapes(shapes []*scene.Shape) int {
	var add []*scene.Shape
	for _, sh := range shapes {
		if sh != nil {
			add = append(add, sh)
		}
	}
	if len(add) == 0 {
		return 0
	}
	e.commitPoint()
	var ids []string
	for _, sh := range add {
		e.scene.Add(sh)
		ids = append(ids, sh.ID)
	}
	e.selection.Set(ids...)
	return len(add)
}

// AddShape inserts one shape on top of the scene and selects it.
func (e *Editor) AddShape(sh *scene.Shape) {
	if sh == nil {
		return
	}
	e.commitPoint()
	e.scene.Add(sh)
	e.selection.Set(sh.ID)
}

// SelectAll selects every unlocked top-level entity in z-order.
func (e *Editor) SelectAll() {
	var ids []string
	for _, ent := range e.scene.Entities {
		if !ent.IsLocked() {
			ids = append(ids, ent.EntityID())
		}
	}
	e.selection.Set(ids...)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.selection.Clear()
}

// ResolveImageSize records an image's decoded natural dimensions on every
// image command referencing the asset, anywhere in the scene tree. Loads
// complete asynchronously and are not a history step. Returns how many
// commands were updated.
func (e *Editor) ResolveImageSize(assetID string, w, h float64) int {
	n := 0
	for _, ent := range e.scene.Entities {
		n += resolveImages(ent, assetID, w, h)
	}
	return n
}

func resolveImages(ent scene.Entity, assetID string, w, h float64) int {
	n := 0
	switch v := ent.(type) {
	case *scene.Shape:
		for _, c := range v.Commands {
			if img, ok := c.(*scene.Image); ok && img.Asset == assetID {
				img.NaturalW, img.NaturalH = w, h
				n++
			}
		}
	case *scene.Group:
		for _, child := range v.Children {
			n += resolveImages(child, assetID, w, h)
		}
	}
	return n
}

func (e *Editor) selectedShapes() []*scene.Shape {
	var out []*scene.Shape
	for _, ent := range e.selection.Resolve(e.scene) {
		if sh, ok := ent.(*scene.Shape); ok {
			out = append(out, sh)
		}
	}
	return out
}

func sameColor(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func copyColor(c *string) *string {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
