// Package scene holds the entity model of the editor: draw commands,
// shapes, groups, the ordered scene list, bounds and hit queries, baking,
// structural cloning, and the JSON record codec.
package scene

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

// CommandKind tags the closed set of primitive draw commands.
type CommandKind string

const (
	KindEllipse  CommandKind = "ellipse"
	KindRect     CommandKind = "rect"
	KindLine     CommandKind = "line"
	KindArc      CommandKind = "arc"
	KindBezier   CommandKind = "bezier"
	KindText     CommandKind = "text"
	KindImage    CommandKind = "image"
	KindPolyline CommandKind = "polyline"
)

// RectMode selects the anchoring of a rect command.
type RectMode string

const (
	RectCorner RectMode = "corner" // x, y is the top-left corner
	RectCenter RectMode = "center" // x, y is the center
)

// TextAlign is the horizontal anchor of a text command.
type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// TextBaseline is the vertical anchor of a text command.
type TextBaseline string

const (
	BaselineTop    TextBaseline = "top"
	BaselineMiddle TextBaseline = "middle"
	BaselineBottom TextBaseline = "bottom"
)

// Command is one primitive draw instruction in shape-local coordinates.
// The set of kinds is closed: the unexported methods keep implementations
// in this package so consumers can type-switch exhaustively.
type Command interface {
	Kind() CommandKind

	// extents returns the local points that bound the command.
	extents() []geom.Point
	// scaleBy multiplies local geometry by a uniform factor.
	scaleBy(f float64)
	// rotateBy rotates local coordinates about the shape origin.
	rotateBy(radians float64)
	clone() Command
}

// Ellipse is a center-anchored ellipse.
type Ellipse struct {
	CX float64 `json:"cx"`
	CY float64 `json:"cy"`
	W  float64 `json:"w"`
	H  float64 `json:"h"`
}

func (c *Ellipse) Kind() CommandKind { return KindEllipse }

func (c *Ellipse) extents() []geom.Point {
	return []geom.Point{
		{X: c.CX - c.W/2, Y: c.CY - c.H/2},
		{X: c.CX + c.W/2, Y: c.CY + c.H/2},
	}
}

func (c *Ellipse) scaleBy(f float64) {
	c.CX *= f
	c.CY *= f
	c.W *= f
	c.H *= f
}

func (c *Ellipse) rotateBy(radians float64) {
	p := geom.Pt(c.CX, c.CY).Rotate(radians)
	c.CX, c.CY = p.X, p.Y
}

func (c *Ellipse) clone() Command {
	dup := *c
	return &dup
}

// Rect is a rectangle, corner- or center-anchored per Mode.
type Rect struct {
	X    float64  `json:"x"`
	Y    float64  `json:"y"`
	W    float64  `json:"w"`
	H    float64  `json:"h"`
	Mode RectMode `json:"mode,omitempty"` // empty means corner
}

func (c *Rect) Kind() CommandKind { return KindRect }

func (c *Rect) extents() []geom.Point {
	if c.Mode == RectCenter {
		return []geom.Point{
			{X: c.X - c.W/2, Y: c.Y - c.H/2},
			{X: c.X + c.W/2, Y: c.Y + c.H/2},
		}
	}
	return []geom.Point{
		{X: c.X, Y: c.Y},
		{X: c.X + c.W, Y: c.Y + c.H},
	}
}

func (c *Rect) scaleBy(f float64) {
	c.X *= f
	c.Y *= f
	c.W *= f
	c.H *= f
}

func (c *Rect) rotateBy(radians float64) {
	p := geom.Pt(c.X, c.Y).Rotate(radians)
	c.X, c.Y = p.X, p.Y
}

func (c *Rect) clone() Command {
	dup := *c
	return &dup
}

// Line is a straight segment between two points.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

func (c *Line) Kind() CommandKind { return KindLine }

func (c *Line) extents() []geom.Point {
	return []geom.Point{{X: c.X1, Y: c.Y1}, {X: c.X2, Y: c.Y2}}
}

func (c *Line) scaleBy(f float64) {
	c.X1 *= f
	c.Y1 *= f
	c.X2 *= f
	c.Y2 *= f
}

func (c *Line) rotateBy(radians float64) {
	p1 := geom.Pt(c.X1, c.Y1).Rotate(radians)
	p2 := geom.Pt(c.X2, c.Y2).Rotate(radians)
	c.X1, c.Y1 = p1.X, p1.Y
	c.X2, c.Y2 = p2.X, p2.Y
}

func (c *Line) clone() Command {
	dup := *c
	return &dup
}

// Arc is an elliptical arc. Bounds use the full enclosing ellipse box, not
// the swept segment.
type Arc struct {
	CX    float64 `json:"cx"`
	CY    float64 `json:"cy"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Start float64 `json:"start"` // radians
	Stop  float64 `json:"stop"`  // radians
}

func (c *Arc) Kind() CommandKind { return KindArc }

func (c *Arc) extents() []geom.Point {
	return []geom.Point{
		{X: c.CX - c.W/2, Y: c.CY - c.H/2},
		{X: c.CX + c.W/2, Y: c.CY + c.H/2},
	}
}

func (c *Arc) scaleBy(f float64) {
	c.CX *= f
	c.CY *= f
	c.W *= f
	c.H *= f
}

func (c *Arc) rotateBy(radians float64) {
	p := geom.Pt(c.CX, c.CY).Rotate(radians)
	c.CX, c.CY = p.X, p.Y
	c.Start += radians
	c.Stop += radians
}

func (c *Arc) clone() Command {
	dup := *c
	return &dup
}

// Bezier is a cubic bezier: two anchors and two control points.
type Bezier struct {
	X1  float64 `json:"x1"`
	Y1  float64 `json:"y1"`
	CX1 float64 `json:"cx1"`
	CY1 float64 `json:"cy1"`
	CX2 float64 `json:"cx2"`
	CY2 float64 `json:"cy2"`
	X2  float64 `json:"x2"`
	Y2  float64 `json:"y2"`
}

func (c *Bezier) Kind() CommandKind { return KindBezier }

// extents includes the control points, giving a conservative box that
// always contains the curve.
func (c *Bezier) extents() []geom.Point {
	return []geom.Point{
		{X: c.X1, Y: c.Y1},
		{X: c.CX1, Y: c.CY1},
		{X: c.CX2, Y: c.CY2},
		{X: c.X2, Y: c.Y2},
	}
}

func (c *Bezier) scaleBy(f float64) {
	c.X1 *= f
	c.Y1 *= f
	c.CX1 *= f
	c.CY1 *= f
	c.CX2 *= f
	c.CY2 *= f
	c.X2 *= f
	c.Y2 *= f
}

func (c *Bezier) rotateBy(radians float64) {
	p1 := geom.Pt(c.X1, c.Y1).Rotate(radians)
	q1 := geom.Pt(c.CX1, c.CY1).Rotate(radians)
	q2 := geom.Pt(c.CX2, c.CY2).Rotate(radians)
	p2 := geom.Pt(c.X2, c.Y2).Rotate(radians)
	c.X1, c.Y1 = p1.X, p1.Y
	c.CX1, c.CY1 = q1.X, q1.Y
	c.CX2, c.CY2 = q2.X, q2.Y
	c.X2, c.Y2 = p2.X, p2.Y
}

func (c *Bezier) clone() Command {
	dup := *c
	return &dup
}

// Text is a text run. Width is approximated from the character count; no
// font metrics are consulted.
type Text struct {
	Content  string       `json:"content"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Size     float64      `json:"size"`
	Align    TextAlign    `json:"align,omitempty"`    // empty means center
	Baseline TextBaseline `json:"baseline,omitempty"` // empty means middle
}

func (c *Text) Kind() CommandKind { return KindText }

// approxWidth estimates rendered width as characters × size × 0.6.
func (c *Text) approxWidth() float64 {
	return float64(len([]rune(c.Content))) * c.Size * 0.6
}

func (c *Text) extents() []geom.Point {
	w := c.approxWidth()
	h := c.Size

	var left float64
	switch c.Align {
	case AlignLeft:
		left = c.X
	case AlignRight:
		left = c.X - w
	default:
		left = c.X - w/2
	}

	var top float64
	switch c.Baseline {
	case BaselineTop:
		top = c.Y
	case BaselineBottom:
		top = c.Y - h
	default:
		top = c.Y - h/2
	}

	return []geom.Point{{X: left, Y: top}, {X: left + w, Y: top + h}}
}

// scaleBy grows the font size; the anchor point is left alone so baked
// text keeps its anchor.
func (c *Text) scaleBy(f float64) {
	c.Size *= f
}

func (c *Text) rotateBy(radians float64) {
	p := geom.Pt(c.X, c.Y).Rotate(radians)
	c.X, c.Y = p.X, p.Y
}

func (c *Text) clone() Command {
	dup := *c
	return &dup
}

// Image is a corner-anchored raster image reference. NaturalW/NaturalH are
// filled in asynchronously once the asset has been decoded; zero drawn
// dimensions fall back to the natural ones.
type Image struct {
	Asset    string  `json:"asset"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	NaturalW float64 `json:"naturalW,omitempty"`
	NaturalH float64 `json:"naturalH,omitempty"`
}

func (c *Image) Kind() CommandKind { return KindImage }

// DrawnSize returns the effective width and height.
func (c *Image) DrawnSize() (float64, float64) {
	w, h := c.W, c.H
	if w == 0 {
		w = c.NaturalW
	}
	if h == 0 {
		h = c.NaturalH
	}
	return w, h
}

func (c *Image) extents() []geom.Point {
	w, h := c.DrawnSize()
	return []geom.Point{
		{X: c.X, Y: c.Y},
		{X: c.X + w, Y: c.Y + h},
	}
}

func (c *Image) scaleBy(f float64) {
	c.X *= f
	c.Y *= f
	w, h := c.DrawnSize()
	c.W = w * f
	c.H = h * f
}

func (c *Image) rotateBy(radians float64) {
	p := geom.Pt(c.X, c.Y).Rotate(radians)
	c.X, c.Y = p.X, p.Y
}

func (c *Image) clone() Command {
	dup := *c
	return &dup
}

// Polyline is a vertex sequence, optionally closed into a polygon.
type Polyline struct {
	Points []geom.Point `json:"points"`
	Closed bool         `json:"closed,omitempty"`
}

func (c *Polyline) Kind() CommandKind { return KindPolyline }

func (c *Polyline) extents() []geom.Point { return c.Points }

func (c *Polyline) scaleBy(f float64) {
	for i := range c.Points {
		c.Points[i] = c.Points[i].Mul(f)
	}
}

func (c *Polyline) rotateBy(radians float64) {
	for i := range c.Points {
		c.Points[i] = c.Points[i].Rotate(radians)
	}
}

func (c *Polyline) clone() Command {
	dup := &Polyline{Closed: c.Closed}
	if c.Points != nil {
		dup.Points = make([]geom.Point, len(c.Points))
		copy(dup.Points, c.Points)
	}
	return dup
}

// CommandBounds returns the union of the commands' local extents, or
// ok=false when nothing contributes geometry.
func CommandBounds(cmds []Command) (geom.Rect, bool) {
	var pts []geom.Point
	for _, c := range cmds {
		pts = append(pts, c.extents()...)
	}
	return geom.BoundsOf(pts)
}
