// Package importer recovers shapes from plain-text draw calls, one call
// per line. It is deliberately forgiving: lines it cannot make sense of
// are counted and skipped, and whatever it does understand comes back as
// ready-to-append shapes.
package importer

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

const (
	defaultStrokeColor  = "#000000"
	defaultStrokeWeight = 1.0
)

// Result is the outcome of one import pass.
type Result struct {
	Shapes  []*scene.Shape // in source order
	Skipped int            // non-empty lines that produced nothing
}

var callPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*)\s*\((.*)\)$`)

// Parse scans text for draw calls and returns the shapes it recovered.
// Recognized calls follow the common sketch vocabulary: rect, square,
// ellipse, circle, line, triangle, quad, bezier, and beginShape /
// vertex / endShape runs, with fill, stroke, strokeWeight, noFill and
// noStroke adjusting the style of everything that follows. There is no
// grammar beyond that; anything else is skipped.
func Parse(text string) *Result {
	p := &parser{
		weight: defaultStrokeWeight,
		out:    &Result{},
	}
	stroke := defaultStrokeColor
	p.stroke = &stroke

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := stripComment(sc.Text())
		if line == "" {
			continue
		}
		if !p.handle(line) {
			p.out.Skipped++
		}
	}
	// A beginShape that never reached endShape has nothing to commit.
	if p.inPoly {
		p.out.Skipped++
	}
	return p.out
}

func stripComment(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimSpace(line)
	return strings.TrimSuffix(line, ";")
}

// parser carries the running style and any open vertex run.
type parser struct {
	fill   *string
	stroke *string
	weight float64

	inPoly bool
	poly   []geom.Point

	out *Result
}

// handle consumes one cleaned line and reports whether it was understood.
func (p *parser) handle(line string) bool {
	m := callPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return false
	}
	name, rawArgs := m[1], strings.TrimSpace(m[2])

	switch name {
	case "fill":
		c, ok := colorArg(rawArgs)
		if !ok {
			return false
		}
		p.fill = &c
		return true
	case "stroke":
		c, ok := colorArg(rawArgs)
		if !ok {
			return false
		}
		p.stroke = &c
		return true
	case "noFill":
		p.fill = nil
		return true
	case "noStroke":
		p.stroke = nil
		return true
	case "strokeWeight":
		args, ok := floatArgs(rawArgs, 1)
		if !ok || args[0] < 0 {
			return false
		}
		p.weight = args[0]
		return true
	case "beginShape":
		// An earlier unfinished run is abandoned.
		if p.inPoly {
			p.out.Skipped++
		}
		p.inPoly = true
		p.poly = nil
		return true
	case "vertex":
		args, ok := floatArgs(rawArgs, 2)
		if !ok || !p.inPoly {
			return false
		}
		p.poly = append(p.poly, geom.Pt(args[0], args[1]))
		return true
	case "endShape":
		return p.endShape(rawArgs)
	}
	return p.shapeCall(name, rawArgs)
}

// shapeCall handles the single-line shape constructors.
func (p *parser) shapeCall(name, rawArgs string) bool {
	switch name {
	case "rect":
		args, ok := floatArgs(rawArgs, 4)
		if !ok {
			return false
		}
		p.emitRect("Rect", args[0], args[1], args[2], args[3])
	case "square":
		args, ok := floatArgs(rawArgs, 3)
		if !ok {
			return false
		}
		p.emitRect("Square", args[0], args[1], args[2], args[2])
	case "ellipse":
		args, ok := floatArgs(rawArgs, 4)
		if !ok {
			return false
		}
		p.emitEllipse("Ellipse", args[0], args[1], args[2], args[3])
	case "circle":
		args, ok := floatArgs(rawArgs, 3)
		if !ok {
			return false
		}
		p.emitEllipse("Circle", args[0], args[1], args[2], args[2])
	case "line":
		args, ok := floatArgs(rawArgs, 4)
		if !ok {
			return false
		}
		a, b := geom.Pt(args[0], args[1]), geom.Pt(args[2], args[3])
		origin := geom.Centroid([]geom.Point{a, b})
		sh := p.newShape("Line", origin)
		sh.Commands = []scene.Command{&scene.Line{
			X1: a.X - origin.X, Y1: a.Y - origin.Y,
			X2: b.X - origin.X, Y2: b.Y - origin.Y,
		}}
		p.out.Shapes = append(p.out.Shapes, sh)
	case "triangle":
		args, ok := floatArgs(rawArgs, 6)
		if !ok {
			return false
		}
		p.emitPolygon("Triangle", pointsOf(args), true)
	case "quad":
		args, ok := floatArgs(rawArgs, 8)
		if !ok {
			return false
		}
		p.emitPolygon("Quad", pointsOf(args), true)
	case "bezier":
		args, ok := floatArgs(rawArgs, 8)
		if !ok {
			return false
		}
		pts := pointsOf(args)
		origin := geom.Centroid(pts)
		sh := p.newShape("Bezier", origin)
		sh.Commands = []scene.Command{&scene.Bezier{
			X1: pts[0].X - origin.X, Y1: pts[0].Y - origin.Y,
			CX1: pts[1].X - origin.X, CY1: pts[1].Y - origin.Y,
			CX2: pts[2].X - origin.X, CY2: pts[2].Y - origin.Y,
			X2: pts[3].X - origin.X, Y2: pts[3].Y - origin.Y,
		}}
		p.out.Shapes = append(p.out.Shapes, sh)
	default:
		return false
	}
	return true
}

// endShape closes the open vertex run. A bare endShape() leaves the
// polyline open; endShape(CLOSE) closes it.
func (p *parser) endShape(rawArgs string) bool {
	if !p.inPoly {
		return false
	}
	pts := p.poly
	p.inPoly = false
	p.poly = nil
	if len(pts) < 2 {
		return false
	}
	closed := strings.EqualFold(strings.Trim(rawArgs, `"'`), "CLOSE")
	if rawArgs != "" && !closed {
		return false
	}
	name := "Polyline"
	if closed {
		name = "Polygon"
	}
	p.emitPolygon(name, pts, closed)
	return true
}

func (p *parser) emitRect(name string, x, y, w, h float64) {
	origin := geom.Pt(x+w/2, y+h/2)
	sh := p.newShape(name, origin)
	sh.Commands = []scene.Command{&scene.Rect{
		X: 0, Y: 0, W: w, H: h, Mode: scene.RectCenter,
	}}
	p.out.Shapes = append(p.out.Shapes, sh)
}

func (p *parser) emitEllipse(name string, cx, cy, w, h float64) {
	sh := p.newShape(name, geom.Pt(cx, cy))
	sh.Commands = []scene.Command{&scene.Ellipse{W: w, H: h}}
	p.out.Shapes = append(p.out.Shapes, sh)
}

func (p *parser) emitPolygon(name string, pts []geom.Point, closed bool) {
	origin := geom.Centroid(pts)
	rel := make([]geom.Point, len(pts))
	for i, pt := range pts {
		rel[i] = geom.Pt(pt.X-origin.X, pt.Y-origin.Y)
	}
	sh := p.newShape(name, origin)
	sh.Commands = []scene.Command{&scene.Polyline{Points: rel, Closed: closed}}
	p.out.Shapes = append(p.out.Shapes, sh)
}

// newShape builds a shape at origin carrying the current style. The
// style strings are copied so later fill/stroke calls do not reach back
// into shapes already emitted.
func (p *parser) newShape(name string, origin geom.Point) *scene.Shape {
	sh := scene.NewShape()
	sh.Name = name
	sh.X, sh.Y = origin.X, origin.Y
	if p.fill != nil {
		f := *p.fill
		sh.Fill = &f
	}
	if p.stroke != nil {
		s := *p.stroke
		sh.Stroke = &s
	}
	sh.StrokeWeight = p.weight
	return sh
}

func floatArgs(raw string, n int) ([]float64, bool) {
	parts := splitArgs(raw)
	if len(parts) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// colorArg accepts a single argument and returns it with any quoting
// removed. The string itself is taken at face value.
func colorArg(raw string) (string, bool) {
	parts := splitArgs(raw)
	if len(parts) != 1 {
		return "", false
	}
	c := strings.Trim(parts[0], `"'`)
	if c == "" {
		return "", false
	}
	return c, true
}

func splitArgs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func pointsOf(args []float64) []geom.Point {
	pts := make([]geom.Point, len(args)/2)
	for i := range pts {
		pts[i] = geom.Pt(args[2*i], args[2*i+1])
	}
	return pts
}
