package editor

import (
	"math"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
)

// SnapToGrid rounds the coordinate to the nearest multiple of the grid
// pitch. Non-positive pitches disable snapping.
func SnapToGrid(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// GuideAxis says which way an alignment guide line runs across the
// canvas.
type GuideAxis string

const (
	// GuideVertical is a vertical line at X = Value, from a left, center,
	// or right anchor match.
	GuideVertical GuideAxis = "vertical"
	// GuideHorizontal is a horizontal line at Y = Value, from a top,
	// center, or bottom anchor match.
	GuideHorizontal GuideAxis = "horizontal"
)

// Guide is one full-canvas alignment line produced while dragging.
type Guide struct {
	Axis  GuideAxis `json:"axis"`
	Value float64   `json:"value"`
}

// computeGuides compares the moving bounds' three anchors per axis
// (left/center/right, top/center/bottom) against the anchors of every
// stationary sibling. Every pair within tol yields a guide line; dx and
// dy are the smallest per-axis corrections that land the moving bounds
// exactly on its closest match, reported with snapX/snapY.
func computeGuides(moving geom.Rect, others []geom.Rect, tol float64) (guides []Guide, dx, dy float64, snapX, snapY bool) {
	if tol <= 0 {
		return nil, 0, 0, false, false
	}
	movingX := anchorsX(moving)
	movingY := anchorsY(moving)
	seen := map[Guide]bool{}

	for _, o := range others {
		for _, a := range movingX {
			for _, b := range anchorsX(o) {
				d := b - a
				if math.Abs(d) > tol {
					continue
				}
				g := Guide{Axis: GuideVertical, Value: b}
				if !seen[g] {
					seen[g] = true
					guides = append(guides, g)
				}
				if !snapX || math.Abs(d) < math.Abs(dx) {
					dx = d
					snapX = true
				}
			}
		}
		for _, a := range movingY {
			for _, b := range anchorsY(o) {
				d := b - a
				if math.Abs(d) > tol {
					continue
				}
				g := Guide{Axis: GuideHorizontal, Value: b}
				if !seen[g] {
					seen[g] = true
					guides = append(guides, g)
				}
				if !snapY || math.Abs(d) < math.Abs(dy) {
					dy = d
					snapY = true
				}
			}
		}
	}
	return guides, dx, dy, snapX, snapY
}

func anchorsX(r geom.Rect) [3]float64 {
	return [3]float64{r.X, r.X + r.Width/2, r.X + r.Width}
}

func anchorsY(r geom.Rect) [3]float64 {
	return [3]float64{r.Y, r.Y + r.Height/2, r.Y + r.Height}
}
