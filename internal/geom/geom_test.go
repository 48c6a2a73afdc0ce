package geom

import "testing"

func TestRectFromPoints(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want Rect
	}{
		{"top-left to bottom-right", Pt(1, 2), Pt(5, 8), Rect{1, 2, 4, 6}},
		{"bottom-right to top-left", Pt(5, 8), Pt(1, 2), Rect{1, 2, 4, 6}},
		{"same point", Pt(3, 3), Pt(3, 3), Rect{3, 3, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RectFromPoints(tt.a, tt.b); got != tt.want {
				t.Errorf("RectFromPoints = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRectContainsRect(t *testing.T) {
	outer := Rect{0, 0, 100, 100}
	if !outer.ContainsRect(Rect{10, 10, 20, 20}) {
		t.Error("inner rect not contained")
	}
	if outer.ContainsRect(Rect{90, 90, 20, 20}) {
		t.Error("overflowing rect reported contained")
	}
	if !outer.ContainsRect(outer) {
		t.Error("rect does not contain itself")
	}
}

func TestRectIntersects(t *testing.T) {
	r := Rect{0, 0, 10, 10}
	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlap", Rect{5, 5, 10, 10}, true},
		{"contained", Rect{2, 2, 3, 3}, true},
		{"edge touch", Rect{10, 0, 5, 5}, true},
		{"disjoint", Rect{20, 20, 5, 5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Intersects(tt.other); got != tt.want {
				t.Errorf("Intersects(%+v) = %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("empty point set produced bounds")
	}
	got, ok := BoundsOf([]Point{{3, 4}, {-1, 10}, {5, 2}})
	if !ok {
		t.Fatal("BoundsOf returned ok=false")
	}
	want := Rect{-1, 2, 6, 8}
	if got != want {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}

func TestSegmentDist(t *testing.T) {
	a, b := Pt(0, 0), Pt(10, 0)
	tests := []struct {
		name string
		p    Point
		want float64
	}{
		{"above middle", Pt(5, 3), 3},
		{"beyond end", Pt(13, 4), 5},
		{"before start", Pt(-3, -4), 5},
		{"on segment", Pt(7, 0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "dist", SegmentDist(tt.p, a, b), tt.want)
		})
	}

	// Degenerate segment collapses to point distance.
	assertNear(t, "degenerate", SegmentDist(Pt(3, 4), Pt(0, 0), Pt(0, 0)), 5)
}

func TestPointInPolygon(t *testing.T) {
	square := []Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if !PointInPolygon(Pt(5, 5), square) {
		t.Error("center of square not inside")
	}
	if PointInPolygon(Pt(15, 5), square) {
		t.Error("outside point reported inside")
	}
	if PointInPolygon(Pt(5, 5), square[:2]) {
		t.Error("degenerate polygon contained a point")
	}

	// Concave chevron pointing right; the notch left of (4,5) is outside.
	chevron := []Point{{0, 0}, {10, 5}, {0, 10}, {4, 5}}
	if !PointInPolygon(Pt(2, 2), chevron) {
		t.Error("point in upper limb not inside")
	}
	if PointInPolygon(Pt(2, 5), chevron) {
		t.Error("point in notch reported inside")
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid([]Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	assertPoint(t, "square centroid", got, Pt(5, 5))
	assertPoint(t, "empty centroid", Centroid(nil), Pt(0, 0))
}
