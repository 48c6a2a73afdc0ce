package document

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// NewSampleDocument builds the starter canvas new users land on: a card,
// an ellipse, a triangle, and a small grouped badge.
func NewSampleDocument() *Document {
	card := scene.NewShape()
	card.Name = "Card"
	card.X, card.Y = 200, 200
	card.Fill = hex("#e94560")
	card.Stroke = hex("#16213e")
	card.StrokeWeight = 2
	card.Commands = []scene.Command{&scene.Rect{W: 200, H: 150}}

	disc := scene.NewShape()
	disc.Name = "Disc"
	disc.X, disc.Y = 640, 360
	disc.Fill = hex("#0f3460")
	disc.Stroke = hex("#16213e")
	disc.StrokeWeight = 2
	disc.Commands = []scene.Command{&scene.Ellipse{W: 240, H: 160}}

	tri := scene.NewShape()
	tri.Name = "Triangle"
	tri.X, tri.Y = 1000, 275
	tri.Fill = hex("#53d769")
	tri.Stroke = hex("#2d6a4f")
	tri.StrokeWeight = 2
	tri.Vertices = []geom.Point{
		geom.Pt(0, -75),
		geom.Pt(100, 75),
		geom.Pt(-100, 75),
	}

	bar := scene.NewShape()
	bar.Name = "Bar"
	bar.X, bar.Y = -30, -50
	bar.Fill = hex("#f5a623")
	bar.Stroke = hex("#c78400")
	bar.StrokeWeight = 2
	bar.Commands = []scene.Command{&scene.Rect{W: 60, H: 100}}

	dot := scene.NewShape()
	dot.Name = "Dot"
	dot.X, dot.Y = 0, -70
	dot.Fill = hex("#bd10e0")
	dot.Stroke = hex("#8b0ba8")
	dot.StrokeWeight = 2
	dot.Commands = []scene.Command{&scene.Ellipse{W: 40, H: 40}}

	badge := scene.NewGroup()
	badge.Name = "Badge"
	badge.X, badge.Y = 500, 450
	badge.Children = []scene.Entity{bar, dot}

	sc := scene.NewScene()
	sc.Add(card)
	sc.Add(disc)
	sc.Add(tri)
	sc.Add(badge)

	d := NewEmptyDocument("Getting Started")
	d.SetScene(sc)
	return d
}

func hex(s string) *string { return &s }
