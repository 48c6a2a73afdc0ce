// Package editor implements the interactive state of one open document:
// selection, hit resolution, pointer-driven sessions (move, transform,
// vertex edit, marquee, lasso, draw tools), snapping, and the bridge to
// the history log. All entry points run on one logical call stack; the
// editor owns no goroutines.
package editor

import (
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/history"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// Mode is the active interaction tool.
type Mode string

const (
	ModeSelect     Mode = "select"
	ModeVertex     Mode = "vertex"
	ModeLasso      Mode = "lasso"
	ModeDrawLine   Mode = "drawLine"
	ModeDrawBezier Mode = "drawBezier"
)

// Modifiers carries the keyboard state accompanying a pointer or key
// event. Shift extends selections and scales keyboard nudges; Alt flips
// the marquee/lasso membership predicate between containment and
// intersection.
type Modifiers struct {
	Shift bool `json:"shift,omitempty"`
	Alt   bool `json:"alt,omitempty"`
}

// Prefs are the tunable interaction settings.
type Prefs struct {
	GridSize      float64 `json:"gridSize"`      // snap grid pitch in canvas units
	SnapGrid      bool    `json:"snapGrid"`      // snap entity positions on drop
	SnapGridLive  bool    `json:"snapGridLive"`  // also snap continuously during drags
	SnapGuides    bool    `json:"snapGuides"`    // alignment guides against sibling bounds
	GuideTol      float64 `json:"guideTol"`      // anchor match tolerance
	AutoBake      bool    `json:"autoBake"`      // fold scale/rotation into geometry after transforms
	ClickCycleTol float64 `json:"clickCycleTol"` // same-spot threshold for click cycling
	VertexPickTol float64 `json:"vertexPickTol"` // vertex grab distance
	EdgePickTol   float64 `json:"edgePickTol"`   // edge grab distance
}

// DefaultPrefs returns the stock interaction settings.
func DefaultPrefs() Prefs {
	return Prefs{
		GridSize:      10,
		SnapGuides:    true,
		GuideTol:      6,
		ClickCycleTol: 6,
		VertexPickTol: 10,
		EdgePickTol:   8,
	}
}

// Editor is the full interactive state for one document. It owns the live
// scene, the selection, the history log, the current mode, and at most
// one active input session.
type Editor struct {
	scene     *scene.Scene
	selection *Selection
	log       *history.Log

	mode    Mode
	session session // nil when idle
	prefs   Prefs
	sched   history.Scheduler

	canvasW float64
	canvasH float64

	// click-cycling state
	cycleX, cycleY float64
	cycleHits      []string
	cycleIndex     int

	// active vertex for keyboard nudges, nil outside vertex mode
	activeVertex *VertexRef

	// alignment guides from the in-flight move, for display
	guides []Guide
}

// New creates an editor over the given scene. sched drives history
// coalescing; nil disables the timer (bursts then settle only on
// explicit session end).
func New(sc *scene.Scene, sched history.Scheduler) *Editor {
	if sc == nil {
		sc = scene.NewScene()
	}
	return &Editor{
		scene:     sc,
		selection: NewSelection(),
		log:       history.NewLog(sched),
		mode:      ModeSelect,
		prefs:     DefaultPrefs(),
		sched:     sched,
	}
}

// Scene returns the live scene.
func (e *Editor) Scene() *scene.Scene { return e.scene }

// Selection returns the live selection.
func (e *Editor) Selection() *Selection { return e.selection }

// History returns the underlying history log.
func (e *Editor) History() *history.Log { return e.log }

// Prefs returns the current interaction settings.
func (e *Editor) Prefs() Prefs { return e.prefs }

// SetPrefs replaces the interaction settings.
func (e *Editor) SetPrefs(p Prefs) {
	e.prefs = p
}

// SetCanvasSize records the canvas dimensions used to clamp baked images.
func (e *Editor) SetCanvasSize(w, h float64) {
	e.canvasW, e.canvasH = w, h
}

// CanvasSize returns the configured canvas dimensions.
func (e *Editor) CanvasSize() (float64, float64) {
	return e.canvasW, e.canvasH
}

// Mode returns the active tool mode.
func (e *Editor) Mode() Mode { return e.mode }

// SetMode switches tools. Any in-flight session is cancelled without a
// history commit; the selection survives the switch.
func (e *Editor) SetMode(m Mode) {
	if m == e.mode {
		return
	}
	e.cancelSession()
	e.mode = m
	e.activeVertex = nil
	e.resetCycle()
}

// LoadScene replaces the live scene, clearing history, selection, and any
// in-flight state. Used when a document is opened.
func (e *Editor) LoadScene(sc *scene.Scene) {
	e.cancelSession()
	e.scene = sc
	e.selection.Clear()
	e.activeVertex = nil
	e.resetCycle()
	e.guides = nil
	if e.sched != nil {
		e.sched.Cancel()
	}
	prev := e.log
	e.log = history.NewLog(e.sched)
	e.log.Capacity = prev.Capacity
	e.log.Window = prev.Window
}

// Undo restores the previous snapshot. Any in-flight session is cancelled
// first. Returns false when there is nothing to undo.
func (e *Editor) Undo() bool {
	e.cancelSession()
	restored, ok := e.log.Undo(e.scene)
	if !ok {
		return false
	}
	e.scene = restored
	e.activeVertex = nil
	return true
}

// Redo restores the next snapshot, if any.
func (e *Editor) Redo() bool {
	e.cancelSession()
	restored, ok := e.log.Redo(e.scene)
	if !ok {
		return false
	}
	e.scene = restored
	e.activeVertex = nil
	return true
}

// JumpTo scrubs directly to a history index.
func (e *Editor) JumpTo(index int) bool {
	e.cancelSession()
	restored, ok := e.log.JumpTo(index)
	if !ok {
		return false
	}
	e.scene = restored
	e.activeVertex = nil
	return true
}

// Guides returns the alignment guides produced by the in-flight move, for
// the frontend to draw.
func (e *Editor) Guides() []Guide { return e.guides }

// SelectionBounds returns the union of world bounds over the selection.
func (e *Editor) SelectionBounds() (geom.Rect, bool) {
	var out geom.Rect
	found := false
	for _, entity := range e.selection.Resolve(e.scene) {
		b, ok := scene.WorldBounds(entity)
		if !ok {
			continue
		}
		if !found {
			out = b
			found = true
		} else {
			out = out.Union(b)
		}
	}
	return out, found
}

func (e *Editor) resetCycle() {
	e.cycleHits = nil
	e.cycleIndex = 0
}

func (e *Editor) cancelSession() {
	if e.session == nil {
		return
	}
	e.session.cancel(e)
	e.session = nil
	e.guides = nil
}
