package session

import (
	"encoding/json"

	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// Message is the wire envelope for editor traffic in both directions.
type Message struct {
	Type    string          `json:"type"`
	DocID   string          `json:"docId,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client to server.
const (
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeKeyDown     = "key.down"
	TypeModeSet     = "mode.set"
	TypeUndo        = "history.undo"
	TypeRedo        = "history.redo"
	TypeJump        = "history.jump"
	TypePrefsSet    = "prefs.set"
	TypeImport      = "import.text"
	TypeSave        = "doc.save"
)

// Server to client.
const (
	TypeWelcome = "welcome"
	TypeState   = "state"
	TypeSaved   = "saved"
	TypeError   = "error"
)

// PointerPayload carries one pointer event in canvas coordinates.
type PointerPayload struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Shift bool    `json:"shift,omitempty"`
	Alt   bool    `json:"alt,omitempty"`
}

// KeyPayload carries one key press.
type KeyPayload struct {
	Key   string `json:"key"`
	Shift bool   `json:"shift,omitempty"`
	Alt   bool   `json:"alt,omitempty"`
}

type ModePayload struct {
	Mode string `json:"mode"`
}

type JumpPayload struct {
	Index int `json:"index"`
}

// ImportPayload carries pasted draw-call text. Shapes the importer
// recovers land on the scene as one undoable step.
type ImportPayload struct {
	Text string `json:"text"`
}

type SavedPayload struct {
	Version int32 `json:"version"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// WelcomePayload delivers the loaded document plus the initial state.
type WelcomePayload struct {
	Document json.RawMessage `json:"document"`
	State    StatePayload    `json:"state"`
}

// StatePayload is the authoritative editor state after an event. The
// entity records are the full scene in z-order, the draw list the same
// scene resolved for painting; the rest is overlay state for the client
// to draw.
type StatePayload struct {
	Mode          string                   `json:"mode"`
	Entities      []scene.EntityRecord     `json:"entities"`
	DrawList      []scene.DrawEntry        `json:"drawList"`
	Selection     []string                 `json:"selection"`
	Bounds        *geom.Rect               `json:"bounds,omitempty"`
	Handles       []editor.HandlePlacement `json:"handles,omitempty"`
	ActiveVertex  *editor.VertexRef        `json:"activeVertex,omitempty"`
	Marquee       *geom.Rect               `json:"marquee,omitempty"`
	Lasso         []geom.Point             `json:"lasso,omitempty"`
	PendingDraw   []geom.Point             `json:"pendingDraw,omitempty"`
	Guides        []editor.Guide           `json:"guides,omitempty"`
	SessionActive bool                     `json:"sessionActive"`
	CanUndo       bool                     `json:"canUndo"`
	CanRedo       bool                     `json:"canRedo"`
	UndoDepth     int                      `json:"undoDepth"`
	RedoDepth     int                      `json:"redoDepth"`
}

var validModes = map[editor.Mode]bool{
	editor.ModeSelect:     true,
	editor.ModeVertex:     true,
	editor.ModeLasso:      true,
	editor.ModeDrawLine:   true,
	editor.ModeDrawBezier: true,
}
