package editor

import (
	"encoding/json"

	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

// State is the chrome a frontend draws around the scene: selection and
// its handles, in-flight gesture geometry, and history depth. It changes
// on every pointer event, so it is kept separate from the draw list.
type State struct {
	Mode         Mode              `json:"mode"`
	Selection    []string          `json:"selection"`
	Bounds       *geom.Rect        `json:"bounds,omitempty"`
	Handles      []HandlePlacement `json:"handles,omitempty"`
	Guides       []Guide           `json:"guides,omitempty"`
	Marquee      *geom.Rect        `json:"marquee,omitempty"`
	Lasso        []geom.Point      `json:"lasso,omitempty"`
	PendingDraw  []geom.Point      `json:"pendingDraw,omitempty"`
	ActiveVertex *VertexRef        `json:"activeVertex,omitempty"`
	CanUndo      bool              `json:"canUndo"`
	CanRedo      bool              `json:"canRedo"`
	UndoDepth    int               `json:"undoDepth"`
	RedoDepth    int               `json:"redoDepth"`
}

// State captures the current chrome snapshot.
func (e *Editor) State() State {
	st := State{
		Mode:        e.mode,
		Selection:   e.selection.IDs(),
		Handles:     e.SelectionHandles(),
		Guides:      e.guides,
		Lasso:       e.LassoPoints(),
		PendingDraw: e.PendingDraw(),
		CanUndo:     e.log.CanUndo(),
		CanRedo:     e.log.CanRedo(),
		UndoDepth:   e.log.UndoDepth(),
		RedoDepth:   e.log.RedoDepth(),
	}
	if b, ok := e.SelectionBounds(); ok {
		st.Bounds = &b
	}
	if r, ok := e.MarqueeRect(); ok {
		st.Marquee = &r
	}
	if ref, ok := e.ActiveVertex(); ok {
		st.ActiveVertex = &ref
	}
	return st
}

// StateJSON serializes the chrome snapshot.
func (e *Editor) StateJSON() (string, error) {
	data, err := json.Marshal(e.State())
	if err != nil {
		return "{}", err
	}
	return string(data), nil
}

// DrawList flattens the scene into painter's order.
func (e *Editor) DrawList() []scene.DrawEntry {
	return scene.CompileDrawList(e.scene)
}

// DrawListJSON serializes the draw list for the frontend.
func (e *Editor) DrawListJSON() (string, error) {
	return scene.DrawListToJSON(e.DrawList())
}

// SceneJSON serializes the scene as entity records.
func (e *Editor) SceneJSON() (string, error) {
	data, err := scene.MarshalScene(e.scene)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// LoadSceneJSON parses entity records and replaces the scene, resetting
// selection and history.
func (e *Editor) LoadSceneJSON(data []byte) error {
	sc, err := scene.UnmarshalScene(data)
	if err != nil {
		return err
	}
	e.LoadScene(sc)
	return nil
}
