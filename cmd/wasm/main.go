//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"github.com/vectorpad/vectorpad/engine-go/internal/document"
	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	"github.com/vectorpad/vectorpad/engine-go/internal/geom"
	"github.com/vectorpad/vectorpad/engine-go/internal/history"
	"github.com/vectorpad/vectorpad/engine-go/internal/importer"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
)

var (
	ed  *editor.Editor
	doc *document.Document
)

func main() {
	doc = document.NewEmptyDocument("Untitled")
	ed = editor.New(scene.NewScene(), history.NewTimerScheduler())
	ed.SetCanvasSize(doc.Width, doc.Height)

	// Create the engine API object
	vectorpadEngine := js.Global().Get("Object").New()

	// --- Commands (frontend → backend) ---
	vectorpadEngine.Set("loadDocument", js.FuncOf(loadDocument))
	vectorpadEngine.Set("loadSampleDocument", js.FuncOf(loadSampleDocument))
	vectorpadEngine.Set("pointerDown", js.FuncOf(pointerDown))
	vectorpadEngine.Set("pointerMove", js.FuncOf(pointerMove))
	vectorpadEngine.Set("pointerUp", js.FuncOf(pointerUp))
	vectorpadEngine.Set("keyDown", js.FuncOf(keyDown))
	vectorpadEngine.Set("setMode", js.FuncOf(setMode))
	vectorpadEngine.Set("undo", js.FuncOf(undo))
	vectorpadEngine.Set("redo", js.FuncOf(redo))
	vectorpadEngine.Set("jumpTo", js.FuncOf(jumpTo))
	vectorpadEngine.Set("setPrefs", js.FuncOf(setPrefs))
	vectorpadEngine.Set("resolveImageSize", js.FuncOf(resolveImageSize))
	vectorpadEngine.Set("importText", js.FuncOf(importText))

	// --- Queries (frontend ← backend) ---
	vectorpadEngine.Set("getDocument", js.FuncOf(getDocument))
	vectorpadEngine.Set("getScene", js.FuncOf(getScene))
	vectorpadEngine.Set("getDrawList", js.FuncOf(getDrawList))
	vectorpadEngine.Set("getState", js.FuncOf(getState))
	vectorpadEngine.Set("getSelectionBounds", js.FuncOf(getSelectionBounds))
	vectorpadEngine.Set("hitTest", js.FuncOf(hitTest))

	// Register on global scope
	js.Global().Set("vectorpadEngine", vectorpadEngine)

	// Signal that WASM is ready
	js.Global().Set("vectorpadWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadDocument(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing document JSON"})
	}

	parsed, err := document.Parse([]byte(args[0].String()))
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	sc, err := parsed.Scene()
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	doc = parsed
	ed.LoadScene(sc)
	ed.SetCanvasSize(doc.Width, doc.Height)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleDocument(this js.Value, args []js.Value) interface{} {
	sample := document.NewSampleDocument()
	sc, err := sample.Scene()
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	doc = sample
	ed.LoadScene(sc)
	ed.SetCanvasSize(doc.Width, doc.Height)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func modsFrom(args []js.Value, at int) editor.Modifiers {
	var mods editor.Modifiers
	if len(args) > at {
		mods.Shift = args[at].Truthy()
	}
	if len(args) > at+1 {
		mods.Alt = args[at+1].Truthy()
	}
	return mods
}

func pointerDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerDown(args[0].Float(), args[1].Float(), modsFrom(args, 2))
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerMove(args[0].Float(), args[1].Float(), modsFrom(args, 2))
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return nil
	}
	ed.PointerUp(args[0].Float(), args[1].Float(), modsFrom(args, 2))
	return nil
}

func keyDown(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.KeyDown(args[0].String(), modsFrom(args, 1))
	return nil
}

func setMode(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	ed.SetMode(editor.Mode(args[0].String()))
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Undo())
}

func redo(this js.Value, args []js.Value) interface{} {
	return js.ValueOf(ed.Redo())
}

func jumpTo(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(false)
	}
	return js.ValueOf(ed.JumpTo(args[0].Int()))
}

func setPrefs(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	prefs := ed.Prefs()
	if err := json.Unmarshal([]byte(args[0].String()), &prefs); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	ed.SetPrefs(prefs)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func resolveImageSize(this js.Value, args []js.Value) interface{} {
	if len(args) < 3 {
		return js.ValueOf(0)
	}
	n := ed.ResolveImageSize(args[0].String(), args[1].Float(), args[2].Float())
	return js.ValueOf(n)
}

func importText(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(0)
	}
	res := importer.Parse(args[0].String())
	added := ed.AppendShapes(res.Shapes)
	return js.ValueOf(map[string]interface{}{
		"added":   added,
		"skipped": res.Skipped,
	})
}

// --- Query Handlers ---

func getDocument(this js.Value, args []js.Value) interface{} {
	doc.SetScene(ed.Scene())
	data, err := doc.Marshal()
	if err != nil {
		return js.ValueOf("")
	}
	return js.ValueOf(string(data))
}

func getScene(this js.Value, args []js.Value) interface{} {
	data, err := scene.MarshalScene(ed.Scene())
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(string(data))
}

func getDrawList(this js.Value, args []js.Value) interface{} {
	data, err := ed.DrawListJSON()
	if err != nil {
		return js.ValueOf("[]")
	}
	return js.ValueOf(data)
}

// editorState mirrors the websocket state payload for the browser shell.
type editorState struct {
	Mode          string                   `json:"mode"`
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

func getState(this js.Value, args []js.Value) interface{} {
	st := editorState{
		Mode:          string(ed.Mode()),
		Selection:     ed.Selection().IDs(),
		Handles:       ed.SelectionHandles(),
		Guides:        ed.Guides(),
		Lasso:         ed.LassoPoints(),
		PendingDraw:   ed.PendingDraw(),
		SessionActive: ed.SessionActive(),
		CanUndo:       ed.History().CanUndo(),
		CanRedo:       ed.History().CanRedo(),
		UndoDepth:     ed.History().UndoDepth(),
		RedoDepth:     ed.History().RedoDepth(),
	}
	if b, ok := ed.SelectionBounds(); ok {
		st.Bounds = &b
	}
	if ref, ok := ed.ActiveVertex(); ok {
		st.ActiveVertex = &ref
	}
	if r, ok := ed.MarqueeRect(); ok {
		st.Marquee = &r
	}

	data, err := json.Marshal(st)
	if err != nil {
		return js.ValueOf("{}")
	}
	return js.ValueOf(string(data))
}

func getSelectionBounds(this js.Value, args []js.Value) interface{} {
	b, ok := ed.SelectionBounds()
	if !ok {
		return js.ValueOf("null")
	}
	data, _ := json.Marshal(b)
	return js.ValueOf(string(data))
}

func hitTest(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("")
	}
	ent := ed.Scene().HitTopmost(args[0].Float(), args[1].Float())
	if ent == nil {
		return js.ValueOf("")
	}
	return js.ValueOf(ent.EntityID())
}
