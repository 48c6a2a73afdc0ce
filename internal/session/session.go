// Package session runs live editing sessions over websockets. Every
// connection gets its own editor; the hub loads the document on join and
// persists snapshots on save, disconnect, and shutdown.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/vectorpad/vectorpad/engine-go/internal/document"
	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	"github.com/vectorpad/vectorpad/engine-go/internal/importer"
	"github.com/vectorpad/vectorpad/engine-go/internal/scene"
	"github.com/vectorpad/vectorpad/engine-go/internal/store"
)

// Session owns one connection's live editor. All editor access goes
// through mu: websocket reads, the save path, and the history window
// timer contend for the same state.
type Session struct {
	mu    sync.Mutex
	ed    *editor.Editor
	doc   *document.Document
	sched *expiryScheduler

	savedUndo int
	savedRedo int
	dirty     bool
}

func newSession(doc *document.Document, prefs editor.Prefs, window time.Duration, historyLimit int) (*Session, error) {
	sc, err := doc.Scene()
	if err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	s := &Session{doc: doc}
	s.sched = &expiryScheduler{session: s}

	ed := editor.New(sc, s.sched)
	ed.SetPrefs(prefs)
	ed.SetCanvasSize(doc.Width, doc.Height)
	if historyLimit > 0 {
		ed.History().Capacity = historyLimit
	}
	if window > 0 {
		ed.History().Window = window
	}
	s.ed = ed
	return s, nil
}

// Handle applies one client message to the editor and returns the reply.
func (s *Session) Handle(msg *Message) *Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case TypePointerDown, TypePointerMove, TypePointerUp:
		var p PointerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorMessage("invalid pointer payload")
		}
		mods := editor.Modifiers{Shift: p.Shift, Alt: p.Alt}
		switch msg.Type {
		case TypePointerDown:
			s.ed.PointerDown(p.X, p.Y, mods)
		case TypePointerMove:
			s.ed.PointerMove(p.X, p.Y, mods)
		case TypePointerUp:
			s.ed.PointerUp(p.X, p.Y, mods)
		}

	case TypeKeyDown:
		var p KeyPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorMessage("invalid key payload")
		}
		s.ed.KeyDown(p.Key, editor.Modifiers{Shift: p.Shift, Alt: p.Alt})

	case TypeModeSet:
		var p ModePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorMessage("invalid mode payload")
		}
		mode := editor.Mode(p.Mode)
		if !validModes[mode] {
			return errorMessage("unknown mode: " + p.Mode)
		}
		s.ed.SetMode(mode)

	case TypeUndo:
		s.ed.Undo()
	case TypeRedo:
		s.ed.Redo()
	case TypeJump:
		var p JumpPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorMessage("invalid jump payload")
		}
		s.ed.JumpTo(p.Index)

	case TypePrefsSet:
		// Unmarshals over the current prefs so partial payloads only
		// touch the keys they carry.
		prefs := s.ed.Prefs()
		if err := json.Unmarshal(msg.Payload, &prefs); err != nil {
			return errorMessage("invalid prefs payload")
		}
		s.ed.SetPrefs(prefs)

	case TypeImport:
		var p ImportPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return errorMessage("invalid import payload")
		}
		res := importer.Parse(p.Text)
		if s.ed.AppendShapes(res.Shapes) == 0 {
			return errorMessage("no recognizable draw calls in import")
		}

	default:
		return errorMessage("unknown message type: " + msg.Type)
	}

	s.trackDirtyLocked()
	return s.stateMessageLocked()
}

// Welcome returns the join message: the document as loaded plus the
// initial editor state.
func (s *Session) Welcome() (*Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	docJSON, err := s.doc.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	payload, err := json.Marshal(WelcomePayload{
		Document: docJSON,
		State:    s.stateLocked(),
	})
	if err != nil {
		return nil, err
	}
	return &Message{Type: TypeWelcome, DocID: s.doc.ID, Payload: payload}, nil
}

// Save persists the live scene as a new snapshot version. Without force
// it is a no-op unless the history advanced since the last save. settle
// cancels any in-flight interaction first, for disconnect saves where
// a half-finished drag should not be what lands on disk.
func (s *Session) Save(ctx context.Context, st *store.Store, force, settle bool) (int32, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settle && s.ed.SessionActive() {
		s.ed.CancelSession()
		s.trackDirtyLocked()
	}
	if !force && !s.dirty {
		return 0, false, nil
	}

	s.doc.SetScene(s.ed.Scene())
	payload, err := s.doc.Marshal()
	if err != nil {
		return 0, false, fmt.Errorf("marshal document: %w", err)
	}

	version, err := st.SaveSnapshot(ctx, s.doc.ID, payload)
	if err != nil {
		return 0, false, err
	}

	s.savedUndo = s.ed.History().UndoDepth()
	s.savedRedo = s.ed.History().RedoDepth()
	s.dirty = false
	return version, true, nil
}

// DocumentID returns the id of the loaded document.
func (s *Session) DocumentID() string {
	return s.doc.ID
}

// UnresolvedAssets lists the asset ids of image commands that still lack
// natural dimensions, anywhere in the scene tree.
func (s *Session) UnresolvedAssets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	var ids []string
	var walk func(ent scene.Entity)
	walk = func(ent scene.Entity) {
		switch v := ent.(type) {
		case *scene.Shape:
			for _, c := range v.Commands {
				img, ok := c.(*scene.Image)
				if !ok || img.Asset == "" || seen[img.Asset] {
					continue
				}
				if img.NaturalW == 0 || img.NaturalH == 0 {
					seen[img.Asset] = true
					ids = append(ids, img.Asset)
				}
			}
		case *scene.Group:
			for _, child := range v.Children {
				walk(child)
			}
		}
	}
	for _, ent := range s.ed.Scene().Entities {
		walk(ent)
	}
	return ids
}

// ResolveAsset records an asset's decoded dimensions on every image
// command that references it. Not a history step, so resolving sizes on
// a freshly loaded document leaves the session clean. Returns how many
// commands were updated.
func (s *Session) ResolveAsset(assetID string, w, h float64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ed.ResolveImageSize(assetID, w, h)
}

// trackDirtyLocked flags the session dirty when the history stacks moved
// since the last save. Selection and mode changes do not commit history
// and so never mark the document dirty.
func (s *Session) trackDirtyLocked() {
	log := s.ed.History()
	if log.UndoDepth() != s.savedUndo || log.RedoDepth() != s.savedRedo {
		s.dirty = true
	}
}

func (s *Session) stateLocked() StatePayload {
	ed := s.ed
	st := StatePayload{
		Mode:          string(ed.Mode()),
		Entities:      scene.EncodeScene(ed.Scene()),
		DrawList:      scene.CompileDrawList(ed.Scene()),
		Selection:     ed.Selection().IDs(),
		Handles:       ed.SelectionHandles(),
		Guides:        ed.Guides(),
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
	st.Lasso = ed.LassoPoints()
	st.PendingDraw = ed.PendingDraw()
	return st
}

func (s *Session) stateMessageLocked() *Message {
	payload, err := json.Marshal(s.stateLocked())
	if err != nil {
		return errorMessage("encode state: " + err.Error())
	}
	return &Message{Type: TypeState, DocID: s.doc.ID, Payload: payload}
}

func errorMessage(text string) *Message {
	payload, _ := json.Marshal(ErrorPayload{Message: text})
	return &Message{Type: TypeError, Payload: payload}
}

// expiryScheduler drives the history coalescing window with a real
// timer, taking the session lock before firing so expiry never races
// message handling. The generation counter discards a fire that lost
// the race with Cancel or a re-Schedule.
type expiryScheduler struct {
	session *Session
	timer   *time.Timer
	gen     int
}

func (es *expiryScheduler) Schedule(d time.Duration, fn func()) {
	es.gen++
	gen := es.gen
	if es.timer != nil {
		es.timer.Stop()
	}
	es.timer = time.AfterFunc(d, func() {
		es.session.mu.Lock()
		defer es.session.mu.Unlock()
		if gen != es.gen {
			return
		}
		fn()
	})
}

func (es *expiryScheduler) Cancel() {
	es.gen++
	if es.timer != nil {
		es.timer.Stop()
		es.timer = nil
	}
}
