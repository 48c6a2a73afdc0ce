package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vectorpad/vectorpad/engine-go/internal/document"
	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	"github.com/vectorpad/vectorpad/engine-go/internal/store"
)

var ErrNoSnapshot = errors.New("document has no snapshot")

// ImageProber resolves the pixel dimensions of a stored asset.
// *asset.Handler satisfies it.
type ImageProber interface {
	Probe(assetID string) (int, int, error)
}

// Hub tracks the live sessions. There is no fan-out between them: each
// connection edits through its own editor, so the hub's job is loading
// documents on join and saving them on disconnect and shutdown.
type Hub struct {
	store        *store.Store
	assets       ImageProber
	prefs        editor.Prefs
	window       time.Duration
	historyLimit int

	mu      sync.Mutex
	clients map[string]*Client // clientID -> client

	register   chan *Client
	unregister chan *Client
	quit       chan struct{}
	stopped    chan struct{}
	stopOnce   sync.Once
}

func NewHub(st *store.Store, assets ImageProber, prefs editor.Prefs, window time.Duration, historyLimit int) *Hub {
	return &Hub{
		store:        st,
		assets:       assets,
		prefs:        prefs,
		window:       window,
		historyLimit: historyLimit,
		clients:      make(map[string]*Client),
		register:     make(chan *Client),
		unregister:   make(chan *Client),
		quit:         make(chan struct{}),
		stopped:      make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-h.quit:
			h.saveAll()
			close(h.stopped)
			return
		}
	}
}

// Stop saves every live session and shuts the hub down. Blocks until the
// saves are done.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
	<-h.stopped
}

// OpenSession loads the latest snapshot of a document into a fresh
// editor. Authorization happens before this is called.
func (h *Hub) OpenSession(ctx context.Context, documentID string) (*Session, error) {
	payload, _, err := h.store.GetLatestSnapshot(ctx, documentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	doc, err := document.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	sess, err := newSession(doc, h.prefs, h.window, h.historyLimit)
	if err != nil {
		return nil, err
	}
	if h.assets != nil {
		h.probeImages(sess)
	}
	return sess, nil
}

// probeImages back-fills natural dimensions for image commands whose
// asset had not been decoded when the document was last saved. Best
// effort: a missing or unreadable asset leaves the command as is.
func (h *Hub) probeImages(sess *Session) {
	for _, id := range sess.UnresolvedAssets() {
		w, ht, err := h.assets.Probe(id)
		if err != nil {
			slog.Warn("asset probe", "error", err, "asset", id, "doc", sess.DocumentID())
			continue
		}
		sess.ResolveAsset(id, float64(w), float64(ht))
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.stopped:
	}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	h.clients[client.ClientID] = client
	h.mu.Unlock()

	welcome, err := client.Session.Welcome()
	if err != nil {
		slog.Error("welcome message", "error", err, "doc", client.Session.DocumentID())
	} else {
		client.Send(welcome)
	}

	slog.Info("session opened", "user", client.UserID, "doc", client.Session.DocumentID())
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.ClientID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, client.ClientID)
	close(client.send)
	h.mu.Unlock()

	h.saveSession(client)
	slog.Info("session closed", "user", client.UserID, "doc", client.Session.DocumentID())
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypeSave:
		version, _, err := sender.Session.Save(context.Background(), h.store, true, false)
		if err != nil {
			slog.Error("save snapshot", "error", err, "doc", sender.Session.DocumentID())
			sender.Send(errorMessage("save failed"))
			return
		}
		sender.Send(savedMessage(sender.Session.DocumentID(), version))
	default:
		sender.Send(sender.Session.Handle(msg))
	}
}

// saveSession persists a session if its history moved since the last
// save. An in-flight drag is cancelled first so a half-finished gesture
// is not what lands on disk.
func (h *Hub) saveSession(client *Client) {
	version, saved, err := client.Session.Save(context.Background(), h.store, false, true)
	if err != nil {
		slog.Error("save on close", "error", err, "doc", client.Session.DocumentID())
		return
	}
	if saved {
		slog.Info("document saved", "doc", client.Session.DocumentID(), "version", version)
	}
}

func (h *Hub) saveAll() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		h.saveSession(c)
	}
}

func savedMessage(docID string, version int32) *Message {
	payload, _ := json.Marshal(SavedPayload{Version: version})
	return &Message{Type: TypeSaved, DocID: docID, Payload: payload}
}
