package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vectorpad/vectorpad/engine-go/internal/asset"
	"github.com/vectorpad/vectorpad/engine-go/internal/auth"
	"github.com/vectorpad/vectorpad/engine-go/internal/config"
	"github.com/vectorpad/vectorpad/engine-go/internal/document"
	"github.com/vectorpad/vectorpad/engine-go/internal/editor"
	mw "github.com/vectorpad/vectorpad/engine-go/internal/middleware"
	"github.com/vectorpad/vectorpad/engine-go/internal/session"
	"github.com/vectorpad/vectorpad/engine-go/internal/store"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	prefs, err := config.LoadPreferences(cfg.PrefsPath)
	if err != nil {
		slog.Error("load preferences", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := store.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := store.EnsureSchema(ctx, pool); err != nil {
		slog.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	st := store.New(pool)

	authService := auth.NewService(st, cfg.JWTSecret)
	authHandler := auth.NewHandler(authService)

	docService := document.NewService(st)
	docHandler := document.NewHandler(docService)

	assetHandler := asset.NewHandler(cfg.AssetDir)

	hub := session.NewHub(st, assetHandler, editorPrefs(prefs), prefs.CoalesceWindow(), prefs.HistoryLimit)
	go hub.Run()

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.AllowedOrigins))

	// Auth routes (public)
	r.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Asset endpoints (public, used before a document is ever saved)
	r.HandleFunc("/assets/upload", assetHandler.Upload).Methods("POST", "OPTIONS")
	r.PathPrefix("/assets/").Handler(assetHandler.Serve()).Methods("GET")

	// Protected API routes
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authService.AuthMiddleware)

	api.HandleFunc("/me", authHandler.Me).Methods("GET")
	api.HandleFunc("/documents", docHandler.List).Methods("GET")
	api.HandleFunc("/documents", docHandler.Create).Methods("POST")
	api.HandleFunc("/documents/{documentId}", docHandler.Get).Methods("GET")
	api.HandleFunc("/documents/{documentId}", docHandler.Rename).Methods("PATCH")
	api.HandleFunc("/documents/{documentId}", docHandler.Delete).Methods("DELETE")
	api.HandleFunc("/documents/{documentId}/snapshots/latest", docHandler.GetLatestSnapshot).Methods("GET")
	api.HandleFunc("/documents/{documentId}/snapshots", docHandler.SaveSnapshot).Methods("POST")

	// WebSocket endpoint
	r.HandleFunc("/ws/editor/{documentId}", func(w http.ResponseWriter, r *http.Request) {
		handleWebSocket(w, r, hub, authService, docService, cfg.AllowedOrigins)
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server")

		// Stop hub first so every live session saves its document
		hub.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		srv.Shutdown(shutdownCtx)
	}()

	slog.Info("server starting", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request, hub *session.Hub, authSvc *auth.Service, docSvc *document.Service, allowedOrigins string) {
	documentID := mux.Vars(r)["documentId"]

	// Auth via query param; the browser WebSocket API cannot set headers
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}
	userID, err := authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := docSvc.Get(r.Context(), documentID, userID); err != nil {
		switch {
		case errors.Is(err, document.ErrNotFound):
			http.Error(w, "document not found", http.StatusNotFound)
		case errors.Is(err, document.ErrForbidden):
			http.Error(w, "forbidden", http.StatusForbidden)
		default:
			slog.Error("authorize websocket", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	sess, err := hub.OpenSession(r.Context(), documentID)
	if err != nil {
		if errors.Is(err, session.ErrNoSnapshot) {
			http.Error(w, "document has no snapshot", http.StatusNotFound)
			return
		}
		slog.Error("open session", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: originPatterns(allowedOrigins),
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	client := session.NewClient(hub, conn, sess, userID, uuid.New().String())
	hub.Register(client)

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}

// originPatterns strips schemes from the configured origins, since the
// websocket library matches host patterns.
func originPatterns(allowedOrigins string) []string {
	var patterns []string
	for _, o := range strings.Split(allowedOrigins, ",") {
		o = strings.TrimSpace(o)
		o = strings.TrimPrefix(o, "http://")
		o = strings.TrimPrefix(o, "https://")
		if o != "" {
			patterns = append(patterns, o)
		}
	}
	return patterns
}

func editorPrefs(p config.Preferences) editor.Prefs {
	return editor.Prefs{
		GridSize:      p.GridSize,
		SnapGrid:      p.SnapGrid,
		SnapGridLive:  p.SnapGridLive,
		SnapGuides:    p.SnapGuides,
		GuideTol:      p.GuideTolerance,
		AutoBake:      p.AutoBake,
		ClickCycleTol: p.ClickCycleRadius,
		VertexPickTol: p.VertexPickRadius,
		EdgePickTol:   p.EdgePickRadius,
	}
}
