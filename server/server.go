// Package server exposes the assistant over HTTP: a health endpoint and
// a WebSocket that streams script improvements chunk by chunk.
package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/draftwise/draftwise/core"
	"github.com/draftwise/draftwise/enhance"
	"github.com/draftwise/draftwise/library"
)

// Improver runs one script improvement. *enhance.Enhancer satisfies it;
// tests substitute fakes.
type Improver interface {
	Improve(ctx context.Context, draft string, opts enhance.Options) (*enhance.Result, error)
}

// Config configures the server.
type Config struct {
	Improver Improver
	Library  *library.Library
}

// Server serves /health and /ws.
type Server struct {
	improver Improver
	library  *library.Library
	upgrader websocket.Upgrader
}

// New creates a server.
func New(cfg Config) *Server {
	return &Server{
		improver: cfg.Improver,
		library:  cfg.Library,
		upgrader: websocket.Upgrader{
			// Local tool; browser clients connect from file:// pages.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler for the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("[WS] listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

type healthResponse struct {
	Status string         `json:"status"`
	Counts library.Counts `json:"counts"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	counts, err := s.library.Counts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(healthResponse{Status: "ok", Counts: counts})
}

// improveRequest is one client message on the WebSocket.
type improveRequest struct {
	Draft    string   `json:"draft"`
	Focus    string   `json:"focus,omitempty"`
	Source   string   `json:"source,omitempty"`
	Creators []string `json:"creators,omitempty"`
	Model    string   `json:"model,omitempty"`
}

// wsMessage is one server message. Type is "chunk", "done" or "error".
type wsMessage struct {
	Type  string           `json:"type"`
	Text  string           `json:"text,omitempty"`
	Model string           `json:"model,omitempty"`
	Usage *core.TokenUsage `json:"usage,omitempty"`
	Error string           `json:"error,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}
	defer conn.Close()
	log.Printf("[WS] client connected: %s", r.RemoteAddr)

	// One request per message; the connection stays open for more.
	for {
		var req improveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] read error: %v", err)
			}
			return
		}
		s.handleImprove(r.Context(), conn, req)
	}
}

func (s *Server) handleImprove(ctx context.Context, conn *websocket.Conn, req improveRequest) {
	opts, err := optionsFromRequest(req)
	if err != nil {
		conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()})
		return
	}

	// Stream callbacks run on this goroutine, so writes never interleave.
	opts.OnChunk = func(chunk string) {
		conn.WriteJSON(wsMessage{Type: "chunk", Text: chunk})
	}

	result, err := s.improver.Improve(ctx, req.Draft, opts)
	if err != nil {
		conn.WriteJSON(wsMessage{Type: "error", Error: err.Error()})
		return
	}

	conn.WriteJSON(wsMessage{
		Type:  "done",
		Text:  result.Text,
		Model: result.Model,
		Usage: &result.Usage,
	})
}

func optionsFromRequest(req improveRequest) (enhance.Options, error) {
	source, err := core.ParseInspirationSource(req.Source)
	if err != nil {
		return enhance.Options{}, err
	}
	focus, err := core.ParseFocusArea(req.Focus)
	if err != nil {
		return enhance.Options{}, err
	}
	return enhance.Options{
		Source:   source,
		Focus:    focus,
		Creators: req.Creators,
		Model:    req.Model,
	}, nil
}
