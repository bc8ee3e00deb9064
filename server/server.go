// Package server exposes the chat engine over a websocket endpoint.
//
// GET /ws upgrades the connection; each JSON frame {"owner_id","message"}
// produces one {"reply"} or {"error"} frame. Frame-level errors keep the
// connection alive, the interaction model is strictly request/response.
// GET /health reports liveness.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/engramlabs/engram-go-sdk/engine"
)

// Server serves chat interactions over websockets.
type Server struct {
	engine   *engine.Engine
	upgrader websocket.Upgrader
}

// New creates a server over a chat engine.
func New(eng *engine.Engine) *Server {
	return &Server{
		engine: eng,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
}

// Request is one inbound chat frame.
type Request struct {
	OwnerID string `json:"owner_id"`
	Message string `json:"message"`
}

// Response is one outbound chat frame.
type Response struct {
	Reply string `json:"reply,omitempty"`
	Error string `json:"error,omitempty"`
}

// Handler returns the HTTP handler with the /ws and /health routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Run serves on addr until the listener fails.
func (s *Server) Run(addr string) error {
	log.Printf("[SERVER] Listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[SERVER] Upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("[SERVER] Read failed: %v", err)
			}
			return
		}

		reply, err := s.engine.Respond(r.Context(), req.OwnerID, req.Message)
		resp := Response{Reply: reply}
		if err != nil {
			log.Printf("[SERVER] Interaction failed for owner=%s: %v", req.OwnerID, err)
			resp.Error = err.Error()
		}
		if err := conn.WriteJSON(resp); err != nil {
			log.Printf("[SERVER] Write failed: %v", err)
			return
		}
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
