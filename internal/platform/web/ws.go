package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// handleConnectWS streams a round over a WebSocket. Each text message holds
// one or more newline separated commands and is answered with the round
// view, or an ErrorReply when a command fails. The view is also sent once
// right after the handshake.
func (s *Server) handleConnectWS(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	lr, ok := s.rounds.get(id)
	if !ok {
		s.notFound(w)
		return
	}

	c, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "round", id, "error", err)
		return
	}
	defer c.Close()

	lr.mu.Lock()
	view := lr.round.View(s.now())
	lr.mu.Unlock()
	if err := c.WriteJSON(view); err != nil {
		s.logger.Warn("write failed", "round", id, "error", err)
		return
	}

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("read failed", "round", id, "error", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			return
		}

		var reply any
		lr.mu.Lock()
		for _, line := range strings.Split(strings.TrimSpace(string(message)), "\n") {
			if err := executeCommand(lr.round, line); err != nil {
				reply = ErrorReply{Error: err.Error()}
				break
			}
		}
		s.touch(lr)
		if reply == nil {
			reply = lr.round.View(s.now())
		}
		lr.mu.Unlock()

		if err := c.WriteJSON(reply); err != nil {
			s.logger.Warn("write failed", "round", id, "error", err)
			return
		}
	}
}
