package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/devcompany145/Business-developers-ai/internal/logging"
	"github.com/devcompany145/Business-developers-ai/internal/session"
	"github.com/devcompany145/Business-developers-ai/pkg/camera"
	"github.com/devcompany145/Business-developers-ai/pkg/lod"
)

const (
	gestureReadLimit = 4096
	gestureIdle      = 2 * time.Minute
	gestureWrite     = 5 * time.Second
)

// frameRequest is the event kind a client sends to receive a full frame
// on the gesture stream.
const frameRequest camera.EventKind = "frame"

type gestureReply struct {
	View    camera.View  `json:"view"`
	Changed bool         `json:"changed"`
	Gesture camera.State `json:"gesture"`
	LOD     lod.Tier     `json:"lod"`
}

// handleGestures streams pointer, touch and wheel events from the client and
// answers each with the updated camera.
func (s *Server) handleGestures(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", logging.Err(err))
		return
	}
	defer conn.Close()

	conn.SetReadLimit(gestureReadLimit)
	log := s.logger.With(logging.String("session", sess.ID()))
	log.Debug("gesture stream opened")

	for {
		conn.SetReadDeadline(time.Now().Add(gestureIdle))
		var ev camera.Event
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("gesture stream read", logging.Err(err))
			}
			return
		}

		conn.SetWriteDeadline(time.Now().Add(gestureWrite))
		if ev.Kind == frameRequest {
			err = conn.WriteJSON(sess.Frame())
		} else {
			err = conn.WriteJSON(s.applyGesture(sess, ev))
		}
		if err != nil {
			log.Warn("gesture stream write", logging.Err(err))
			return
		}
	}
}

func (s *Server) applyGesture(sess *session.Session, ev camera.Event) gestureReply {
	v, changed := sess.HandleEvent(ev)
	st := sess.State()
	return gestureReply{
		View:    v,
		Changed: changed,
		Gesture: st.Gesture,
		LOD:     lod.Select(v.Zoom, st.Mode),
	}
}

// checkOrigin applies the configured CORS origins to the WebSocket
// handshake. Requests without an Origin header are not from a browser.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.cfg.AllowedOrigins) == 0 {
		return true
	}
	for _, o := range s.cfg.AllowedOrigins {
		if o == "*" || o == origin {
			return true
		}
	}
	return false
}
