package track

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Server accepts websocket connections from the browser tracking client
// and forwards decoded frames to the engine. One client at a time is the
// expected case; frames from concurrent clients interleave harmlessly
// because the channel serializes them.
type Server struct {
	frames   chan<- Frame
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

func NewServer(frames chan<- Frame, log zerolog.Logger) *Server {
	return &Server{
		frames: frames,
		log:    log,
		upgrader: websocket.Upgrader{
			// The client page is served from another local origin.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Listen serves the ingest endpoint until the listener fails.
func (s *Server) Listen(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/track", s.handleTrack)
	s.log.Info().Str("addr", addr).Msg("tracking ingest listening")
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()
	s.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("tracking client connected")

	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			s.log.Info().Err(err).Msg("tracking client disconnected")
			return
		}
		s.frames <- f
	}
}
