// Package httpapi is the thin HTTP surface over the synthesis engine:
// one GET endpoint streaming synthesized WAV audio, plus a static index
// page. Grounded on original_source/tts_server/src/tts/server.rs's route
// shape (one API route, one index route) reimplemented against
// github.com/gorilla/mux, already present (indirect) in the teacher's
// go.mod, promoted here to a direct dependency for exactly the routing
// concern it exists for.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/engine"
)

// Server wraps the synthesis engine behind a minimal HTTP router.
type Server struct {
	engine *engine.Engine
	http   *http.Server
}

// New builds a Server bound to addr, routing /api/tts and / to eng.
func New(addr string, eng *engine.Engine) *Server {
	s := &Server{engine: eng}

	router := mux.NewRouter()
	router.HandleFunc("/api/tts", s.handleTTS).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)

	s.http = &http.Server{Addr: addr, Handler: router}
	return s
}

// ListenAndServe starts serving until the process is interrupted or
// Shutdown is called from another goroutine.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Msg("tts server listening")
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
