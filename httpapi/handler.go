package httpapi

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/tassa-yoniso-manasi-karoto/sovits-engine/internal/pcm"
)

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>sovits-engine</title></head>
<body>
<h1>sovits-engine</h1>
<p>GET <code>/api/tts?text=...</code> returns a 24kHz mono 16-bit WAV of the given text, spoken in the configured reference voice.</p>
</body>
</html>
`

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// handleTTS synthesizes the text query parameter and streams the result
// as a canonical WAV payload -- ported from tts_handler.rs's api_tts,
// which builds the WAV into an in-memory hound::WavWriter<Cursor<Vec<u8>>>
// before writing the whole body at once; memBuffer plays the Cursor's
// role here since go-audio/wav.Encoder needs to seek back and patch the
// RIFF/data chunk sizes once the sample count is known.
func (s *Server) handleTTS(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get("text")
	if text == "" {
		http.Error(w, "missing required query parameter: text", http.StatusBadRequest)
		return
	}

	samples, err := s.engine.Synthesize(r.Context(), text)
	if err != nil {
		log.Error().Err(err).Str("text", text).Msg("synthesis failed")
		http.Error(w, "synthesis failed", http.StatusInternalServerError)
		return
	}

	buf := &memBuffer{}
	if err := pcm.EncodeWAV(buf, samples); err != nil {
		log.Error().Err(err).Msg("wav encode failed")
		http.Error(w, "wav encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "audio/wav")
	w.Header().Set("Content-Length", strconv.Itoa(len(buf.data)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.data)
}

// memBuffer is a growable in-memory io.WriteSeeker, the Go equivalent of
// the Rust handler's Cursor<Vec<u8>>.
type memBuffer struct {
	data []byte
	pos  int
}

func (m *memBuffer) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.data) {
		grown := make([]byte, end)
		copy(grown, m.data)
		m.data = grown
	}
	copy(m.data[m.pos:end], p)
	m.pos = end
	return len(p), nil
}

func (m *memBuffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = int64(m.pos) + offset
	case io.SeekEnd:
		newPos = int64(len(m.data)) + offset
	default:
		return 0, fmt.Errorf("httpapi: invalid seek whence %d", whence)
	}
	if newPos < 0 {
		return 0, fmt.Errorf("httpapi: negative seek position")
	}
	m.pos = int(newPos)
	return newPos, nil
}
