package http

import (
	"net/http"
	"strings"

	"github.com/lifeprep/backend/internal/tts"
)

// TTSHandler renders question text to speech. One synthesis call per
// request: no caching, no retries; a provider failure is the request's
// failure.
//
// GET /api/tts?text=Some+text+to+read
func TTSHandler(synth tts.Synthesizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		text := strings.TrimSpace(r.URL.Query().Get("text"))
		if text == "" {
			http.Error(w, "missing 'text' parameter", http.StatusBadRequest)
			return
		}
		audio, err := synth.Synthesize(r.Context(), text)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Header().Set("Content-Disposition", `inline; filename="tts.mp3"`)
		_, _ = w.Write(audio)
	}
}
