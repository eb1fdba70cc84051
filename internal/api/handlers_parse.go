package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dgallion1/vidnotes/internal/notesview"
	"github.com/dgallion1/vidnotes/internal/parser"
	"github.com/dgallion1/vidnotes/internal/video"
)

type notesRequest struct {
	Notes string `json:"notes"`
}

type blocksRequest struct {
	Lines []string `json:"lines"`
}

type transcriptRequest struct {
	Transcript string `json:"transcript"`
}

type viewRequest struct {
	Notes          string `json:"notes"`
	Transcript     string `json:"transcript"`
	FullTranscript bool   `json:"full_transcript"`
}

func (s *Server) handleParseNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	start := time.Now()
	doc := parser.ParseNotes(req.Notes)
	s.stats.Time("notes", start)

	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req blocksRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	start := time.Now()
	blocks := parser.Classify(req.Lines)
	s.stats.Time("blocks", start)

	writeJSON(w, http.StatusOK, map[string]any{"blocks": blocks})
}

func (s *Server) handleParseTranscript(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	start := time.Now()
	lines := parser.ParseTranscript(req.Transcript)
	s.stats.Time("transcript", start)

	writeJSON(w, http.StatusOK, map[string]any{"lines": lines})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.buildView(req.Notes, req.Transcript, req.FullTranscript))
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var req transcriptRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Transcript == "" {
		jsonError(w, "transcript is required", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"prompt": video.BuildNotesPrompt(req.Transcript)})
}

func (s *Server) buildView(notes, transcript string, full bool) notesview.View {
	start := time.Now()
	v := notesview.Build(notes, transcript, notesview.Options{
		PreviewLines:   s.cfg.TranscriptPreviewLines,
		FullTranscript: full,
	})
	s.stats.Time("view", start)
	return v
}

// decodeJSON reads a size-limited JSON body into dst, writing the error
// response itself when it fails.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			jsonError(w, fmt.Sprintf("request body exceeds max size (%d bytes)", s.cfg.MaxBodyBytes), http.StatusRequestEntityTooLarge)
			return false
		}
		jsonError(w, "invalid json body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
