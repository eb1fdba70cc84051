package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/dgallion1/vidnotes/internal/notesview"
	"github.com/dgallion1/vidnotes/internal/store"
	"github.com/dgallion1/vidnotes/internal/video"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type putVideoRequest struct {
	VideoID    string `json:"video_id"`
	URL        string `json:"url"`
	Transcript string `json:"transcript"`
	Notes      string `json:"notes"`
}

type videoResponse struct {
	VideoID     string         `json:"video_id"`
	URL         string         `json:"url,omitempty"`
	ContentHash string         `json:"content_hash"`
	View        notesview.View `json:"view"`
}

func (s *Server) handlePutVideo(w http.ResponseWriter, r *http.Request) {
	var req putVideoRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Transcript) == "" || strings.TrimSpace(req.Notes) == "" {
		jsonError(w, "transcript and notes are required", http.StatusBadRequest)
		return
	}

	videoID := req.VideoID
	if videoID == "" && req.URL != "" {
		id, ok := video.ExtractID(req.URL)
		if !ok {
			jsonError(w, "invalid YouTube URL", http.StatusBadRequest)
			return
		}
		videoID = id
	}
	if videoID == "" {
		videoID = uuid.NewString()
	}

	rec, changed, err := s.videos.Put(r.Context(), store.Record{
		VideoID:    videoID,
		URL:        req.URL,
		Transcript: req.Transcript,
		Notes:      req.Notes,
	})
	if err != nil {
		s.log.Error("store video failed", "video_id", videoID, "error", err)
		jsonError(w, "failed to store video", http.StatusInternalServerError)
		return
	}

	code := http.StatusOK
	if changed {
		code = http.StatusCreated
	}
	writeJSON(w, code, map[string]any{
		"video_id":     rec.VideoID,
		"content_hash": rec.ContentHash,
		"changed":      changed,
		"view_url":     fmt.Sprintf("/api/videos/%s", rec.VideoID),
	})
}

func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.MaxListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			jsonError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, s.cfg.MaxListLimit)
	}

	videos, err := s.videos.List(r.Context(), limit)
	if err != nil {
		s.log.Error("list videos failed", "error", err)
		jsonError(w, "failed to list videos", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"videos": videos})
}

// loadVideo fetches the record named by the videoID URL parameter, writing
// the error response itself when ok is false.
func (s *Server) loadVideo(w http.ResponseWriter, r *http.Request) (store.Record, bool) {
	videoID := chi.URLParam(r, "videoID")
	rec, err := s.videos.Get(r.Context(), videoID)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, "video not found", http.StatusNotFound)
		return store.Record{}, false
	}
	if err != nil {
		s.log.Error("get video failed", "video_id", videoID, "error", err)
		jsonError(w, "failed to load video", http.StatusInternalServerError)
		return store.Record{}, false
	}
	return rec, true
}

// viewETag identifies a rendered view: the stored texts plus every setting
// that changes what Build returns for them.
func (s *Server) viewETag(contentHash string, full bool) string {
	tag := fmt.Sprintf("%s-p%d", contentHash, s.cfg.TranscriptPreviewLines)
	if full {
		tag += "-full"
	}
	return strconv.Quote(tag)
}

func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadVideo(w, r)
	if !ok {
		return
	}

	full := r.URL.Query().Get("full") == "true"
	etag := s.viewETag(rec.ContentHash, full)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	writeJSON(w, http.StatusOK, videoResponse{
		VideoID:     rec.VideoID,
		URL:         rec.URL,
		ContentHash: rec.ContentHash,
		View:        s.buildView(rec.Notes, rec.Transcript, full),
	})
}

// handleVideoNotes serves the stored notes unmodified, for download and
// read-aloud.
func (s *Server) handleVideoNotes(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadVideo(w, r)
	if !ok {
		return
	}
	writeRaw(w, "text/markdown; charset=utf-8", rec.VideoID+"-notes.md", rec.ContentHash, rec.Notes)
}

func (s *Server) handleVideoTranscript(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.loadVideo(w, r)
	if !ok {
		return
	}
	writeRaw(w, "text/plain; charset=utf-8", rec.VideoID+"-transcript.txt", rec.ContentHash, rec.Transcript)
}

func writeRaw(w http.ResponseWriter, contentType, filename, contentHash, body string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	w.Header().Set("X-Content-Hash", contentHash)
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, body)
}

func (s *Server) handleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")
	deleted, err := s.videos.Delete(r.Context(), videoID)
	if err != nil {
		s.log.Error("delete video failed", "video_id", videoID, "error", err)
		jsonError(w, "failed to delete video", http.StatusInternalServerError)
		return
	}
	if !deleted {
		jsonError(w, "video not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"video_id": videoID, "deleted": true})
}
