package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/notify"
	"github.com/ziadkadry99/mockweb/internal/preview"
	"github.com/ziadkadry99/mockweb/internal/session"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// exampleDescriptions are offered as one-click fill-ins.
var exampleDescriptions = []string{
	"Página para mi empresa de consultoría con servicios profesionales",
	"Portfolio creativo para mi estudio de diseño y fotografía",
	"Blog personal sobre viajes y cocina",
	"Tienda online de ropa y accesorios",
}

// generateRequest is the body of the generate endpoint.
type generateRequest struct {
	Description string `json:"description"`
}

// generateResponse reports the outcome of a generate or regenerate call.
// An ignored call carries no notification.
type generateResponse struct {
	Bundle       *templates.Bundle    `json:"bundle,omitempty"`
	Ignored      bool                 `json:"ignored,omitempty"`
	Notification *notify.Notification `json:"notification,omitempty"`
}

// codeResponse is one language of the current bundle.
type codeResponse struct {
	Language    templates.Language `json:"language"`
	Code        string             `json:"code"`
	Highlighted string             `json:"highlighted"`
}

// lookupSession resolves the {id} URL parameter. It writes the error response and
// returns nil when the session cannot be loaded.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := s.sessions.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return nil
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return nil
	}
	return sess
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Create(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, sess.State())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, session.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	b, err := sess.Generate(r.Context(), req.Description, nil)
	s.writeOutcome(w, sess.ID, b, err)
}

func (s *Server) handleRegenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}

	b, err := sess.Regenerate(r.Context(), nil)
	s.writeOutcome(w, sess.ID, b, err)
}

// writeOutcome maps a generation result onto a status code and notification.
func (s *Server) writeOutcome(w http.ResponseWriter, id string, b *templates.Bundle, err error) {
	switch {
	case errors.Is(err, generator.ErrEmptyInput):
		n := notify.FromError(err)
		writeJSON(w, http.StatusBadRequest, generateResponse{Notification: &n})
	case err != nil:
		s.log.Error("generation failed", zap.String("session_id", id), zap.Error(err))
		n := notify.FromError(err)
		writeJSON(w, http.StatusInternalServerError, generateResponse{Notification: &n})
	case b == nil:
		writeJSON(w, http.StatusAccepted, generateResponse{Ignored: true})
	default:
		n := notify.Success()
		writeJSON(w, http.StatusOK, generateResponse{Bundle: b, Notification: &n})
	}
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	lang, err := templates.ParseLanguage(req.Language)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := sess.SetLanguage(r.Context(), lang); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

func (s *Server) handleSetMode(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}

	var req struct {
		Mode string `json:"mode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	mode, err := preview.ParseMode(req.Mode)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := sess.SetPreviewMode(r.Context(), mode); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sess.State())
}

// sessionCode resolves the session and the {lang} parameter and returns the
// source, or writes an error response and reports false.
func (s *Server) sessionCode(w http.ResponseWriter, r *http.Request) (templates.Language, string, bool) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return "", "", false
	}
	lang, err := templates.ParseLanguage(chi.URLParam(r, "lang"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", "", false
	}
	code, err := sess.Code(lang)
	if errors.Is(err, session.ErrNoBundle) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
		return "", "", false
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return "", "", false
	}
	return lang, code, true
}

func (s *Server) handleCode(w http.ResponseWriter, r *http.Request) {
	lang, code, ok := s.sessionCode(w, r)
	if !ok {
		return
	}
	highlighted, err := preview.Highlight(lang, code)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, codeResponse{
		Language:    lang,
		Code:        code,
		Highlighted: highlighted,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	lang, code, ok := s.sessionCode(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", preview.DownloadContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+preview.DownloadName(lang)+`"`)
	w.Write([]byte(code))
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	sess := s.lookupSession(w, r)
	if sess == nil {
		return
	}
	doc := sess.Document()
	if doc == "" {
		http.Error(w, "no website generated yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// The generated page runs in an opaque origin.
	w.Header().Set("Content-Security-Policy", "sandbox allow-scripts")
	w.Write([]byte(doc))
}

func handleCustomize(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]notify.Notification{"notification": notify.ComingSoon()})
}

func handleViewports(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, preview.Viewports)
}

func handleExamples(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, exampleDescriptions)
}

func handleMessages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, notify.ClientSide())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
