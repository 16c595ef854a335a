// Package session holds per-UI state: the current bundle, the selected code
// tab, the preview viewport and the in-flight generation guard.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/preview"
	"github.com/ziadkadry99/mockweb/internal/progress"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// ErrNoBundle is returned when source is requested before any generation.
var ErrNoBundle = errors.New("no website generated yet")

// Session is the state of one UI session.
type Session struct {
	ID string

	gen   *generator.Generator
	store *Store
	frame preview.Frame

	mu          sync.RWMutex
	description string
	bundle      *templates.Bundle
	language    templates.Language
	mode        preview.Mode
	createdAt   time.Time
}

// State is a point-in-time view of a session.
type State struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	Bundle      *templates.Bundle  `json:"bundle,omitempty"`
	Language    templates.Language `json:"language"`
	Mode        preview.Mode       `json:"mode"`
	Generating  bool               `json:"generating"`
}

func newSession(rec Record, gen *generator.Generator, store *Store) *Session {
	s := &Session{
		ID:          rec.ID,
		gen:         gen,
		store:       store,
		description: rec.Description,
		bundle:      rec.Bundle,
		language:    rec.Language,
		mode:        rec.Mode,
		createdAt:   rec.CreatedAt,
	}
	if s.language == "" {
		s.language = templates.LanguageHTML
	}
	if s.mode == "" {
		s.mode = preview.ModeDesktop
	}
	if s.bundle != nil {
		s.frame.Render(*s.bundle)
	}
	return s
}

// Generate runs the pipeline for text and, on success, makes the result the
// current bundle and re-renders the preview. A nil bundle with a nil error
// means a generation was already in flight and the call was ignored. On
// failure the previous bundle stays in place.
func (s *Session) Generate(ctx context.Context, text string, rep progress.Reporter) (*templates.Bundle, error) {
	description := strings.TrimSpace(text)
	return s.gen.GenerateAndCommit(ctx, text, rep, func(b *templates.Bundle) error {
		s.mu.Lock()
		defer s.mu.Unlock()

		rec := s.recordLocked()
		rec.Description = description
		rec.Bundle = b
		if err := s.store.Save(ctx, rec); err != nil {
			return err
		}

		s.description = description
		s.bundle = b
		s.frame.Render(*b)
		return nil
	})
}

// Regenerate reruns the pipeline with the last successful description.
func (s *Session) Regenerate(ctx context.Context, rep progress.Reporter) (*templates.Bundle, error) {
	return s.Generate(ctx, s.Description(), rep)
}

// Bundle returns the current bundle, or nil before the first generation.
func (s *Session) Bundle() *templates.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundle
}

// Description returns the description behind the current bundle.
func (s *Session) Description() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.description
}

// Language returns the selected code tab.
func (s *Session) Language() templates.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage selects the code tab.
func (s *Session) SetLanguage(ctx context.Context, lang templates.Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked()
	rec.Language = lang
	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	s.language = lang
	return nil
}

// PreviewMode returns the selected viewport.
func (s *Session) PreviewMode() preview.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetPreviewMode selects the viewport.
func (s *Session) SetPreviewMode(ctx context.Context, mode preview.Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.recordLocked()
	rec.Mode = mode
	if err := s.store.Save(ctx, rec); err != nil {
		return err
	}
	s.mode = mode
	return nil
}

// Code returns the current bundle's source for lang.
func (s *Session) Code(lang templates.Language) (string, error) {
	b := s.Bundle()
	if b == nil {
		return "", ErrNoBundle
	}
	return b.Source(lang), nil
}

// Document returns the rendered preview document.
func (s *Session) Document() string {
	return s.frame.Document()
}

// Generating reports whether a generation is in flight.
func (s *Session) Generating() bool {
	return s.gen.Running()
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{
		ID:          s.ID,
		Description: s.description,
		Bundle:      s.bundle,
		Language:    s.language,
		Mode:        s.mode,
		Generating:  s.gen.Running(),
	}
}

func (s *Session) recordLocked() Record {
	return Record{
		ID:          s.ID,
		Description: s.description,
		Bundle:      s.bundle,
		Language:    s.language,
		Mode:        s.mode,
		CreatedAt:   s.createdAt,
	}
}
