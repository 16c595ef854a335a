package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ziadkadry99/mockweb/internal/db"
	"github.com/ziadkadry99/mockweb/internal/preview"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Record is the persisted form of a session.
type Record struct {
	ID          string
	Description string
	Bundle      *templates.Bundle
	Language    templates.Language
	Mode        preview.Mode
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store persists session state in SQLite.
type Store struct {
	db *db.DB
}

// NewStore creates a session store backed by database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Save inserts or replaces the record. The bundle is stored whole.
func (s *Store) Save(ctx context.Context, r Record) error {
	var tmpl, html, css, js string
	if r.Bundle != nil {
		tmpl, html, css, js = string(r.Bundle.Template), r.Bundle.HTML, r.Bundle.CSS, r.Bundle.JS
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, description, template, html, css, js, language, preview_mode, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			template = excluded.template,
			html = excluded.html,
			css = excluded.css,
			js = excluded.js,
			language = excluded.language,
			preview_mode = excluded.preview_mode,
			updated_at = excluded.updated_at`,
		r.ID, r.Description, tmpl, html, css, js, string(r.Language), string(r.Mode),
		r.CreatedAt.UTC().Format(time.DateTime), time.Now().UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("saving session %s: %w", r.ID, err)
	}
	return nil
}

// Get loads a record by ID.
func (s *Store) Get(ctx context.Context, id string) (Record, error) {
	var (
		r                   Record
		tmpl, html, css, js string
		lang, mode          string
		created, updated    string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, description, template, html, css, js, language, preview_mode, created_at, updated_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&r.ID, &r.Description, &tmpl, &html, &css, &js, &lang, &mode, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("loading session %s: %w", id, err)
	}

	r.CreatedAt = parseTime(created)
	r.UpdatedAt = parseTime(updated)
	r.Language = templates.Language(lang)
	r.Mode = preview.Mode(mode)
	if tmpl != "" {
		r.Bundle = &templates.Bundle{Template: templates.Name(tmpl), HTML: html, CSS: css, JS: js}
	}
	return r, nil
}

// Delete removes a record. Deleting an unknown ID returns ErrNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIdle removes records last updated before cutoff, except the IDs in
// keep, and returns the IDs it removed.
func (s *Store) DeleteIdle(ctx context.Context, cutoff time.Time, keep []string) ([]string, error) {
	query := `DELETE FROM sessions WHERE updated_at < ?`
	args := []any{cutoff.UTC().Format(time.DateTime)}
	if len(keep) > 0 {
		query += ` AND id NOT IN (?` + strings.Repeat(`, ?`, len(keep)-1) + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}
	query += ` RETURNING id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("deleting idle sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning deleted session: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Count returns the number of stored sessions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting sessions: %w", err)
	}
	return n, nil
}

func parseTime(s string) time.Time {
	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}
