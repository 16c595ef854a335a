package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ziadkadry99/mockweb/internal/generator"
	"github.com/ziadkadry99/mockweb/internal/preview"
	"github.com/ziadkadry99/mockweb/internal/templates"
)

// GeneratorFactory builds the generator owned by a new session.
type GeneratorFactory func() *generator.Generator

// Manager creates and tracks live sessions, writing their state through to
// a Store.
type Manager struct {
	store  *Store
	newGen GeneratorFactory
	log    *zap.Logger

	mu   sync.Mutex
	live map[string]*Session
}

// NewManager creates a Manager.
func NewManager(store *Store, newGen GeneratorFactory, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		store:  store,
		newGen: newGen,
		log:    log,
		live:   make(map[string]*Session),
	}
}

// Create starts a new empty session.
func (m *Manager) Create(ctx context.Context) (*Session, error) {
	rec := Record{
		ID:        uuid.NewString(),
		Language:  templates.LanguageHTML,
		Mode:      preview.ModeDesktop,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.store.Save(ctx, rec); err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s := newSession(rec, m.newGen(), m.store)
	m.mu.Lock()
	m.live[s.ID] = s
	m.mu.Unlock()

	m.log.Info("session created", zap.String("session_id", s.ID))
	return s, nil
}

// Get returns a live session, rehydrating it from the store if needed.
func (m *Manager) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.live[id]; ok {
		return s, nil
	}

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s := newSession(rec, m.newGen(), m.store)
	m.live[id] = s
	m.log.Debug("session rehydrated", zap.String("session_id", id))
	return s, nil
}

// Delete drops a session from memory and storage.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	_, wasLive := m.live[id]
	delete(m.live, id)
	m.mu.Unlock()

	err := m.store.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) && wasLive {
		return nil
	}
	return err
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.live)
}

// Expire drops sessions that have not been updated within maxIdle, from
// memory and storage. Sessions with a generation in flight are kept.
func (m *Manager) Expire(ctx context.Context, maxIdle time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var busy []string
	for id, s := range m.live {
		if s.Generating() {
			busy = append(busy, id)
		}
	}

	ids, err := m.store.DeleteIdle(ctx, time.Now().UTC().Add(-maxIdle), busy)
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		delete(m.live, id)
	}
	if len(ids) > 0 {
		m.log.Info("expired idle sessions", zap.Int("count", len(ids)))
	}
	return len(ids), nil
}

// RunJanitor calls Expire every interval until ctx is done.
func (m *Manager) RunJanitor(ctx context.Context, maxIdle, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := m.Expire(ctx, maxIdle); err != nil && ctx.Err() == nil {
				m.log.Warn("expiring sessions", zap.Error(err))
			}
		}
	}
}
