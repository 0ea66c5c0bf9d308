// Package session keeps per-visitor state: the advisory cart mapping and
// one-shot flash messages. State is keyed by the session_id cookie and
// held in memory; the cart is re-validated against live stock whenever it
// is read, so losing it on restart is harmless.
package session

import (
	"sync"

	"flashmart/internal/models"
)

// Flash levels.
const (
	FlashSuccess = "success"
	FlashInfo    = "info"
	FlashWarning = "warning"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level string `json:"level"`
	Text  string `json:"text"`
}

type sessionState struct {
	cart    models.CartState
	flashes []Flash
}

// Store holds all live sessions. A session is single-owner per request;
// two concurrent requests for the same session race read-modify-write on
// the cart and the last writer wins, which this design accepts.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*sessionState)}
}

// Cart returns a copy of the stored cart mapping, empty when the session
// has none yet.
func (s *Store) Cart(sessionID string) models.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[sessionID]; ok && state.cart != nil {
		return state.cart.Clone()
	}
	return models.CartState{}
}

// SaveCart overwrites the stored cart mapping for the session.
func (s *Store) SaveCart(sessionID string, cart models.CartState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state(sessionID).cart = cart.Clone()
}

// AddFlash queues a message for the session's next rendered page.
func (s *Store) AddFlash(sessionID, level, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.state(sessionID)
	state.flashes = append(state.flashes, Flash{Level: level, Text: text})
}

// Flashes returns the queued messages and clears them.
func (s *Store) Flashes(sessionID string) []Flash {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[sessionID]
	if !ok || len(state.flashes) == 0 {
		return nil
	}
	flashes := state.flashes
	state.flashes = nil
	return flashes
}

// caller must hold mu
func (s *Store) state(sessionID string) *sessionState {
	state, ok := s.sessions[sessionID]
	if !ok {
		state = &sessionState{}
		s.sessions[sessionID] = state
	}
	return state
}
