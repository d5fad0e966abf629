// Package prefs stores JSON-encoded user preferences on top of a raw
// key/value backend. Storage failures are logged and swallowed: callers
// always get a usable value back.
package prefs

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/tuya/fastdata/internal/model"
)

// Store wraps a model.KVBackend with JSON (de)serialization.
type Store struct {
	kv  model.KVBackend
	log *zap.Logger
}

// New returns a preference store. A nil logger is replaced with a no-op one.
func New(kv model.KVBackend, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// Get decodes the value stored under key into out. It reports false when
// the key is absent, unreadable or malformed; out is left untouched then.
func (s *Store) Get(key string, out any) bool {
	raw, ok, err := s.kv.GetPref(key)
	if err != nil {
		s.log.Warn("preference read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		s.log.Warn("malformed preference ignored", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Set encodes value as JSON and stores it. It reports whether the write
// succeeded.
func (s *Store) Set(key string, value any) bool {
	data, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("preference encode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := s.kv.SetPref(key, string(data)); err != nil {
		s.log.Warn("preference write failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Remove deletes key.
func (s *Store) Remove(key string) bool {
	if err := s.kv.DeletePref(key); err != nil {
		s.log.Warn("preference delete failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Clear deletes every preference.
func (s *Store) Clear() bool {
	if err := s.kv.ClearPrefs(); err != nil {
		s.log.Warn("preference clear failed", zap.Error(err))
		return false
	}
	return true
}

// LoadNavigation reads the persisted sidebar state. Each field falls back
// to its default independently: defaultID for the section, expanded for
// the sidebar. An empty persisted section id counts as absent.
func (s *Store) LoadNavigation(defaultID string) model.NavigationState {
	st := model.NavigationState{CurrentSectionID: defaultID}

	var collapsed bool
	if s.Get(model.PrefSidebarCollapsed, &collapsed) {
		st.Collapsed = collapsed
	}

	var current string
	if s.Get(model.PrefCurrentSection, &current) && current != "" {
		st.CurrentSectionID = current
	}
	return st
}

// SaveNavigation persists both fields of st.
func (s *Store) SaveNavigation(st model.NavigationState) {
	s.Set(model.PrefSidebarCollapsed, st.Collapsed)
	s.Set(model.PrefCurrentSection, st.CurrentSectionID)
}
