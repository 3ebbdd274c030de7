// Package settings loads and saves the singleton configuration record.
// Saves are wholesale: the admin panel edits a copy and writes it back
// in one operation, so a closed panel never leaves a partial record.
package settings

import (
	"encoding/json"
	"fmt"

	"github.com/iniyantalkies/milkdiary/internal/domain"
)

// Service reads and writes the settings record.
type Service struct {
	store domain.Store
}

// NewService creates a settings service over the given store.
func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// Load returns the stored settings, or the first-run defaults
// (dailyQty=1, rate=30, service=0) when nothing was saved yet.
func (s *Service) Load() (domain.Settings, error) {
	st := domain.DefaultSettings()
	raw, ok, err := s.store.Get(domain.KeySettings)
	if err != nil {
		return st, fmt.Errorf("load settings: %w", err)
	}
	if !ok {
		return st, nil
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return st, fmt.Errorf("decode settings: %w", err)
	}
	return st, nil
}

// Save replaces the whole settings record.
func (s *Service) Save(st domain.Settings) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := s.store.Put(domain.KeySettings, raw); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}
