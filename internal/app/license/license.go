// Package license implements the device identity and the license gate.
// A license key is bound to the first device that claims it; the claim
// map and the per-device registry both live in the key-value store.
package license

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/observability"
	"github.com/iniyantalkies/milkdiary/internal/infra/whatsapp"
)

const (
	devicePrefix  = "MDT-"
	deviceRandLen = 9
	deviceCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Service is the license gate. It owns the device token, the global
// key-claim map and the device registry.
type Service struct {
	store       domain.Store
	rules       []KeyRule
	adminNumber string
	now         func() time.Time
}

// NewService creates a license service with the built-in rule table.
func NewService(store domain.Store, adminNumber string) *Service {
	return &Service{
		store:       store,
		rules:       DefaultRules(),
		adminNumber: adminNumber,
		now:         time.Now,
	}
}

// ─── Device Identity ────────────────────────────────────────────────────────

// DeviceID returns the installation's device token, generating and
// persisting it on first call. The token never changes afterwards.
func (s *Service) DeviceID() (string, error) {
	raw, ok, err := s.store.Get(domain.KeyDevice)
	if err != nil {
		return "", fmt.Errorf("load device id: %w", err)
	}
	if ok && len(raw) > 0 {
		return string(raw), nil
	}
	id := generateDeviceID()
	if err := s.store.Put(domain.KeyDevice, []byte(id)); err != nil {
		return "", fmt.Errorf("persist device id: %w", err)
	}
	return id, nil
}

func generateDeviceID() string {
	b := make([]byte, deviceRandLen)
	for i := range b {
		b[i] = deviceCharset[rand.Intn(len(deviceCharset))]
	}
	return devicePrefix + string(b)
}

// ─── Unlock ─────────────────────────────────────────────────────────────────

// Unlock evaluates a presented key against the rule table, enforces the
// one-key-one-device binding and writes the new license record. A key
// already claimed by this same device re-claims cleanly, refreshing the
// expiry from now.
func (s *Service) Unlock(presented string) (domain.License, error) {
	key := strings.TrimSpace(presented)

	var matched *KeyRule
	for i := range s.rules {
		if s.rules[i].Match(key) {
			matched = &s.rules[i]
			break
		}
	}
	if matched == nil {
		observability.UnlockAttempts.WithLabelValues("invalid_key").Inc()
		return domain.License{}, domain.ErrInvalidKey
	}

	deviceID, err := s.DeviceID()
	if err != nil {
		return domain.License{}, err
	}

	claims, err := s.loadClaims()
	if err != nil {
		return domain.License{}, err
	}
	if owner, claimed := claims[key]; claimed && owner != deviceID {
		observability.UnlockAttempts.WithLabelValues("key_bound").Inc()
		return domain.License{}, domain.ErrKeyAlreadyBound
	}

	claims[key] = deviceID
	if err := s.saveJSON(domain.KeyKeyClaims, claims); err != nil {
		return domain.License{}, err
	}

	lic := domain.License{
		Key:       key,
		Tier:      matched.Tier,
		ExpiresAt: s.now().AddDate(0, 0, matched.GrantDays),
	}
	registry, err := s.loadRegistry()
	if err != nil {
		return domain.License{}, err
	}
	registry[deviceID] = lic
	if err := s.saveJSON(domain.KeyRegistry, registry); err != nil {
		return domain.License{}, err
	}
	observability.UnlockAttempts.WithLabelValues("granted").Inc()
	return lic, nil
}

// ─── Status ─────────────────────────────────────────────────────────────────

// Status returns this device's license and whether it is currently
// valid. Expiry is only ever evaluated here — there is no background
// re-check and no implicit renewal.
func (s *Service) Status() (domain.License, bool, error) {
	deviceID, err := s.DeviceID()
	if err != nil {
		return domain.License{}, false, err
	}
	registry, err := s.loadRegistry()
	if err != nil {
		return domain.License{}, false, err
	}
	lic, ok := registry[deviceID]
	if !ok || lic.Expired(s.now()) {
		return lic, false, nil
	}
	return lic, true, nil
}

// RequestLink returns the wa.me link asking the admin for a key.
func (s *Service) RequestLink() (string, error) {
	deviceID, err := s.DeviceID()
	if err != nil {
		return "", err
	}
	return whatsapp.LicenseRequest(s.adminNumber, deviceID), nil
}

// ─── Storage Helpers ────────────────────────────────────────────────────────

func (s *Service) loadClaims() (domain.KeyClaims, error) {
	claims := domain.KeyClaims{}
	if err := s.loadJSON(domain.KeyKeyClaims, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *Service) loadRegistry() (domain.Registry, error) {
	registry := domain.Registry{}
	if err := s.loadJSON(domain.KeyRegistry, &registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func (s *Service) loadJSON(key string, dst any) error {
	raw, ok, err := s.store.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (s *Service) saveJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Put(key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
