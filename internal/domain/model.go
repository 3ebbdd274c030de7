// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of clean architecture — it depends on nothing.
package domain

import "time"

// ─── License Types ──────────────────────────────────────────────────────────

// Tier classifies a license and determines its grant length.
// The values are display strings shown in the header and status line.
type Tier string

const (
	TierTrial     Tier = "Trial"
	TierPaidYear1 Tier = "Paid Year-1"
	TierPaidYear2 Tier = "Paid Year-2"
)

// License is the per-device license record stored in the device registry.
// One record per device id; overwritten wholesale on every successful unlock.
type License struct {
	Key       string    `json:"pwd"`
	Tier      Tier      `json:"type"`
	ExpiresAt time.Time `json:"exp"`
}

// Expired reports whether the license has lapsed at the given instant.
func (l License) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// Registry maps a device id to its license record.
type Registry map[string]License

// KeyClaims maps a presented license key to the device id that first
// claimed it. A key belongs to at most one device; the map only grows.
type KeyClaims map[string]string

// ─── Ledger Types ───────────────────────────────────────────────────────────

// Entry records one calendar day's delivery exceptions. Absent fields
// mean zero; a day with no entry had the plain daily delivery.
type Entry struct {
	Not   int `json:"not,omitempty"`
	Extra int `json:"extra,omitempty"`
}

// IsZero reports whether the entry carries no exception at all.
func (e Entry) IsZero() bool { return e.Not == 0 && e.Extra == 0 }

// Ledger maps a date key (YYYY-MM-DD) to that day's entry.
// Sparse: only days with an exception need an entry.
type Ledger map[string]Entry

// DayStatus is the derived calendar display classification of a day.
type DayStatus int

const (
	StatusDefault DayStatus = iota
	StatusNotSupplied
	StatusExtra
	StatusBoth
)

// String returns the status name used in API payloads.
func (s DayStatus) String() string {
	switch s {
	case StatusNotSupplied:
		return "not_supplied"
	case StatusExtra:
		return "extra"
	case StatusBoth:
		return "both"
	default:
		return "default"
	}
}

// ─── Settings ───────────────────────────────────────────────────────────────

// Settings is the singleton configuration record, saved wholesale.
type Settings struct {
	CustPlot string  `json:"custPlot"`
	CustAddr string  `json:"custAddr"`
	DailyQty int     `json:"dailyQty"`
	Rate     float64 `json:"rate"`
	Service  float64 `json:"service"`
	Milkman  string  `json:"milkman"`
}

// DefaultSettings returns the first-run settings.
func DefaultSettings() Settings {
	return Settings{DailyQty: 1, Rate: 30, Service: 0}
}

// ─── Date Helpers ───────────────────────────────────────────────────────────

const dateKeyLayout = "2006-01-02"

// DateKey formats a time as the canonical YYYY-MM-DD ledger key.
func DateKey(t time.Time) string { return t.Format(dateKeyLayout) }

// ParseDateKey parses a YYYY-MM-DD key into a UTC midnight time.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(dateKeyLayout, key)
}

// DisplayDate formats a time as DD/MM/YYYY for bills and status lines.
func DisplayDate(t time.Time) string { return t.Format("02/01/2006") }
