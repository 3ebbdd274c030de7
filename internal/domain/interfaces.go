package domain

// ─── Storage Port ───────────────────────────────────────────────────────────
// The whole application persists through a flat key-value store addressed
// by a handful of fixed keys. Infrastructure implements Store; the
// application services depend only on this interface.

// Storage keys. These names are the external persistence contract and
// must not change between releases — the sqlite file outlives upgrades.
const (
	KeyDevice    = "MDT_DEVICE"      // plain device token, not JSON
	KeyLedger    = "MILK_DATA"       // Ledger
	KeySettings  = "MDT_SETTINGS"    // Settings
	KeyRegistry  = "MDT_REGISTRY"    // Registry
	KeyKeyClaims = "MDT_GLOBAL_KEYS" // KeyClaims
)

// Store is the persistence port. Get reports ok=false when the key has
// never been written. Put replaces the whole value atomically.
type Store interface {
	Get(key string) (value []byte, ok bool, err error)
	Put(key string, value []byte) error
}
