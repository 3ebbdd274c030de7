// Package ledger maintains the per-day exception ledger and the derived
// calendar view. Every write persists the whole ledger immediately;
// there is no batching and no delete — days are corrected by writing 0.
package ledger

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/observability"
)

// Kind names the two exception quantities a day can carry.
type Kind string

const (
	KindNot   Kind = "not"
	KindExtra Kind = "extra"
)

// Service reads and writes the calendar ledger.
type Service struct {
	store domain.Store
}

// NewService creates a ledger service over the given store.
func NewService(store domain.Store) *Service {
	return &Service{store: store}
}

// ─── Writes ─────────────────────────────────────────────────────────────────

// SetException writes one exception quantity for one day, merging with
// the sibling field of an existing entry. The date is an explicit
// parameter; an empty or unparseable date fails with ErrNoDateSelected.
// Negative quantities coerce to 0, matching the UI's non-numeric reset.
func (s *Service) SetException(dateKey string, kind Kind, qty int) (domain.Entry, error) {
	if _, err := domain.ParseDateKey(dateKey); err != nil {
		return domain.Entry{}, domain.ErrNoDateSelected
	}
	if kind != KindNot && kind != KindExtra {
		return domain.Entry{}, fmt.Errorf("unknown exception kind %q", kind)
	}
	if qty < 0 {
		qty = 0
	}

	led, err := s.All()
	if err != nil {
		return domain.Entry{}, err
	}
	entry := led[dateKey]
	switch kind {
	case KindNot:
		entry.Not = qty
	case KindExtra:
		entry.Extra = qty
	}
	led[dateKey] = entry

	if err := s.save(led); err != nil {
		return domain.Entry{}, err
	}
	observability.LedgerWrites.WithLabelValues(string(kind)).Inc()
	return entry, nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// All loads the full ledger. A missing record is an empty ledger.
func (s *Service) All() (domain.Ledger, error) {
	led := domain.Ledger{}
	raw, ok, err := s.store.Get(domain.KeyLedger)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if !ok {
		return led, nil
	}
	if err := json.Unmarshal(raw, &led); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return led, nil
}

// Entry returns the entry for one day (zero entry if absent).
func (s *Service) Entry(dateKey string) (domain.Entry, error) {
	led, err := s.All()
	if err != nil {
		return domain.Entry{}, err
	}
	return led[dateKey], nil
}

func (s *Service) save(led domain.Ledger) error {
	raw, err := json.Marshal(led)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.store.Put(domain.KeyLedger, raw); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// ─── Derived Calendar View ──────────────────────────────────────────────────

// Classify derives the display status of a day's entry. Both flags
// outrank either single flag.
func Classify(e domain.Entry) domain.DayStatus {
	switch {
	case e.Not > 0 && e.Extra > 0:
		return domain.StatusBoth
	case e.Not > 0:
		return domain.StatusNotSupplied
	case e.Extra > 0:
		return domain.StatusExtra
	default:
		return domain.StatusDefault
	}
}

// Cell is one slot of the month grid. Leading blanks (Day == 0) pad the
// first week so day 1 lands on its weekday column (Sunday-based).
type Cell struct {
	Day     int    `json:"day"`
	DateKey string `json:"date,omitempty"`
	Status  string `json:"status,omitempty"`
}

// MonthGrid recomputes the visible month from the ledger: leading
// blanks, then one cell per day of the month. Pure date arithmetic —
// nothing is persisted.
func (s *Service) MonthGrid(year int, month time.Month) ([]Cell, error) {
	led, err := s.All()
	if err != nil {
		return nil, err
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	cells := make([]Cell, 0, int(first.Weekday())+daysInMonth)
	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, Cell{})
	}
	for day := 1; day <= daysInMonth; day++ {
		key := domain.DateKey(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		cells = append(cells, Cell{Day: day, DateKey: key, Status: Classify(led[key]).String()})
	}
	return cells, nil
}
