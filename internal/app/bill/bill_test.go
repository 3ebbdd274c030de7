package bill

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iniyantalkies/milkdiary/internal/domain"
)

func testSettings() domain.Settings {
	return domain.Settings{
		CustPlot: "12A",
		CustAddr: "5 Lake View Street",
		DailyQty: 1,
		Rate:     30,
		Service:  0,
		Milkman:  "9876543210",
	}
}

func day(key string) time.Time {
	t, err := domain.ParseDateKey(key)
	if err != nil {
		panic(err)
	}
	return t
}

// ─── Totals ─────────────────────────────────────────────────────────────────

func TestBuild_FiveDaySlice(t *testing.T) {
	led := domain.Ledger{
		"2025-08-02": {Extra: 2},
		"2025-08-04": {Not: 1},
	}

	b, err := Build(day("2025-08-01"), day("2025-08-05"), testSettings(), led)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if b.DaysCount != 5 {
		t.Errorf("days = %d, want 5", b.DaysCount)
	}
	if b.BasePockets != 5 {
		t.Errorf("base = %d, want 5", b.BasePockets)
	}
	if b.ExtraTotal != 2 {
		t.Errorf("extra = %d, want 2", b.ExtraTotal)
	}
	if b.NotTotal != 1 {
		t.Errorf("not = %d, want 1", b.NotTotal)
	}
	if b.FinalUnits != 6 {
		t.Errorf("final = %d, want 6", b.FinalUnits)
	}
	if b.Amount != 180 {
		t.Errorf("amount = %v, want 180", b.Amount)
	}
	if b.GrandTotal != 180 {
		t.Errorf("grand = %v, want 180", b.GrandTotal)
	}
}

func TestBuild_InclusiveBoundaries(t *testing.T) {
	led := domain.Ledger{
		"2025-07-31": {Extra: 9}, // day before the range
		"2025-08-01": {Extra: 1}, // on start
		"2025-08-05": {Not: 1},   // on end
		"2025-08-06": {Not: 9},   // day after the range
	}

	b, err := Build(day("2025-08-01"), day("2025-08-05"), testSettings(), led)
	if err != nil {
		t.Fatal(err)
	}
	if b.ExtraTotal != 1 {
		t.Errorf("extra = %d, want 1 (outside entries excluded)", b.ExtraTotal)
	}
	if b.NotTotal != 1 {
		t.Errorf("not = %d, want 1 (outside entries excluded)", b.NotTotal)
	}
	if strings.Contains(b.Text, "31/07/2025") || strings.Contains(b.Text, "06/08/2025") {
		t.Error("detail listing contains out-of-range dates")
	}
}

func TestBuild_NegativeFinalNotClamped(t *testing.T) {
	led := domain.Ledger{"2025-08-01": {Not: 10}}

	b, err := Build(day("2025-08-01"), day("2025-08-02"), testSettings(), led)
	if err != nil {
		t.Fatal(err)
	}
	if b.FinalUnits != -8 {
		t.Errorf("final = %d, want -8", b.FinalUnits)
	}
	if b.Amount != -240 {
		t.Errorf("amount = %v, want -240", b.Amount)
	}
}

func TestBuild_ServiceFeeAddsOnce(t *testing.T) {
	st := testSettings()
	st.Service = 50

	b, err := Build(day("2025-08-01"), day("2025-08-05"), st, domain.Ledger{})
	if err != nil {
		t.Fatal(err)
	}
	if b.Amount != 150 {
		t.Errorf("amount = %v, want 150", b.Amount)
	}
	if b.GrandTotal != 200 {
		t.Errorf("grand = %v, want 200", b.GrandTotal)
	}
}

func TestBuild_ReversedRange(t *testing.T) {
	_, err := Build(day("2025-08-05"), day("2025-08-01"), testSettings(), domain.Ledger{})
	if !errors.Is(err, domain.ErrInvalidRange) {
		t.Errorf("err = %v, want ErrInvalidRange", err)
	}
}

func TestBuild_ZeroEntrySkipped(t *testing.T) {
	// The UI writes explicit zeros; they must not show in the listings.
	led := domain.Ledger{"2025-08-02": {Not: 0, Extra: 0}}

	b, err := Build(day("2025-08-01"), day("2025-08-05"), testSettings(), led)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.Text, "Extra Milk Purchased:\nNil\n") {
		t.Error("extra listing should render Nil for zero entries")
	}
	if !strings.Contains(b.Text, "Not Supplied Milk:\nNil\n") {
		t.Error("not-supplied listing should render Nil for zero entries")
	}
}

// ─── Wrappers ───────────────────────────────────────────────────────────────

func TestBuildMonth_FullMonth(t *testing.T) {
	b, err := BuildMonth(2025, time.February, testSettings(), domain.Ledger{})
	if err != nil {
		t.Fatal(err)
	}
	if b.DaysCount != 28 {
		t.Errorf("days = %d, want 28", b.DaysCount)
	}
	if got := domain.DateKey(b.End); got != "2025-02-28" {
		t.Errorf("end = %s, want 2025-02-28", got)
	}
}

func TestBuildRange_MissingBounds(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"no from", "", "2025-08-05"},
		{"no to", "2025-08-01", ""},
		{"garbage from", "yesterday", "2025-08-05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildRange(tt.from, tt.to, testSettings(), domain.Ledger{})
			if !errors.Is(err, domain.ErrMissingRangeBounds) {
				t.Errorf("err = %v, want ErrMissingRangeBounds", err)
			}
		})
	}
}

// ─── Text Layout ────────────────────────────────────────────────────────────

func TestBuild_TextLayout(t *testing.T) {
	led := domain.Ledger{
		"2025-08-02": {Extra: 2},
		"2025-08-04": {Not: 1},
	}

	b, err := Build(day("2025-08-01"), day("2025-08-05"), testSettings(), led)
	if err != nil {
		t.Fatal(err)
	}

	want := `Milk Bill Details

Plot No. 12A
Address: 5 Lake View Street

Period:
01/08/2025 to 05/08/2025

Daily Milk:
1 pkt × 5 days = 5 pkt

Extra Milk Purchased:
02/08/2025 : 2 pkt

                        ----------
                          2 pkt
                        ----------

Not Supplied Milk:
04/08/2025 : 1 pkt

                        ----------
                          1 pkt
                        ----------

--------------------
Total Milk:
5 + 2 - 1 = 6 pkt

Milk Rate:
₹30 per pkt

Milk Amount:
6 × 30 = ₹180

Service Charge (One Time):
₹0

--------------------
Grand Total:
₹180

- Powered by Milk Diary iniyan.talkies`

	if b.Text != want {
		t.Errorf("bill text mismatch:\ngot:\n%s\n\nwant:\n%s", b.Text, want)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{30, "30"},
		{187.5, "187.5"},
		{0, "0"},
		{32.75, "32.75"},
		{-240, "-240"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := formatNumber(tt.in); got != tt.want {
				t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
