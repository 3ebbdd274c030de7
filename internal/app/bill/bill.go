// Package bill computes and renders plain-text invoices from the
// settings and the ledger. The rendered layout is an external contract:
// bills are compared by eye and sent over WhatsApp, so the text must
// come out the same from one release to the next.
package bill

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/observability"
)

// Bill is a rendered invoice with its computed totals. Derived and
// ephemeral — never persisted.
type Bill struct {
	Start       time.Time `json:"-"`
	End         time.Time `json:"-"`
	DaysCount   int       `json:"days"`
	BasePockets int       `json:"base_pockets"`
	ExtraTotal  int       `json:"extra_total"`
	NotTotal    int       `json:"not_total"`
	FinalUnits  int       `json:"final_units"`
	Amount      float64   `json:"amount"`
	GrandTotal  float64   `json:"grand_total"`
	Text        string    `json:"text"`
}

// Build computes a bill over [start, end], both endpoints inclusive.
// A reversed range is rejected rather than producing a negative day
// count. FinalUnits may go negative when not-supplied exceeds the
// base plus extras; that is deliberate and shows on the bill.
func Build(start, end time.Time, st domain.Settings, led domain.Ledger) (*Bill, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}
	daysCount := int(end.Sub(start)/(24*time.Hour)) + 1
	basePockets := st.DailyQty * daysCount

	startKey := domain.DateKey(start)
	endKey := domain.DateKey(end)

	keys := make([]string, 0, len(led))
	for k := range led {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var extraTotal, notTotal int
	var extraDetails, notDetails strings.Builder
	for _, k := range keys {
		// ISO date keys order lexically, so the range check is a
		// plain string comparison.
		if k < startKey || k > endKey {
			continue
		}
		day, err := domain.ParseDateKey(k)
		if err != nil {
			continue
		}
		e := led[k]
		if e.Extra > 0 {
			extraTotal += e.Extra
			extraDetails.WriteString(domain.DisplayDate(day) + " : " + strconv.Itoa(e.Extra) + " pkt\n")
		}
		if e.Not > 0 {
			notTotal += e.Not
			notDetails.WriteString(domain.DisplayDate(day) + " : " + strconv.Itoa(e.Not) + " pkt\n")
		}
	}

	finalUnits := basePockets + extraTotal - notTotal
	amount := float64(finalUnits) * st.Rate
	grand := amount + st.Service

	b := &Bill{
		Start:       start,
		End:         end,
		DaysCount:   daysCount,
		BasePockets: basePockets,
		ExtraTotal:  extraTotal,
		NotTotal:    notTotal,
		FinalUnits:  finalUnits,
		Amount:      amount,
		GrandTotal:  grand,
	}
	b.Text = render(b, st, extraDetails.String(), notDetails.String())
	return b, nil
}

// BuildMonth bills the full calendar month containing the given year
// and month: first through last day inclusive.
func BuildMonth(year int, month time.Month, st domain.Settings, led domain.Ledger) (*Bill, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	b, err := Build(start, end, st, led)
	if err != nil {
		return nil, err
	}
	observability.BillsRendered.WithLabelValues("month").Inc()
	return b, nil
}

// BuildRange bills a user-supplied date range. Both bounds are
// required; a reversed range is rejected by Build.
func BuildRange(fromKey, toKey string, st domain.Settings, led domain.Ledger) (*Bill, error) {
	if fromKey == "" || toKey == "" {
		return nil, domain.ErrMissingRangeBounds
	}
	start, err := domain.ParseDateKey(fromKey)
	if err != nil {
		return nil, domain.ErrMissingRangeBounds
	}
	end, err := domain.ParseDateKey(toKey)
	if err != nil {
		return nil, domain.ErrMissingRangeBounds
	}
	b, err := Build(start, end, st, led)
	if err != nil {
		return nil, err
	}
	observability.BillsRendered.WithLabelValues("range").Inc()
	return b, nil
}

// ─── Rendering ──────────────────────────────────────────────────────────────

// render lays out the fixed-format invoice text. Section order, dash
// rules and indentation are part of the contract — do not tidy.
func render(b *Bill, st domain.Settings, extraDetails, notDetails string) string {
	if extraDetails == "" {
		extraDetails = "Nil\n"
	}
	if notDetails == "" {
		notDetails = "Nil\n"
	}

	var t strings.Builder
	t.WriteString("Milk Bill Details\n")
	t.WriteString("\n")
	t.WriteString("Plot No. " + st.CustPlot + "\n")
	t.WriteString("Address: " + st.CustAddr + "\n")
	t.WriteString("\n")
	t.WriteString("Period:\n")
	t.WriteString(domain.DisplayDate(b.Start) + " to " + domain.DisplayDate(b.End) + "\n")
	t.WriteString("\n")
	t.WriteString("Daily Milk:\n")
	t.WriteString(strconv.Itoa(st.DailyQty) + " pkt × " + strconv.Itoa(b.DaysCount) +
		" days = " + strconv.Itoa(b.BasePockets) + " pkt\n")
	t.WriteString("\n")
	t.WriteString("Extra Milk Purchased:\n")
	t.WriteString(extraDetails + "\n")
	t.WriteString("                        ----------\n")
	t.WriteString("                          " + strconv.Itoa(b.ExtraTotal) + " pkt\n")
	t.WriteString("                        ----------\n")
	t.WriteString("\n")
	t.WriteString("Not Supplied Milk:\n")
	t.WriteString(notDetails + "\n")
	t.WriteString("                        ----------\n")
	t.WriteString("                          " + strconv.Itoa(b.NotTotal) + " pkt\n")
	t.WriteString("                        ----------\n")
	t.WriteString("\n")
	t.WriteString("--------------------\n")
	t.WriteString("Total Milk:\n")
	t.WriteString(strconv.Itoa(b.BasePockets) + " + " + strconv.Itoa(b.ExtraTotal) +
		" - " + strconv.Itoa(b.NotTotal) + " = " + strconv.Itoa(b.FinalUnits) + " pkt\n")
	t.WriteString("\n")
	t.WriteString("Milk Rate:\n")
	t.WriteString("₹" + formatNumber(st.Rate) + " per pkt\n")
	t.WriteString("\n")
	t.WriteString("Milk Amount:\n")
	t.WriteString(strconv.Itoa(b.FinalUnits) + " × " + formatNumber(st.Rate) +
		" = ₹" + formatNumber(b.Amount) + "\n")
	t.WriteString("\n")
	t.WriteString("Service Charge (One Time):\n")
	t.WriteString("₹" + formatNumber(st.Service) + "\n")
	t.WriteString("\n")
	t.WriteString("--------------------\n")
	t.WriteString("Grand Total:\n")
	t.WriteString("₹" + formatNumber(b.GrandTotal) + "\n")
	t.WriteString("\n")
	t.WriteString("- Powered by Milk Diary iniyan.talkies")
	return t.String()
}

// formatNumber prints a float the way the bill has always shown money:
// no trailing zeros, no decimal point on whole amounts (30, 187.5).
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
