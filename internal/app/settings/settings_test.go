package settings

import (
	"testing"

	"github.com/iniyantalkies/milkdiary/internal/domain"
	"github.com/iniyantalkies/milkdiary/internal/infra/memstore"
)

func TestLoad_Defaults(t *testing.T) {
	svc := NewService(memstore.New())

	st, err := svc.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if st.DailyQty != 1 {
		t.Errorf("dailyQty = %d, want 1", st.DailyQty)
	}
	if st.Rate != 30 {
		t.Errorf("rate = %v, want 30", st.Rate)
	}
	if st.Service != 0 {
		t.Errorf("service = %v, want 0", st.Service)
	}
	if st.CustPlot != "" || st.CustAddr != "" || st.Milkman != "" {
		t.Errorf("text fields = %+v, want empty", st)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	svc := NewService(memstore.New())

	in := domain.Settings{
		CustPlot: "12A",
		CustAddr: "5 Lake View Street",
		DailyQty: 2,
		Rate:     32.5,
		Service:  100,
		Milkman:  "9876543210",
	}
	if err := svc.Save(in); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("Load() = %+v, want %+v", got, in)
	}
}

func TestSave_OverwritesWholesale(t *testing.T) {
	svc := NewService(memstore.New())
	svc.Save(domain.Settings{CustPlot: "12A", DailyQty: 2, Rate: 30})
	svc.Save(domain.Settings{DailyQty: 1, Rate: 28})

	got, err := svc.Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.CustPlot != "" {
		t.Errorf("custPlot = %q, want cleared by wholesale save", got.CustPlot)
	}
	if got.Rate != 28 {
		t.Errorf("rate = %v, want 28", got.Rate)
	}
}
