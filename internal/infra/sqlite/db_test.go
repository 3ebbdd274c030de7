package sqlite

import (
	"path/filepath"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "milkdiary.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGet_Missing(t *testing.T) {
	db := newTestDB(t)

	_, ok, err := db.Get("MDT_DEVICE")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("ok = true for a key that was never written")
	}
}

func TestPutGet_Roundtrip(t *testing.T) {
	db := newTestDB(t)

	if err := db.Put("MDT_DEVICE", []byte("MDT-ABC123XYZ")); err != nil {
		t.Fatalf("Put() error: %v", err)
	}
	got, ok, err := db.Get("MDT_DEVICE")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("ok = false after Put")
	}
	if string(got) != "MDT-ABC123XYZ" {
		t.Errorf("value = %q, want %q", got, "MDT-ABC123XYZ")
	}
}

func TestPut_Overwrite(t *testing.T) {
	db := newTestDB(t)
	db.Put("MILK_DATA", []byte(`{"2025-08-01":{"not":1}}`))
	db.Put("MILK_DATA", []byte(`{"2025-08-01":{"extra":2}}`))

	got, _, err := db.Get("MILK_DATA")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"2025-08-01":{"extra":2}}` {
		t.Errorf("value = %q, want last write", got)
	}
}

func TestOpen_Reopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "milkdiary.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	db.Put("MDT_SETTINGS", []byte(`{"dailyQty":2}`))
	db.Close()

	db2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db2.Close()
	got, ok, err := db2.Get("MDT_SETTINGS")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if string(got) != `{"dailyQty":2}` {
		t.Errorf("value = %q, want persisted write", got)
	}
}
