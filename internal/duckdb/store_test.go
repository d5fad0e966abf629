package duckdb

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("NewStore(\"\") failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPrefRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.GetPref("sidebarCollapsed"); err != nil || ok {
		t.Fatalf("GetPref on empty store = ok:%v err:%v, want ok:false err:nil", ok, err)
	}

	if err := store.SetPref("sidebarCollapsed", "true"); err != nil {
		t.Fatalf("SetPref: %v", err)
	}
	v, ok, err := store.GetPref("sidebarCollapsed")
	if err != nil || !ok || v != "true" {
		t.Errorf("GetPref = %q ok:%v err:%v, want \"true\"", v, ok, err)
	}

	// Overwrite.
	if err := store.SetPref("sidebarCollapsed", "false"); err != nil {
		t.Fatalf("SetPref overwrite: %v", err)
	}
	v, _, _ = store.GetPref("sidebarCollapsed")
	if v != "false" {
		t.Errorf("after overwrite value = %q, want \"false\"", v)
	}
}

func TestDeleteAndClearPrefs(t *testing.T) {
	store := newTestStore(t)

	for _, k := range []string{"b", "a", "c"} {
		if err := store.SetPref(k, `"x"`); err != nil {
			t.Fatalf("SetPref(%s): %v", k, err)
		}
	}

	keys, err := store.PrefKeys()
	if err != nil {
		t.Fatalf("PrefKeys: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Errorf("PrefKeys = %v, want [a b c]", keys)
	}

	if err := store.DeletePref("b"); err != nil {
		t.Fatalf("DeletePref: %v", err)
	}
	if err := store.DeletePref("missing"); err != nil {
		t.Errorf("DeletePref(missing) = %v, want nil", err)
	}
	if _, ok, _ := store.GetPref("b"); ok {
		t.Error("key b still present after delete")
	}

	if err := store.ClearPrefs(); err != nil {
		t.Fatalf("ClearPrefs: %v", err)
	}
	keys, _ = store.PrefKeys()
	if len(keys) != 0 {
		t.Errorf("after ClearPrefs keys = %v, want none", keys)
	}
}

func TestPrefsPersistAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "fastdata.duckdb")

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.SetPref("currentSection", `"sales"`); err != nil {
		t.Fatalf("SetPref: %v", err)
	}
	store.Close()

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	if reopened.DBPath() != path {
		t.Errorf("DBPath = %q, want %q", reopened.DBPath(), path)
	}
	v, ok, err := reopened.GetPref("currentSection")
	if err != nil || !ok || v != `"sales"` {
		t.Errorf("GetPref after reopen = %q ok:%v err:%v", v, ok, err)
	}
}

func TestRecordAndListUploads(t *testing.T) {
	store := newTestStore(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, name := range []string{"a.csv", "b.xlsx", "c.xls"} {
		err := store.RecordUpload(UploadReceipt{
			ID:              name,
			Filename:        name,
			SizeBytes:       int64(100 * (i + 1)),
			ContentType:     "text/csv",
			Source:          "tuya-frontend",
			ClientTimestamp: base.Format(time.RFC3339),
			ReceivedAt:      base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("RecordUpload(%s): %v", name, err)
		}
	}

	n, err := store.UploadCount()
	if err != nil || n != 3 {
		t.Fatalf("UploadCount = %d err:%v, want 3", n, err)
	}

	recent, err := store.RecentUploads(2)
	if err != nil {
		t.Fatalf("RecentUploads: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("RecentUploads(2) returned %d rows", len(recent))
	}
	if recent[0].Filename != "c.xls" || recent[1].Filename != "b.xlsx" {
		t.Errorf("order = %s, %s; want c.xls, b.xlsx", recent[0].Filename, recent[1].Filename)
	}
	if recent[0].SizeBytes != 300 {
		t.Errorf("SizeBytes = %d, want 300", recent[0].SizeBytes)
	}

	got, err := store.Upload("a.csv")
	if err != nil {
		t.Fatalf("Upload(a.csv): %v", err)
	}
	if got.Source != "tuya-frontend" {
		t.Errorf("Source = %q", got.Source)
	}

	if _, err := store.Upload("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Upload(nope) err = %v, want ErrNotFound", err)
	}
}
