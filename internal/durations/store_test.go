package durations

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func tempStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "durations.json")
}

func TestOpenMissingFile(t *testing.T) {
	s := Open(tempStorePath(t))
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0", s.Len())
	}
	if _, ok := s.Get("anything"); ok {
		t.Fatal("empty store claims to know a duration")
	}
}

func TestRoundtrip(t *testing.T) {
	path := tempStorePath(t)

	s := Open(path)
	s.SetOne("dig-site", 253)
	s.SetMany(map[string]int{"fossils": 3720, "campfire": 30})

	reopened := Open(path)
	want := map[string]int{"dig-site": 253, "fossils": 3720, "campfire": 30}
	if got := reopened.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("snapshot after reopen = %v, want %v", got, want)
	}
}

func TestOpenCorruptFileStartsEmpty(t *testing.T) {
	path := tempStorePath(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Open(path)
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0 after corrupt file", s.Len())
	}

	// The store must still be writable afterwards.
	s.SetOne("dig-site", 100)
	if got, ok := Open(path).Get("dig-site"); !ok || got != 100 {
		t.Fatalf("after recovery: %d (%v), want 100", got, ok)
	}
}

func TestSetIgnoresInvalidEntries(t *testing.T) {
	path := tempStorePath(t)
	s := Open(path)

	s.SetOne("dig-site", 0)
	s.SetOne("dig-site", -5)
	s.SetOne("", 100)
	if s.Len() != 0 {
		t.Fatalf("len = %d, want 0 (invalid entries must be skipped)", s.Len())
	}

	// Nothing changed: no file should have been written.
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("no-op set wrote the file")
	}
}

func TestKnownDurationNeverDowngraded(t *testing.T) {
	s := Open(tempStorePath(t))
	s.SetOne("dig-site", 253)
	s.SetMany(map[string]int{"dig-site": 0})
	if got, _ := s.Get("dig-site"); got != 253 {
		t.Fatalf("duration = %d, want 253 preserved", got)
	}

	// A different positive measurement does replace the old one.
	s.SetOne("dig-site", 254)
	if got, _ := s.Get("dig-site"); got != 254 {
		t.Fatalf("duration = %d, want 254", got)
	}
}

func TestPersistedFileIsPlainJSON(t *testing.T) {
	path := tempStorePath(t)
	Open(path).SetOne("dig-site", 253)

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]int
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("persisted file is not valid JSON: %v", err)
	}
	if m["dig-site"] != 253 {
		t.Fatalf("persisted map = %v", m)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := Open(tempStorePath(t))
	s.SetOne("dig-site", 253)

	snap := s.Snapshot()
	snap["dig-site"] = 1
	if got, _ := s.Get("dig-site"); got != 253 {
		t.Fatal("mutating a snapshot leaked into the store")
	}
}
