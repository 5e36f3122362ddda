package ledger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"drumdrill/pattern"
)

func mustSeq(t *testing.T, raw string) pattern.Sequence {
	t.Helper()
	seq, err := pattern.Normalize(raw)
	if err != nil {
		t.Fatal(err)
	}
	return seq
}

func TestLoadMissingFileFailsOpen(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "practiced.json"))
	l, err := Load(store)
	if !errors.Is(err, ErrPersistenceRead) {
		t.Errorf("err = %v, want ErrPersistenceRead", err)
	}
	if l == nil || l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %v", l)
	}
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practiced.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := Load(NewFileStore(path))
	if !errors.Is(err, ErrPersistenceRead) {
		t.Errorf("err = %v, want ErrPersistenceRead", err)
	}
	if l.Len() != 0 {
		t.Errorf("len = %d", l.Len())
	}
}

func TestToggleWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practiced.json")
	store := NewFileStore(path)
	l, _ := Load(store)

	seq := mustSeq(t, "b r p")
	on, err := l.Toggle(seq)
	if err != nil {
		t.Fatal(err)
	}
	if !on || !l.IsPracticed(seq) {
		t.Fatal("expected practiced after first toggle")
	}

	reloaded, err := Load(NewFileStore(path))
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.IsPracticed(mustSeq(t, "B  R P")) {
		t.Error("practiced state not persisted")
	}
}

func TestToggleTwiceRestoresState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "practiced.json")
	store := NewFileStore(path)
	l, _ := Load(store)

	if _, err := l.Toggle(mustSeq(t, "p p")); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	seq := mustSeq(t, "b b r")
	if _, err := l.Toggle(seq); err != nil {
		t.Fatal(err)
	}
	off, err := l.Toggle(seq)
	if err != nil {
		t.Fatal(err)
	}
	if off || l.IsPracticed(seq) {
		t.Error("expected unpracticed after second toggle")
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Errorf("persisted content changed:\n%s\n%s", before, after)
	}
	if l.Len() != 1 {
		t.Errorf("len = %d, want 1", l.Len())
	}
}

type failingStore struct{ keys []pattern.Key }

func (f *failingStore) Load() ([]pattern.Key, error) { return f.keys, nil }
func (f *failingStore) Save([]pattern.Key) error     { return errors.New("disk full") }

func TestLoadSkipsInvalidKeys(t *testing.T) {
	l, err := Load(&failingStore{keys: []pattern.Key{"b  r", "X Y", "P"}})
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Keys(); len(got) != 2 || got[0] != "B R" || got[1] != "P" {
		t.Errorf("keys = %v", got)
	}
}

func TestToggleSaveFailure(t *testing.T) {
	l, _ := Load(&failingStore{})
	seq := mustSeq(t, "r")
	on, err := l.Toggle(seq)
	if err == nil {
		t.Fatal("expected save error")
	}
	if !on || !l.IsPracticed(seq) {
		t.Error("in-memory toggle should still apply")
	}
}
