package ledger

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/schollz/jsonstore"

	"drumdrill/pattern"
)

// DefaultSlot is the key under which the practiced set is stored.
const DefaultSlot = "mx_bateria_practicados_v1"

// Store loads and saves the whole practiced set at once.
type Store interface {
	Load() ([]pattern.Key, error)
	Save(keys []pattern.Key) error
}

// FileStore keeps the practiced set as a JSON array in one slot of a
// jsonstore file. Other slots in the same file are preserved.
type FileStore struct {
	Path string
	Slot string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path, Slot: DefaultSlot}
}

func (f *FileStore) Load() ([]pattern.Key, error) {
	ks, err := jsonstore.Open(f.Path)
	if err != nil {
		return nil, err
	}
	var raw []string
	if err := ks.Get(f.Slot, &raw); err != nil {
		return nil, err
	}
	keys := make([]pattern.Key, len(raw))
	for i, k := range raw {
		keys[i] = pattern.Key(k)
	}
	return keys, nil
}

func (f *FileStore) Save(keys []pattern.Key) error {
	ks, err := jsonstore.Open(f.Path)
	if err != nil {
		ks = new(jsonstore.JSONStore)
	}

	raw := make([]string, len(keys))
	for i, k := range keys {
		raw[i] = string(k)
	}
	sort.Strings(raw)

	if err := ks.Set(f.Slot, raw); err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return jsonstore.Save(ks, f.Path)
}
