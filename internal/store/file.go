package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dvloznov/wealthmind/internal/ledger"
)

// FileStore persists the snapshot as a pretty-printed JSON file on local
// disk, the single-user analog of browser local storage.
type FileStore struct {
	path string
}

// NewFileStore creates a store rooted at the given file path. Parent
// directories are created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the snapshot from disk. A missing file yields a fresh initial
// snapshot rather than an error.
func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewSnapshot(), nil
		}
		return nil, fmt.Errorf("FileStore.Load: read %q: %w", s.path, err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("FileStore.Load: decode %q: %w", s.path, err)
	}
	if snap.Transactions == nil {
		snap.Transactions = []ledger.Transaction{}
	}
	return &snap, nil
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the target so a crash never leaves a half-written snapshot.
func (s *FileStore) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("FileStore.Save: encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("FileStore.Save: mkdir %q: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("FileStore.Save: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("FileStore.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("FileStore.Save: close: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("FileStore.Save: rename: %w", err)
	}
	return nil
}
