package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"yisu_hotel/internal/adapters/observability"
	"yisu_hotel/internal/domain"
)

// FileStore keeps the whole dataset in one JSON file. Saves go through a
// temp file and rename, so a crashed write never leaves a half-written
// snapshot behind.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

func (f *FileStore) Load(ctx context.Context) (domain.Snapshot, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			observability.ObserveSnapshot("file", "miss")
			return domain.Snapshot{}, domain.ErrNotFound
		}
		return domain.Snapshot{}, fmt.Errorf("snapshot read %s: %w", f.path, err)
	}
	var s domain.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot decode %s: %w", f.path, err)
	}
	observability.ObserveSnapshot("file", "load")
	return s, nil
}

func (f *FileStore) Save(ctx context.Context, s domain.Snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("snapshot mkdir %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("snapshot write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("snapshot rename %s: %w", f.path, err)
	}
	observability.ObserveSnapshot("file", "save")
	return nil
}
