package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrCorruptTable = errors.New("corrupt q-table")

const tableFormatVersion = 1

// TableStore persists Q-table snapshots.
type TableStore interface {
	Save(records []StateRecord) error
	// Load returns no records and no error when nothing was saved yet.
	Load() ([]StateRecord, error)
	Close() error
}

// OpenStore picks a BoltStore for .db and .bolt paths and a FileStore
// otherwise.
func OpenStore(path string) (TableStore, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".bolt":
		return OpenBoltStore(path)
	default:
		return NewFileStore(path), nil
	}
}

// OpenStoreKind opens a store of the named kind: "json", "bolt", or "auto"
// to decide by extension.
func OpenStoreKind(kind, path string) (TableStore, error) {
	switch strings.ToLower(kind) {
	case "auto", "":
		return OpenStore(path)
	case "json":
		return NewFileStore(path), nil
	case "bolt":
		return OpenBoltStore(path)
	default:
		return nil, fmt.Errorf("unknown table store %q", kind)
	}
}

type tableDocument struct {
	Version int           `json:"version"`
	States  []StateRecord `json:"states"`
}

// FileStore keeps the table as a single JSON document.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Path() string {
	return s.path
}

// Save writes to a temporary file in the same directory and renames it over
// the target, so readers never see a partial document.
func (s *FileStore) Save(records []StateRecord) error {
	data, err := json.Marshal(tableDocument{Version: tableFormatVersion, States: records})
	if err != nil {
		return fmt.Errorf("encoding q-table: %w", err)
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating q-table directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary q-table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing q-table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing q-table: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing q-table: %w", err)
	}
	return nil
}

func (s *FileStore) Load() ([]StateRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading q-table: %w", err)
	}
	var doc tableDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptTable, s.path, err)
	}
	if doc.Version != tableFormatVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", ErrCorruptTable, s.path, doc.Version)
	}
	return doc.States, nil
}

func (s *FileStore) Close() error {
	return nil
}
