// Package highscore persists the single best score.
//
// Three backends are available: a plain text file holding the decimal value,
// a SQLite database, and a gdata object store. All of them treat a missing
// value as zero.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendGdata  = "gdata"
)

// ErrCorrupt is returned when a stored value is not a non-negative integer.
var ErrCorrupt = errors.New("highscore: corrupt value")

// Store reads and writes the high score.
type Store interface {
	Load() (int, error)
	Save(score int) error
	Close() error
}

// Open returns the store for backend. For file and sqlite, path is a file
// path (a leading ~ is expanded); for gdata it is the application name.
func Open(backend, path string) (Store, error) {
	switch backend {
	case BackendFile:
		p, err := config.ExpandHome(path)
		if err != nil {
			return nil, err
		}
		return NewFileStore(p), nil
	case BackendSQLite:
		return OpenSQLite(path)
	case BackendGdata:
		return OpenGdata(path)
	default:
		return nil, fmt.Errorf("highscore: unknown backend %q", backend)
	}
}

// parse decodes a stored decimal value.
func parse(data []byte) (int, error) {
	s := strings.TrimSpace(string(data))
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, s)
	}
	return n, nil
}

// FileStore keeps the score as decimal text in a single file.
type FileStore struct {
	path string
}

// NewFileStore returns a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns the stored score. A missing file is 0 with no error; an
// unparsable one is 0 with ErrCorrupt.
func (s *FileStore) Load() (int, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot read %s: %w", s.path, err)
	}
	return parse(data)
}

// Save overwrites the file with score.
func (s *FileStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("highscore: negative score %d", score)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(s.path, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: cannot write %s: %w", s.path, err)
	}
	return nil
}

// Close is a no-op for files.
func (s *FileStore) Close() error { return nil }

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// MemoryStore keeps the score in memory. It is used for headless runs.
type MemoryStore struct {
	score int
}

// Load returns the kept score.
func (s *MemoryStore) Load() (int, error) { return s.score, nil }

// Save replaces the kept score.
func (s *MemoryStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("highscore: negative score %d", score)
	}
	s.score = score
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
