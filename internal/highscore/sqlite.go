package highscore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// SQLiteStore keeps the score in a single-row table.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens a database at dbPath.
// It creates the parent directories if needed and runs migrations.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("highscore: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("highscore: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("highscore: cannot connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("highscore: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the schema if it doesn't exist.
func (s *SQLiteStore) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL CHECK (score >= 0),
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load returns the stored score, or 0 if none was saved yet.
func (s *SQLiteStore) Load() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM high_score WHERE id = 1").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("highscore: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Save replaces the stored score.
func (s *SQLiteStore) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("highscore: negative score %d", score)
	}
	_, err := s.db.Exec(
		`INSERT INTO high_score (id, score) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP`,
		score,
	)
	if err != nil {
		return fmt.Errorf("highscore: cannot save score: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
