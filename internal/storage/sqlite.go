// Package storage provides SQLite-based persistence for rated encounters.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/encounter-tracker/internal/core"
	"github.com/vovakirdan/encounter-tracker/internal/encounter"
)

// Store manages the SQLite database connection for rating history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Rating is one saved encounter rating.
type Rating struct {
	ID          string
	Encounter   string
	SystemID    string
	DisplayName string
	StyleClass  string
	TotalValue  float64
	ValueLabel  string
	Party       core.PlayerLevels
	CreatedAt   time.Time
}

// RatingFromReport extracts the persisted fields of a report.
func RatingFromReport(r encounter.Report) Rating {
	return Rating{
		Encounter:   r.Encounter,
		SystemID:    r.SystemID,
		DisplayName: r.Rating.DisplayName,
		StyleClass:  r.Rating.StyleClass,
		TotalValue:  r.Rating.TotalValue,
		ValueLabel:  r.Rating.ValueLabel,
		Party:       r.Party,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS ratings (
			id TEXT PRIMARY KEY,
			encounter TEXT NOT NULL,
			system_id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			style_class TEXT NOT NULL,
			total_value REAL NOT NULL DEFAULT 0,
			value_label TEXT NOT NULL,
			party TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_ratings_system_id ON ratings(system_id);
		CREATE INDEX IF NOT EXISTS idx_ratings_created ON ratings(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRating records a rating and returns its generated ID.
func (s *Store) SaveRating(r Rating) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO ratings
		 (id, encounter, system_id, display_name, style_class, total_value, value_label, party, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		r.Encounter,
		r.SystemID,
		r.DisplayName,
		r.StyleClass,
		r.TotalValue,
		r.ValueLabel,
		encodeParty(r.Party),
		s.now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save rating: %w", err)
	}
	return id, nil
}

// RecentRatings retrieves the most recent ratings across all systems.
func (s *Store) RecentRatings(limit int) ([]Rating, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(
		`SELECT id, encounter, system_id, display_name, style_class, total_value, value_label, party, created_at
		 FROM ratings
		 ORDER BY created_at DESC
		 LIMIT ?`,
		limit,
	)
}

// RatingsForSystem retrieves the most recent ratings made with one system.
func (s *Store) RatingsForSystem(systemID string, limit int) ([]Rating, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.query(
		`SELECT id, encounter, system_id, display_name, style_class, total_value, value_label, party, created_at
		 FROM ratings
		 WHERE system_id = ?
		 ORDER BY created_at DESC
		 LIMIT ?`,
		systemID, limit,
	)
}

// RatingByID retrieves one rating. Returns nil when no rating has the ID.
func (s *Store) RatingByID(id string) (*Rating, error) {
	ratings, err := s.query(
		`SELECT id, encounter, system_id, display_name, style_class, total_value, value_label, party, created_at
		 FROM ratings
		 WHERE id = ?`,
		id,
	)
	if err != nil {
		return nil, err
	}
	if len(ratings) == 0 {
		return nil, nil
	}
	return &ratings[0], nil
}

// ClearRatings deletes the ratings of one system, or all ratings when
// systemID is empty.
func (s *Store) ClearRatings(systemID string) error {
	var err error
	if systemID == "" {
		_, err = s.db.Exec("DELETE FROM ratings")
	} else {
		_, err = s.db.Exec("DELETE FROM ratings WHERE system_id = ?", systemID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear ratings: %w", err)
	}
	return nil
}

func (s *Store) query(q string, args ...any) ([]Rating, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query ratings: %w", err)
	}
	defer rows.Close()

	var ratings []Rating
	for rows.Next() {
		var r Rating
		var party string
		var created int64
		if err := rows.Scan(
			&r.ID,
			&r.Encounter,
			&r.SystemID,
			&r.DisplayName,
			&r.StyleClass,
			&r.TotalValue,
			&r.ValueLabel,
			&party,
			&created,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Party = decodeParty(party)
		r.CreatedAt = time.Unix(0, created)
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return ratings, nil
}

// encodeParty stores levels as a comma-separated list.
func encodeParty(levels core.PlayerLevels) string {
	parts := make([]string, len(levels))
	for i, lv := range levels {
		parts[i] = strconv.Itoa(lv)
	}
	return strings.Join(parts, ",")
}

func decodeParty(s string) core.PlayerLevels {
	if s == "" {
		return nil
	}
	var levels core.PlayerLevels
	for _, part := range strings.Split(s, ",") {
		if lv, err := strconv.Atoi(part); err == nil {
			levels = append(levels, lv)
		}
	}
	return levels
}
