// Package store persists the district's businesses in SQLite and implements
// the host actions a map session invokes: rent, add, update and favorite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/devcompany145/Business-developers-ai/pkg/district"
	"github.com/devcompany145/Business-developers-ai/pkg/validation"
)

var (
	// ErrNotFound is returned when a business id is not stored.
	ErrNotFound = fmt.Errorf("store: %w", district.ErrNotFound)
	// ErrOccupied is returned when renting a building that already has a tenant.
	ErrOccupied = errors.New("store: building already occupied")
	// ErrDuplicate is returned when adding a business whose id exists.
	ErrDuplicate = errors.New("store: duplicate business id")
)

// Store wraps a sql.DB holding one district.
type Store struct {
	db   *sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return newStore(db, path)
}

// OpenMemory creates an in-memory database (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)
	return newStore(db, ":memory:")
}

func newStore(db *sql.DB, path string) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error { return s.db.Close() }

const schema = `
CREATE TABLE IF NOT EXISTS district (
    singleton INTEGER PRIMARY KEY CHECK(singleton = 1),
    version TEXT NOT NULL DEFAULT '',
    name TEXT NOT NULL DEFAULT '',
    cols INTEGER NOT NULL,
    rows INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS businesses (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    logo TEXT NOT NULL DEFAULT '',
    x INTEGER NOT NULL,
    y INTEGER NOT NULL,
    occupied INTEGER NOT NULL DEFAULT 0,
    visitors INTEGER NOT NULL DEFAULT 0 CHECK(visitors >= 0),
    favorite INTEGER NOT NULL DEFAULT 0,
    genome TEXT,
    updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_businesses_cell ON businesses(x, y);
`

const businessColumns = `id, name, category, description, logo, x, y, occupied, visitors, favorite, genome`

// Seed replaces the stored district with s.
func (s *Store) Seed(ctx context.Context, snap *district.Snapshot) error {
	if snap == nil {
		return errors.New("store: nil snapshot")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM businesses`); err != nil {
		return fmt.Errorf("clearing businesses: %w", err)
	}
	_, err = tx.ExecContext(ctx, `INSERT INTO district (singleton, version, name, cols, rows) VALUES (1, ?, ?, ?, ?)
        ON CONFLICT(singleton) DO UPDATE SET version = excluded.version, name = excluded.name,
        cols = excluded.cols, rows = excluded.rows`,
		snap.Version, snap.Name, snap.Grid.Cols, snap.Grid.Rows)
	if err != nil {
		return fmt.Errorf("writing district: %w", err)
	}
	for i := range snap.Businesses {
		if err := insert(ctx, tx, &snap.Businesses[i]); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Empty reports whether no district has been seeded.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM district`).Scan(&n); err != nil {
		return false, fmt.Errorf("counting district rows: %w", err)
	}
	return n == 0, nil
}

// Snapshot reads the whole district. An unseeded store yields the default
// grid and no businesses.
func (s *Store) Snapshot(ctx context.Context) (*district.Snapshot, error) {
	snap := &district.Snapshot{Grid: district.DefaultGrid}
	err := s.db.QueryRowContext(ctx, `SELECT version, name, cols, rows FROM district WHERE singleton = 1`).
		Scan(&snap.Version, &snap.Name, &snap.Grid.Cols, &snap.Grid.Rows)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("reading district: %w", err)
	}
	bs, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	snap.Businesses = bs
	return snap, nil
}

// List returns every business in insertion order.
func (s *Store) List(ctx context.Context) ([]district.Business, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("listing businesses: %w", err)
	}
	defer rows.Close()

	var out []district.Business
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Get returns one business.
func (s *Store) Get(ctx context.Context, id string) (district.Business, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = ?`, id)
	b, err := scanBusiness(row)
	if errors.Is(err, sql.ErrNoRows) {
		return district.Business{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b, err
}

// Rent marks a vacant building as occupied. The vacancy check and the
// update are one statement, so of several concurrent rents only one wins.
func (s *Store) Rent(ctx context.Context, id string) (district.Business, error) {
	row := s.db.QueryRowContext(ctx, `UPDATE businesses SET occupied = 1, updated_at = datetime('now')
        WHERE id = ? AND occupied = 0 RETURNING `+businessColumns, id)
	b, err := scanBusiness(row)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return district.Business{}, fmt.Errorf("renting %s: %w", id, err)
	}

	// Nothing changed: the building is missing or already taken.
	b, err = s.Get(ctx, id)
	if err != nil {
		return district.Business{}, err
	}
	return b, fmt.Errorf("%w: %s", ErrOccupied, id)
}

// Add stores a new business. An empty id is assigned a UUID.
func (s *Store) Add(ctx context.Context, b district.Business) (district.Business, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := validation.ValidateBusiness(&b); err != nil {
		return district.Business{}, err
	}
	if err := insert(ctx, s.db, &b); err != nil {
		if isUniqueViolation(err) {
			return district.Business{}, fmt.Errorf("%w: %s", ErrDuplicate, b.ID)
		}
		return district.Business{}, err
	}
	return b, nil
}

// Update overwrites a stored business.
func (s *Store) Update(ctx context.Context, b district.Business) (district.Business, error) {
	if err := validation.ValidateBusiness(&b); err != nil {
		return district.Business{}, err
	}
	genome, err := encodeGenome(b.Genome)
	if err != nil {
		return district.Business{}, err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE businesses SET name = ?, category = ?, description = ?, logo = ?,
        x = ?, y = ?, occupied = ?, visitors = ?, favorite = ?, genome = ?, updated_at = datetime('now')
        WHERE id = ?`,
		b.Name, b.Category, b.Description, b.Logo, b.GridPosition.X, b.GridPosition.Y,
		b.IsOccupied, b.ActiveVisitors, b.Favorite, genome, b.ID)
	if err != nil {
		return district.Business{}, fmt.Errorf("updating %s: %w", b.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return district.Business{}, fmt.Errorf("%w: %s", ErrNotFound, b.ID)
	}
	return b, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	var fav bool
	err := s.db.QueryRowContext(ctx,
		`UPDATE businesses SET favorite = 1 - favorite, updated_at = datetime('now') WHERE id = ? RETURNING favorite`, id).
		Scan(&fav)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return false, fmt.Errorf("toggling favorite %s: %w", id, err)
	}
	return fav, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, b *district.Business) error {
	genome, err := encodeGenome(b.Genome)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx, `INSERT INTO businesses (`+businessColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Category, b.Description, b.Logo, b.GridPosition.X, b.GridPosition.Y,
		b.IsOccupied, b.ActiveVisitors, b.Favorite, genome)
	if err != nil {
		return fmt.Errorf("inserting %s: %w", b.ID, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBusiness(sc scanner) (district.Business, error) {
	var (
		b      district.Business
		genome sql.NullString
	)
	err := sc.Scan(&b.ID, &b.Name, &b.Category, &b.Description, &b.Logo,
		&b.GridPosition.X, &b.GridPosition.Y, &b.IsOccupied, &b.ActiveVisitors, &b.Favorite, &genome)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return b, err
		}
		return b, fmt.Errorf("scanning business: %w", err)
	}
	if genome.Valid && genome.String != "" {
		b.Genome = &district.GenomeProfile{}
		if err := json.Unmarshal([]byte(genome.String), b.Genome); err != nil {
			return b, fmt.Errorf("decoding genome of %s: %w", b.ID, err)
		}
	}
	return b, nil
}

func encodeGenome(g *district.GenomeProfile) (sql.NullString, error) {
	if g == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(g)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encoding genome: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
