package phonebook

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/theoremus-urban-solutions/fleet-tracker/internal"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps persons in a SQLite database. The name column is
// UNIQUE so duplicates are rejected by the database itself.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens path (":memory:" is accepted) and migrates the schema.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared across calls.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	// m is not closed: closing it would close s.db.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]Person, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, number FROM persons ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	persons := []Person{}
	for rows.Next() {
		var p Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Number); err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, rows.Err()
}

func (s *SQLiteStore) Add(ctx context.Context, p Person) (Person, error) {
	p, err := normalize(p)
	if err != nil {
		return Person{}, err
	}
	p.ID = uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO persons (id, name, number) VALUES (?, ?, ?)`, p.ID, p.Name, p.Number)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Person{}, ErrDuplicateEntry
		}
		return Person{}, err
	}
	return p, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	internal.Logf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool {
	return false
}
