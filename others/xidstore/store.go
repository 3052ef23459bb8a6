package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Lzww0608/gxid"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

// Event is a row keyed by a gxid identifier. The id column holds the 20
// character text form, so ORDER BY id is creation order.
type Event struct {
	ID      gxid.ID
	Name    string
	Payload string
}

// Store keeps events in MySQL or SQLite
type Store struct {
	db     *sql.DB
	driver string
}

// ErrNotFound is returned when no event has the requested id
var ErrNotFound = errors.New("xidstore: event not found")

var schemas = map[string]string{
	"mysql": `CREATE TABLE IF NOT EXISTS events (
		id CHAR(20) CHARACTER SET ascii COLLATE ascii_bin NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		payload TEXT NOT NULL
	)`,
	"sqlite3": `CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		name TEXT NOT NULL,
		payload TEXT NOT NULL
	)`,
}

// Open connects to the database. driver is "mysql" or "sqlite3".
func Open(driver, dsn string) (*Store, error) {
	if _, ok := schemas[driver]; !ok {
		return nil, fmt.Errorf("xidstore: unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	if driver == "sqlite3" {
		// an in-memory database lives as long as its single connection
		db.SetMaxOpenConns(1)
	}

	return &Store{db: db, driver: driver}, nil
}

// Close closes the database
func (s *Store) Close() error {
	return s.db.Close()
}

// Init creates the events table if needed
func (s *Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, schemas[s.driver])
	return err
}

// Insert stores e. The id is written through gxid.ID's driver.Valuer.
func (s *Store) Insert(ctx context.Context, e Event) error {
	if e.ID.IsNil() {
		return errors.New("xidstore: event without id")
	}
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO events (id, name, payload) VALUES (?, ?, ?)", e.ID, e.Name, e.Payload)
	return err
}

// Get returns the event with the given id
func (s *Store) Get(ctx context.Context, id gxid.ID) (Event, error) {
	var e Event
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, payload FROM events WHERE id = ?", id).Scan(&e.ID, &e.Name, &e.Payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Event{}, ErrNotFound
	}
	return e, err
}

// Since returns up to limit events created at or after t, oldest first
func (s *Store) Since(ctx context.Context, t time.Time, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, payload FROM events WHERE id >= ? ORDER BY id LIMIT ?", gxid.TimeBound(t), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Payload); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
