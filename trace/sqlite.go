package trace

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

const eventsSchema = `
CREATE TABLE IF NOT EXISTS events (
	cycle INTEGER NOT NULL,
	kind  TEXT    NOT NULL,
	port  INTEGER NOT NULL,
	input INTEGER NOT NULL,
	data  INTEGER NOT NULL,
	dest  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS events_cycle ON events (cycle);
`

// A DB recorder appends events to a SQLite database. All inserts run in
// a single transaction committed by Close, so a recorded run lands
// atomically.
//
type DB struct {
	db  *sql.DB
	tx  *sql.Tx
	ins *sql.Stmt
}

// OpenDB opens (creating if needed) the database at path and prepares
// it for recording.
//
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "trace: open database")
	}
	if _, err := db.Exec(eventsSchema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "trace: create schema")
	}
	tx, err := db.Begin()
	if err != nil {
		db.Close()
		return nil, errors.Wrap(err, "trace: begin transaction")
	}
	ins, err := tx.Prepare("INSERT INTO events (cycle, kind, port, input, data, dest) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		db.Close()
		return nil, errors.Wrap(err, "trace: prepare insert")
	}
	return &DB{db: db, tx: tx, ins: ins}, nil
}

// Record implements Recorder.
func (d *DB) Record(ev Event) error {
	_, err := d.ins.Exec(int64(ev.Cycle), ev.Kind, ev.Port, ev.Input, int64(ev.Data), ev.Dest)
	return errors.Wrap(err, "trace: insert event")
}

// Close commits the recorded events and closes the database.
func (d *DB) Close() error {
	err := d.tx.Commit()
	if cerr := d.db.Close(); err == nil {
		err = cerr
	}
	return errors.Wrap(err, "trace: close database")
}
