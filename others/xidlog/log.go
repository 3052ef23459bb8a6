package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Lzww0608/gxid"
	"github.com/cockroachdb/pebble"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("xidlog: record not found")

// Record is one log entry
type Record struct {
	ID      gxid.ID
	Payload []byte
}

// Log is an append-only event log in Pebble. Keys are the raw 12 byte ids,
// so Pebble's byte order is creation order and time ranges are key ranges.
type Log struct {
	db        *pebble.DB
	gen       *gxid.Generator
	writeOpts *pebble.WriteOptions
}

// Options configures Open
type Options struct {
	// DataDir is the path to the Pebble database directory.
	DataDir string
	// Sync forces a WAL fsync on every append.
	Sync bool
	// PebbleOptions allows advanced tuning of Pebble. If nil, defaults are used.
	PebbleOptions *pebble.Options
}

// Open creates or opens a log. Appended records get ids from gen.
func Open(opts Options, gen *gxid.Generator) (*Log, error) {
	if opts.DataDir == "" {
		return nil, errors.New("xidlog: Options.DataDir is required")
	}
	po := opts.PebbleOptions
	if po == nil {
		po = &pebble.Options{}
	}
	db, err := pebble.Open(opts.DataDir, po)
	if err != nil {
		return nil, err
	}

	wo := pebble.NoSync
	if opts.Sync {
		wo = pebble.Sync
	}
	return &Log{db: db, gen: gen, writeOpts: wo}, nil
}

// Close closes the Pebble database
func (l *Log) Close() error {
	return l.db.Close()
}

// Append stores payload under a new id and returns the id
func (l *Log) Append(payload []byte) (gxid.ID, error) {
	id, err := l.gen.New()
	if err != nil {
		return gxid.Nil, err
	}
	if err := l.db.Set(id.Bytes(), payload, l.writeOpts); err != nil {
		return gxid.Nil, fmt.Errorf("xidlog: append %s: %w", id, err)
	}
	return id, nil
}

// Get copies the payload stored under id
func (l *Log) Get(id gxid.ID) ([]byte, error) {
	val, closer, err := l.db.Get(id.Bytes())
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	defer closer.Close()
	return append([]byte(nil), val...), nil
}

// Range returns the records created in [from, to), oldest first, at most limit
// of them. A limit of zero or less means no limit.
func (l *Log) Range(from, to time.Time, limit int) ([]Record, error) {
	lo, hi := gxid.TimeBound(from), gxid.TimeBound(to)
	iter, err := l.db.NewIter(&pebble.IterOptions{LowerBound: lo.Bytes(), UpperBound: hi.Bytes()})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Record
	for valid := iter.First(); valid; valid = iter.Next() {
		id, err := gxid.FromBytes(iter.Key())
		if err != nil {
			return nil, fmt.Errorf("xidlog: corrupt key %x: %w", iter.Key(), err)
		}
		out = append(out, Record{ID: id, Payload: append([]byte(nil), iter.Value()...)})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, iter.Error()
}
