package surrealstore

import (
	"fmt"
	"log"
	"regexp"
	"time"
)

// createQuery mints an identifier and stores the record as one
// all-or-nothing transaction: statement 0 upserts the counter row,
// statement 1 creates the session row keyed by the post-increment
// counter value. No two concurrent transactions observe the same
// counter value. The counter statement returns nothing and the created
// row projects to its integer key, so both results decode uniformly.
const createQuery = `
BEGIN TRANSACTION;
UPSERT type::thing($counter_tb, "counter") SET value += 1 RETURN NONE;
CREATE type::thing($tb, type::thing($counter_tb, "counter").value) SET
	expiry_date = <datetime> $expiry_date,
	record = encoding::base64::decode($record)
RETURN record::id(id) AS id;
COMMIT TRANSACTION;`

// loadQuery filters expired rows server-side: a row whose expiry has
// passed is reported as absent even while physically present. The blob
// comes back in transport-safe form.
const loadQuery = `
SELECT encoding::base64::encode(record) AS record, <string> expiry_date AS expiry_date
FROM type::thing($tb, $id)
WHERE expiry_date > time::now();`

const deleteExpiredQuery = `DELETE type::table($tb) WHERE expiry_date <= time::now();`

// schemaQuery defines both tables idempotently. Table names can't be
// passed as bindings to DEFINE statements, hence the interpolation;
// New validates them first.
const schemaQuery = `
BEGIN TRANSACTION;
DEFINE TABLE IF NOT EXISTS %[1]s SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS id ON TABLE %[1]s TYPE int;
DEFINE FIELD IF NOT EXISTS expiry_date ON TABLE %[1]s TYPE datetime;
DEFINE FIELD IF NOT EXISTS record ON TABLE %[1]s TYPE bytes;
DEFINE TABLE IF NOT EXISTS %[2]s SCHEMAFULL;
DEFINE FIELD IF NOT EXISTS value ON TABLE %[2]s TYPE int;
COMMIT TRANSACTION;`

// Store persists session records in SurrealDB. It holds no state
// beyond the connection handle and is safe for concurrent use.
type Store struct {
	db            Client
	codec         Codec
	sessionsTable string
	counterTable  string
}

type config func(*Store)

// WithSessionsTable sets the table holding session rows. (default "sessions".)
func WithSessionsTable(name string) config {
	return config(func(s *Store) {
		s.sessionsTable = name
	})
}

// WithCounterTable sets the table holding the counter row. (default "sessions_counter".)
func WithCounterTable(name string) config {
	return config(func(s *Store) {
		s.counterTable = name
	})
}

// WithCodec sets the record serialization codec. (default MessagePack.)
func WithCodec(c Codec) config {
	return config(func(s *Store) {
		s.codec = c
	})
}

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// New creates a Store on top of an established client connection.
func New(db Client, configs ...config) (*Store, error) {
	s := &Store{
		db:            db,
		codec:         msgpackCodec{},
		sessionsTable: "sessions",
		counterTable:  "sessions_counter",
	}
	for _, c := range configs {
		c(s)
	}

	if !tableName.MatchString(s.sessionsTable) {
		return nil, fmt.Errorf("invalid sessions table name %q", s.sessionsTable)
	}
	if !tableName.MatchString(s.counterTable) {
		return nil, fmt.Errorf("invalid counter table name %q", s.counterTable)
	}
	return s, nil
}

// InitSchema idempotently defines the session table with its typed
// fields and ensures the counter table exists. Safe to call on every
// process start.
func (s *Store) InitSchema() error {
	results, err := s.db.Query(fmt.Sprintf(schemaQuery, s.sessionsTable, s.counterTable), nil)
	if err != nil {
		return err
	}
	return checkStatus(results)
}

// Create stores a new session and assigns it the next identifier from
// the counter. On success the record's ID field is updated in place;
// on any failure the record is left untouched and no row remains
// partially created.
func (s *Store) Create(r *Record) error {
	stored, err := s.encode(r)
	if err != nil {
		return err
	}
	results, err := s.db.Query(createQuery, map[string]any{
		"tb":          s.sessionsTable,
		"counter_tb":  s.counterTable,
		"expiry_date": stored.ExpiryDate,
		"record":      stored.Record,
	})
	if err != nil {
		return err
	}
	id, err := createdID(results)
	if err != nil {
		return err
	}
	r.ID = id
	return nil
}

// Save overwrites the stored row for r.ID. Saving an identifier that
// has no stored row fails with ErrNotUpdated. Expired rows that are
// still physically present are overwritten like live ones.
func (s *Store) Save(r *Record) error {
	stored, err := s.encode(r)
	if err != nil {
		return err
	}
	key, err := r.ID.Int64()
	if err != nil {
		return err
	}
	found, err := s.db.Update(s.sessionsTable, key, stored)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotUpdated
	}
	return nil
}

// Load returns the live session stored under id, or nil when there is
// none. The identifier inside the stored blob is ignored; id is
// reattached to the decoded record.
func (s *Store) Load(id ID) (*Record, error) {
	key, err := id.Int64()
	if err != nil {
		return nil, err
	}
	results, err := s.db.Query(loadQuery, map[string]any{
		"tb": s.sessionsTable,
		"id": key,
	})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("%w: expected 1 result, got %d", ErrBackend, len(results))
	}
	if results[0].Status != statusOK {
		return nil, fmt.Errorf("%w: %s", ErrBackend, results[0].Detail)
	}

	rows := results[0].Rows
	if len(rows) == 0 {
		return nil, nil
	}
	blob, err := fromTransportSafe(rows[0].Record)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(blob, id)
}

// Delete removes the session stored under id. Deleting an identifier
// with no stored row is not an error.
func (s *Store) Delete(id ID) error {
	key, err := id.Int64()
	if err != nil {
		return err
	}
	return s.db.Delete(s.sessionsTable, key)
}

// DeleteExpired removes every row whose expiry is at or before the
// current server time. Load already filters expired rows, so this is
// storage reclamation, not a correctness requirement.
func (s *Store) DeleteExpired() error {
	results, err := s.db.Query(deleteExpiredQuery, map[string]any{"tb": s.sessionsTable})
	if err != nil {
		return err
	}
	return checkStatus(results)
}

// PeriodicCleanUp runs a loop that periodically deletes expired sessions.
// The cleanup runs every interval duration until a value is received on
// the stop channel, at which point the loop returns.
//
// Example usage:
//
//	stop := make(chan struct{})
//	go store.PeriodicCleanUp(time.Minute, stop)
//	...
//	close(stop) // stop the cleanup
func (s *Store) PeriodicCleanUp(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.DeleteExpired(); err != nil {
				log.Print(err)
			}
		case <-stop:
			return
		}
	}
}

// encode derives the database-facing row from a record: the MessagePack
// blob in transport-safe form plus the native expiry timestamp.
func (s *Store) encode(r *Record) (StoredRecord, error) {
	blob, err := s.codec.Encode(r)
	if err != nil {
		return StoredRecord{}, err
	}
	expiry, err := expiryTimestamp(r.ExpiresAt)
	if err != nil {
		return StoredRecord{}, err
	}
	return StoredRecord{Record: toTransportSafe(blob), ExpiryDate: expiry}, nil
}

// createdID extracts the new row key from the create transaction
// results. The row is keyed by the counter value, so the CREATE
// statement's projected key carries the newly minted identifier.
func createdID(results []QueryResult) (ID, error) {
	if len(results) != 2 {
		return 0, fmt.Errorf("%w: expected 2 results, got %d", ErrBackend, len(results))
	}
	if err := checkStatus(results); err != nil {
		return 0, err
	}

	rows := results[1].Rows
	if len(rows) == 0 {
		return 0, ErrNoIDReturned
	}
	key := rows[0].ID
	if key < 0 {
		return 0, fmt.Errorf("%w: counter produced %d", ErrIDOutOfRange, key)
	}
	return ID(key), nil
}

func checkStatus(results []QueryResult) error {
	for _, res := range results {
		if res.Status != statusOK {
			return fmt.Errorf("%w: %s", ErrBackend, res.Detail)
		}
	}
	return nil
}
