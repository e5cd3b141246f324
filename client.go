package surrealstore

// StoredRecord is the database-facing shape of a session row: the
// serialized record in transport-safe form plus the native expiry
// timestamp. Instances are derived per call and discarded afterwards.
type StoredRecord struct {
	Record     string `json:"record"`
	ExpiryDate string `json:"expiry_date"`
}

// Row is the uniform projection every store query returns its rows in.
// Created rows carry ID, the integer record key; selected rows carry
// the transport-safe blob and the native expiry timestamp.
type Row struct {
	ID         int64  `cbor:"id" json:"id"`
	Record     string `cbor:"record" json:"record"`
	ExpiryDate string `cbor:"expiry_date" json:"expiry_date"`
}

// QueryResult is the outcome of one statement in a query request.
// Status is "OK" on success; otherwise Detail carries the error text
// reported by the engine.
type QueryResult struct {
	Status string
	Detail string
	Rows   []Row
}

// statusOK is the per-statement success status reported by SurrealDB.
const statusOK = "OK"

// Client is the minimal surface of the database connection the store
// needs. SurrealClient implements it against a real SurrealDB; tests
// substitute in-memory implementations.
type Client interface {
	// Query executes sql with the given variable bindings and returns
	// one result per statement.
	Query(sql string, vars map[string]any) ([]QueryResult, error)

	// Update unconditionally replaces the content of the row keyed by id
	// in table. It reports whether a row existed to be updated.
	Update(table string, id int64, content StoredRecord) (bool, error)

	// Delete removes the row keyed by id in table. Deleting an absent
	// row is not an error.
	Delete(table string, id int64) error
}
