package surrealstore

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/fxamacker/cbor/v2"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// Config holds the connection settings for Connect. The password is
// only ever taken from the environment, never from code.
type Config struct {
	URL       string `env:"SURREALDB_URL" envDefault:"ws://localhost:8000/rpc"`
	Username  string `env:"SURREALDB_USER" envDefault:"root"`
	Password  string `env:"DB_PASSWORD"`
	Namespace string `env:"SURREALDB_NAMESPACE" envDefault:"default"`
	Database  string `env:"SURREALDB_DATABASE" envDefault:"default"`
}

// ConfigFromEnv reads the connection settings from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SurrealClient adapts a SurrealDB connection to the Client interface.
type SurrealClient struct {
	db *surrealdb.DB
}

// Ensure SurrealClient implements Client.
var _ Client = (*SurrealClient)(nil)

// NewClient wraps an already established SurrealDB connection. The
// caller is responsible for having signed in and selected a namespace
// and database.
func NewClient(db *surrealdb.DB) *SurrealClient {
	return &SurrealClient{db: db}
}

// Connect dials SurrealDB, signs in as a root user and selects the
// configured namespace and database.
func Connect(cfg Config) (*SurrealClient, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %v", ErrBackend, cfg.URL, err)
	}
	if _, err := db.SignIn(&surrealdb.Auth{Username: cfg.Username, Password: cfg.Password}); err != nil {
		return nil, fmt.Errorf("%w: signin as %s: %v", ErrBackend, cfg.Username, err)
	}
	if err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("%w: use %s/%s: %v", ErrBackend, cfg.Namespace, cfg.Database, err)
	}
	return &SurrealClient{db: db}, nil
}

// Close terminates the underlying connection.
func (c *SurrealClient) Close() {
	c.db.Close()
}

// Query executes sql with vars and unwraps the per-statement results.
// Results travel as raw CBOR so that failed statements, whose result is
// an error string rather than rows, don't break decoding.
func (c *SurrealClient) Query(sql string, vars map[string]any) ([]QueryResult, error) {
	raw, err := surrealdb.Query[cbor.RawMessage](c.db, sql, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: empty response", ErrBackend)
	}
	return toQueryResults(*raw)
}

// toQueryResults converts the SDK's statement results into the Client
// contract's shape. Row decoding only happens for successful
// statements; the store's queries project their rows into plain
// strings and integers, so the default CBOR decoder suffices.
func toQueryResults(raw []surrealdb.QueryResult[cbor.RawMessage]) ([]QueryResult, error) {
	results := make([]QueryResult, 0, len(raw))
	for _, res := range raw {
		out := QueryResult{Status: string(res.Status)}
		if out.Status != statusOK {
			if err := cbor.Unmarshal(res.Result, &out.Detail); err != nil {
				out.Detail = "statement failed"
			}
			results = append(results, out)
			continue
		}
		if len(res.Result) > 0 {
			if err := cbor.Unmarshal(res.Result, &out.Rows); err != nil {
				return nil, fmt.Errorf("%w: statement rows: %v", ErrDecode, err)
			}
		}
		results = append(results, out)
	}
	return results, nil
}

// updateQuery replaces a row's content in full. The blob travels in
// transport-safe form and is decoded back to raw bytes server-side,
// because the record field is typed bytes and raw bytes can't be
// carried as a plain string parameter. The updated row projects to its
// integer key so the result decodes like every other statement.
const updateQuery = `UPDATE type::thing($tb, $id) CONTENT {
	expiry_date: <datetime> $expiry_date,
	record: encoding::base64::decode($record)
} RETURN record::id(id) AS id;`

// Update replaces the row keyed by id with content and reports whether
// a row existed. UPDATE never creates rows, so a missing id yields an
// empty result set.
func (c *SurrealClient) Update(table string, id int64, content StoredRecord) (bool, error) {
	results, err := c.Query(updateQuery, map[string]any{
		"tb":          table,
		"id":          id,
		"expiry_date": content.ExpiryDate,
		"record":      content.Record,
	})
	if err != nil {
		return false, err
	}
	if len(results) != 1 {
		return false, fmt.Errorf("%w: expected 1 result, got %d", ErrBackend, len(results))
	}
	if results[0].Status != statusOK {
		return false, fmt.Errorf("%w: %s", ErrBackend, results[0].Detail)
	}
	return len(results[0].Rows) > 0, nil
}

// Delete removes the row keyed by id. SurrealDB's delete is a no-op on
// absent rows, which is exactly the idempotence the store wants.
func (c *SurrealClient) Delete(table string, id int64) error {
	if _, err := surrealdb.Delete[struct{}](c.db, models.NewRecordID(table, id)); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
