package surrealstore

import (
	"fmt"
	"math"
	"time"
)

// ID is a session identifier. Values are minted by the counter row
// starting at 1 and never reused.
type ID uint64

// Int64 converts the identifier to the signed 64-bit row key used by
// the database. Identifiers above math.MaxInt64 don't fit and fail
// with ErrIDOutOfRange.
func (id ID) Int64() (int64, error) {
	if id > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d", ErrIDOutOfRange, uint64(id))
	}
	return int64(id), nil
}

// Record is a session's full state as seen by the caller: identifier,
// key-value payload and absolute expiry. The store never interprets
// Values; it only carries them through the codec.
type Record struct {
	ID        ID             `msgpack:"id"`
	Values    map[string]any `msgpack:"values"`
	ExpiresAt time.Time      `msgpack:"expires_at"`
}
