package surrealstore

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec is an interface for serializing and deserializing session
// records. The package default uses MessagePack, a compact
// self-describing binary format.
type Codec interface {
	// Encode serializes the full record, identifier and expiry included,
	// into a single binary blob.
	Encode(r *Record) ([]byte, error)

	// Decode deserializes a blob back into a record and overwrites its
	// identifier with id. The identifier carried inside the blob is
	// never trusted; the one from the query result is authoritative.
	Decode(data []byte, id ID) (*Record, error)
}

// Ensure msgpackCodec implements Codec.
var _ Codec = msgpackCodec{}

type msgpackCodec struct{}

func (msgpackCodec) Encode(r *Record) ([]byte, error) {
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}
	return data, nil
}

func (msgpackCodec) Decode(data []byte, id ID) (*Record, error) {
	var r Record
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	r.ID = id
	return &r, nil
}

// expiryLayout is RFC 3339 with exactly six fractional digits, the
// precision of SurrealDB's datetime type.
const expiryLayout = "2006-01-02T15:04:05.000000Z07:00"

// expiryTimestamp derives the database-native expiry timestamp from the
// record's expiry: format to a timezone-explicit string and parse it
// back, verifying the instant survived. Anything that doesn't
// round-trip within microsecond precision is an encode error, never a
// silent truncation.
func expiryTimestamp(t time.Time) (string, error) {
	s := t.UTC().Format(expiryLayout)
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return "", fmt.Errorf("%w: expiry %v is not representable as a datetime: %v", ErrEncode, t, err)
	}
	if !parsed.Equal(t.Truncate(time.Microsecond)) {
		return "", fmt.Errorf("%w: expiry %v did not round-trip, got %v", ErrEncode, t, parsed)
	}
	return s, nil
}
