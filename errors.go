package surrealstore

import (
	"errors"
	"fmt"
)

var (
	// ErrEncode reports that a record could not be serialized, or that
	// its expiry could not be converted to the database timestamp type.
	ErrEncode = errors.New("surrealstore: encode failed")

	// ErrDecode reports that stored bytes could not be deserialized into
	// a record, or that a query result did not match the expected shape.
	ErrDecode = errors.New("surrealstore: decode failed")

	// ErrBackend reports a failure from the underlying SurrealDB client:
	// connectivity, transaction conflicts, schema violations.
	ErrBackend = errors.New("surrealstore: backend error")

	// ErrIDOutOfRange reports an identifier outside the signed 64-bit
	// range of the database row key. The session ID space is exhausted
	// or the caller supplied a foreign identifier.
	ErrIDOutOfRange = errors.New("surrealstore: session id outside signed 64-bit range")
)

var (
	// ErrNoIDReturned reports that the create transaction committed no
	// new row and therefore minted no identifier.
	ErrNoIDReturned = fmt.Errorf("%w: record was not created so no id was returned", ErrBackend)

	// ErrNotUpdated reports that a save targeted an identifier with no
	// stored row.
	ErrNotUpdated = fmt.Errorf("%w: no record was updated, probably id not found", ErrBackend)
)
