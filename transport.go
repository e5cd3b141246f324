package surrealstore

import (
	"encoding/base64"
	"fmt"
)

// The record blob travels inside a textual SurrealQL query, so it is
// carried as padding-free standard base64. The server decodes it back
// to raw bytes with encoding::base64::decode at write time and encodes
// it again on the way out.

func toTransportSafe(b []byte) string {
	return base64.RawStdEncoding.EncodeToString(b)
}

func fromTransportSafe(s string) ([]byte, error) {
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: transport encoding: %v", ErrDecode, err)
	}
	return b, nil
}
