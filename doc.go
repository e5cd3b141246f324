// Package surrealstore persists session-like records in SurrealDB.
//
// Each record is serialized to a compact MessagePack blob and stored as
// a bytes field next to its expiry timestamp. New records are keyed by
// a counter row that is incremented inside the same SurrealDB
// transaction that creates them, so concurrent creates always receive
// distinct, monotonically increasing integer identifiers.
//
// Usage:
//
//	package main
//
//	import (
//	    "log"
//	    "time"
//
//	    "github.com/bluescreen10/surrealstore"
//	)
//
//	func main() {
//	    cfg, err := surrealstore.ConfigFromEnv()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    client, err := surrealstore.Connect(cfg)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer client.Close()
//
//	    store, err := surrealstore.New(client)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := store.InitSchema(); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    record := &surrealstore.Record{
//	        Values:    map[string]any{"user": "gopher"},
//	        ExpiresAt: time.Now().Add(2 * time.Hour),
//	    }
//	    if err := store.Create(record); err != nil {
//	        log.Fatal(err)
//	    }
//	    // record.ID now carries the newly assigned identifier.
//	}
//
// Reads are lazily filtered: Load reports a row whose expiry has passed
// as absent even before the row is physically deleted. DeleteExpired,
// or the PeriodicCleanUp loop, reclaims the storage eventually; it is
// never required for correctness.
package surrealstore
