package surrealstore

import (
	"errors"
	"testing"

	"github.com/fxamacker/cbor/v2"
	surrealdb "github.com/surrealdb/surrealdb.go"
)

func okRows(rows []Row) QueryResult {
	return QueryResult{Status: statusOK, Rows: rows}
}

func TestCreatedID(t *testing.T) {
	results := []QueryResult{
		okRows(nil),
		okRows([]Row{{ID: 5}}),
	}
	id, err := createdID(results)
	if err != nil {
		t.Fatal(err)
	}
	if id != 5 {
		t.Errorf("expected id 5 got %d", id)
	}
}

func TestCreatedIDNoRow(t *testing.T) {
	results := []QueryResult{
		okRows(nil),
		okRows([]Row{}),
	}
	_, err := createdID(results)
	if !errors.Is(err, ErrNoIDReturned) {
		t.Fatalf("expected ErrNoIDReturned got %v", err)
	}
}

func TestCreatedIDNegativeKey(t *testing.T) {
	results := []QueryResult{
		okRows(nil),
		okRows([]Row{{ID: -3}}),
	}
	_, err := createdID(results)
	if !errors.Is(err, ErrIDOutOfRange) {
		t.Fatalf("expected ErrIDOutOfRange got %v", err)
	}
}

func TestCreatedIDStatementFailed(t *testing.T) {
	results := []QueryResult{
		okRows(nil),
		{Status: "ERR", Detail: "The query was not executed due to a failed transaction"},
	}
	_, err := createdID(results)
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("expected ErrBackend got %v", err)
	}
}

func TestCreatedIDWrongStatementCount(t *testing.T) {
	_, err := createdID([]QueryResult{okRows(nil)})
	if !errors.Is(err, ErrBackend) {
		t.Fatalf("expected ErrBackend got %v", err)
	}
}

func mustCBOR(t *testing.T, v any) cbor.RawMessage {
	t.Helper()
	data, err := cbor.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return cbor.RawMessage(data)
}

func TestToQueryResults(t *testing.T) {
	raw := []surrealdb.QueryResult[cbor.RawMessage]{
		{Status: statusOK, Result: mustCBOR(t, []map[string]any{})},
		{Status: statusOK, Result: mustCBOR(t, []map[string]any{
			{"id": 7},
			{"record": "c2Vzc2lvbg", "expiry_date": "2026-01-02T03:04:05.123456Z"},
		})},
	}
	results, err := toQueryResults(raw)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results got %d", len(results))
	}
	if len(results[0].Rows) != 0 {
		t.Errorf("expected no rows in first result, got %d", len(results[0].Rows))
	}
	rows := results[1].Rows
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d", len(rows))
	}
	if rows[0].ID != 7 {
		t.Errorf("expected key 7 got %d", rows[0].ID)
	}
	if rows[1].Record != "c2Vzc2lvbg" {
		t.Errorf("unexpected record blob %q", rows[1].Record)
	}
	if rows[1].ExpiryDate != "2026-01-02T03:04:05.123456Z" {
		t.Errorf("unexpected expiry %q", rows[1].ExpiryDate)
	}
}

func TestToQueryResultsStatementError(t *testing.T) {
	raw := []surrealdb.QueryResult[cbor.RawMessage]{
		{Status: "ERR", Result: mustCBOR(t, "counter table does not exist")},
	}
	results, err := toQueryResults(raw)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Status == statusOK {
		t.Fatal("expected non-OK status")
	}
	if results[0].Detail != "counter table does not exist" {
		t.Errorf("unexpected detail %q", results[0].Detail)
	}
	if err := checkStatus(results); !errors.Is(err, ErrBackend) {
		t.Fatalf("expected ErrBackend got %v", err)
	}
}

func TestToQueryResultsMalformedRows(t *testing.T) {
	raw := []surrealdb.QueryResult[cbor.RawMessage]{
		{Status: statusOK, Result: mustCBOR(t, "not a row list")},
	}
	if _, err := toQueryResults(raw); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode got %v", err)
	}
}
