package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors forming the error taxonomy of the core. Callers classify
// failures with errors.Is against these and never inspect collaborator
// internals.
var (
	// ErrValidation indicates malformed or missing required input. Always
	// client-caused and locally detected; never retried.
	ErrValidation = goerr.New("validation failed")

	// ErrEmbedding indicates the embedding gateway failed or returned an
	// unusable result.
	ErrEmbedding = goerr.New("embedding gateway failed")

	// ErrIndex indicates the vector index failed (connectivity, schema
	// mismatch, malformed filter).
	ErrIndex = goerr.New("vector index failed")

	// ErrRecordNotFound is returned by vector index backends when a point
	// with the requested ID does not exist.
	ErrRecordNotFound = goerr.New("record not found")
)

// Context keys for error values
const (
	FieldKey    = "field"
	RecordIDKey = "record_id"
)
