package types

import "github.com/google/uuid"

// RecordID identifies a stored knowledge record. It is derived
// deterministically from the record content so that re-ingesting identical
// content always resolves to the same point in the vector index.
type RecordID string

// recordNamespace is the UUIDv5 namespace for record IDs. Changing it would
// orphan every already-stored record, so it is fixed forever.
var recordNamespace = uuid.MustParse("8f1c2a34-6c0d-4e7b-9b2f-3d9a1e5c7f42")

// NewRecordID derives a RecordID from the dedup key material. The same input
// always yields the same ID.
func NewRecordID(material string) RecordID {
	return RecordID(uuid.NewSHA1(recordNamespace, []byte(material)).String())
}

// String returns the string representation of the record ID
func (id RecordID) String() string {
	return string(id)
}
