package model

import (
	"time"

	"github.com/recall-lab/recall/pkg/domain/types"
)

// KnowledgeRecord is the unit of stored knowledge. A record is created on
// first successful ingestion and left untouched on duplicate resubmission;
// its ID is a pure function of the content hash (plus topic when the dedup
// policy scopes by topic).
type KnowledgeRecord struct {
	ID          types.RecordID
	Title       string
	Content     string
	ContentKind types.ContentKind
	Language    string // meaningful only when ContentKind is code
	Topic       string
	Tags        []string
	Source      string // optional provenance, e.g. a URL or document name
	ContentHash string // hex SHA-256 over normalized content, the dedup key
	Embedding   []float32
	CreatedAt   time.Time
}

// Clone returns a deep copy of the record so that index backends never share
// mutable state with callers.
func (r *KnowledgeRecord) Clone() *KnowledgeRecord {
	copied := *r
	if r.Tags != nil {
		copied.Tags = make([]string, len(r.Tags))
		copy(copied.Tags, r.Tags)
	}
	if r.Embedding != nil {
		copied.Embedding = make([]float32, len(r.Embedding))
		copy(copied.Embedding, r.Embedding)
	}
	return &copied
}
