package interfaces

import (
	"context"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// VectorIndex is the contract the core requires from a vector store backend.
// Upsert must be atomic by ID so that concurrent duplicate ingestions resolve
// to a single point without client-side locking.
type VectorIndex interface {
	// Upsert writes a record under its ID, replacing any existing point.
	Upsert(ctx context.Context, record *model.KnowledgeRecord) error

	// Get retrieves a stored record by ID. Returns types.ErrRecordNotFound
	// when no point with that ID exists.
	Get(ctx context.Context, id types.RecordID) (*model.KnowledgeRecord, error)

	// Search returns up to limit records most similar to the given vector,
	// ordered by descending similarity, restricted to records matching the
	// filter.
	Search(ctx context.Context, vector []float32, filter *model.SearchFilter, limit int) ([]*model.Hit, error)

	// Close releases backend resources.
	Close() error
}
