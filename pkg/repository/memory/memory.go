package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/interfaces"
	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// Index is an in-memory vector index for development and testing. Filters
// are evaluated locally and similarity is cosine, matching the semantics of
// the Firestore backend.
type Index struct {
	mu      sync.RWMutex
	records map[types.RecordID]*model.KnowledgeRecord
}

var _ interfaces.VectorIndex = &Index{}

// New creates an empty in-memory index.
func New() *Index {
	return &Index{
		records: make(map[types.RecordID]*model.KnowledgeRecord),
	}
}

func (x *Index) Upsert(ctx context.Context, record *model.KnowledgeRecord) error {
	if record.ID == "" {
		return goerr.New("record ID is required")
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	x.records[record.ID] = record.Clone()
	return nil
}

func (x *Index) Get(ctx context.Context, id types.RecordID) (*model.KnowledgeRecord, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	record, exists := x.records[id]
	if !exists {
		return nil, goerr.Wrap(types.ErrRecordNotFound, "record not found", goerr.V(types.RecordIDKey, id))
	}

	return record.Clone(), nil
}

func (x *Index) Search(ctx context.Context, vector []float32, filter *model.SearchFilter, limit int) ([]*model.Hit, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	candidates := make([]*model.Hit, 0, len(x.records))
	for _, record := range x.records {
		if len(record.Embedding) == 0 {
			continue
		}
		if !filter.Matches(record) {
			continue
		}
		candidates = append(candidates, &model.Hit{
			Record: record.Clone(),
			Score:  cosineSimilarity(vector, record.Embedding),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if limit < len(candidates) {
		candidates = candidates[:limit]
	}

	return candidates, nil
}

func (x *Index) Close() error {
	return nil
}

// Len returns the number of stored records.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.records)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
