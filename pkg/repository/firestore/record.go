package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// distanceField is the document field FindNearest writes the cosine distance
// into. It must not collide with any payload field.
const distanceField = "vector_distance"

// recordDoc is the Firestore document representation of
// model.KnowledgeRecord plus the search-time distance field.
type recordDoc struct {
	ID          types.RecordID     `firestore:"id"`
	Title       string             `firestore:"title"`
	Content     string             `firestore:"content"`
	ContentKind string             `firestore:"content_kind"`
	Language    string             `firestore:"language,omitempty"`
	Topic       string             `firestore:"topic,omitempty"`
	Tags        []string           `firestore:"tags,omitempty"`
	Source      string             `firestore:"source,omitempty"`
	ContentHash string             `firestore:"content_hash"`
	Embedding   firestore.Vector32 `firestore:"embedding,omitempty"`
	CreatedAt   time.Time          `firestore:"created_at"`

	Distance float64 `firestore:"vector_distance,omitempty"`
}

func toRecordDoc(r *model.KnowledgeRecord) *recordDoc {
	doc := &recordDoc{
		ID:          r.ID,
		Title:       r.Title,
		Content:     r.Content,
		ContentKind: r.ContentKind.String(),
		Language:    r.Language,
		Topic:       r.Topic,
		Tags:        r.Tags,
		Source:      r.Source,
		ContentHash: r.ContentHash,
		CreatedAt:   r.CreatedAt,
	}
	if len(r.Embedding) > 0 {
		doc.Embedding = firestore.Vector32(r.Embedding)
	}
	return doc
}

func fromRecordDoc(d *recordDoc) *model.KnowledgeRecord {
	r := &model.KnowledgeRecord{
		ID:          d.ID,
		Title:       d.Title,
		Content:     d.Content,
		ContentKind: types.ContentKind(d.ContentKind),
		Language:    d.Language,
		Topic:       d.Topic,
		Tags:        d.Tags,
		Source:      d.Source,
		ContentHash: d.ContentHash,
		CreatedAt:   d.CreatedAt,
	}
	if len(d.Embedding) > 0 {
		r.Embedding = []float32(d.Embedding)
	}
	return r
}

// Upsert writes the record under its ID. Set is atomic per document, which
// gives the last-write-wins semantics concurrent duplicate ingestion relies
// on.
func (x *Index) Upsert(ctx context.Context, record *model.KnowledgeRecord) error {
	if record.ID == "" {
		return goerr.New("record ID is required")
	}

	docRef := x.records().Doc(record.ID.String())
	if _, err := docRef.Set(ctx, toRecordDoc(record)); err != nil {
		return goerr.Wrap(types.ErrIndex, "failed to upsert record",
			goerr.V(types.RecordIDKey, record.ID),
			goerr.V("cause", err.Error()))
	}

	return nil
}

// Get retrieves a record by ID.
func (x *Index) Get(ctx context.Context, id types.RecordID) (*model.KnowledgeRecord, error) {
	doc, err := x.records().Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(types.ErrRecordNotFound, "record not found", goerr.V(types.RecordIDKey, id))
		}
		return nil, goerr.Wrap(types.ErrIndex, "failed to get record",
			goerr.V(types.RecordIDKey, id),
			goerr.V("cause", err.Error()))
	}

	var d recordDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(types.ErrIndex, "failed to unmarshal record", goerr.V(types.RecordIDKey, id))
	}

	return fromRecordDoc(&d), nil
}

// Search performs a filtered FindNearest query. Filter clauses become Where
// conditions evaluated index-side; tags use array-contains-any for the
// contains-any-of semantics.
func (x *Index) Search(ctx context.Context, vector []float32, filter *model.SearchFilter, limit int) ([]*model.Hit, error) {
	q := x.records().Query
	if filter != nil {
		if filter.Topic != "" {
			q = q.Where("topic", "==", filter.Topic)
		}
		if filter.ContentKind != "" {
			q = q.Where("content_kind", "==", filter.ContentKind.String())
		}
		if len(filter.Tags) > 0 {
			q = q.Where("tags", "array-contains-any", filter.Tags)
		}
	}

	vq := q.FindNearest("embedding", firestore.Vector32(vector), limit, firestore.DistanceMeasureCosine,
		&firestore.FindNearestOptions{
			DistanceResultField: distanceField,
		})

	iter := vq.Documents(ctx)
	defer iter.Stop()

	hits := make([]*model.Hit, 0, limit)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(types.ErrIndex, "failed to iterate vector search results",
				goerr.V("cause", err.Error()))
		}

		var d recordDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(types.ErrIndex, "failed to unmarshal search result")
		}

		// Cosine distance is in [0, 2]; report similarity.
		hits = append(hits, &model.Hit{
			Record: fromRecordDoc(&d),
			Score:  1 - d.Distance,
		})
	}

	return hits, nil
}
