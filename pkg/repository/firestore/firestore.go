package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/interfaces"
)

// Index is the Firestore-backed vector index. Each knowledge record is one
// document keyed by its deterministic ID; embeddings are stored as Vector32
// so that FindNearest vector search works.
type Index struct {
	client     *firestore.Client
	collection string
}

var _ interfaces.VectorIndex = &Index{}

// Option is a functional option for Index configuration
type Option func(*Index)

// WithCollection overrides the collection name.
func WithCollection(name string) Option {
	return func(x *Index) {
		x.collection = name
	}
}

// New creates a Firestore-backed vector index.
func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Index, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	x := &Index{
		client:     client,
		collection: "knowledge",
	}
	for _, opt := range opts {
		opt(x)
	}

	return x, nil
}

func (x *Index) records() *firestore.CollectionRef {
	return x.client.Collection(x.collection)
}

// Close closes the underlying Firestore client.
func (x *Index) Close() error {
	return x.client.Close()
}
