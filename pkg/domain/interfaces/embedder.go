package interfaces

import "context"

// Embedder maps text to a fixed-length vector. Implementations must return
// vectors of a single dimension shared with the vector index schema.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
