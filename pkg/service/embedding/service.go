package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/recall-lab/recall/pkg/domain/interfaces"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// client implements interfaces.Embedder on top of a gollem LLM client.
type client struct {
	llmClient gollem.LLMClient
	dimension int
}

var _ interfaces.Embedder = &client{}

// New creates an embedding service producing vectors of the given dimension.
// The dimension must match the vector index schema.
func New(llmClient gollem.LLMClient, dimension int) (interfaces.Embedder, error) {
	if llmClient == nil {
		return nil, goerr.New("LLM client is required")
	}
	if dimension <= 0 {
		return nil, goerr.New("embedding dimension must be positive", goerr.V("dimension", dimension))
	}

	return &client{
		llmClient: llmClient,
		dimension: dimension,
	}, nil
}

// Embed generates an embedding vector for the given text.
func (c *client) Embed(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := c.llmClient.GenerateEmbedding(ctx, c.dimension, []string{text})
	if err != nil {
		return nil, goerr.Wrap(types.ErrEmbedding, "failed to generate embedding", goerr.V("cause", err.Error()))
	}

	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, goerr.Wrap(types.ErrEmbedding, "no embedding returned")
	}
	if len(embeddings[0]) != c.dimension {
		return nil, goerr.Wrap(types.ErrEmbedding, "embedding dimension mismatch",
			goerr.V("want", c.dimension),
			goerr.V("got", len(embeddings[0])))
	}

	// Convert float64 to float32
	result := make([]float32, len(embeddings[0]))
	for i, v := range embeddings[0] {
		result[i] = float32(v)
	}

	return result, nil
}
