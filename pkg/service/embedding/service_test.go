package embedding_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/recall-lab/recall/pkg/domain/types"
	"github.com/recall-lab/recall/pkg/service/embedding"
)

type mockLLMClient struct {
	generateEmbeddingFn func(ctx context.Context, dimension int, input []string) ([][]float64, error)
}

func (m *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	return nil, nil
}

func (m *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	if m.generateEmbeddingFn != nil {
		return m.generateEmbeddingFn(ctx, dimension, input)
	}
	vec := make([]float64, dimension)
	for i := range vec {
		vec[i] = 0.1
	}
	return [][]float64{vec}, nil
}

func TestNew(t *testing.T) {
	t.Run("nil client fails", func(t *testing.T) {
		_, err := embedding.New(nil, 8)
		gt.Error(t, err)
	})

	t.Run("non-positive dimension fails", func(t *testing.T) {
		_, err := embedding.New(&mockLLMClient{}, 0)
		gt.Error(t, err)
	})
}

func TestEmbed(t *testing.T) {
	ctx := context.Background()

	t.Run("returns vector of configured dimension", func(t *testing.T) {
		svc, err := embedding.New(&mockLLMClient{}, 8)
		gt.NoError(t, err).Required()

		vec, err := svc.Embed(ctx, "some text")
		gt.NoError(t, err).Required()
		gt.Array(t, vec).Length(8)
	})

	t.Run("provider failure maps to embedding error", func(t *testing.T) {
		svc, err := embedding.New(&mockLLMClient{
			generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
				return nil, errors.New("rate limited")
			},
		}, 8)
		gt.NoError(t, err).Required()

		_, err = svc.Embed(ctx, "some text")
		gt.Error(t, err).Is(types.ErrEmbedding)
	})

	t.Run("empty result maps to embedding error", func(t *testing.T) {
		svc, err := embedding.New(&mockLLMClient{
			generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
				return nil, nil
			},
		}, 8)
		gt.NoError(t, err).Required()

		_, err = svc.Embed(ctx, "some text")
		gt.Error(t, err).Is(types.ErrEmbedding)
	})

	t.Run("dimension mismatch maps to embedding error", func(t *testing.T) {
		svc, err := embedding.New(&mockLLMClient{
			generateEmbeddingFn: func(ctx context.Context, dimension int, input []string) ([][]float64, error) {
				return [][]float64{{0.1, 0.2}}, nil
			},
		}, 8)
		gt.NoError(t, err).Required()

		_, err = svc.Embed(ctx, "some text")
		gt.Error(t, err).Is(types.ErrEmbedding)
	})
}
