package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/recall-lab/recall/pkg/domain/model/config"
	"github.com/recall-lab/recall/pkg/domain/types"
	"github.com/recall-lab/recall/pkg/repository/memory"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/usecase"
)

type mockEmbedder struct {
	embedFn func(ctx context.Context, text string) ([]float32, error)
	calls   int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	return []float32{1, 0, 0}, nil
}

// directionFor keys embeddings on marker words so similarity in the memory
// index follows the text, not the mock's call order.
func directionFor(text string) []float32 {
	switch {
	case strings.Contains(text, "alpha"):
		return []float32{1, 0, 0}
	case strings.Contains(text, "beta"):
		return []float32{0, 1, 0}
	default:
		return []float32{0, 0, 1}
	}
}

func setup(t *testing.T, opts ...usecase.Option) (*usecase.UseCases, *memory.Index, *mockEmbedder) {
	t.Helper()

	index := memory.New()
	embedder := &mockEmbedder{
		embedFn: func(ctx context.Context, text string) ([]float32, error) {
			return directionFor(text), nil
		},
	}

	uc, err := usecase.New(index, embedder, opts...)
	gt.NoError(t, err).Required()
	return uc, index, embedder
}

func TestNew(t *testing.T) {
	t.Run("nil index fails", func(t *testing.T) {
		_, err := usecase.New(nil, &mockEmbedder{})
		gt.Error(t, err)
	})

	t.Run("nil embedder fails", func(t *testing.T) {
		_, err := usecase.New(memory.New(), nil)
		gt.Error(t, err)
	})
}

func TestIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("first ingestion creates a record", func(t *testing.T) {
		uc, index, _ := setup(t)

		result, err := uc.Ingest(ctx, knowledge.RawRecord{
			Content: "alpha: git branch -m old new",
			Topic:   "git",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, result.Status).Equal(usecase.StatusCreated)

		stored, err := index.Get(ctx, result.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.Topic).Equal("git")
		gt.Array(t, stored.Embedding).Length(3)
		gt.Bool(t, stored.CreatedAt.IsZero()).False()
	})

	t.Run("re-ingesting identical content is a duplicate no-op", func(t *testing.T) {
		uc, index, embedder := setup(t)

		raw := knowledge.RawRecord{Content: "alpha content"}

		first, err := uc.Ingest(ctx, raw)
		gt.NoError(t, err).Required()
		gt.Value(t, first.Status).Equal(usecase.StatusCreated)

		callsAfterFirst := embedder.calls

		second, err := uc.Ingest(ctx, raw)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Status).Equal(usecase.StatusDuplicate)
		gt.Value(t, second.ID).Equal(first.ID)

		// Duplicate path must short-circuit before the embedding call.
		gt.Value(t, embedder.calls).Equal(callsAfterFirst)
		gt.Value(t, index.Len()).Equal(1)
	})

	t.Run("dedup ignores case and whitespace", func(t *testing.T) {
		uc, index, _ := setup(t)

		first, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "Alpha  Content\nHere"})
		gt.NoError(t, err).Required()

		second, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha content here"})
		gt.NoError(t, err).Required()

		gt.Value(t, second.Status).Equal(usecase.StatusDuplicate)
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Value(t, index.Len()).Equal(1)
	})

	t.Run("same content under different topics dedupes by default", func(t *testing.T) {
		uc, index, _ := setup(t)

		first, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha shared", Topic: "git"})
		gt.NoError(t, err).Required()

		second, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha shared", Topic: "docker"})
		gt.NoError(t, err).Required()

		gt.Value(t, second.Status).Equal(usecase.StatusDuplicate)
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Value(t, index.Len()).Equal(1)
	})

	t.Run("topic-scoped dedup keeps both copies", func(t *testing.T) {
		policy := config.DefaultPolicy()
		policy.Dedup.ScopeByTopic = true
		uc, index, _ := setup(t, usecase.WithPolicy(policy))

		first, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha shared", Topic: "git"})
		gt.NoError(t, err).Required()
		gt.Value(t, first.Status).Equal(usecase.StatusCreated)

		second, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha shared", Topic: "docker"})
		gt.NoError(t, err).Required()
		gt.Value(t, second.Status).Equal(usecase.StatusCreated)
		gt.Value(t, second.ID).NotEqual(first.ID)
		gt.Value(t, index.Len()).Equal(2)
	})

	t.Run("empty content is rejected", func(t *testing.T) {
		uc, _, _ := setup(t)

		_, err := uc.Ingest(ctx, knowledge.RawRecord{Content: "   "})
		gt.Error(t, err).Is(types.ErrValidation)
	})

	t.Run("embedding failure aborts the write", func(t *testing.T) {
		index := memory.New()
		embedder := &mockEmbedder{
			embedFn: func(ctx context.Context, text string) ([]float32, error) {
				return nil, types.ErrEmbedding
			},
		}
		uc, err := usecase.New(index, embedder)
		gt.NoError(t, err).Required()

		_, err = uc.Ingest(ctx, knowledge.RawRecord{Content: "alpha doomed"})
		gt.Error(t, err).Is(types.ErrEmbedding)
		gt.Value(t, index.Len()).Equal(0)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, uc *usecase.UseCases) {
		t.Helper()
		records := []knowledge.RawRecord{
			{Content: "alpha rename a git branch", Topic: "git", Tags: []string{"cli"}},
			{Content: "beta build a docker image", Topic: "docker", Tags: []string{"containers"}},
			{Content: "gamma configure vim keymaps", Topic: "vim", ContentKind: "code"},
		}
		for _, raw := range records {
			result, err := uc.Ingest(ctx, raw)
			gt.NoError(t, err).Required()
			gt.Value(t, result.Status).Equal(usecase.StatusCreated)
		}
	}

	t.Run("nearest record ranks first", func(t *testing.T) {
		uc, _, _ := setup(t)
		seed(t, uc)

		results, err := uc.Search(ctx, knowledge.RawQuery{Query: "alpha how to rename a branch"})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(3).Required()
		gt.Value(t, results[0].Topic).Equal("git")
		gt.Number(t, results[0].Score).GreaterOrEqual(results[1].Score)
	})

	t.Run("topic filter narrows results", func(t *testing.T) {
		uc, _, _ := setup(t)
		seed(t, uc)

		results, err := uc.Search(ctx, knowledge.RawQuery{Query: "alpha anything", Topic: "docker"})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()
		gt.Value(t, results[0].Topic).Equal("docker")
	})

	t.Run("tag filter is contains-any", func(t *testing.T) {
		uc, _, _ := setup(t)
		seed(t, uc)

		results, err := uc.Search(ctx, knowledge.RawQuery{
			Query: "alpha anything",
			Tags:  []string{"cli", "containers"},
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(2)
	})

	t.Run("min score drops weak matches", func(t *testing.T) {
		uc, _, _ := setup(t)
		seed(t, uc)

		results, err := uc.Search(ctx, knowledge.RawQuery{
			Query:    "alpha how to rename a branch",
			MinScore: 0.9,
		})
		gt.NoError(t, err).Required()
		gt.Array(t, results).Length(1).Required()
		gt.Value(t, results[0].Topic).Equal("git")
	})

	t.Run("no matches returns empty slice", func(t *testing.T) {
		uc, _, _ := setup(t)
		seed(t, uc)

		results, err := uc.Search(ctx, knowledge.RawQuery{Query: "alpha anything", Topic: "absent"})
		gt.NoError(t, err).Required()
		if results == nil {
			t.Error("expected empty slice, got nil")
		}
		gt.Array(t, results).Length(0)
	})

	t.Run("empty query is rejected", func(t *testing.T) {
		uc, _, _ := setup(t)

		_, err := uc.Search(ctx, knowledge.RawQuery{Query: "  "})
		gt.Error(t, err).Is(types.ErrValidation)
	})

	t.Run("embedding failure propagates", func(t *testing.T) {
		uc, _, embedder := setup(t)
		embedder.embedFn = func(ctx context.Context, text string) ([]float32, error) {
			return nil, types.ErrEmbedding
		}

		_, err := uc.Search(ctx, knowledge.RawQuery{Query: "alpha anything"})
		gt.Error(t, err).Is(types.ErrEmbedding)
	})
}
