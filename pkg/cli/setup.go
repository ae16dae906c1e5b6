package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/cli/config"
	"github.com/recall-lab/recall/pkg/domain/interfaces"
	"github.com/recall-lab/recall/pkg/service/embedding"
	"github.com/recall-lab/recall/pkg/usecase"
)

// buildUseCases wires policy, vector index, and embedding gateway into the
// use case layer. The caller owns Close() on the returned index.
func buildUseCases(ctx context.Context, policyCfg *config.Policy, repoCfg *config.Repository, llmCfg *config.LLM) (*usecase.UseCases, interfaces.VectorIndex, error) {
	policy, err := policyCfg.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load policy")
	}

	index, err := repoCfg.Configure(ctx, policy.Collection)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to initialize vector index")
	}

	llmClient, err := llmCfg.Configure(ctx)
	if err != nil {
		_ = index.Close()
		return nil, nil, goerr.Wrap(err, "failed to initialize LLM client")
	}

	embedder, err := embedding.New(llmClient, policy.Embedding.Dimension)
	if err != nil {
		_ = index.Close()
		return nil, nil, goerr.Wrap(err, "failed to initialize embedding service")
	}

	uc, err := usecase.New(index, embedder, usecase.WithPolicy(policy))
	if err != nil {
		_ = index.Close()
		return nil, nil, goerr.Wrap(err, "failed to initialize use cases")
	}

	return uc, index, nil
}
