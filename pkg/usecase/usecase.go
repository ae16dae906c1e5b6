package usecase

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/interfaces"
	"github.com/recall-lab/recall/pkg/domain/model/config"
	"github.com/recall-lab/recall/pkg/service/knowledge"
)

// UseCases wires the knowledge pipeline to its collaborators: the embedding
// gateway and the vector index. It is stateless beyond configuration and is
// invoked per request.
type UseCases struct {
	index    interfaces.VectorIndex
	embedder interfaces.Embedder
	svc      *knowledge.Service
	policy   *config.Policy
}

// Option is a functional option for UseCases configuration
type Option func(*UseCases)

// WithPolicy overrides the default ingestion/retrieval policy.
func WithPolicy(policy *config.Policy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

// New creates the use case layer.
func New(index interfaces.VectorIndex, embedder interfaces.Embedder, opts ...Option) (*UseCases, error) {
	if index == nil {
		return nil, goerr.New("vector index is required")
	}
	if embedder == nil {
		return nil, goerr.New("embedder is required")
	}

	uc := &UseCases{
		index:    index,
		embedder: embedder,
	}
	for _, opt := range opts {
		opt(uc)
	}

	svc, err := knowledge.New(uc.policy)
	if err != nil {
		return nil, err
	}
	uc.svc = svc
	uc.policy = svc.Policy()

	return uc, nil
}

// Policy returns the active policy.
func (uc *UseCases) Policy() *config.Policy {
	return uc.policy
}
