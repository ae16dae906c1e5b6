package knowledge

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/model/config"
)

// Service implements the ingestion normalization and retrieval filtering
// pipeline: it turns raw submissions into deduplicated canonical records and
// raw queries into filtered, ranked result sets. It holds no state beyond the
// policy and performs no I/O.
type Service struct {
	policy *config.Policy
}

// New creates a knowledge service with the given policy. A nil policy means
// all defaults.
func New(policy *config.Policy) (*Service, error) {
	if policy == nil {
		policy = config.DefaultPolicy()
	}
	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid knowledge policy")
	}

	return &Service{policy: policy}, nil
}

// Policy returns the active policy.
func (s *Service) Policy() *config.Policy {
	return s.policy
}
