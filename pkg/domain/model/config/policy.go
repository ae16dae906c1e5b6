package config

import "github.com/m-mizutani/goerr/v2"

// Defaults applied when a policy file is absent or leaves fields unset.
const (
	DefaultCollection  = "knowledge"
	DefaultDimension   = 768
	DefaultSearchLimit = 5
	MaxSearchLimit     = 20
	DefaultTitleMaxLen = 80
)

// Policy is the ingestion/retrieval policy of the service: collection naming,
// embedding dimension, search limit bounds, and the dedup scoping choice.
type Policy struct {
	Collection string          `toml:"collection"`
	Embedding  EmbeddingPolicy `toml:"embedding"`
	Search     SearchPolicy    `toml:"search"`
	Dedup      DedupPolicy     `toml:"dedup"`
	Normalize  NormalizePolicy `toml:"normalize"`
}

// EmbeddingPolicy fixes the vector dimension shared between the embedding
// gateway and the vector index schema.
type EmbeddingPolicy struct {
	Dimension int `toml:"dimension"`
}

// SearchPolicy bounds result set sizes.
type SearchPolicy struct {
	DefaultLimit int `toml:"default_limit"`
	MaxLimit     int `toml:"max_limit"`
}

// DedupPolicy selects the identity scope. When ScopeByTopic is true, the same
// content may coexist once per topic; otherwise identical content always
// collapses to one record.
type DedupPolicy struct {
	ScopeByTopic bool `toml:"scope_by_topic"`
}

// NormalizePolicy bounds derived fields.
type NormalizePolicy struct {
	TitleMaxLen int `toml:"title_max_len"`
}

// DefaultPolicy returns a policy with all defaults resolved.
func DefaultPolicy() *Policy {
	return &Policy{
		Collection: DefaultCollection,
		Embedding:  EmbeddingPolicy{Dimension: DefaultDimension},
		Search: SearchPolicy{
			DefaultLimit: DefaultSearchLimit,
			MaxLimit:     MaxSearchLimit,
		},
		Normalize: NormalizePolicy{TitleMaxLen: DefaultTitleMaxLen},
	}
}

// FillDefaults resolves unset fields to their defaults.
func (p *Policy) FillDefaults() {
	if p.Collection == "" {
		p.Collection = DefaultCollection
	}
	if p.Embedding.Dimension == 0 {
		p.Embedding.Dimension = DefaultDimension
	}
	if p.Search.DefaultLimit == 0 {
		p.Search.DefaultLimit = DefaultSearchLimit
	}
	if p.Search.MaxLimit == 0 {
		p.Search.MaxLimit = MaxSearchLimit
	}
	if p.Normalize.TitleMaxLen == 0 {
		p.Normalize.TitleMaxLen = DefaultTitleMaxLen
	}
}

// Validate checks if the policy is consistent.
func (p *Policy) Validate() error {
	if p.Embedding.Dimension <= 0 {
		return goerr.New("embedding dimension must be positive", goerr.V("dimension", p.Embedding.Dimension))
	}
	if p.Search.DefaultLimit <= 0 {
		return goerr.New("default search limit must be positive", goerr.V("default_limit", p.Search.DefaultLimit))
	}
	if p.Search.MaxLimit < p.Search.DefaultLimit {
		return goerr.New("max search limit must not be below the default limit",
			goerr.V("default_limit", p.Search.DefaultLimit),
			goerr.V("max_limit", p.Search.MaxLimit))
	}
	if p.Normalize.TitleMaxLen <= 0 {
		return goerr.New("title max length must be positive", goerr.V("title_max_len", p.Normalize.TitleMaxLen))
	}
	return nil
}
