package model

import "github.com/recall-lab/recall/pkg/domain/types"

// SearchFilter is a conjunction of exact-match clauses over the indexed
// payload fields. A zero-valued field imposes no constraint; Tags matches
// records carrying any of the listed tags.
type SearchFilter struct {
	Topic       string
	ContentKind types.ContentKind
	Tags        []string
}

// IsEmpty reports whether the filter constrains nothing.
func (f *SearchFilter) IsEmpty() bool {
	return f == nil || (f.Topic == "" && f.ContentKind == "" && len(f.Tags) == 0)
}

// Matches reports whether a record satisfies every clause of the filter.
// Backends without native payload filtering (the in-memory index) use it to
// evaluate the filter locally.
func (f *SearchFilter) Matches(r *KnowledgeRecord) bool {
	if f == nil {
		return true
	}
	if f.Topic != "" && r.Topic != f.Topic {
		return false
	}
	if f.ContentKind != "" && r.ContentKind != f.ContentKind {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, want := range f.Tags {
			for _, have := range r.Tags {
				if want == have {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Hit is a raw similarity search result produced by a vector index backend:
// the stored record plus the backend-reported similarity score.
type Hit struct {
	Record *KnowledgeRecord
	Score  float64
}

// SearchResult is the caller-facing shape of a ranked hit.
type SearchResult struct {
	ID          types.RecordID    `json:"id"`
	Title       string            `json:"title"`
	Content     string            `json:"content"`
	ContentKind types.ContentKind `json:"content_kind"`
	Language    string            `json:"language,omitempty"`
	Topic       string            `json:"topic,omitempty"`
	Tags        []string          `json:"tags,omitempty"`
	Source      string            `json:"source,omitempty"`
	Score       float64           `json:"score"`
}

// NewSearchResult projects a hit into the response contract.
func NewSearchResult(h *Hit) *SearchResult {
	return &SearchResult{
		ID:          h.Record.ID,
		Title:       h.Record.Title,
		Content:     h.Record.Content,
		ContentKind: h.Record.ContentKind,
		Language:    h.Record.Language,
		Topic:       h.Record.Topic,
		Tags:        h.Record.Tags,
		Source:      h.Record.Source,
		Score:       h.Score,
	}
}
