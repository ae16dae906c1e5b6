package knowledge

import (
	"sort"
	"strings"

	"github.com/recall-lab/recall/pkg/domain/model"
)

// scoreEpsilon is the tolerance within which two similarity scores are
// considered tied. Tied hits keep the order the index returned them in.
const scoreEpsilon = 1e-9

// Rank orders raw index hits into the response contract: descending
// similarity with stable ties, minimum score thresholding, and truncation to
// the compiled limit. Zero hits yield an empty, non-nil sequence so callers
// can distinguish "no results" from failure.
func (s *Service) Rank(hits []*model.Hit, query *CompiledQuery) []*model.SearchResult {
	ordered := make([]*model.Hit, len(hits))
	copy(ordered, hits)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Score-ordered[j].Score > scoreEpsilon
	})

	results := make([]*model.SearchResult, 0, query.Limit)
	for _, hit := range ordered {
		if len(results) >= query.Limit {
			break
		}
		if query.MinScore > 0 && hit.Score < query.MinScore {
			continue
		}
		results = append(results, model.NewSearchResult(hit))
	}

	return results
}

// EmbeddingInput builds the text submitted to the embedding gateway for a
// record. Title and topic are prefixed to the content for better recall.
func (s *Service) EmbeddingInput(record *model.KnowledgeRecord) string {
	parts := make([]string, 0, 3)
	if record.Title != "" {
		parts = append(parts, record.Title)
	}
	if record.Topic != "" {
		parts = append(parts, record.Topic)
	}
	parts = append(parts, record.Content)

	return strings.Join(parts, "\n")
}
