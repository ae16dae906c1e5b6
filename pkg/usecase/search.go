package usecase

import (
	"context"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

// Search compiles a raw query into an embedding request plus a structured
// filter, runs the filtered similarity search, and ranks the hits. An empty
// result set is returned as an empty slice with no error.
func (uc *UseCases) Search(ctx context.Context, raw knowledge.RawQuery) ([]*model.SearchResult, error) {
	query, err := uc.svc.Compile(raw)
	if err != nil {
		return nil, err
	}

	vector, err := uc.embedder.Embed(ctx, query.Text)
	if err != nil {
		return nil, err
	}

	hits, err := uc.index.Search(ctx, vector, query.Filter, query.Limit)
	if err != nil {
		return nil, err
	}

	results := uc.svc.Rank(hits, query)

	logging.From(ctx).Debug("search completed",
		"hits", len(hits),
		"results", len(results),
		"limit", query.Limit)

	return results, nil
}
