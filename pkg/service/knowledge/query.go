package knowledge

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// Compile turns a raw search request into the text to embed, a conjunctive
// filter over the supplied optional fields, and a bounded limit. Absent
// fields impose no constraint; multiple tags form a contains-any clause.
func (s *Service) Compile(raw RawQuery) (*CompiledQuery, error) {
	text := strings.TrimSpace(raw.Query)
	if text == "" {
		return nil, goerr.Wrap(types.ErrValidation, "query is required and must not be blank",
			goerr.V(types.FieldKey, "query"))
	}

	filter := &model.SearchFilter{
		Topic: strings.TrimSpace(raw.Topic),
		Tags:  cleanTags(raw.Tags),
	}

	if rawKind := strings.TrimSpace(raw.ContentKind); rawKind != "" {
		kind, err := types.ParseContentKind(rawKind)
		if err != nil {
			return nil, goerr.Wrap(types.ErrValidation, "content_kind must be one of: note, code",
				goerr.V(types.FieldKey, "content_kind"),
				goerr.V("content_kind", rawKind))
		}
		filter.ContentKind = kind
	}

	limit := raw.Limit
	if limit <= 0 {
		limit = s.policy.Search.DefaultLimit
	}
	if limit > s.policy.Search.MaxLimit {
		limit = s.policy.Search.MaxLimit
	}

	minScore := raw.MinScore
	if minScore < 0 {
		minScore = 0
	}

	return &CompiledQuery{
		Text:     text,
		Filter:   filter,
		Limit:    limit,
		MinScore: minScore,
	}, nil
}
