package knowledge

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// Normalize builds a canonical record from a raw ingestion request: trims and
// validates content, resolves the content kind, cleans tags, and derives a
// title when none is given. It is a pure transformation and never touches the
// vector index.
func (s *Service) Normalize(raw RawRecord) (*model.KnowledgeRecord, error) {
	content := strings.TrimSpace(raw.Content)
	if content == "" {
		return nil, goerr.Wrap(types.ErrValidation, "content is required and must not be blank",
			goerr.V(types.FieldKey, "content"))
	}

	kind := types.ContentKind(strings.TrimSpace(raw.ContentKind)).Normalize()
	if !kind.IsValid() {
		return nil, goerr.Wrap(types.ErrValidation, "content_kind must be one of: note, code",
			goerr.V(types.FieldKey, "content_kind"),
			goerr.V("content_kind", raw.ContentKind))
	}

	// Language is only meaningful for code records.
	language := ""
	if kind == types.ContentKindCode {
		language = strings.TrimSpace(raw.Language)
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = deriveTitle(content, s.policy.Normalize.TitleMaxLen)
	}

	return &model.KnowledgeRecord{
		Title:       title,
		Content:     content,
		ContentKind: kind,
		Language:    language,
		Topic:       strings.TrimSpace(raw.Topic),
		Tags:        cleanTags(raw.Tags),
		Source:      strings.TrimSpace(raw.Source),
	}, nil
}

// cleanTags trims whitespace per entry, drops empty entries, and deduplicates
// while preserving first-seen order.
func cleanTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}

	if len(cleaned) == 0 {
		return nil
	}
	return cleaned
}

// deriveTitle truncates whitespace-collapsed content to maxLen runes.
func deriveTitle(content string, maxLen int) string {
	collapsed := strings.Join(strings.Fields(content), " ")
	runes := []rune(collapsed)
	if len(runes) <= maxLen {
		return collapsed
	}
	return string(runes[:maxLen])
}
