package knowledge

import "github.com/recall-lab/recall/pkg/domain/model"

// RawRecord is an unvalidated ingestion request as received from the
// transport layer.
type RawRecord struct {
	Title       string   `json:"title,omitempty"`
	Content     string   `json:"content"`
	ContentKind string   `json:"content_kind,omitempty"`
	Language    string   `json:"language,omitempty"`
	Topic       string   `json:"topic,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// RawQuery is an unvalidated search request.
type RawQuery struct {
	Query       string   `json:"query"`
	Topic       string   `json:"topic,omitempty"`
	ContentKind string   `json:"content_kind,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Limit       int      `json:"limit,omitempty"`
	MinScore    float64  `json:"min_score,omitempty"`
}

// CompiledQuery is a search request with defaults resolved: the text to
// embed, the structured filter, and the bounded limit.
type CompiledQuery struct {
	Text     string
	Filter   *model.SearchFilter
	Limit    int
	MinScore float64
}
