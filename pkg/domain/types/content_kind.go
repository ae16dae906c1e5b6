package types

import "fmt"

// ContentKind represents the kind of content stored in a knowledge record
type ContentKind string

const (
	ContentKindNote ContentKind = "note"
	ContentKindCode ContentKind = "code"
)

// AllContentKinds returns all valid content kinds
func AllContentKinds() []ContentKind {
	return []ContentKind{
		ContentKindNote,
		ContentKindCode,
	}
}

// IsValid checks if the content kind is valid
func (k ContentKind) IsValid() bool {
	switch k {
	case ContentKindNote, ContentKindCode:
		return true
	default:
		return false
	}
}

// Normalize returns the kind, treating empty as ContentKindNote
func (k ContentKind) Normalize() ContentKind {
	if k == "" {
		return ContentKindNote
	}
	return k
}

// String returns the string representation of the content kind
func (k ContentKind) String() string {
	return string(k)
}

// ParseContentKind parses a string into a ContentKind
func ParseContentKind(s string) (ContentKind, error) {
	kind := ContentKind(s)
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid content kind: %s", s)
	}
	return kind, nil
}
