package types_test

import (
	"testing"

	"github.com/recall-lab/recall/pkg/domain/types"
)

func TestContentKind(t *testing.T) {
	t.Run("valid kinds", func(t *testing.T) {
		for _, kind := range types.AllContentKinds() {
			if !kind.IsValid() {
				t.Errorf("expected %s to be valid", kind)
			}
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		if types.ContentKind("snippet").IsValid() {
			t.Error("expected 'snippet' to be invalid")
		}
	})

	t.Run("normalize empty to note", func(t *testing.T) {
		if got := types.ContentKind("").Normalize(); got != types.ContentKindNote {
			t.Errorf("expected note, got %s", got)
		}
		if got := types.ContentKindCode.Normalize(); got != types.ContentKindCode {
			t.Errorf("expected code, got %s", got)
		}
	})

	t.Run("parse", func(t *testing.T) {
		kind, err := types.ParseContentKind("code")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if kind != types.ContentKindCode {
			t.Errorf("expected code, got %s", kind)
		}

		if _, err := types.ParseContentKind("markdown"); err == nil {
			t.Error("expected error for invalid kind")
		}
	})
}

func TestNewRecordID(t *testing.T) {
	a := types.NewRecordID("same material")
	b := types.NewRecordID("same material")
	c := types.NewRecordID("other material")

	if a == "" {
		t.Fatal("NewRecordID returned empty string")
	}
	if len(a) != 36 {
		t.Errorf("expected UUID length 36, got %d", len(a))
	}
	if a != b {
		t.Error("same material must yield the same ID")
	}
	if a == c {
		t.Error("different material must yield different IDs")
	}
}
