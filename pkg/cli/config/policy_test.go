package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/recall-lab/recall/pkg/cli/config"
	modelConfig "github.com/recall-lab/recall/pkg/domain/model/config"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func TestPolicyConfigure(t *testing.T) {
	t.Run("no file yields defaults", func(t *testing.T) {
		policy, err := config.NewPolicyForTest("").Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Collection).Equal(modelConfig.DefaultCollection)
		gt.Value(t, policy.Embedding.Dimension).Equal(modelConfig.DefaultDimension)
		gt.Value(t, policy.Search.DefaultLimit).Equal(modelConfig.DefaultSearchLimit)
		gt.Value(t, policy.Search.MaxLimit).Equal(modelConfig.MaxSearchLimit)
		gt.Bool(t, policy.Dedup.ScopeByTopic).False()
	})

	t.Run("full file overrides defaults", func(t *testing.T) {
		path := writePolicy(t, `
collection = "snippets"

[embedding]
dimension = 1536

[search]
default_limit = 3
max_limit = 10

[dedup]
scope_by_topic = true

[normalize]
title_max_len = 120
`)

		policy, err := config.NewPolicyForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Collection).Equal("snippets")
		gt.Value(t, policy.Embedding.Dimension).Equal(1536)
		gt.Value(t, policy.Search.DefaultLimit).Equal(3)
		gt.Value(t, policy.Search.MaxLimit).Equal(10)
		gt.Bool(t, policy.Dedup.ScopeByTopic).True()
		gt.Value(t, policy.Normalize.TitleMaxLen).Equal(120)
	})

	t.Run("partial file fills remaining defaults", func(t *testing.T) {
		path := writePolicy(t, `collection = "snippets"`)

		policy, err := config.NewPolicyForTest(path).Configure()
		gt.NoError(t, err).Required()
		gt.Value(t, policy.Collection).Equal("snippets")
		gt.Value(t, policy.Embedding.Dimension).Equal(modelConfig.DefaultDimension)
		gt.Value(t, policy.Search.DefaultLimit).Equal(modelConfig.DefaultSearchLimit)
	})

	t.Run("max limit below default limit fails", func(t *testing.T) {
		path := writePolicy(t, `
[search]
default_limit = 10
max_limit = 5
`)

		_, err := config.NewPolicyForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("malformed TOML fails", func(t *testing.T) {
		path := writePolicy(t, `collection = [broken`)

		_, err := config.NewPolicyForTest(path).Configure()
		gt.Error(t, err)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := config.NewPolicyForTest(filepath.Join(t.TempDir(), "absent.toml")).Configure()
		gt.Error(t, err)
	})
}
