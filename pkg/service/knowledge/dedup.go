package knowledge

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/recall-lab/recall/pkg/domain/model"
	"github.com/recall-lab/recall/pkg/domain/types"
)

// NormalizeContent produces the canonical form used for the dedup key:
// lower-cased with all whitespace runs collapsed to a single space, so that
// trivial formatting differences still dedupe.
func NormalizeContent(content string) string {
	return strings.Join(strings.Fields(strings.ToLower(content)), " ")
}

// HashContent computes the dedup key: a hex SHA-256 digest over the
// normalized content.
func HashContent(content string) string {
	sum := sha256.Sum256([]byte(NormalizeContent(content)))
	return hex.EncodeToString(sum[:])
}

// Fingerprint assigns the record its content hash and deterministic ID.
// Uniqueness tracking thereby becomes a stateless computation: the vector
// index's upsert-by-id guarantee makes re-ingestion of identical content a
// no-op regardless of concurrent writers.
//
// When the policy scopes dedup by topic, the topic is folded into the ID so
// the same content may coexist once per topic. Otherwise identical content
// always collapses to a single record.
func (s *Service) Fingerprint(record *model.KnowledgeRecord) {
	record.ContentHash = HashContent(record.Content)

	material := record.ContentHash
	if s.policy.Dedup.ScopeByTopic && record.Topic != "" {
		material += "\x00" + record.Topic
	}
	record.ID = types.NewRecordID(material)
}
