package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/recall-lab/recall/pkg/domain/types"
	"github.com/recall-lab/recall/pkg/service/knowledge"
	"github.com/recall-lab/recall/pkg/utils/logging"
)

// IngestStatus reports how an ingestion request was resolved.
type IngestStatus string

const (
	StatusCreated   IngestStatus = "created"
	StatusDuplicate IngestStatus = "duplicate"
)

// IngestResult is the outcome of a single ingestion.
type IngestResult struct {
	ID     types.RecordID `json:"id"`
	Status IngestStatus   `json:"status"`
}

// Ingest normalizes a raw submission, derives its deterministic identity,
// and writes it to the vector index unless an identical record is already
// stored. Re-ingesting identical content is a successful no-op, not an
// error. The write is all-or-nothing: the embedding is computed before the
// single upsert, so no partial record is ever persisted.
func (uc *UseCases) Ingest(ctx context.Context, raw knowledge.RawRecord) (*IngestResult, error) {
	record, err := uc.svc.Normalize(raw)
	if err != nil {
		return nil, err
	}

	uc.svc.Fingerprint(record)

	// Dedup gate: an existing point with the derived ID means identical
	// content was already stored. A concurrent writer racing past this
	// check harmlessly overwrites a byte-identical payload.
	if _, err := uc.index.Get(ctx, record.ID); err == nil {
		logging.From(ctx).Debug("skipping duplicate record",
			"id", record.ID,
			"content_hash", record.ContentHash)
		return &IngestResult{ID: record.ID, Status: StatusDuplicate}, nil
	} else if !errors.Is(err, types.ErrRecordNotFound) {
		return nil, err
	}

	vector, err := uc.embedder.Embed(ctx, uc.svc.EmbeddingInput(record))
	if err != nil {
		return nil, err
	}

	record.Embedding = vector
	record.CreatedAt = time.Now().UTC()

	if err := uc.index.Upsert(ctx, record); err != nil {
		return nil, err
	}

	logging.From(ctx).Info("ingested record",
		"id", record.ID,
		"content_kind", record.ContentKind,
		"topic", record.Topic,
		"tags", record.Tags)

	return &IngestResult{ID: record.ID, Status: StatusCreated}, nil
}
