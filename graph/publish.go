// Package graph publishes validation reports and indexed code entities
// to the knowledge-graph ingest stream over NATS.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/semshapes/astindex"
	"github.com/c360studio/semshapes/rdf"
	"github.com/c360studio/semshapes/report"
)

// IngestSubject is the stream subject for graph ingestion.
const IngestSubject = "graph.ingest.entity"

// EntityIngestMessage is the wire format for graph ingestion, shared
// with the other components feeding the same stream.
type EntityIngestMessage struct {
	ID        string           `json:"id"`
	Triples   []message.Triple `json:"triples"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// PublishReport publishes a validation report's graph form as one entity
// keyed by the run identifier. A nil client skips publishing so callers
// without a broker degrade gracefully.
func PublishReport(ctx context.Context, nc *natsclient.Client, rep *report.Report, runID string) error {
	if nc == nil {
		return nil
	}

	entityID := ReportEntityID(runID)
	now := time.Now()

	triples := convertTriples(rep.Graph().Triples(), "semshapes.validate", now)
	if err := publishEntity(ctx, nc, entityID, triples, now); err != nil {
		return fmt.Errorf("publish validation report: %w", err)
	}
	return nil
}

// PublishIndex publishes every extracted file result as one entity per
// module. A nil client skips publishing.
func PublishIndex(ctx context.Context, nc *natsclient.Client, results []*astindex.FileResult) error {
	if nc == nil {
		return nil
	}

	now := time.Now()
	for _, res := range results {
		triples := convertTriples(res.Triples(), "semshapes.index", now)
		if err := publishEntity(ctx, nc, res.Module.IRI, triples, now); err != nil {
			return fmt.Errorf("publish indexed module %s: %w", res.Path, err)
		}
	}
	return nil
}

func publishEntity(ctx context.Context, nc *natsclient.Client, entityID string, triples []message.Triple, now time.Time) error {
	msg := EntityIngestMessage{
		ID:        entityID,
		Triples:   triples,
		UpdatedAt: now,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal entity: %w", err)
	}
	if err := nc.PublishToStream(ctx, IngestSubject, data); err != nil {
		return fmt.Errorf("publish entity: %w", err)
	}
	return nil
}

// convertTriples maps rdf triples to the stream's triple format.
// Literals contribute their lexical form; IRIs and blank nodes their
// identifier.
func convertTriples(triples []rdf.Triple, source string, now time.Time) []message.Triple {
	out := make([]message.Triple, 0, len(triples))
	for _, t := range triples {
		out = append(out, message.Triple{
			Subject:    t.Subject.Value,
			Predicate:  t.Predicate.Value,
			Object:     objectValue(t.Object),
			Source:     source,
			Timestamp:  now,
			Confidence: 1.0,
		})
	}
	return out
}

func objectValue(t rdf.Term) any {
	if t.IsLiteral() {
		return t.Value
	}
	return t.String()
}

// ReportEntityID derives a stable entity ID for a validation run.
func ReportEntityID(runID string) string {
	return fmt.Sprintf("semshapes.local.validation.report.%s", runID)
}
