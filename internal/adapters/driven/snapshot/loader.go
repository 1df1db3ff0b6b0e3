// Package snapshot reads the corpus file produced by the offline crawler
// and embedding job. The file format has drifted across producer versions:
// older snapshots carry a nested "metadata" object, newer ones flatten
// url/title/heading onto the record. Both shapes are normalized here so
// the rest of the system only ever sees domain.Chunk.
package snapshot

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
)

// record is one raw snapshot entry, tolerant of both producer shapes.
// Entries whose embedding generation failed are saved by the producer with
// a null embedding and an error string; those are dropped on load.
type record struct {
	Text      string                `json:"text"`
	Embedding []float32             `json:"embedding"`
	Metadata  *domain.ChunkMetadata `json:"metadata"`
	URL       string                `json:"url"`
	Title     string                `json:"title"`
	Heading   string                `json:"heading"`
	Error     string                `json:"error"`
}

// normalize folds a raw record into the canonical chunk representation.
// Nested metadata wins; flattened fields fill whatever it left empty.
func (r *record) normalize() domain.Chunk {
	c := domain.Chunk{
		Text:      r.Text,
		Embedding: r.Embedding,
	}
	if r.Metadata != nil {
		c.Metadata = *r.Metadata
	}
	if c.Metadata.URL == "" {
		c.Metadata.URL = r.URL
	}
	if c.Metadata.Title == "" {
		c.Metadata.Title = r.Title
	}
	if c.Metadata.Heading == "" {
		c.Metadata.Heading = r.Heading
	}
	return c
}

// Load reads a corpus snapshot from path. A missing or unparsable file is
// reported as an error; callers treat that as the empty-corpus degraded
// mode rather than a fatal condition. Entries without an embedding are
// skipped per-entry and never abort the load.
func Load(path string) ([]domain.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", path, err)
	}

	chunks := make([]domain.Chunk, 0, len(records))
	skipped := 0
	for _, r := range records {
		if len(r.Embedding) == 0 {
			skipped++
			continue
		}
		chunks = append(chunks, r.normalize())
	}
	if skipped > 0 {
		slog.Warn("snapshot entries without embeddings skipped",
			"path", path, "skipped", skipped, "loaded", len(chunks))
	}

	return chunks, nil
}
