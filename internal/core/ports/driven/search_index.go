package driven

import (
	"github.com/openedu-labs/deptchat-core/internal/core/domain"
)

// SearchIndex ranks corpus chunks against a query embedding.
// The index is read-only after construction, so lookups need no context
// and no locking.
type SearchIndex interface {
	// TopK returns the min(k, corpus size) most similar chunks,
	// ordered by non-increasing similarity.
	TopK(query []float32, k int) []domain.ScoredChunk

	// Len returns the number of indexed chunks
	Len() int
}
