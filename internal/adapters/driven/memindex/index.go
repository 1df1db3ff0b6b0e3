// Package memindex provides a brute-force in-memory similarity index over
// the corpus snapshot. Every query is a full linear scan, O(n*d); fine at
// the corpus sizes this service runs with (tens to low hundreds of chunks).
// If the corpus grows materially this is the integration point for a real
// vector index.
package memindex

import (
	"math"
	"sort"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
	"github.com/openedu-labs/deptchat-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SearchIndex = (*Index)(nil)

// Index holds the loaded corpus. Immutable after construction, so
// concurrent TopK calls need no synchronization.
type Index struct {
	chunks []domain.Chunk
}

// New builds an index over the given chunks. Entries without an embedding
// are skipped: they can never be ranked and would only poison the scan.
func New(chunks []domain.Chunk) *Index {
	idx := &Index{chunks: make([]domain.Chunk, 0, len(chunks))}
	for _, c := range chunks {
		if c.HasEmbedding() {
			idx.chunks = append(idx.chunks, c)
		}
	}
	return idx
}

// Len returns the number of indexed chunks
func (idx *Index) Len() int {
	return len(idx.chunks)
}

// TopK scores every chunk against the query vector and returns the
// min(k, corpus size) best, ordered by non-increasing similarity.
// Equal scores keep their corpus order so results stay deterministic.
func (idx *Index) TopK(query []float32, k int) []domain.ScoredChunk {
	if k <= 0 || len(idx.chunks) == 0 {
		return nil
	}

	scored := make([]domain.ScoredChunk, len(idx.chunks))
	for i := range idx.chunks {
		scored[i] = domain.ScoredChunk{
			Chunk:      &idx.chunks[i],
			Similarity: cosineSimilarity(query, idx.chunks[i].Embedding),
		}
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Similarity > scored[b].Similarity
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

// cosineSimilarity computes dot(a,b) / (||a|| * ||b||). A zero-norm vector
// on either side yields 0, never NaN, so the sort comparator stays sane.
// Mismatched lengths are scored over the shared prefix.
func cosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
