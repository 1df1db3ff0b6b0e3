package memindex

import (
	"math"
	"testing"

	"github.com/openedu-labs/deptchat-core/internal/core/domain"
)

func chunk(text string, embedding []float32) domain.Chunk {
	return domain.Chunk{
		Text:      text,
		Embedding: embedding,
		Metadata:  domain.ChunkMetadata{URL: "https://dept.example.edu/" + text},
	}
}

func TestCosineSimilarity_Symmetry(t *testing.T) {
	a := []float32{1, 2, 3}
	b := []float32{-2, 0.5, 4}

	ab := cosineSimilarity(a, b)
	ba := cosineSimilarity(b, a)
	if ab != ba {
		t.Errorf("expected symmetry, got %f and %f", ab, ba)
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	a := []float32{0.3, -1.2, 4.5, 2}

	got := cosineSimilarity(a, a)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("expected similarity 1 with itself, got %f", got)
	}
}

func TestCosineSimilarity_ZeroVector(t *testing.T) {
	zero := []float32{0, 0, 0}
	a := []float32{1, 2, 3}

	if got := cosineSimilarity(zero, a); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
	if got := cosineSimilarity(a, zero); got != 0 {
		t.Errorf("expected 0 for zero vector, got %f", got)
	}
	if got := cosineSimilarity(zero, zero); got != 0 {
		t.Errorf("expected 0 for two zero vectors, got %f", got)
	}
	if math.IsNaN(cosineSimilarity(zero, a)) {
		t.Error("similarity must never be NaN")
	}
}

func TestCosineSimilarity_OppositeIsMinusOne(t *testing.T) {
	a := []float32{1, 1}
	b := []float32{-1, -1}

	got := cosineSimilarity(a, b)
	if math.Abs(got+1.0) > 1e-9 {
		t.Errorf("expected -1 for opposite vectors, got %f", got)
	}
}

func TestIndex_TopK_Ordering(t *testing.T) {
	idx := New([]domain.Chunk{
		chunk("programs", []float32{1, 0, 0}),
		chunk("faculty", []float32{0, 1, 0}),
		chunk("admissions", []float32{0, 0, 1}),
	})

	// Query pointing almost exactly at the admissions chunk.
	results := idx.TopK([]float32{0.1, 0.1, 0.9}, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "admissions" {
		t.Errorf("expected admissions first, got %s", results[0].Chunk.Text)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Similarity > results[i-1].Similarity {
			t.Errorf("results not in non-increasing order at %d", i)
		}
	}
}

func TestIndex_TopK_StableTies(t *testing.T) {
	// Identical embeddings: ties must keep corpus order.
	idx := New([]domain.Chunk{
		chunk("first", []float32{1, 0}),
		chunk("second", []float32{1, 0}),
		chunk("third", []float32{1, 0}),
	})

	results := idx.TopK([]float32{1, 0}, 3)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, want := range []string{"first", "second", "third"} {
		if results[i].Chunk.Text != want {
			t.Errorf("position %d: expected %s, got %s", i, want, results[i].Chunk.Text)
		}
	}
}

func TestIndex_TopK_EmptyCorpus(t *testing.T) {
	idx := New(nil)

	results := idx.TopK([]float32{1, 2, 3}, 3)
	if len(results) != 0 {
		t.Errorf("expected empty result for empty corpus, got %d", len(results))
	}
}

func TestIndex_TopK_KLargerThanCorpus(t *testing.T) {
	idx := New([]domain.Chunk{
		chunk("only", []float32{1, 0}),
	})

	results := idx.TopK([]float32{1, 0}, 5)
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestIndex_TopK_ZeroK(t *testing.T) {
	idx := New([]domain.Chunk{chunk("a", []float32{1})})

	if results := idx.TopK([]float32{1}, 0); len(results) != 0 {
		t.Errorf("expected no results for k=0, got %d", len(results))
	}
}

func TestNew_SkipsChunksWithoutEmbedding(t *testing.T) {
	idx := New([]domain.Chunk{
		chunk("good", []float32{1, 0}),
		{Text: "no embedding", Metadata: domain.ChunkMetadata{URL: "u"}},
		chunk("also good", []float32{0, 1}),
	})

	if idx.Len() != 2 {
		t.Errorf("expected 2 indexed chunks, got %d", idx.Len())
	}
	results := idx.TopK([]float32{1, 1}, 10)
	for _, r := range results {
		if r.Chunk.Text == "no embedding" {
			t.Error("embedding-less chunk must never be ranked")
		}
	}
}
