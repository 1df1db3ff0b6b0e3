package domain

import (
	"strings"
	"testing"
)

func TestFormatContext_Empty(t *testing.T) {
	if got := FormatContext(nil); got != "" {
		t.Errorf("expected empty string for nil input, got %q", got)
	}
	if got := FormatContext([]ScoredChunk{}); got != "" {
		t.Errorf("expected empty string for empty input, got %q", got)
	}
}

func TestFormatContext_CitationLine(t *testing.T) {
	chunks := []ScoredChunk{
		{
			Chunk: &Chunk{
				Text: "The department offers graduate programs.",
				Metadata: ChunkMetadata{
					URL:   "https://dept.example.edu/programs",
					Title: "Programs",
				},
			},
			Similarity: 0.91,
		},
	}

	got := FormatContext(chunks)
	want := "The department offers graduate programs.\n[Source: Programs - https://dept.example.edu/programs]"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestFormatContext_UntitledFallback(t *testing.T) {
	chunks := []ScoredChunk{
		{
			Chunk: &Chunk{
				Text:     "Some passage.",
				Metadata: ChunkMetadata{URL: "https://dept.example.edu/page"},
			},
		},
	}

	got := FormatContext(chunks)
	if !strings.Contains(got, "[Source: Untitled - https://dept.example.edu/page]") {
		t.Errorf("expected Untitled citation, got %q", got)
	}
}

func TestFormatContext_PreservesOrder(t *testing.T) {
	chunks := []ScoredChunk{
		{Chunk: &Chunk{Text: "first", Metadata: ChunkMetadata{URL: "u1"}}, Similarity: 0.9},
		{Chunk: &Chunk{Text: "second", Metadata: ChunkMetadata{URL: "u2"}}, Similarity: 0.8},
		{Chunk: &Chunk{Text: "third", Metadata: ChunkMetadata{URL: "u3"}}, Similarity: 0.7},
	}

	got := FormatContext(chunks)
	blocks := strings.Split(got, "\n\n")
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	for i, text := range []string{"first", "second", "third"} {
		if !strings.HasPrefix(blocks[i], text) {
			t.Errorf("block %d: expected prefix %q, got %q", i, text, blocks[i])
		}
	}
}

func TestSystemPrompt_WithContext(t *testing.T) {
	got := SystemPrompt("some context block")
	if !strings.Contains(got, "some context block") {
		t.Errorf("expected context embedded in prompt, got %q", got)
	}
	if strings.Contains(got, "No relevant website content") {
		t.Error("did not expect no-context statement when context is present")
	}
}

func TestSystemPrompt_EmptyContext(t *testing.T) {
	got := SystemPrompt("")
	if !strings.Contains(got, "No relevant website content was found") {
		t.Errorf("expected explicit no-context statement, got %q", got)
	}
}

func TestSourceOf(t *testing.T) {
	sc := ScoredChunk{
		Chunk: &Chunk{
			Metadata: ChunkMetadata{URL: "https://dept.example.edu/admissions", Title: "Admissions"},
		},
		Similarity: 0.87,
	}

	src := SourceOf(sc)
	if src.Title != "Admissions" {
		t.Errorf("expected title Admissions, got %s", src.Title)
	}
	if src.URL != "https://dept.example.edu/admissions" {
		t.Errorf("unexpected url %s", src.URL)
	}
	if src.Similarity != 0.87 {
		t.Errorf("expected similarity 0.87, got %f", src.Similarity)
	}
}

func TestSourceOf_UntitledFallback(t *testing.T) {
	sc := ScoredChunk{Chunk: &Chunk{Metadata: ChunkMetadata{URL: "u"}}}
	if src := SourceOf(sc); src.Title != "Untitled" {
		t.Errorf("expected Untitled, got %s", src.Title)
	}
}
