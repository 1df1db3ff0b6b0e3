package domain

// Chunk is a passage of indexed website content paired with its embedding.
// Chunks are produced offline by the crawler job, loaded once at startup and
// never mutated afterwards.
type Chunk struct {
	Text      string        `json:"text"`
	Embedding []float32     `json:"embedding"`
	Metadata  ChunkMetadata `json:"metadata"`
}

// ChunkMetadata carries provenance for citation display.
// It is never used for ranking.
type ChunkMetadata struct {
	URL     string `json:"url"`
	Title   string `json:"title,omitempty"`
	Heading string `json:"heading,omitempty"`
}

// HasEmbedding reports whether the chunk carries an embedding vector.
// Snapshot files may contain entries whose embedding generation failed.
func (c *Chunk) HasEmbedding() bool {
	return len(c.Embedding) > 0
}

// ScoredChunk pairs a chunk with its similarity to a query vector.
// Constructed fresh per request and discarded once the answer is formed.
type ScoredChunk struct {
	Chunk      *Chunk  `json:"chunk"`
	Similarity float64 `json:"similarity"`
}

// Source identifies a cited chunk in an answer.
type Source struct {
	Title      string  `json:"title"`
	URL        string  `json:"url"`
	Similarity float64 `json:"similarity"`
}

// Usage is the token accounting reported by the generation provider.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Answer is the result of one chat request.
type Answer struct {
	Response string   `json:"response"`
	Sources  []Source `json:"sources"`
	Usage    Usage    `json:"usage"`
}

// SourceOf derives the citation entry for a scored chunk.
func SourceOf(sc ScoredChunk) Source {
	title := sc.Chunk.Metadata.Title
	if title == "" {
		title = "Untitled"
	}
	return Source{
		Title:      title,
		URL:        sc.Chunk.Metadata.URL,
		Similarity: sc.Similarity,
	}
}
