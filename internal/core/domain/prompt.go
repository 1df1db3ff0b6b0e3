package domain

import "strings"

// FormatContext renders retrieved chunks into a single prompt-ready string.
// Each chunk becomes its text followed by a citation line, blocks separated
// by a blank line. Order is preserved from the ranker: generation models
// weight earlier context more heavily, so callers must not re-sort.
func FormatContext(chunks []ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(chunks))
	for _, sc := range chunks {
		title := sc.Chunk.Metadata.Title
		if title == "" {
			title = "Untitled"
		}
		citation := "[Source: " + title + " - " + sc.Chunk.Metadata.URL + "]"
		blocks = append(blocks, sc.Chunk.Text+"\n"+citation)
	}
	return strings.Join(blocks, "\n\n")
}

// SystemPrompt builds the fixed grounding instruction for the generation
// call. An empty context is stated explicitly rather than silently omitted,
// so the model knows it has nothing to cite.
func SystemPrompt(context string) string {
	var b strings.Builder
	b.WriteString("You are a helpful assistant for the university department website. ")
	b.WriteString("Use the following context to help answer the user's question. ")
	b.WriteString("Include relevant source links in your response when appropriate:\n\n")
	if context == "" {
		b.WriteString("No relevant website content was found for this question. ")
		b.WriteString("Say so and suggest contacting the department directly.")
	} else {
		b.WriteString(context)
	}
	return b.String()
}
