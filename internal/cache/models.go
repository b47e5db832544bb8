package cache

import "github.com/Abdulmumin1/lmfetch/internal/chunker"

// ChunkRow is a persisted chunk row, independent of chunker.Chunk so the
// cache schema can evolve without dragging the in-memory pipeline type
// along with it.
type ChunkRow struct {
	Content   string
	StartLine int
	EndLine   int
	Kind      string
	Name      string
}

// ToChunk converts a persisted row back into a chunker.Chunk for a given
// file path/language, recomputing its stable id and token count.
func (r ChunkRow) ToChunk(filePath, language string, counter chunker.TokenCounter) chunker.Chunk {
	return chunker.Chunk{
		ID:        chunker.ChunkID(filePath, r.StartLine-1),
		FilePath:  filePath,
		Content:   r.Content,
		StartLine: r.StartLine,
		EndLine:   r.EndLine,
		Kind:      chunker.Kind(r.Kind),
		Name:      r.Name,
		Language:  language,
		Tokens:    counter.Count(r.Content),
	}
}

// FromChunk converts a chunker.Chunk into the row shape the cache stores.
func FromChunk(c chunker.Chunk) ChunkRow {
	return ChunkRow{
		Content:   c.Content,
		StartLine: c.StartLine,
		EndLine:   c.EndLine,
		Kind:      string(c.Kind),
		Name:      c.Name,
	}
}
