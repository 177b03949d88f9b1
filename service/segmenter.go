package service

import (
	"strings"

	"github.com/geeta-ai/geeta-be/types"
)

// DocumentSeparatorPrefix opens every document section in a combined
// context. The segmenter treats it as the strongest split point so a chunk
// never starts mid-header.
const DocumentSeparatorPrefix = "--- Document:"

// boundaryDelims are the split points tried after the document marker, in
// priority order. A match keeps the delimiter with the preceding chunk.
var boundaryDelims = []string{"\n\n", ". ", "\n"}

// Segmenter cuts text into chunks of at most maxSize bytes, preferring to
// cut on document markers, paragraph breaks, sentence ends, then line
// breaks. Concatenating the chunks reproduces the input exactly.
type Segmenter struct{}

func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

func (s *Segmenter) Segment(text string, maxSize int) ([]string, error) {
	if maxSize <= 0 {
		return nil, types.ErrInvalidChunkSize
	}
	if text == "" {
		return nil, nil
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + maxSize
		if end >= len(text) {
			chunks = append(chunks, text[start:])
			break
		}
		end = s.findBoundary(text, start, end)
		chunks = append(chunks, text[start:end])
		start = end
	}
	return chunks, nil
}

// findBoundary scans the window backwards for the best split point. A match
// at exactly the window start counts as no match, so progress is always
// made. With no boundary in the window the chunk is cut hard at end.
func (s *Segmenter) findBoundary(text string, start, end int) int {
	window := text[start:end]
	if p := strings.LastIndex(window, DocumentSeparatorPrefix); p > 0 {
		return start + p
	}
	for _, delim := range boundaryDelims {
		if p := strings.LastIndex(window, delim); p > 0 {
			return start + p + len(delim)
		}
	}
	return end
}
