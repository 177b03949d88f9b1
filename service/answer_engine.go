package service

import (
	"context"
	"fmt"
	"log"
	"strings"
)

const (
	// NoDocumentsMessage is returned for an empty context without calling
	// the completion API.
	NoDocumentsMessage = "No documents loaded. Please upload documents first."

	// NoRelevantInfoMessage is returned when every chunk of the fallback
	// reported the sentinel.
	NoRelevantInfoMessage = "No relevant information found in the documents."

	// chunkSentinel is the phrase a per-chunk prompt instructs the model to
	// reply with when a chunk holds nothing useful. Responses containing it
	// (case-insensitively) are filtered out of the partial-answer set.
	chunkSentinel = "no relevant information"
)

// ProgressFunc receives the number of processed chunks and the total while
// the chunked fallback runs.
type ProgressFunc func(processed, total int)

// AnswerEngine answers a question against a combined document context. It
// first asks the completion API directly; when the context is too large for
// one call it falls back to querying boundary-aware chunks independently
// and synthesizing the partial answers. Every path returns a displayable
// string; errors never escape the engine.
type AnswerEngine struct {
	completer  Completer
	segmenter  *Segmenter
	chunkSize  int
	isOversize OversizePredicate
}

func NewAnswerEngine(completer Completer, queryChunkSize int) *AnswerEngine {
	if queryChunkSize <= 0 {
		queryChunkSize = DefaultQueryChunkSize
	}
	return &AnswerEngine{
		completer:  completer,
		segmenter:  NewSegmenter(),
		chunkSize:  queryChunkSize,
		isOversize: DefaultOversizePredicate,
	}
}

// SetOversizePredicate replaces the heuristic that decides whether a failed
// direct call should be retried through the chunked fallback.
func (e *AnswerEngine) SetOversizePredicate(p OversizePredicate) {
	if p != nil {
		e.isOversize = p
	}
}

func (e *AnswerEngine) Answer(ctx context.Context, question, docContext string) string {
	return e.AnswerWithProgress(ctx, question, docContext, nil)
}

// AnswerWithProgress answers the question against docContext, reporting
// chunked-fallback progress through the optional callback.
func (e *AnswerEngine) AnswerWithProgress(ctx context.Context, question, docContext string, progress ProgressFunc) string {
	if docContext == "" {
		return NoDocumentsMessage
	}

	answer, err := e.completer.Complete(ctx, e.directPrompt(question, docContext))
	if err == nil {
		return answer
	}
	if !e.isOversize(err) {
		return fmt.Sprintf("Error generating answer: %v", err)
	}
	log.Printf("Direct completion rejected as oversized, retrying in %d-character chunks", e.chunkSize)
	return e.answerChunked(ctx, question, docContext, progress)
}

// answerChunked queries each chunk of the context independently, filters
// out sentinel responses, and asks the model to synthesize the survivors.
// A failed chunk is skipped, never fatal.
func (e *AnswerEngine) answerChunked(ctx context.Context, question, docContext string, progress ProgressFunc) string {
	chunks, err := e.segmenter.Segment(docContext, e.chunkSize)
	if err != nil {
		return fmt.Sprintf("Error generating answer: %v", err)
	}

	var partials []string
	for i, chunk := range chunks {
		resp, err := e.completer.Complete(ctx, e.chunkPrompt(question, chunk))
		if err != nil {
			log.Printf("Chunk %d/%d failed: %v", i+1, len(chunks), err)
		} else if !strings.Contains(strings.ToLower(resp), chunkSentinel) {
			partials = append(partials, resp)
		}
		if progress != nil {
			progress(i+1, len(chunks))
		}
	}

	if len(partials) == 0 {
		return NoRelevantInfoMessage
	}

	final, err := e.completer.Complete(ctx, e.reducePrompt(question, partials))
	if err != nil {
		log.Printf("Synthesis call failed, returning first partial answer: %v", err)
		return partials[0]
	}
	return final
}

func (e *AnswerEngine) directPrompt(question, docContext string) string {
	return fmt.Sprintf(`Based EXCLUSIVELY on the following document content, answer the question below.

DOCUMENT CONTENT:
%s

QUESTION: %s

Instructions:
- Answer using ONLY information from the documents
- Be comprehensive and accurate
- If the answer cannot be found in the documents, say "The documents do not contain information about this"
- Provide specific details and quotes when possible
- If multiple documents contain relevant information, synthesize the information`, docContext, question)
}

func (e *AnswerEngine) chunkPrompt(question, chunk string) string {
	return fmt.Sprintf(`Based on this portion of the documents, answer: %s

DOCUMENT PORTION:
%s

Provide relevant information from this portion. If this portion doesn't contain relevant information, say "No relevant information in this portion".`, question, chunk)
}

func (e *AnswerEngine) reducePrompt(question string, partials []string) string {
	return fmt.Sprintf(`Combine these partial answers about the question: %q

PARTIAL ANSWERS:
%s

Provide a comprehensive final answer that synthesizes all the information:`, question, strings.Join(partials, " "))
}
