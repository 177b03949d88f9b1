package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeta-ai/geeta-be/service"
)

// fakeCompleter scripts responses per call. A nil error entry returns the
// paired response.
type fakeCompleter struct {
	calls     int
	prompts   []string
	responses []fakeResponse
}

type fakeResponse struct {
	text string
	err  error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	idx := f.calls
	f.calls++
	if idx >= len(f.responses) {
		return "", errors.New("unexpected call")
	}
	r := f.responses[idx]
	return r.text, r.err
}

func TestAnswerEmptyContextSkipsAPI(t *testing.T) {
	fake := &fakeCompleter{}
	engine := service.NewAnswerEngine(fake, 100)

	answer := engine.Answer(context.Background(), "anything?", "")
	require.Equal(t, service.NoDocumentsMessage, answer)
	require.Zero(t, fake.calls)
}

func TestAnswerDirectSuccess(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{
		{text: "the answer"},
	}}
	engine := service.NewAnswerEngine(fake, 100)

	answer := engine.Answer(context.Background(), "q?", "--- Document: a.txt ---\n\ncontent")
	require.Equal(t, "the answer", answer)
	require.Equal(t, 1, fake.calls)
	require.Contains(t, fake.prompts[0], "content")
	require.Contains(t, fake.prompts[0], "q?")
}

func TestAnswerNonOversizeErrorReturnsErrorString(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("connection refused")},
	}}
	engine := service.NewAnswerEngine(fake, 100)

	answer := engine.Answer(context.Background(), "q?", "some context")
	require.Equal(t, "Error generating answer: connection refused", answer)
	require.Equal(t, 1, fake.calls)
}

func TestAnswerOversizeFallsBackToChunks(t *testing.T) {
	docContext := strings.Repeat("First fact here. ", 10) // 170 chars, 2 chunks at 100

	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("maximum context length exceeded")},
		{text: "fact from chunk one"},
		{text: "fact from chunk two"},
		{text: "combined final answer"},
	}}
	engine := service.NewAnswerEngine(fake, 100)

	var progressCalls [][2]int
	answer := engine.AnswerWithProgress(context.Background(), "q?", docContext, func(p, total int) {
		progressCalls = append(progressCalls, [2]int{p, total})
	})

	require.Equal(t, "combined final answer", answer)
	require.Equal(t, 4, fake.calls)
	require.Equal(t, [][2]int{{1, 2}, {2, 2}}, progressCalls)

	// The synthesis prompt joins the partials with spaces.
	require.Contains(t, fake.prompts[3], "fact from chunk one fact from chunk two")
}

func TestAnswerAllChunksIrrelevant(t *testing.T) {
	docContext := strings.Repeat("Nothing useful said. ", 8)

	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("input too long")},
		{text: "No relevant information in this portion"},
		{text: "no relevant information in this portion."},
		{text: "No relevant information in this portion"},
	}}
	engine := service.NewAnswerEngine(fake, 80)

	answer := engine.Answer(context.Background(), "q?", docContext)
	require.Equal(t, service.NoRelevantInfoMessage, answer)
	// No synthesis call happens when every chunk was filtered.
	require.Equal(t, 1+3, fake.calls)
}

func TestAnswerFailedChunkSkipped(t *testing.T) {
	docContext := strings.Repeat("A useful fact appears. ", 8)

	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("context length exceeded")},
		{err: errors.New("rate limited")},
		{text: "surviving partial"},
		{text: "No relevant information in this portion"},
		{text: "synthesized"},
	}}
	engine := service.NewAnswerEngine(fake, 80)

	answer := engine.Answer(context.Background(), "q?", docContext)
	require.Equal(t, "synthesized", answer)
}

func TestAnswerReduceFailureReturnsFirstPartial(t *testing.T) {
	docContext := strings.Repeat("Plenty of facts here. ", 8)

	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("prompt is too long")},
		{text: "first partial"},
		{text: "second partial"},
		{text: "third partial"},
		{err: errors.New("synthesis failed")},
	}}
	engine := service.NewAnswerEngine(fake, 80)

	answer := engine.Answer(context.Background(), "q?", docContext)
	require.Equal(t, "first partial", answer)
}

func TestSetOversizePredicate(t *testing.T) {
	fake := &fakeCompleter{responses: []fakeResponse{
		{err: errors.New("custom overflow marker")},
		{text: "partial"},
		{text: "final"},
	}}
	engine := service.NewAnswerEngine(fake, 1000)
	engine.SetOversizePredicate(func(err error) bool {
		return strings.Contains(err.Error(), "custom overflow marker")
	})

	answer := engine.Answer(context.Background(), "q?", "short context")
	require.Equal(t, "final", answer)
}

func TestDefaultOversizePredicate(t *testing.T) {
	require.False(t, service.DefaultOversizePredicate(nil))
	require.False(t, service.DefaultOversizePredicate(errors.New("rate limited")))
	require.True(t, service.DefaultOversizePredicate(errors.New("This model's maximum context length is 8192 tokens")))
	require.True(t, service.DefaultOversizePredicate(errors.New("prompt is TOO LONG")))
}
