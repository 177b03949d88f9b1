package service_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geeta-ai/geeta-be/service"
	"github.com/geeta-ai/geeta-be/types"
)

func TestSegmentRejectsNonPositiveSize(t *testing.T) {
	seg := service.NewSegmenter()

	_, err := seg.Segment("some text", 0)
	require.ErrorIs(t, err, types.ErrInvalidChunkSize)

	_, err = seg.Segment("some text", -5)
	require.ErrorIs(t, err, types.ErrInvalidChunkSize)
}

func TestSegmentEmptyInput(t *testing.T) {
	seg := service.NewSegmenter()

	chunks, err := seg.Segment("", 100)
	require.NoError(t, err)
	require.Nil(t, chunks)
}

func TestSegmentShortInputSingleChunk(t *testing.T) {
	seg := service.NewSegmenter()

	chunks, err := seg.Segment("hello world", 100)
	require.NoError(t, err)
	require.Equal(t, []string{"hello world"}, chunks)
}

func TestSegmentRoundTripAndBound(t *testing.T) {
	seg := service.NewSegmenter()

	text := strings.Repeat("First sentence. Second sentence.\n\nNew paragraph here.\nAnother line. ", 50)
	chunks, err := seg.Segment(text, 120)
	require.NoError(t, err)
	require.Greater(t, len(chunks), 1)

	for i, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 120, "chunk %d exceeds bound", i)
		require.NotEmpty(t, chunk)
	}
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestSegmentPrefersParagraphBreak(t *testing.T) {
	seg := service.NewSegmenter()

	text := "aaaa. bbbb\n\ncccc dddd eeee ffff gggg"
	chunks, err := seg.Segment(text, 20)
	require.NoError(t, err)

	// The paragraph break outranks the sentence end inside the window.
	require.Equal(t, "aaaa. bbbb\n\n", chunks[0])
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestSegmentKeepsDelimiterWithPrecedingChunk(t *testing.T) {
	seg := service.NewSegmenter()

	text := "one two three. four five six seven eight"
	chunks, err := seg.Segment(text, 20)
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(chunks[0], ". "))
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestSegmentDocumentMarkerStartsNextChunk(t *testing.T) {
	seg := service.NewSegmenter()

	text := "intro text here. more words --- Document: b.txt ---\n\nbody of second doc"
	chunks, err := seg.Segment(text, 40)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(chunks[1], service.DocumentSeparatorPrefix))
	require.Equal(t, text, strings.Join(chunks, ""))
}

func TestSegmentHardCutWithoutBoundaries(t *testing.T) {
	seg := service.NewSegmenter()

	text := strings.Repeat("x", 250)
	chunks, err := seg.Segment(text, 100)
	require.NoError(t, err)
	require.Equal(t, []string{
		strings.Repeat("x", 100),
		strings.Repeat("x", 100),
		strings.Repeat("x", 50),
	}, chunks)
}

func TestSegmentBoundaryAtWindowStartIgnored(t *testing.T) {
	seg := service.NewSegmenter()

	// The only delimiter sits at position 0 of the scan window, which must
	// not count as a split or the segmenter would stall.
	text := "\n\n" + strings.Repeat("y", 50)
	chunks, err := seg.Segment(text, 10)
	require.NoError(t, err)
	require.Equal(t, text, strings.Join(chunks, ""))
	for _, chunk := range chunks {
		require.LessOrEqual(t, len(chunk), 10)
	}
}
