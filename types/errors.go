package types

import "errors"

var (
	// ErrUnsupportedFormat rejects file extensions outside pdf/docx/txt/md
	// before any extraction is attempted.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrInvalidChunkSize rejects non-positive segmenter size bounds.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")
)
