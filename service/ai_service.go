package service

import (
	"context"
	"strings"
)

// Completer is the external completion capability: one prompt in, one
// answer out. Implementations may reject prompts that exceed the model's
// context window; the answer engine inspects the returned error for that
// case.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// OversizePredicate reports whether an error from a Completer means the
// prompt exceeded the model's input limit.
type OversizePredicate func(error) bool

// DefaultOversizePredicate matches the loose wording hosted completion APIs
// use for oversized input. The error taxonomy of those APIs is not
// structured, so the answer engine accepts a custom predicate instead of
// hardcoding these substrings.
func DefaultOversizePredicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context length") || strings.Contains(msg, "too long")
}
