package service

import (
	"fmt"
	"strings"

	"github.com/geeta-ai/geeta-be/types"
)

// BuildCombinedContext renders the given documents into the single context
// string sent to the AI. Each document gets a header naming it so answers
// can point back at sources. No enabled documents yields the empty string.
func BuildCombinedContext(docs []*types.Document) string {
	if len(docs) == 0 {
		return ""
	}
	sections := make([]string, 0, len(docs))
	for _, doc := range docs {
		sections = append(sections, fmt.Sprintf("%s %s ---\n\n%s", DocumentSeparatorPrefix, doc.DisplayName, doc.Text))
	}
	return strings.Join(sections, "\n\n")
}
