package service

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/geeta-ai/geeta-be/types"
)

const (
	// DefaultLargeFileThreshold is the character count above which a file is
	// split into part documents on ingest.
	DefaultLargeFileThreshold = 500000

	// DefaultQueryChunkSize is the chunk size used when a combined context
	// is too large for a single AI request.
	DefaultQueryChunkSize = 20000
)

// DocumentStore holds a user's loaded documents in insertion order along
// with their enabled flags, and keeps the combined context of the enabled
// ones current across every mutation.
type DocumentStore struct {
	mu        sync.Mutex
	order     []string
	docs      map[string]*types.Document
	enabled   map[string]bool
	combined  string
	threshold int
	segmenter *Segmenter
}

func NewDocumentStore(largeFileThreshold int) *DocumentStore {
	if largeFileThreshold <= 0 {
		largeFileThreshold = DefaultLargeFileThreshold
	}
	return &DocumentStore{
		docs:      make(map[string]*types.Document),
		enabled:   make(map[string]bool),
		threshold: largeFileThreshold,
		segmenter: NewSegmenter(),
	}
}

// AddDocument stores text under the given name. Text above the threshold is
// split into part documents with ids derived from the name; smaller text is
// stored as one document whose id is the name itself. New documents start
// enabled. Returns the ids created.
func (s *DocumentStore) AddDocument(name, text string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(text) <= s.threshold {
		s.append(&types.Document{
			ID:          name,
			DisplayName: name,
			Text:        text,
		})
		s.rebuild()
		return []string{name}, nil
	}

	parts, err := s.segmenter.Segment(text, s.threshold)
	if err != nil {
		return nil, err
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))
	ids := make([]string, 0, len(parts))
	for i, part := range parts {
		id := fmt.Sprintf("%s_part_%03d", name, i+1)
		s.append(&types.Document{
			ID:          id,
			DisplayName: fmt.Sprintf("%s [Part %d/%d]", base, i+1, len(parts)),
			Text:        part,
			Origin: types.DocumentOrigin{
				Source:     name,
				Part:       i + 1,
				TotalParts: len(parts),
			},
		})
		ids = append(ids, id)
	}
	s.rebuild()
	return ids, nil
}

// Toggle sets one document's enabled flag. An unknown id is ignored.
func (s *DocumentStore) Toggle(id string, enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return
	}
	s.enabled[id] = enabled
	s.rebuild()
}

// Remove drops a document. Removing any part of a split file removes all
// parts of that file. An unknown id is ignored.
func (s *DocumentStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return
	}
	if doc.Origin.Source == "" {
		s.drop(id)
	} else {
		ids := make([]string, len(s.order))
		copy(ids, s.order)
		for _, candidate := range ids {
			if s.docs[candidate].Origin.Source == doc.Origin.Source {
				s.drop(candidate)
			}
		}
	}
	s.rebuild()
}

func (s *DocumentStore) EnableAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.docs {
		s.enabled[id] = true
	}
	s.rebuild()
}

func (s *DocumentStore) DisableAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.docs {
		s.enabled[id] = false
	}
	s.rebuild()
}

// Clear removes every document.
func (s *DocumentStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.docs = make(map[string]*types.Document)
	s.enabled = make(map[string]bool)
	s.combined = ""
}

// CombinedContext returns the current combined context of the enabled
// documents. It is precomputed on mutation, never built per read.
func (s *DocumentStore) CombinedContext() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.combined
}

// List reports every document in insertion order with its enabled flag.
func (s *DocumentStore) List() []types.DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.DocumentInfo, 0, len(s.order))
	for _, id := range s.order {
		doc := s.docs[id]
		out = append(out, types.DocumentInfo{
			ID:          doc.ID,
			DisplayName: doc.DisplayName,
			Enabled:     s.enabled[id],
		})
	}
	return out
}

// EnabledCount returns how many documents are currently enabled.
func (s *DocumentStore) EnabledCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, id := range s.order {
		if s.enabled[id] {
			count++
		}
	}
	return count
}

// Snapshot returns the documents in insertion order and the enabled ids,
// for persistence.
func (s *DocumentStore) Snapshot() ([]types.Document, []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs := make([]types.Document, 0, len(s.order))
	enabled := make([]string, 0, len(s.order))
	for _, id := range s.order {
		docs = append(docs, *s.docs[id])
		if s.enabled[id] {
			enabled = append(enabled, id)
		}
	}
	return docs, enabled
}

// Restore replaces the store contents with a persisted snapshot. Enabled
// ids that no longer match a document are dropped. The combined context is
// recomputed, never trusted from storage.
func (s *DocumentStore) Restore(docs []types.Document, enabled []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = nil
	s.docs = make(map[string]*types.Document)
	s.enabled = make(map[string]bool)
	for i := range docs {
		doc := docs[i]
		s.order = append(s.order, doc.ID)
		s.docs[doc.ID] = &doc
		s.enabled[doc.ID] = false
	}
	for _, id := range enabled {
		if _, ok := s.docs[id]; ok {
			s.enabled[id] = true
		}
	}
	s.rebuild()
}

// append adds a document at the end of the order, enabled. Re-adding an
// existing id replaces it and moves it to the end.
func (s *DocumentStore) append(doc *types.Document) {
	if _, ok := s.docs[doc.ID]; ok {
		s.drop(doc.ID)
	}
	s.order = append(s.order, doc.ID)
	s.docs[doc.ID] = doc
	s.enabled[doc.ID] = true
}

func (s *DocumentStore) drop(id string) {
	delete(s.docs, id)
	delete(s.enabled, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// rebuild recomputes the combined context from the enabled documents in
// insertion order. Callers hold the lock.
func (s *DocumentStore) rebuild() {
	var docs []*types.Document
	for _, id := range s.order {
		if s.enabled[id] {
			docs = append(docs, s.docs[id])
		}
	}
	s.combined = BuildCombinedContext(docs)
}
