package services

import (
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"

	"github.com/custodia-labs/clipr-cli/internal/core/domain"
	"github.com/custodia-labs/clipr-cli/internal/core/ports/driving"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// MaxResults caps ranked query output.
const MaxResults = 100

// SearchService is a disposable fuzzy index over the current clip
// snapshot. It owns no state of record and is rebuilt wholesale after
// every visible history mutation.
type SearchService struct {
	mu    sync.RWMutex
	ids   []uint64
	texts []string
}

// NewSearchService creates an empty index.
func NewSearchService() *SearchService {
	return &SearchService{}
}

// Rebuild replaces the index contents from a clip snapshot.
func (s *SearchService) Rebuild(clips []domain.Clip) {
	ids := make([]uint64, len(clips))
	texts := make([]string, len(clips))
	for i, c := range clips {
		ids[i] = c.ID
		texts[i] = c.Content.SearchText()
	}

	s.mu.Lock()
	s.ids = ids
	s.texts = texts
	s.mu.Unlock()
}

// Query returns ranked clip IDs, best match first, capped at MaxResults.
// An empty query returns the snapshot order. Substring matches rank ahead
// of scattered subsequence matches.
func (s *SearchService) Query(text string) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if strings.TrimSpace(text) == "" {
		out := make([]uint64, 0, min(len(s.ids), MaxResults))
		for _, id := range s.ids {
			if len(out) == MaxResults {
				break
			}
			out = append(out, id)
		}
		return out
	}

	// Smart case: a query with upper-case runes ranks case-sensitive
	// substring matches ahead of case-folded ones.
	var caseExact, exact, fuzzed []uint64
	lower := strings.ToLower(text)
	matched := make(map[int]bool)
	if lower != text {
		for i, t := range s.texts {
			if strings.Contains(t, text) {
				caseExact = append(caseExact, s.ids[i])
				matched[i] = true
			}
		}
	}
	for i, t := range s.texts {
		if matched[i] {
			continue
		}
		if strings.Contains(strings.ToLower(t), lower) {
			exact = append(exact, s.ids[i])
			matched[i] = true
		}
	}

	for _, m := range fuzzy.Find(text, s.texts) {
		if matched[m.Index] {
			continue
		}
		fuzzed = append(fuzzed, s.ids[m.Index])
	}

	out := append(append(caseExact, exact...), fuzzed...)
	if len(out) > MaxResults {
		out = out[:MaxResults]
	}
	return out
}
