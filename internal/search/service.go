package search

import "log"

// Service is the facade that tries Meilisearch first and falls back to the
// in-memory matcher.
type Service struct {
	meili    *Meili
	fallback *Memory
}

// NewService creates the search facade. meili may be nil when Meilisearch is
// not configured; fallback must not be.
func NewService(meili *Meili, fallback *Memory) *Service {
	return &Service{meili: meili, fallback: fallback}
}

// Search tries Meilisearch if healthy, otherwise the in-memory matcher.
func (s *Service) Search(q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to in-memory: %v", err)
	}

	results, total, err := s.fallback.Search(q)
	if err != nil {
		log.Printf("search: fallback error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// Reindex pushes the gallery records to Meilisearch. Called on startup; a
// no-op when Meilisearch is absent or down.
func (s *Service) Reindex(records []TemplateRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	if err := s.meili.IndexTemplates(records); err != nil {
		log.Printf("search: reindex templates: %v", err)
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}
