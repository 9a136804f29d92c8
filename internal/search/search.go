// Package search provides full-text search over the template gallery.
// Meilisearch serves queries when reachable; an in-memory matcher over the
// builtin gallery answers otherwise, so template browsing never breaks when
// the search backend is down.
package search

// Result is a single gallery hit returned to the caller.
type Result struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Snippet     string  `json:"snippet,omitempty"`
	Rating      float64 `json:"rating"`
	Pro         bool    `json:"pro"`
}

// Query describes a gallery search request.
type Query struct {
	Text     string
	Category string // empty = all categories
	FreeOnly bool
	Limit    int
	Offset   int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// Searcher can execute a gallery search.
type Searcher interface {
	Search(q Query) ([]Result, int, error)
	Healthy() bool
}

// TemplateRecord is the data we index for one gallery entry.
type TemplateRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
	Rating      float64  `json:"rating"`
	Downloads   int      `json:"downloads"`
	Pro         bool     `json:"pro"`
}
