package search

import "strings"

// Memory is the fallback Searcher: substring matching over an in-process
// record set. It serves the builtin gallery when Meilisearch is down and is
// always healthy.
type Memory struct {
	records []TemplateRecord
}

// NewMemory builds the fallback over the given records.
func NewMemory(records []TemplateRecord) *Memory {
	return &Memory{records: append([]TemplateRecord(nil), records...)}
}

// Healthy always reports true.
func (m *Memory) Healthy() bool { return true }

// Search filters by category and pro flag, then matches the query text
// case-insensitively against name, description, category and features. An
// empty query matches everything.
func (m *Memory) Search(q Query) ([]Result, int, error) {
	text := strings.ToLower(strings.TrimSpace(q.Text))

	var matched []Result
	for _, record := range m.records {
		if q.Category != "" && record.Category != q.Category {
			continue
		}
		if q.FreeOnly && record.Pro {
			continue
		}
		if text != "" && !matches(record, text) {
			continue
		}
		matched = append(matched, Result{
			ID:          record.ID,
			Name:        record.Name,
			Category:    record.Category,
			Description: record.Description,
			Rating:      record.Rating,
			Pro:         record.Pro,
		})
	}

	total := len(matched)
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func matches(record TemplateRecord, text string) bool {
	if strings.Contains(strings.ToLower(record.Name), text) ||
		strings.Contains(strings.ToLower(record.Description), text) ||
		strings.Contains(strings.ToLower(record.Category), text) {
		return true
	}
	for _, feature := range record.Features {
		if strings.Contains(strings.ToLower(feature), text) {
			return true
		}
	}
	return false
}
