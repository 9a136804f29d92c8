package editor

import "sort"

// SortedByOrder returns the sections sorted ascending by Order. The input is
// not modified; the result shares section values with it, so callers that
// mutate must clone first.
func SortedByOrder(sections []Section) []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Renumber assigns consecutive integer orders 0..N-1 following the position
// each id holds in wanted. IDs missing from wanted keep their relative render
// order and are placed after the listed ones. Run after every structural
// change so render order is always a plain ascending sort with no ties.
func Renumber(sections []Section, wanted []string) []Section {
	position := make(map[string]int, len(wanted))
	for i, id := range wanted {
		position[id] = i
	}

	sorted := SortedByOrder(sections)
	listed := make([]Section, 0, len(sorted))
	trailing := make([]Section, 0)
	for _, section := range sorted {
		if _, ok := position[section.ID]; ok {
			listed = append(listed, section)
		} else {
			trailing = append(trailing, section)
		}
	}
	sort.SliceStable(listed, func(i, j int) bool {
		return position[listed[i].ID] < position[listed[j].ID]
	})

	out := append(listed, trailing...)
	for i := range out {
		out[i].Order = float64(i)
	}
	return out
}

// renderOrderIDs returns the ids of sections in render order.
func renderOrderIDs(sections []Section) []string {
	sorted := SortedByOrder(sections)
	ids := make([]string, len(sorted))
	for i, section := range sorted {
		ids[i] = section.ID
	}
	return ids
}
