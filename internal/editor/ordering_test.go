package editor

import "testing"

func orderedIDs(sections []Section) []string {
	ids := make([]string, len(sections))
	for i, s := range SortedByOrder(sections) {
		ids[i] = s.ID
	}
	return ids
}

func assertIDs(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected ids %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected ids %v, got %v", want, got)
		}
	}
}

func TestSortedByOrderLeavesInputAlone(t *testing.T) {
	sections := []Section{sec("b", "footer", 2), sec("a", "header", 1)}
	sorted := SortedByOrder(sections)

	assertIDs(t, []string{sorted[0].ID, sorted[1].ID}, []string{"a", "b"})
	if sections[0].ID != "b" {
		t.Fatal("input slice was reordered")
	}
}

func TestRenumberAssignsConsecutiveIntegers(t *testing.T) {
	sections := []Section{
		sec("a", "header", 0.5),
		sec("b", "hero-banner", 1.25),
		sec("c", "footer", 9),
	}
	out := Renumber(sections, []string{"c", "a", "b"})

	assertIDs(t, orderedIDs(out), []string{"c", "a", "b"})
	for i, s := range SortedByOrder(out) {
		if s.Order != float64(i) {
			t.Fatalf("expected order %d, got %v for %s", i, s.Order, s.ID)
		}
	}
}

func TestRenumberPlacesUnlistedSectionsLast(t *testing.T) {
	sections := []Section{
		sec("a", "header", 0),
		sec("b", "hero-banner", 1),
		sec("c", "footer", 2),
	}
	out := Renumber(sections, []string{"b"})
	assertIDs(t, orderedIDs(out), []string{"b", "a", "c"})
}
