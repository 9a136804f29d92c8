package editor

// DefaultHistoryLimit caps the number of retained snapshots. When exceeded,
// the oldest entry is dropped; undo never reaches past the cap.
const DefaultHistoryLimit = 100

type historyEntry struct {
	seq         int64
	doc         ShopSettings
	coalesceKey string
}

// History is the bounded undo/redo stack of document snapshots. entries is
// never empty; entries[cursor] is the document the UI sees.
type History struct {
	entries []historyEntry
	cursor  int
	limit   int
	nextSeq int64
}

func newHistory(initial ShopSettings, limit int) *History {
	if limit < 2 {
		limit = DefaultHistoryLimit
	}
	return &History{
		entries: []historyEntry{{seq: 0, doc: Clone(initial)}},
		cursor:  0,
		limit:   limit,
		nextSeq: 1,
	}
}

// Current returns the snapshot at the cursor.
func (h *History) Current() ShopSettings {
	return h.entries[h.cursor].doc
}

// Commit truncates any redo tail, then either appends doc as a new entry or,
// when coalesceKey is non-empty and matches the tip entry's key, replaces
// the tip in place. Matching keys mean "same user gesture" (e.g. successive
// keystrokes into one theme field): they collapse into a single undo step.
func (h *History) Commit(doc ShopSettings, coalesceKey string) {
	h.entries = h.entries[:h.cursor+1]

	tip := &h.entries[h.cursor]
	if coalesceKey != "" && tip.coalesceKey == coalesceKey {
		tip.doc = Clone(doc)
		tip.seq = h.nextSeq
		h.nextSeq++
		return
	}

	h.entries = append(h.entries, historyEntry{
		seq:         h.nextSeq,
		doc:         Clone(doc),
		coalesceKey: coalesceKey,
	})
	h.nextSeq++
	h.cursor++

	if len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([]historyEntry(nil), h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Boundary closes the current coalescing window (field blur, save). The next
// commit starts a fresh undo step even for the same field.
func (h *History) Boundary() {
	h.entries[h.cursor].coalesceKey = ""
}

// Undo steps the cursor back and returns the exposed snapshot. The second
// return is false when there is nothing to undo. Moving the cursor ends the
// gesture: the entry landed on loses its coalescing key, so a later commit
// to the same field starts a new undo step instead of overwriting the state
// the user just navigated to.
func (h *History) Undo() (ShopSettings, bool) {
	if !h.CanUndo() {
		return h.Current(), false
	}
	h.cursor--
	h.entries[h.cursor].coalesceKey = ""
	return h.Current(), true
}

// Redo steps the cursor forward; false when there is nothing to redo.
// Ends the coalescing run like Undo does.
func (h *History) Redo() (ShopSettings, bool) {
	if !h.CanRedo() {
		return h.Current(), false
	}
	h.cursor++
	h.entries[h.cursor].coalesceKey = ""
	return h.Current(), true
}

// CanUndo is true exactly when Undo would change the cursor.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo is true exactly when Redo would change the cursor.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.entries)-1
}

// Len returns the number of retained entries, including the current one.
func (h *History) Len() int {
	return len(h.entries)
}
