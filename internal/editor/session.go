package editor

import (
	"context"
	"sync"
)

// Persister is the external save backend. Persist receives the document
// captured at Save time; it must not retain the value past the call.
type Persister interface {
	Persist(ctx context.Context, doc ShopSettings) error
}

// PersisterFunc adapts a function to the Persister interface.
type PersisterFunc func(ctx context.Context, doc ShopSettings) error

func (f PersisterFunc) Persist(ctx context.Context, doc ShopSettings) error {
	return f(ctx, doc)
}

// SessionOptions tunes a new editing session.
type SessionOptions struct {
	// HistoryLimit caps retained undo snapshots; 0 means DefaultHistoryLimit.
	HistoryLimit int
	// Saved is the last persisted snapshot when resuming a session whose
	// working copy already diverged from storage. Nil means the initial
	// document is the saved baseline.
	Saved *ShopSettings
}

// Session owns one ShopSettings working copy, its undo history, and the
// saved snapshot used for dirty detection. Every mutation is funneled
// through it so each change is representable in history. One session per
// editing context; sessions share nothing.
type Session struct {
	mu        sync.Mutex
	registry  Registry
	persister Persister
	history   *History
	saved     ShopSettings

	// Save ordering: results apply only in capture order, so a slow early
	// save can never overwrite the snapshot of a later one.
	captureSeq int64
	appliedSeq int64
}

// NewSession validates the initial document and builds a session around it.
func NewSession(initial ShopSettings, reg Registry, persister Persister, opts SessionOptions) (*Session, error) {
	if err := ValidateDocument(initial); err != nil {
		return nil, err
	}
	saved := initial
	if opts.Saved != nil {
		saved = *opts.Saved
	}
	return &Session{
		registry:  reg,
		persister: persister,
		history:   newHistory(initial, opts.HistoryLimit),
		saved:     Clone(saved),
	}, nil
}

// Document returns a copy of the current working document.
func (s *Session) Document() ShopSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.history.Current())
}

// Sections returns every section in render order, including disabled ones
// (the editor's section list).
func (s *Session) Sections() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSections(SortedByOrder(s.history.Current().Sections))
}

// Preview returns the enabled sections in render order (the live preview).
func (s *Session) Preview() []Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	var enabled []Section
	for _, section := range SortedByOrder(s.history.Current().Sections) {
		if section.Enabled {
			enabled = append(enabled, section)
		}
	}
	return cloneSections(enabled)
}

// AddSection appends a new section of the given kind and returns it.
func (s *Session) AddSection(kind SectionKind) Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, section := AddSection(s.history.Current(), kind, s.registry)
	s.commit(doc, "")
	return section
}

// RemoveSection deletes a section; unknown ids are a no-op.
func (s *Session) RemoveSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(RemoveSection(s.history.Current(), id), "")
}

// DuplicateSection clones a section directly after the original.
func (s *Session) DuplicateSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(DuplicateSection(s.history.Current(), id), "")
}

// ToggleSection flips a section's enabled flag.
func (s *Session) ToggleSection(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ToggleSection(s.history.Current(), id), "")
}

// MoveSection moves a section one step up or down in render order.
func (s *Session) MoveSection(id string, direction MoveDirection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(MoveSection(s.history.Current(), id, direction), "")
}

// ReorderSections moves the section at render position from to position to.
func (s *Session) ReorderSections(from, to int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(ReorderSections(s.history.Current(), from, to), "")
}

// UpdateSectionSettings merges the patch into a section's settings bag.
// Single-key patches coalesce with the previous commit to the same key, so
// keystroke-level updates form one undo step until the field changes or a
// boundary is reached.
func (s *Session) UpdateSectionSettings(id string, patch SettingsBag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := ""
	if len(patch) == 1 {
		for name := range patch {
			key = "settings:" + id + ":" + name
		}
	}
	s.commit(UpdateSectionSettings(s.history.Current(), id, patch), key)
}

// UpdateTheme merges the patch into the theme, coalescing single-field
// patches per field.
func (s *Session) UpdateTheme(patch ThemePatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(UpdateTheme(s.history.Current(), patch), coalesceKey("theme", patch.fields()))
}

// UpdateMetadata merges the patch into the shop metadata.
func (s *Session) UpdateMetadata(patch MetadataPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(UpdateMetadata(s.history.Current(), patch), coalesceKey("metadata", patch.fields()))
}

// ApplyTemplate atomically applies a template; on error the working copy and
// history are untouched.
func (s *Session) ApplyTemplate(tpl Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := ApplyTemplate(s.history.Current(), tpl, s.registry)
	if err != nil {
		return err
	}
	s.commit(doc, "")
	return nil
}

// Undo steps back one history entry and returns the now-current document.
func (s *Session) Undo() ShopSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, _ := s.history.Undo()
	return Clone(doc)
}

// Redo steps forward one history entry.
func (s *Session) Redo() ShopSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, _ := s.history.Redo()
	return Clone(doc)
}

// CanUndo reports whether Undo would change the document.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanUndo()
}

// CanRedo reports whether Redo would change the document.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.CanRedo()
}

// CommitBoundary closes the current coalescing window (input blur).
func (s *Session) CommitBoundary() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history.Boundary()
}

// HasUnsavedChanges reports a structural difference between the working copy
// and the last successfully saved snapshot. Re-toggling a switch back to its
// saved value correctly returns false again.
func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !Equal(s.history.Current(), s.saved)
}

// Save captures the working copy by value and hands it to the persister.
// Edits made while the save is in flight are not blocked; the resulting
// snapshot reflects only the captured state, so HasUnsavedChanges stays true
// for edits that raced the save. Overlapping saves apply in capture order —
// a stale result never replaces a newer snapshot. On failure the snapshot
// and dirty state are untouched so the caller can retry.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	captured := Clone(s.history.Current())
	s.captureSeq++
	seq := s.captureSeq
	s.history.Boundary()
	s.mu.Unlock()

	if err := s.persister.Persist(ctx, captured); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.appliedSeq {
		s.saved = captured
		s.appliedSeq = seq
	}
	return nil
}

// SavedSnapshot returns a copy of the last persisted document.
func (s *Session) SavedSnapshot() ShopSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Clone(s.saved)
}

// commit records doc as a new history entry unless it is structurally
// identical to the current one; no-op mutations never produce undo steps.
// Callers hold s.mu.
func (s *Session) commit(doc ShopSettings, key string) {
	if Equal(doc, s.history.Current()) {
		return
	}
	s.history.Commit(doc, key)
}

func coalesceKey(scope string, fields []string) string {
	if len(fields) != 1 {
		return ""
	}
	return scope + ":" + fields[0]
}
