package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"storeforge/api/internal/assets"
	"storeforge/api/internal/config"
	"storeforge/api/internal/draft"
	"storeforge/api/internal/editor"
	"storeforge/api/internal/publish"
	"storeforge/api/internal/registry"
	"storeforge/api/internal/search"
	"storeforge/api/internal/store"
	"storeforge/api/internal/template"
	"storeforge/api/internal/tokens"
	"storeforge/api/internal/util"
)

type dataStore interface {
	CreateShop(context.Context, string, string) (store.Shop, error)
	GetShop(context.Context, string) (store.Shop, error)
	GetShopBySlug(context.Context, string) (store.Shop, error)
	ListShops(context.Context) ([]store.Shop, error)
	SaveStorefront(context.Context, string, editor.ShopSettings) (int, error)
	GetStorefront(context.Context, string) (editor.ShopSettings, store.StorefrontDocument, error)
	HasStorefront(context.Context, string) (bool, error)
	Ping(context.Context) error
}

type draftStore interface {
	Save(context.Context, string, editor.ShopSettings) error
	Load(context.Context, string) (draft.Record, error)
	Delete(context.Context, string) error
	Ping(context.Context) error
}

type publisher interface {
	Publish(string, editor.ShopSettings, string, string) (publish.Info, error)
	Live(string) (editor.ShopSettings, publish.Info, error)
	GetByHash(string, string) (editor.ShopSettings, publish.Info, error)
	History(string, int) ([]publish.Info, error)
}

type templateSearcher interface {
	Search(search.Query) search.Response
}

type mediaStore interface {
	Upload(context.Context, string, string, string, io.Reader, int64) (assets.Object, error)
	List(context.Context, string) ([]assets.Object, error)
	PresignedURL(context.Context, string, time.Duration) (string, error)
	Delete(context.Context, string) error
}

// EditorState is what the editor client renders after every interaction:
// the working document, history affordances, the dirty flag, and the theme
// compiled to design tokens.
type EditorState struct {
	SessionID         string              `json:"sessionId"`
	ShopID            string              `json:"shopId"`
	Document          editor.ShopSettings `json:"document"`
	CanUndo           bool                `json:"canUndo"`
	CanRedo           bool                `json:"canRedo"`
	HasUnsavedChanges bool                `json:"hasUnsavedChanges"`
	Tokens            tokens.TokenSet     `json:"tokens"`
	ResumedFromDraft  bool                `json:"resumedFromDraft,omitempty"`
}

// MutationInput is a single editor operation. Op selects the mutation;
// the remaining fields carry its payload and are ignored by other ops.
type MutationInput struct {
	Op        string                `json:"op"`
	Kind      editor.SectionKind    `json:"kind,omitempty"`
	SectionID string                `json:"sectionId,omitempty"`
	Direction string                `json:"direction,omitempty"`
	From      *int                  `json:"from,omitempty"`
	To        *int                  `json:"to,omitempty"`
	Settings  editor.SettingsBag    `json:"settings,omitempty"`
	Theme     *editor.ThemePatch    `json:"theme,omitempty"`
	Metadata  *editor.MetadataPatch `json:"metadata,omitempty"`
}

type PreviewPayload struct {
	Sections []editor.Section `json:"sections"`
	Tokens   tokens.TokenSet  `json:"tokens"`
	CSS      string           `json:"css"`
}

type SaveResult struct {
	State   EditorState `json:"state"`
	SavedAt time.Time   `json:"savedAt"`
}

type PublishInput struct {
	Author  string `json:"author"`
	Message string `json:"message"`
}

type AssetPayload struct {
	assets.Object
	URL string `json:"url,omitempty"`
}

type editorSession struct {
	id     string
	shopID string
	engine *editor.Session
}

type Service struct {
	cfg       config.Config
	store     dataStore
	drafts    draftStore
	publisher publisher
	search    templateSearcher
	media     mediaStore
	catalog   registry.Catalog

	sessMu   sync.Mutex
	sessions map[string]*editorSession
}

// New wires the service. media may be nil; asset routes then report the
// feature as unconfigured.
func New(cfg config.Config, dataStore dataStore, drafts draftStore, pub publisher, searcher templateSearcher, media mediaStore) *Service {
	return &Service{
		cfg:       cfg,
		store:     dataStore,
		drafts:    drafts,
		publisher: pub,
		search:    searcher,
		media:     media,
		catalog:   registry.New(),
		sessions:  make(map[string]*editorSession),
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

func (s *Service) PingDrafts(ctx context.Context) error {
	return s.drafts.Ping(ctx)
}

func (s *Service) MediaConfigured() bool {
	return s.media != nil
}

// Shops

func (s *Service) CreateShop(ctx context.Context, name string) (store.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return store.Shop{}, domainError(http.StatusBadRequest, "INVALID_NAME", "Shop name is required", nil)
	}
	slug := util.Slugify(name)
	if _, err := s.store.GetShopBySlug(ctx, slug); err == nil {
		slug = slug + "-" + util.NewID("")[:6]
	}
	return s.store.CreateShop(ctx, name, slug)
}

func (s *Service) GetShop(ctx context.Context, id string) (store.Shop, error) {
	return s.store.GetShop(ctx, id)
}

func (s *Service) ListShops(ctx context.Context) ([]store.Shop, error) {
	return s.store.ListShops(ctx)
}

// Editor sessions

// OpenEditor loads the shop's saved storefront (or the default skeleton for
// a fresh shop), rehydrates an unsaved draft when one is present, and parks
// the engine in the session table under a new session id.
func (s *Service) OpenEditor(ctx context.Context, shopID string) (EditorState, error) {
	shop, err := s.store.GetShop(ctx, shopID)
	if err != nil {
		return EditorState{}, err
	}

	saved := registry.DefaultStorefront(shop.Name)
	if has, err := s.store.HasStorefront(ctx, shopID); err != nil {
		return EditorState{}, err
	} else if has {
		saved, _, err = s.store.GetStorefront(ctx, shopID)
		if err != nil {
			return EditorState{}, err
		}
	}

	initial := saved
	resumed := false
	if record, err := s.drafts.Load(ctx, shopID); err == nil {
		initial = record.Document
		resumed = true
	} else if !errors.Is(err, draft.ErrNotFound) {
		log.Printf("app: draft load failed for shop %s: %v", shopID, err)
	}

	opts := editor.SessionOptions{HistoryLimit: s.cfg.HistoryLimit, Saved: &saved}
	engine, err := editor.NewSession(initial, s.catalog, s.persisterFor(shopID), opts)
	if err != nil && resumed {
		// A corrupt draft must not block the editor; fall back to the
		// saved document and let the draft expire.
		log.Printf("app: discarding unreadable draft for shop %s: %v", shopID, err)
		resumed = false
		engine, err = editor.NewSession(saved, s.catalog, s.persisterFor(shopID), opts)
	}
	if err != nil {
		return EditorState{}, err
	}

	sess := &editorSession{id: util.NewID("ses"), shopID: shopID, engine: engine}
	s.sessMu.Lock()
	s.sessions[sess.id] = sess
	s.sessMu.Unlock()

	state := s.state(sess)
	state.ResumedFromDraft = resumed
	return state, nil
}

func (s *Service) CloseEditor(sessionID string) error {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return domainError(http.StatusNotFound, "SESSION_NOT_FOUND", "Editor session not found", nil)
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *Service) session(sessionID string) (*editorSession, error) {
	s.sessMu.Lock()
	defer s.sessMu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, domainError(http.StatusNotFound, "SESSION_NOT_FOUND", "Editor session not found", nil)
	}
	return sess, nil
}

// persisterFor binds the save pipeline for one shop: the snapshot goes to
// Postgres and the Redis draft is cleared, since the draft only exists to
// outlive unsaved work.
func (s *Service) persisterFor(shopID string) editor.Persister {
	return editor.PersisterFunc(func(ctx context.Context, doc editor.ShopSettings) error {
		if _, err := s.store.SaveStorefront(ctx, shopID, doc); err != nil {
			return err
		}
		if err := s.drafts.Delete(ctx, shopID); err != nil {
			log.Printf("app: draft cleanup failed for shop %s: %v", shopID, err)
		}
		return nil
	})
}

func (s *Service) state(sess *editorSession) EditorState {
	doc := sess.engine.Document()
	return EditorState{
		SessionID:         sess.id,
		ShopID:            sess.shopID,
		Document:          doc,
		CanUndo:           sess.engine.CanUndo(),
		CanRedo:           sess.engine.CanRedo(),
		HasUnsavedChanges: sess.engine.HasUnsavedChanges(),
		Tokens:            tokens.Compile(doc.Theme),
	}
}

// autosaveDraft is best effort; the working copy survives in memory either
// way and the next interaction retries.
func (s *Service) autosaveDraft(ctx context.Context, sess *editorSession) {
	if err := s.drafts.Save(ctx, sess.shopID, sess.engine.Document()); err != nil {
		log.Printf("app: draft autosave failed for shop %s: %v", sess.shopID, err)
	}
}

var validDirections = map[string]editor.MoveDirection{
	string(editor.MoveUp):   editor.MoveUp,
	string(editor.MoveDown): editor.MoveDown,
}

func (s *Service) ApplyMutation(ctx context.Context, sessionID string, input MutationInput) (EditorState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return EditorState{}, err
	}

	switch input.Op {
	case "add-section":
		if !s.catalog.Known(input.Kind) {
			return EditorState{}, domainError(http.StatusBadRequest, "UNKNOWN_SECTION_KIND", "Unknown section kind", map[string]any{"kind": input.Kind})
		}
		sess.engine.AddSection(input.Kind)
	case "remove-section":
		sess.engine.RemoveSection(input.SectionID)
	case "duplicate-section":
		sess.engine.DuplicateSection(input.SectionID)
	case "toggle-section":
		sess.engine.ToggleSection(input.SectionID)
	case "move-section":
		direction, ok := validDirections[input.Direction]
		if !ok {
			return EditorState{}, domainError(http.StatusBadRequest, "INVALID_DIRECTION", "Direction must be \"up\" or \"down\"", nil)
		}
		sess.engine.MoveSection(input.SectionID, direction)
	case "reorder-sections":
		if input.From == nil || input.To == nil {
			return EditorState{}, domainError(http.StatusBadRequest, "INVALID_REORDER", "Both from and to indexes are required", nil)
		}
		sess.engine.ReorderSections(*input.From, *input.To)
	case "update-settings":
		sess.engine.UpdateSectionSettings(input.SectionID, input.Settings)
	case "update-theme":
		if input.Theme == nil {
			return EditorState{}, domainError(http.StatusBadRequest, "INVALID_BODY", "Theme patch is required", nil)
		}
		sess.engine.UpdateTheme(*input.Theme)
	case "update-metadata":
		if input.Metadata == nil {
			return EditorState{}, domainError(http.StatusBadRequest, "INVALID_BODY", "Metadata patch is required", nil)
		}
		sess.engine.UpdateMetadata(*input.Metadata)
	default:
		return EditorState{}, domainError(http.StatusBadRequest, "UNKNOWN_OP", "Unknown mutation op", map[string]any{"op": input.Op})
	}

	s.autosaveDraft(ctx, sess)
	return s.state(sess), nil
}

func (s *Service) Undo(ctx context.Context, sessionID string) (EditorState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return EditorState{}, err
	}
	sess.engine.Undo()
	s.autosaveDraft(ctx, sess)
	return s.state(sess), nil
}

func (s *Service) Redo(ctx context.Context, sessionID string) (EditorState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return EditorState{}, err
	}
	sess.engine.Redo()
	s.autosaveDraft(ctx, sess)
	return s.state(sess), nil
}

func (s *Service) CommitBoundary(sessionID string) (EditorState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return EditorState{}, err
	}
	sess.engine.CommitBoundary()
	return s.state(sess), nil
}

func (s *Service) SaveSession(ctx context.Context, sessionID string) (SaveResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return SaveResult{}, err
	}
	if err := sess.engine.Save(ctx); err != nil {
		return SaveResult{}, err
	}
	return SaveResult{State: s.state(sess), SavedAt: time.Now().UTC()}, nil
}

func (s *Service) ApplyTemplateByID(ctx context.Context, sessionID, templateID string) (EditorState, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return EditorState{}, err
	}
	def, ok := template.Find(templateID)
	if !ok {
		return EditorState{}, domainError(http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Template not found", map[string]any{"templateId": templateID})
	}
	if err := sess.engine.ApplyTemplate(def.Change()); err != nil {
		return EditorState{}, err
	}
	s.autosaveDraft(ctx, sess)
	return s.state(sess), nil
}

func (s *Service) Preview(sessionID string) (PreviewPayload, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return PreviewPayload{}, err
	}
	doc := sess.engine.Document()
	set := tokens.Compile(doc.Theme)
	return PreviewPayload{
		Sections: sess.engine.Preview(),
		Tokens:   set,
		CSS:      set.CSS(":root"),
	}, nil
}

func (s *Service) Sections(sessionID string) ([]editor.Section, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.engine.Sections(), nil
}

// Templates and section catalog

func (s *Service) Templates() map[string]any {
	return map[string]any{
		"templates":  template.Gallery,
		"categories": template.Categories(),
	}
}

func (s *Service) SearchTemplates(q search.Query) search.Response {
	return s.search.Search(q)
}

func (s *Service) SectionCatalog() []registry.Kind {
	return s.catalog.List()
}

// Publishing

// PublishShop commits the last saved snapshot, not the working copy; the
// merchant saves first, then publishes.
func (s *Service) PublishShop(ctx context.Context, shopID string, input PublishInput) (publish.Info, error) {
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return publish.Info{}, err
	}
	doc, _, err := s.store.GetStorefront(ctx, shopID)
	if err != nil {
		return publish.Info{}, err
	}
	author := strings.TrimSpace(input.Author)
	if author == "" {
		author = "merchant"
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		message = "Publish storefront"
	}
	return s.publisher.Publish(shopID, doc, author, message)
}

func (s *Service) Publishes(ctx context.Context, shopID string, limit int) ([]publish.Info, error) {
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	return s.publisher.History(shopID, limit)
}

func (s *Service) PublishedVersion(ctx context.Context, shopID, hash string) (editor.ShopSettings, publish.Info, error) {
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return editor.ShopSettings{}, publish.Info{}, err
	}
	return s.publisher.GetByHash(shopID, hash)
}

func (s *Service) LiveVersion(ctx context.Context, shopID string) (editor.ShopSettings, publish.Info, error) {
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return editor.ShopSettings{}, publish.Info{}, err
	}
	return s.publisher.Live(shopID)
}

// Media library

func (s *Service) UploadAsset(ctx context.Context, shopID, filename, contentType string, reader io.Reader, size int64) (AssetPayload, error) {
	if s.media == nil {
		return AssetPayload{}, domainError(http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media storage not configured", nil)
	}
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return AssetPayload{}, err
	}
	obj, err := s.media.Upload(ctx, shopID, filename, contentType, reader, size)
	if err != nil {
		return AssetPayload{}, err
	}
	url, err := s.media.PresignedURL(ctx, obj.Key, 0)
	if err != nil {
		log.Printf("app: presign failed for %s: %v", obj.Key, err)
	}
	return AssetPayload{Object: obj, URL: url}, nil
}

func (s *Service) ListAssets(ctx context.Context, shopID string) ([]AssetPayload, error) {
	if s.media == nil {
		return nil, domainError(http.StatusServiceUnavailable, "MEDIA_UNAVAILABLE", "Media storage not configured", nil)
	}
	if _, err := s.store.GetShop(ctx, shopID); err != nil {
		return nil, err
	}
	objects, err := s.media.List(ctx, shopID)
	if err != nil {
		return nil, err
	}
	payloads := make([]AssetPayload, 0, len(objects))
	for _, obj := range objects {
		url, err := s.media.PresignedURL(ctx, obj.Key, 0)
		if err != nil {
			log.Printf("app: presign failed for %s: %v", obj.Key, err)
		}
		payloads = append(payloads, AssetPayload{Object: obj, URL: url})
	}
	return payloads, nil
}
