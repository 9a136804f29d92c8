package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"storeforge/api/internal/config"
	"storeforge/api/internal/draft"
	"storeforge/api/internal/editor"
	"storeforge/api/internal/publish"
	"storeforge/api/internal/registry"
	"storeforge/api/internal/search"
	"storeforge/api/internal/store"
)

type fakeStore struct {
	createShop     func(ctx context.Context, name, slug string) (store.Shop, error)
	getShop        func(ctx context.Context, id string) (store.Shop, error)
	getShopBySlug  func(ctx context.Context, slug string) (store.Shop, error)
	listShops      func(ctx context.Context) ([]store.Shop, error)
	saveStorefront func(ctx context.Context, shopID string, doc editor.ShopSettings) (int, error)
	getStorefront  func(ctx context.Context, shopID string) (editor.ShopSettings, store.StorefrontDocument, error)
	hasStorefront  func(ctx context.Context, shopID string) (bool, error)
	ping           func(ctx context.Context) error
}

func (f *fakeStore) CreateShop(ctx context.Context, name, slug string) (store.Shop, error) {
	if f.createShop == nil {
		return store.Shop{ID: "shop_test", Name: name, Slug: slug}, nil
	}
	return f.createShop(ctx, name, slug)
}

func (f *fakeStore) GetShop(ctx context.Context, id string) (store.Shop, error) {
	if f.getShop == nil {
		return store.Shop{}, sql.ErrNoRows
	}
	return f.getShop(ctx, id)
}

func (f *fakeStore) GetShopBySlug(ctx context.Context, slug string) (store.Shop, error) {
	if f.getShopBySlug == nil {
		return store.Shop{}, sql.ErrNoRows
	}
	return f.getShopBySlug(ctx, slug)
}

func (f *fakeStore) ListShops(ctx context.Context) ([]store.Shop, error) {
	if f.listShops == nil {
		return nil, nil
	}
	return f.listShops(ctx)
}

func (f *fakeStore) SaveStorefront(ctx context.Context, shopID string, doc editor.ShopSettings) (int, error) {
	if f.saveStorefront == nil {
		return 1, nil
	}
	return f.saveStorefront(ctx, shopID, doc)
}

func (f *fakeStore) GetStorefront(ctx context.Context, shopID string) (editor.ShopSettings, store.StorefrontDocument, error) {
	if f.getStorefront == nil {
		return editor.ShopSettings{}, store.StorefrontDocument{}, sql.ErrNoRows
	}
	return f.getStorefront(ctx, shopID)
}

func (f *fakeStore) HasStorefront(ctx context.Context, shopID string) (bool, error) {
	if f.hasStorefront == nil {
		return false, nil
	}
	return f.hasStorefront(ctx, shopID)
}

func (f *fakeStore) Ping(ctx context.Context) error {
	if f.ping == nil {
		return nil
	}
	return f.ping(ctx)
}

type fakePublisher struct {
	publish   func(shopID string, doc editor.ShopSettings, author, message string) (publish.Info, error)
	live      func(shopID string) (editor.ShopSettings, publish.Info, error)
	getByHash func(shopID, hash string) (editor.ShopSettings, publish.Info, error)
	history   func(shopID string, limit int) ([]publish.Info, error)
}

func (f *fakePublisher) Publish(shopID string, doc editor.ShopSettings, author, message string) (publish.Info, error) {
	if f.publish == nil {
		return publish.Info{Hash: "abc1234"}, nil
	}
	return f.publish(shopID, doc, author, message)
}

func (f *fakePublisher) Live(shopID string) (editor.ShopSettings, publish.Info, error) {
	if f.live == nil {
		return editor.ShopSettings{}, publish.Info{}, publish.ErrNotPublished
	}
	return f.live(shopID)
}

func (f *fakePublisher) GetByHash(shopID, hash string) (editor.ShopSettings, publish.Info, error) {
	if f.getByHash == nil {
		return editor.ShopSettings{}, publish.Info{}, publish.ErrNotPublished
	}
	return f.getByHash(shopID, hash)
}

func (f *fakePublisher) History(shopID string, limit int) ([]publish.Info, error) {
	if f.history == nil {
		return []publish.Info{}, nil
	}
	return f.history(shopID, limit)
}

func existingShop(id, name string) func(context.Context, string) (store.Shop, error) {
	return func(_ context.Context, got string) (store.Shop, error) {
		if got != id {
			return store.Shop{}, sql.ErrNoRows
		}
		return store.Shop{ID: id, Name: name, Slug: "aurora-goods"}, nil
	}
}

func newTestServer(t *testing.T, dataStore *fakeStore, pub *fakePublisher) (*HTTPServer, *draft.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	drafts := draft.NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), 0)

	records := []search.TemplateRecord{
		{ID: "fashion-minimal", Name: "Minimal Fashion", Category: "fashion", Description: "Clean looks for apparel brands"},
		{ID: "tech-store", Name: "Tech Store", Category: "tech", Description: "Gadgets and electronics"},
	}
	searcher := search.NewService(nil, search.NewMemory(records))

	cfg := config.Config{HistoryLimit: 100}
	service := New(cfg, dataStore, drafts, pub, searcher, nil)
	return NewHTTPServer(service, "*"), drafts
}

func doRequest(t *testing.T, server *HTTPServer, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeState(t *testing.T, recorder *httptest.ResponseRecorder) EditorState {
	t.Helper()
	var state EditorState
	if err := json.Unmarshal(recorder.Body.Bytes(), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	return state
}

func openSession(t *testing.T, server *HTTPServer) EditorState {
	t.Helper()
	recorder := doRequest(t, server, http.MethodPost, "/api/shops/shop_1/editor", nil)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("open editor status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	return decodeState(t, recorder)
}

func TestHealth(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/health", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if got := recorder.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("expected X-Request-ID header")
	}
}

func TestReadyReportsFailingDependency(t *testing.T) {
	dataStore := &fakeStore{ping: func(context.Context) error { return fmt.Errorf("connection refused") }}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/ready", nil)
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "connection refused") {
		t.Fatalf("expected failing check in body, got %s", recorder.Body.String())
	}
}

func TestCreateShopRequiresName(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodPost, "/api/shops", map[string]string{"name": "   "})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "INVALID_NAME") {
		t.Fatalf("expected INVALID_NAME, got %s", recorder.Body.String())
	}
}

func TestCreateShopSlugifiesName(t *testing.T) {
	var gotSlug string
	dataStore := &fakeStore{createShop: func(_ context.Context, name, slug string) (store.Shop, error) {
		gotSlug = slug
		return store.Shop{ID: "shop_new", Name: name, Slug: slug}, nil
	}}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodPost, "/api/shops", map[string]string{"name": "Aurora Goods"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if gotSlug != "aurora-goods" {
		t.Fatalf("slug = %q", gotSlug)
	}
}

func TestGetShopNotFound(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/shops/shop_missing", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestOpenEditorUsesDefaultStorefront(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})

	state := openSession(t, server)
	if state.SessionID == "" {
		t.Fatal("expected session id")
	}
	if state.Document.Metadata.Name != "Aurora Goods" {
		t.Fatalf("document name = %q", state.Document.Metadata.Name)
	}
	if len(state.Document.Sections) == 0 {
		t.Fatal("expected default skeleton sections")
	}
	if state.HasUnsavedChanges {
		t.Fatal("fresh session must be clean")
	}
	if state.CanUndo || state.CanRedo {
		t.Fatal("fresh session must have no history")
	}
	if state.Tokens["color-primary"] != "#2563eb" {
		t.Fatalf("tokens not compiled: %v", state.Tokens)
	}
}

func TestOpenEditorLoadsSavedStorefront(t *testing.T) {
	saved := registry.DefaultStorefront("Saved Shop")
	dataStore := &fakeStore{
		getShop:       existingShop("shop_1", "Aurora Goods"),
		hasStorefront: func(context.Context, string) (bool, error) { return true, nil },
		getStorefront: func(context.Context, string) (editor.ShopSettings, store.StorefrontDocument, error) {
			return saved, store.StorefrontDocument{Version: 4}, nil
		},
	}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})

	state := openSession(t, server)
	if state.Document.Metadata.Name != "Saved Shop" {
		t.Fatalf("document name = %q", state.Document.Metadata.Name)
	}
	if state.HasUnsavedChanges {
		t.Fatal("saved document must open clean")
	}
}

func TestOpenEditorResumesDraft(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, drafts := newTestServer(t, dataStore, &fakePublisher{})

	dirty := registry.DefaultStorefront("Aurora Goods")
	dirty.Metadata.Tagline = "Work in progress"
	if err := drafts.Save(context.Background(), "shop_1", dirty); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	state := openSession(t, server)
	if !state.ResumedFromDraft {
		t.Fatal("expected draft resume")
	}
	if state.Document.Metadata.Tagline != "Work in progress" {
		t.Fatalf("tagline = %q", state.Document.Metadata.Tagline)
	}
	if !state.HasUnsavedChanges {
		t.Fatal("resumed draft must read dirty against the saved snapshot")
	}
}

func TestOpenEditorDiscardsCorruptDraft(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, drafts := newTestServer(t, dataStore, &fakePublisher{})

	corrupt := registry.DefaultStorefront("Aurora Goods")
	corrupt.Sections[1].ID = corrupt.Sections[0].ID
	if err := drafts.Save(context.Background(), "shop_1", corrupt); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	state := openSession(t, server)
	if state.ResumedFromDraft {
		t.Fatal("corrupt draft must not be resumed")
	}
	if state.HasUnsavedChanges {
		t.Fatal("fallback to the saved document must open clean")
	}
	if len(state.Document.Sections) == 0 {
		t.Fatal("expected default skeleton sections")
	}
}

func TestMutationUndoRedoFlow(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)
	base := len(state.Document.Sections)

	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "add-section", Kind: "newsletter"})
	if recorder.Code != http.StatusOK {
		t.Fatalf("mutation status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	state = decodeState(t, recorder)
	if len(state.Document.Sections) != base+1 {
		t.Fatalf("sections = %d, want %d", len(state.Document.Sections), base+1)
	}
	if !state.CanUndo || !state.HasUnsavedChanges {
		t.Fatalf("state after mutation: canUndo=%v dirty=%v", state.CanUndo, state.HasUnsavedChanges)
	}

	recorder = doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/undo", nil)
	state = decodeState(t, recorder)
	if len(state.Document.Sections) != base {
		t.Fatalf("sections after undo = %d", len(state.Document.Sections))
	}
	if !state.CanRedo {
		t.Fatal("expected canRedo after undo")
	}
	if state.HasUnsavedChanges {
		t.Fatal("undo back to saved must be clean")
	}

	recorder = doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/redo", nil)
	state = decodeState(t, recorder)
	if len(state.Document.Sections) != base+1 {
		t.Fatalf("sections after redo = %d", len(state.Document.Sections))
	}
}

func TestMutationRejectsUnknownOp(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "explode"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "UNKNOWN_OP") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestMutationRejectsUnknownSectionKind(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "add-section", Kind: "flux-capacitor"})
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "UNKNOWN_SECTION_KIND") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestSavePersistsAndClearsDraft(t *testing.T) {
	var savedDoc *editor.ShopSettings
	dataStore := &fakeStore{
		getShop: existingShop("shop_1", "Aurora Goods"),
		saveStorefront: func(_ context.Context, _ string, doc editor.ShopSettings) (int, error) {
			savedDoc = &doc
			return 2, nil
		},
	}
	server, drafts := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "add-section", Kind: "newsletter"})
	state = decodeState(t, recorder)
	if _, err := drafts.Load(context.Background(), "shop_1"); err != nil {
		t.Fatalf("expected autosaved draft, got %v", err)
	}

	recorder = doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/save", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("save status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var result SaveResult
	if err := json.Unmarshal(recorder.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode save result: %v", err)
	}
	if result.State.HasUnsavedChanges {
		t.Fatal("save must clear the dirty flag")
	}
	if savedDoc == nil {
		t.Fatal("expected persisted document")
	}
	if _, err := drafts.Load(context.Background(), "shop_1"); err != draft.ErrNotFound {
		t.Fatalf("expected draft cleared after save, got %v", err)
	}
}

func TestSaveFailureKeepsDirty(t *testing.T) {
	dataStore := &fakeStore{
		getShop: existingShop("shop_1", "Aurora Goods"),
		saveStorefront: func(context.Context, string, editor.ShopSettings) (int, error) {
			return 0, fmt.Errorf("disk full")
		},
	}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "add-section", Kind: "newsletter"})
	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/save", nil)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/api/editor/"+state.SessionID+"/sections", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("session must survive a failed save, status = %d", recorder.Code)
	}
}

func TestApplyTemplate(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	recorder := doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/template/tech-store", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	state = decodeState(t, recorder)
	if !state.CanUndo {
		t.Fatal("template application must be undoable")
	}

	recorder = doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/template/no-such-template", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestPreviewFiltersDisabledSections(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)
	sectionID := state.Document.Sections[0].ID

	doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/mutations", MutationInput{Op: "toggle-section", SectionID: sectionID})

	recorder := doRequest(t, server, http.MethodGet, "/api/editor/"+state.SessionID+"/preview", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var payload PreviewPayload
	if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	for _, section := range payload.Sections {
		if section.ID == sectionID {
			t.Fatal("disabled section leaked into preview")
		}
	}
	if !strings.Contains(payload.CSS, "--color-primary") {
		t.Fatalf("expected compiled css, got %q", payload.CSS)
	}
}

func TestSessionNotFound(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodPost, "/api/editor/ses_missing/undo", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "SESSION_NOT_FOUND") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestCloseEditor(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	state := openSession(t, server)

	recorder := doRequest(t, server, http.MethodDelete, "/api/editor/"+state.SessionID, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("close status = %d", recorder.Code)
	}
	recorder = doRequest(t, server, http.MethodPost, "/api/editor/"+state.SessionID+"/undo", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("closed session still routable, status = %d", recorder.Code)
	}
}

func TestTemplateSearch(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/templates/search?q=gadgets", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var response search.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Total != 1 || response.Results[0].ID != "tech-store" {
		t.Fatalf("unexpected results: %+v", response)
	}
}

func TestTemplateSearchWithNegativePagination(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/templates/search?limit=-1&offset=-3", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	var response search.Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if response.Total != 2 || len(response.Results) != 2 {
		t.Fatalf("expected full results for clamped pagination, got %+v", response)
	}
}

func TestTemplateListing(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/templates", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "fashion-minimal") {
		t.Fatal("expected gallery entries in listing")
	}
}

func TestSectionCatalog(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/sections", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "hero-banner") {
		t.Fatal("expected hero-banner in section catalog")
	}
}

func TestPublishUsesSavedSnapshot(t *testing.T) {
	saved := registry.DefaultStorefront("Aurora Goods")
	var publishedName string
	dataStore := &fakeStore{
		getShop:       existingShop("shop_1", "Aurora Goods"),
		hasStorefront: func(context.Context, string) (bool, error) { return true, nil },
		getStorefront: func(context.Context, string) (editor.ShopSettings, store.StorefrontDocument, error) {
			return saved, store.StorefrontDocument{Version: 1}, nil
		},
	}
	pub := &fakePublisher{publish: func(_ string, doc editor.ShopSettings, author, _ string) (publish.Info, error) {
		publishedName = doc.Metadata.Name
		if author != "Avery" {
			t.Errorf("author = %q", author)
		}
		return publish.Info{Hash: "def5678", Author: author}, nil
	}}
	server, _ := newTestServer(t, dataStore, pub)

	recorder := doRequest(t, server, http.MethodPost, "/api/shops/shop_1/publish", PublishInput{Author: "Avery", Message: "Launch"})
	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}
	if publishedName != "Aurora Goods" {
		t.Fatalf("published document name = %q", publishedName)
	}
}

func TestPublishRequiresSavedStorefront(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodPost, "/api/shops/shop_1/publish", PublishInput{})
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
}

func TestPublishHistory(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	pub := &fakePublisher{history: func(string, int) ([]publish.Info, error) {
		return []publish.Info{{Hash: "bbb2222"}, {Hash: "aaa1111"}}, nil
	}}
	server, _ := newTestServer(t, dataStore, pub)

	recorder := doRequest(t, server, http.MethodGet, "/api/shops/shop_1/publishes", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}
	var body struct {
		Publishes []publish.Info `json:"publishes"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Publishes) != 2 || body.Publishes[0].Hash != "bbb2222" {
		t.Fatalf("unexpected history: %+v", body.Publishes)
	}
}

func TestLiveVersionNotPublished(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/shops/shop_1/live", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "NOT_PUBLISHED") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestAssetsUnavailableWithoutMedia(t *testing.T) {
	dataStore := &fakeStore{getShop: existingShop("shop_1", "Aurora Goods")}
	server, _ := newTestServer(t, dataStore, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/shops/shop_1/assets", nil)
	if recorder.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "MEDIA_UNAVAILABLE") {
		t.Fatalf("body = %s", recorder.Body.String())
	}
}

func TestUnknownRoute(t *testing.T) {
	server, _ := newTestServer(t, &fakeStore{}, &fakePublisher{})
	recorder := doRequest(t, server, http.MethodGet, "/api/nope", nil)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d", recorder.Code)
	}
}
