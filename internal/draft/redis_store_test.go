package draft

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"storeforge/api/internal/editor"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	s := miniredis.RunT(t)
	store, err := NewRedisStore("redis://"+s.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	return store, s
}

func testDraftDoc(name string) editor.ShopSettings {
	return editor.ShopSettings{
		Metadata: editor.Metadata{Name: name, Currency: "USD"},
		Theme:    editor.Theme{PrimaryColor: "#2563eb", ButtonStyle: "solid"},
		Sections: []editor.Section{
			{ID: "sec_1", Type: "header", Order: 0, Enabled: true, Settings: editor.SettingsBag{"sticky": true}},
			{ID: "sec_2", Type: "hero-banner", Order: 1, Enabled: true, Settings: editor.SettingsBag{"heading": "Hi"}},
		},
	}
}

func TestNewRedisStore(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewRedisStore("redis://"+s.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestSaveAndLoadDraft(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	doc := testDraftDoc("Aurora Goods")

	if err := store.Save(ctx, "shop_1", doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	record, err := store.Load(ctx, "shop_1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if record.Document.Metadata.Name != "Aurora Goods" {
		t.Errorf("expected shop name round trip, got %q", record.Document.Metadata.Name)
	}
	if len(record.Document.Sections) != 2 {
		t.Errorf("expected 2 sections, got %d", len(record.Document.Sections))
	}
	if record.Document.Sections[0].Settings["sticky"] != true {
		t.Errorf("settings bag lost in round trip: %v", record.Document.Sections[0].Settings)
	}
	if record.SavedAt.IsZero() {
		t.Error("expected SavedAt to be stamped")
	}
}

func TestLoadExpiredDraft(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewRedisStore("redis://"+s.Addr(), time.Millisecond)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "shop_1", testDraftDoc("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s.FastForward(2 * time.Millisecond)

	if _, err := store.Load(ctx, "shop_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired draft, got %v", err)
	}
}

func TestLoadMissingDraft(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	if _, err := store.Load(context.Background(), "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveResetsTTL(t *testing.T) {
	s := miniredis.RunT(t)
	defer s.Close()

	store, err := NewRedisStore("redis://"+s.Addr(), 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewRedisStore failed: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "shop_1", testDraftDoc("v1")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	s.FastForward(6 * time.Millisecond)
	if err := store.Save(ctx, "shop_1", testDraftDoc("v2")); err != nil {
		t.Fatalf("re-Save failed: %v", err)
	}

	// Past the original deadline but within the refreshed one.
	s.FastForward(6 * time.Millisecond)
	record, err := store.Load(ctx, "shop_1")
	if err != nil {
		t.Fatalf("Load after refresh failed: %v", err)
	}
	if record.Document.Metadata.Name != "v2" {
		t.Errorf("expected refreshed draft v2, got %q", record.Document.Metadata.Name)
	}
}

func TestDeleteDraft(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "shop_1", testDraftDoc("x")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := store.Delete(ctx, "shop_1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Load(ctx, "shop_1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing draft is fine.
	if err := store.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete for missing draft failed: %v", err)
	}
}

func TestDraftIsolationBetweenShops(t *testing.T) {
	store, s := setupTestRedis(t)
	defer store.Close()
	defer s.Close()

	ctx := context.Background()
	if err := store.Save(ctx, "shop_1", testDraftDoc("one")); err != nil {
		t.Fatalf("Save shop_1 failed: %v", err)
	}
	if err := store.Save(ctx, "shop_2", testDraftDoc("two")); err != nil {
		t.Fatalf("Save shop_2 failed: %v", err)
	}

	if err := store.Delete(ctx, "shop_1"); err != nil {
		t.Fatalf("Delete shop_1 failed: %v", err)
	}

	record, err := store.Load(ctx, "shop_2")
	if err != nil {
		t.Fatalf("Load shop_2 failed: %v", err)
	}
	if record.Document.Metadata.Name != "two" {
		t.Errorf("expected shop_2 draft untouched, got %q", record.Document.Metadata.Name)
	}
}
