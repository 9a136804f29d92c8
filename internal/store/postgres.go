package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"storeforge/api/internal/editor"
	"storeforge/api/internal/util"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// CreateShop inserts a shop with a generated id. The slug must already be
// normalized and unique; a conflict surfaces as an error from the unique
// index.
func (s *PostgresStore) CreateShop(ctx context.Context, name, slug string) (Shop, error) {
	const insertShop = `
		INSERT INTO shops (id, name, slug)
		VALUES ($1, $2, $3)
		RETURNING id, name, slug, created_at, updated_at
	`
	var shop Shop
	err := s.db.QueryRowContext(ctx, insertShop, util.NewID("shop"), name, slug).
		Scan(&shop.ID, &shop.Name, &shop.Slug, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return Shop{}, fmt.Errorf("insert shop: %w", err)
	}
	return shop, nil
}

// GetShop returns the shop by id. sql.ErrNoRows passes through for the
// caller's not-found mapping.
func (s *PostgresStore) GetShop(ctx context.Context, id string) (Shop, error) {
	const query = `SELECT id, name, slug, created_at, updated_at FROM shops WHERE id = $1`
	var shop Shop
	err := s.db.QueryRowContext(ctx, query, id).
		Scan(&shop.ID, &shop.Name, &shop.Slug, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return Shop{}, err
	}
	return shop, nil
}

// GetShopBySlug returns the shop by its public slug.
func (s *PostgresStore) GetShopBySlug(ctx context.Context, slug string) (Shop, error) {
	const query = `SELECT id, name, slug, created_at, updated_at FROM shops WHERE slug = $1`
	var shop Shop
	err := s.db.QueryRowContext(ctx, query, slug).
		Scan(&shop.ID, &shop.Name, &shop.Slug, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return Shop{}, err
	}
	return shop, nil
}

// ListShops returns all shops, newest first.
func (s *PostgresStore) ListShops(ctx context.Context) ([]Shop, error) {
	const query = `SELECT id, name, slug, created_at, updated_at FROM shops ORDER BY created_at DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list shops: %w", err)
	}
	defer rows.Close()

	shops := make([]Shop, 0)
	for rows.Next() {
		var shop Shop
		if err := rows.Scan(&shop.ID, &shop.Name, &shop.Slug, &shop.CreatedAt, &shop.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

// SaveStorefront upserts the saved document for a shop and returns the new
// version number.
func (s *PostgresStore) SaveStorefront(ctx context.Context, shopID string, doc editor.ShopSettings) (int, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal storefront: %w", err)
	}

	const upsert = `
		INSERT INTO storefront_documents (shop_id, document, version)
		VALUES ($1, $2, 1)
		ON CONFLICT (shop_id) DO UPDATE
		SET document = EXCLUDED.document,
		    version = storefront_documents.version + 1,
		    updated_at = NOW()
		RETURNING version
	`
	var version int
	if err := s.db.QueryRowContext(ctx, upsert, shopID, payload).Scan(&version); err != nil {
		return 0, fmt.Errorf("save storefront: %w", err)
	}
	return version, nil
}

// GetStorefront loads the saved document for a shop. sql.ErrNoRows passes
// through when the shop has never been saved.
func (s *PostgresStore) GetStorefront(ctx context.Context, shopID string) (editor.ShopSettings, StorefrontDocument, error) {
	const query = `SELECT shop_id, document, version, updated_at FROM storefront_documents WHERE shop_id = $1`
	var record StorefrontDocument
	err := s.db.QueryRowContext(ctx, query, shopID).
		Scan(&record.ShopID, &record.Document, &record.Version, &record.UpdatedAt)
	if err != nil {
		return editor.ShopSettings{}, StorefrontDocument{}, err
	}

	var doc editor.ShopSettings
	if err := json.Unmarshal(record.Document, &doc); err != nil {
		return editor.ShopSettings{}, StorefrontDocument{}, fmt.Errorf("decode storefront: %w", err)
	}
	return doc, record, nil
}

// HasStorefront reports whether the shop has a saved document.
func (s *PostgresStore) HasStorefront(ctx context.Context, shopID string) (bool, error) {
	_, _, err := s.GetStorefront(ctx, shopID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Ping checks database reachability.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
