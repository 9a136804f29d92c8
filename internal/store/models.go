package store

import "time"

// Shop is one merchant storefront.
type Shop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StorefrontDocument is the saved editor document for a shop. Version counts
// successful saves; the JSONB payload is the canonical saved snapshot.
type StorefrontDocument struct {
	ShopID    string    `json:"shopId"`
	Document  []byte    `json:"-"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}
