package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Gig is a seller's service listing.
type Gig struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	SellerID      uuid.UUID       `json:"sellerId" db:"seller_id"`
	SubcategoryID *uuid.UUID      `json:"subcategoryId" db:"subcategory_id"` // Cleared when the catalog is reseeded
	Title         string          `json:"title" db:"title"`
	Description   string          `json:"description" db:"description"`
	Price         decimal.Decimal `json:"price" db:"price"`
	Published     bool            `json:"published" db:"published"`
	Clicks        int             `json:"clicks" db:"clicks"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
	Images        []*GigImage     `json:"images,omitempty" db:"-"`
}

// GigImage points at an object in the gig image bucket.
type GigImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	GigID     uuid.UUID `json:"gigId" db:"gig_id"`
	ObjectKey string    `json:"-" db:"object_key"`
	URL       string    `json:"url,omitempty" db:"-"` // Pre-signed, filled on read
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// GigFilter holds the listing criteria for gigs.
type GigFilter struct {
	Search       string     // Case-insensitive title substring
	CategoryName string     // Exact category name
	FavoritesOf  *uuid.UUID // Only gigs favourited by this user
	Limit        int
	Offset       int
}
