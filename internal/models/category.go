package models

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level grouping of service offerings.
type Category struct {
	ID            uuid.UUID      `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	CreatedAt     time.Time      `json:"-" db:"created_at"`
	Subcategories []*Subcategory `json:"subcategories" db:"-"` // Filled by list-with-children
}

// Subcategory refines exactly one Category.
type Subcategory struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CategoryID uuid.UUID `json:"categoryId" db:"category_id"`
	Name       string    `json:"name" db:"name"`
}

// SeedResult reports how many rows a reseed inserted.
type SeedResult struct {
	CategoriesSeeded    int `json:"categoriesSeeded"`
	SubcategoriesSeeded int `json:"subcategoriesSeeded"`
}
