package models

import (
	"errors"
	"fmt"
	"strings"
)

// CategorySeed is one category of the seed catalog together with its subcategories.
// Subcategories are inserted in the order listed.
type CategorySeed struct {
	Name          string   `toml:"name" json:"name"`
	Subcategories []string `toml:"subcategories" json:"subcategories"`
}

// Catalog is the fixed reference data used by seeding.
type Catalog struct {
	Categories []CategorySeed `toml:"categories" json:"categories"`
}

var ErrEmptyCatalog = errors.New("catalog has no categories")

// Validate checks the catalog shape before it is used for seeding.
func (c Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return ErrEmptyCatalog
	}
	seen := make(map[string]struct{}, len(c.Categories))
	for i, category := range c.Categories {
		name := strings.TrimSpace(category.Name)
		if name == "" {
			return fmt.Errorf("category %d has a blank name", i)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("category %q is listed more than once", name)
		}
		seen[name] = struct{}{}
		if len(category.Subcategories) == 0 {
			return fmt.Errorf("category %q has no subcategories", name)
		}
		for j, sub := range category.Subcategories {
			if strings.TrimSpace(sub) == "" {
				return fmt.Errorf("category %q: subcategory %d has a blank name", name, j)
			}
		}
	}
	return nil
}

// Counts returns the number of categories and subcategories a seed inserts.
func (c Catalog) Counts() (categories, subcategories int) {
	for _, category := range c.Categories {
		subcategories += len(category.Subcategories)
	}
	return len(c.Categories), subcategories
}

// Clone returns a deep copy so callers cannot mutate shared seed data.
func (c Catalog) Clone() Catalog {
	out := Catalog{Categories: make([]CategorySeed, len(c.Categories))}
	for i, category := range c.Categories {
		out.Categories[i] = CategorySeed{
			Name:          category.Name,
			Subcategories: append([]string(nil), category.Subcategories...),
		}
	}
	return out
}
