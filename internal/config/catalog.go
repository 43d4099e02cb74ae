package config

import (
	_ "embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"gigmarket/internal/models"
)

//go:embed catalog.toml
var defaultCatalog string

// DefaultCatalog decodes the catalog compiled into the binary.
func DefaultCatalog() (models.Catalog, error) {
	var catalog models.Catalog
	if _, err := toml.Decode(defaultCatalog, &catalog); err != nil {
		return models.Catalog{}, fmt.Errorf("failed to decode built-in catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return models.Catalog{}, fmt.Errorf("invalid built-in catalog: %w", err)
	}
	return catalog, nil
}

// LoadCatalog loads the seed catalog from a TOML file, or the built-in one when filename is empty.
func LoadCatalog(filename string) (models.Catalog, error) {
	if filename == "" {
		return DefaultCatalog()
	}
	var catalog models.Catalog
	md, err := toml.DecodeFile(filename, &catalog)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("failed to load catalog file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return models.Catalog{}, fmt.Errorf("catalog file has unknown keys: %v", undecoded)
	}
	if err := catalog.Validate(); err != nil {
		return models.Catalog{}, fmt.Errorf("invalid catalog file: %w", err)
	}
	return catalog, nil
}
