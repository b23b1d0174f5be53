package config

import (
	_ "embed"
	"fmt"

	"github.com/vovakirdan/rubberband/internal/catalog"
)

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// Default returns the built-in catalog. It panics if the embedded
// document is broken, which the package tests guard against.
func Default() *catalog.Catalog {
	cat, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("config: embedded catalog is invalid: %v", err))
	}
	return cat
}

// DefaultYAML returns the embedded default catalog document.
func DefaultYAML() []byte {
	return defaultCatalogYAML
}
