package service

import (
	"fmt"

	"github.com/xolan/billable/internal/catalog"
)

// CatalogService holds the catalog synced from the project management
// system
type CatalogService struct {
	path    string
	catalog *catalog.Catalog
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(path string, cat *catalog.Catalog) *CatalogService {
	if cat == nil {
		cat = catalog.New()
	}
	return &CatalogService{path: path, catalog: cat}
}

// Get returns the loaded catalog
func (s *CatalogService) Get() *catalog.Catalog {
	return s.catalog
}

// Path returns the catalog location
func (s *CatalogService) Path() string {
	return s.path
}

// Reload reads the catalog from disk again. On error the loaded catalog is
// kept.
func (s *CatalogService) Reload() error {
	cat, err := catalog.LoadOrEmpty(s.path)
	if err != nil {
		return fmt.Errorf("failed to load catalog %s: %w", s.path, err)
	}
	s.catalog = cat
	return nil
}
