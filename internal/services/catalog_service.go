package services

import (
	"context"
	"log"
	"time"

	"gigmarket/internal/caching"
	"gigmarket/internal/models"
	"gigmarket/internal/observability"
	"gigmarket/internal/repositories"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// CatalogService owns the category reference data: seeding it and serving it.
type CatalogService interface {
	// SeedIfEmpty inserts the catalog when the store has no categories and reports whether it did.
	SeedIfEmpty(ctx context.Context) (bool, error)
	// ForceReseed replaces all categories and subcategories with the catalog.
	ForceReseed(ctx context.Context) (models.SeedResult, error)
	ListCategories(ctx context.Context) ([]*models.Category, error)
	ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*models.Subcategory, error)
}

type catalogService struct {
	categoryRepo repositories.CategoryRepository
	cacheService caching.CacheService
	catalog      models.Catalog
	cacheTTL     time.Duration
	tracer       *observability.Tracer
	metrics      *observability.Metrics
}

func NewCatalogService(categoryRepo repositories.CategoryRepository, cacheService caching.CacheService, catalog models.Catalog, cacheTTL time.Duration, tracer *observability.Tracer, metrics *observability.Metrics) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		cacheService: cacheService,
		catalog:      catalog.Clone(),
		cacheTTL:     cacheTTL,
		tracer:       tracer,
		metrics:      metrics,
	}
}

func (s *catalogService) SeedIfEmpty(ctx context.Context) (seeded bool, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.seed_if_empty")
	defer func() { observability.End(span, err) }()

	timing := observability.StartTiming(ctx, "db", "seed")
	seeded, err = s.categoryRepo.SeedIfEmpty(ctx, s.catalog)
	timing.Stop()
	if err != nil {
		s.metrics.RecordSeed(ctx, "error", 0, 0)
		log.Printf("ERROR: catalog seed failed: %v", err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("catalog.seeded", seeded))

	if !seeded {
		s.metrics.RecordSeed(ctx, "skipped", 0, 0)
		log.Printf("DEBUG: catalog already present, seed skipped")
		return false, nil
	}
	categories, subcategories := s.catalog.Counts()
	s.metrics.RecordSeed(ctx, "seeded", categories, subcategories)
	log.Printf("DEBUG: catalog seeded with %d categories and %d subcategories", categories, subcategories)
	s.invalidate(ctx)
	return true, nil
}

func (s *catalogService) ForceReseed(ctx context.Context) (result models.SeedResult, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.force_reseed")
	defer func() { observability.End(span, err) }()

	timing := observability.StartTiming(ctx, "db", "reseed")
	result, err = s.categoryRepo.Reseed(ctx, s.catalog)
	timing.Stop()
	if err != nil {
		s.metrics.RecordReseed(ctx, "error", 0, 0)
		log.Printf("ERROR: force reseed failed: %v", err)
		return models.SeedResult{}, err
	}

	span.SetAttributes(
		attribute.Int("catalog.categories_seeded", result.CategoriesSeeded),
		attribute.Int("catalog.subcategories_seeded", result.SubcategoriesSeeded),
	)
	s.metrics.RecordReseed(ctx, "ok", result.CategoriesSeeded, result.SubcategoriesSeeded)
	log.Printf("DEBUG: catalog reseeded with %d categories and %d subcategories", result.CategoriesSeeded, result.SubcategoriesSeeded)
	s.invalidate(ctx)
	return result, nil
}

func (s *catalogService) ListCategories(ctx context.Context) (categories []*models.Category, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.list_categories")
	defer func() { observability.End(span, err) }()

	// The generation is read before the store so a reseed committing in between orphans our write.
	generation, cacheable := s.generation(ctx)
	if cacheable {
		if cached, cacheErr := s.cacheService.GetCatalog(ctx, generation); cacheErr != nil {
			log.Printf("WARN: catalog cache read failed: %v", cacheErr)
		} else if cached != nil {
			s.metrics.RecordCacheLookup(ctx, "tree", true)
			return cached, nil
		}
	}
	s.metrics.RecordCacheLookup(ctx, "tree", false)

	timing := observability.StartTiming(ctx, "db", "categories")
	categories, err = s.categoryRepo.ListWithSubcategories(ctx)
	timing.Stop()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("catalog.categories", len(categories)))

	if cacheable {
		if cacheErr := s.cacheService.SetCatalog(ctx, generation, categories, s.cacheTTL); cacheErr != nil {
			log.Printf("WARN: catalog cache write failed: %v", cacheErr)
		}
	}
	return categories, nil
}

func (s *catalogService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) (subcategories []*models.Subcategory, err error) {
	ctx, span := s.tracer.Start(ctx, "catalog.list_subcategories", attribute.String("catalog.category_id", categoryID.String()))
	defer func() { observability.End(span, err) }()

	generation, cacheable := s.generation(ctx)
	if cacheable {
		if cached, cacheErr := s.cacheService.GetSubcategories(ctx, generation, categoryID); cacheErr != nil {
			log.Printf("WARN: subcategory cache read failed for %s: %v", categoryID, cacheErr)
		} else if cached != nil {
			s.metrics.RecordCacheLookup(ctx, "children", true)
			return cached, nil
		}
	}
	s.metrics.RecordCacheLookup(ctx, "children", false)

	timing := observability.StartTiming(ctx, "db", "subcategories")
	subcategories, err = s.categoryRepo.ListSubcategories(ctx, categoryID)
	timing.Stop()
	if err != nil {
		return nil, err
	}

	if cacheable {
		if cacheErr := s.cacheService.SetSubcategories(ctx, generation, categoryID, subcategories, s.cacheTTL); cacheErr != nil {
			log.Printf("WARN: subcategory cache write failed for %s: %v", categoryID, cacheErr)
		}
	}
	return subcategories, nil
}

// generation returns the cache generation to read and write under, or false when the cache is unavailable.
func (s *catalogService) generation(ctx context.Context) (int64, bool) {
	generation, err := s.cacheService.CatalogGeneration(ctx)
	if err != nil {
		log.Printf("WARN: catalog cache generation read failed: %v", err)
		return 0, false
	}
	return generation, true
}

func (s *catalogService) invalidate(ctx context.Context) {
	if err := s.cacheService.InvalidateCatalog(ctx); err != nil {
		log.Printf("WARN: catalog cache invalidation failed: %v", err)
	}
}
