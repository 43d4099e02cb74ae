package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"gigmarket/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "gigmarket"

type CacheService interface {
	// Catalog caching. Entries are keyed by the catalog generation read before the store was queried,
	// so a write racing an invalidation lands under a generation nobody reads any more.
	CatalogGeneration(ctx context.Context) (int64, error)
	GetCatalog(ctx context.Context, generation int64) ([]*models.Category, error)
	SetCatalog(ctx context.Context, generation int64, categories []*models.Category, ttl time.Duration) error
	GetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID) ([]*models.Subcategory, error)
	SetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID, subcategories []*models.Subcategory, ttl time.Duration) error
	InvalidateCatalog(ctx context.Context) error

	// Rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://")

	log.Printf("DEBUG: Creating Redis client with address: %s", parsedAddr)

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("DEBUG: Redis connection established successfully")
	}

	return NewCacheService(client)
}

// NewCacheService wraps an existing client.
func NewCacheService(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func rateLimitKey(key string) string {
	return fmt.Sprintf("%s:ratelimit:%s", keyPrefix, key)
}

func generationKey() string {
	return keyPrefix + ":catalog:generation"
}

func catalogKey(generation int64) string {
	return fmt.Sprintf("%s:catalog:%d:tree", keyPrefix, generation)
}

func subcategoriesKey(generation int64, categoryID uuid.UUID) string {
	return fmt.Sprintf("%s:catalog:%d:children:%s", keyPrefix, generation, categoryID.String())
}

// CatalogGeneration returns the current catalog generation, 0 before the first invalidation.
func (r *redisCacheService) CatalogGeneration(ctx context.Context) (int64, error) {
	generation, err := r.client.Get(ctx, generationKey()).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return generation, err
}

func (r *redisCacheService) GetCatalog(ctx context.Context, generation int64) ([]*models.Category, error) {
	var categories []*models.Category
	hit, err := r.getJSON(ctx, catalogKey(generation), &categories)
	if !hit || err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *redisCacheService) SetCatalog(ctx context.Context, generation int64, categories []*models.Category, ttl time.Duration) error {
	return r.setJSON(ctx, catalogKey(generation), categories, ttl)
}

func (r *redisCacheService) GetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	var subcategories []*models.Subcategory
	hit, err := r.getJSON(ctx, subcategoriesKey(generation, categoryID), &subcategories)
	if !hit || err != nil {
		return nil, err
	}
	if subcategories == nil {
		subcategories = []*models.Subcategory{}
	}
	return subcategories, nil
}

func (r *redisCacheService) SetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID, subcategories []*models.Subcategory, ttl time.Duration) error {
	return r.setJSON(ctx, subcategoriesKey(generation, categoryID), subcategories, ttl)
}

// InvalidateCatalog moves readers to a new generation. Entries of older generations expire with their TTL.
func (r *redisCacheService) InvalidateCatalog(ctx context.Context) error {
	return r.client.Incr(ctx, generationKey()).Err()
}

// IsRateLimited counts one call against key. The counter is created with its expiry in the same
// transaction as the increment, so a window always ends.
func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	cacheKey := rateLimitKey(key)
	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, cacheKey, 0, window)
		incr = pipe.Incr(ctx, cacheKey)
		return nil
	})
	if err != nil {
		return true, err
	}
	return incr.Val() > int64(limit), nil
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}

// getJSON reports a miss as (false, nil).
func (r *redisCacheService) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}
