package services

import (
	"context"
	"time"

	"gigmarket/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListWithSubcategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

func (m *MockCategoryRepository) GetSubcategory(ctx context.Context, id uuid.UUID) (*models.Subcategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subcategory), args.Error(1)
}

func (m *MockCategoryRepository) SeedIfEmpty(ctx context.Context, catalog models.Catalog) (bool, error) {
	args := m.Called(ctx, catalog)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Reseed(ctx context.Context, catalog models.Catalog) (models.SeedResult, error) {
	args := m.Called(ctx, catalog)
	return args.Get(0).(models.SeedResult), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) CatalogGeneration(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCacheService) GetCatalog(ctx context.Context, generation int64) ([]*models.Category, error) {
	args := m.Called(ctx, generation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCacheService) SetCatalog(ctx context.Context, generation int64, categories []*models.Category, ttl time.Duration) error {
	args := m.Called(ctx, generation, categories, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	args := m.Called(ctx, generation, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

func (m *MockCacheService) SetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID, subcategories []*models.Subcategory, ttl time.Duration) error {
	args := m.Called(ctx, generation, categoryID, subcategories, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateCatalog(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Upsert(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetBySubject(ctx context.Context, subject string) (*models.User, error) {
	args := m.Called(ctx, subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, profile models.ProfileUpdate) error {
	args := m.Called(ctx, id, profile)
	return args.Error(0)
}

type MockSkillRepository struct {
	mock.Mock
}

func (m *MockSkillRepository) Create(ctx context.Context, skill *models.Skill) error {
	args := m.Called(ctx, skill)
	return args.Error(0)
}

func (m *MockSkillRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Skill, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Skill), args.Error(1)
}

func (m *MockSkillRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockGigRepository struct {
	mock.Mock
}

func (m *MockGigRepository) Create(ctx context.Context, gig *models.Gig) error {
	args := m.Called(ctx, gig)
	return args.Error(0)
}

func (m *MockGigRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *MockGigRepository) Update(ctx context.Context, gig *models.Gig) error {
	args := m.Called(ctx, gig)
	return args.Error(0)
}

func (m *MockGigRepository) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	args := m.Called(ctx, id, published)
	return args.Error(0)
}

func (m *MockGigRepository) IncrementClicks(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGigRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGigRepository) ListPublished(ctx context.Context, filter models.GigFilter) ([]*models.Gig, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gig), args.Error(1)
}

func (m *MockGigRepository) AddFavorite(ctx context.Context, userID, gigID uuid.UUID) error {
	args := m.Called(ctx, userID, gigID)
	return args.Error(0)
}

func (m *MockGigRepository) RemoveFavorite(ctx context.Context, userID, gigID uuid.UUID) error {
	args := m.Called(ctx, userID, gigID)
	return args.Error(0)
}

type MockGigImageRepository struct {
	mock.Mock
}

func (m *MockGigImageRepository) Create(ctx context.Context, image *models.GigImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGigImageRepository) ListByGigID(ctx context.Context, gigID uuid.UUID) ([]*models.GigImage, error) {
	args := m.Called(ctx, gigID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GigImage), args.Error(1)
}

func (m *MockGigImageRepository) DeleteAllByGigID(ctx context.Context, gigID uuid.UUID) error {
	args := m.Called(ctx, gigID)
	return args.Error(0)
}

type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, gigID uuid.UUID, upload ImageUpload) (string, error) {
	args := m.Called(ctx, gigID, upload)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, key, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockImageStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockImageStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
