package handlers

import (
	"context"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) SeedIfEmpty(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalogService) ForceReseed(ctx context.Context) (models.SeedResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.SeedResult), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCatalogService) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subcategory), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Store(ctx context.Context, identity *common.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Current(ctx context.Context, identity *common.Identity) (*models.User, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, identity *common.Identity, profile models.ProfileUpdate) (*models.User, error) {
	args := m.Called(ctx, identity, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockSkillService struct {
	mock.Mock
}

func (m *MockSkillService) ListByUsername(ctx context.Context, identity *common.Identity, username string) ([]*models.Skill, error) {
	args := m.Called(ctx, identity, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Skill), args.Error(1)
}

func (m *MockSkillService) Add(ctx context.Context, identity *common.Identity, name string) (*models.Skill, error) {
	args := m.Called(ctx, identity, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Skill), args.Error(1)
}

func (m *MockSkillService) Remove(ctx context.Context, identity *common.Identity, skillID uuid.UUID) error {
	args := m.Called(ctx, identity, skillID)
	return args.Error(0)
}

type MockGigService struct {
	mock.Mock
}

func (m *MockGigService) Create(ctx context.Context, identity *common.Identity, input services.GigInput) (*models.Gig, error) {
	args := m.Called(ctx, identity, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *MockGigService) Get(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Gig, error) {
	args := m.Called(ctx, identity, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *MockGigService) Update(ctx context.Context, identity *common.Identity, id uuid.UUID, input services.GigInput) (*models.Gig, error) {
	args := m.Called(ctx, identity, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Gig), args.Error(1)
}

func (m *MockGigService) SetPublished(ctx context.Context, identity *common.Identity, id uuid.UUID, published bool) error {
	args := m.Called(ctx, identity, id, published)
	return args.Error(0)
}

func (m *MockGigService) Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *MockGigService) List(ctx context.Context, identity *common.Identity, favorites bool, filter models.GigFilter) ([]*models.Gig, error) {
	args := m.Called(ctx, identity, favorites, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Gig), args.Error(1)
}

func (m *MockGigService) Favorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *MockGigService) Unfavorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *MockGigService) UploadImage(ctx context.Context, identity *common.Identity, id uuid.UUID, upload services.ImageUpload) (*models.GigImage, error) {
	args := m.Called(ctx, identity, id, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GigImage), args.Error(1)
}

type MockPinger struct {
	mock.Mock
}

func (m *MockPinger) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCacheService struct {
	MockPinger
}

func (m *MockCacheService) CatalogGeneration(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *MockCacheService) GetCatalog(ctx context.Context, generation int64) ([]*models.Category, error) {
	return nil, nil
}

func (m *MockCacheService) SetCatalog(ctx context.Context, generation int64, categories []*models.Category, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) GetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID) ([]*models.Subcategory, error) {
	return nil, nil
}

func (m *MockCacheService) SetSubcategories(ctx context.Context, generation int64, categoryID uuid.UUID, subcategories []*models.Subcategory, ttl time.Duration) error {
	return nil
}

func (m *MockCacheService) InvalidateCatalog(ctx context.Context) error {
	return nil
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	return false, nil
}

func (m *MockCacheService) Close() error {
	return nil
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Put(ctx context.Context, gigID uuid.UUID, upload services.ImageUpload) (string, error) {
	return "", nil
}

func (m *MockStorage) URL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	return "", nil
}

func (m *MockStorage) Remove(ctx context.Context, key string) error {
	return nil
}

func (m *MockStorage) EnsureBucket(ctx context.Context) error {
	return nil
}

func (m *MockStorage) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
