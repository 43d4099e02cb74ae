package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gigmarket/internal/common"
	"gigmarket/internal/models"
	"gigmarket/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	minTitleLength       = 20
	maxTitleLength       = 100
	maxDescriptionLength = 5000
	imageURLExpiry       = time.Hour
)

// GigInput carries the seller-editable gig fields.
type GigInput struct {
	Title         string
	Description   string
	SubcategoryID uuid.UUID
	Price         *decimal.Decimal
}

type GigService interface {
	Create(ctx context.Context, identity *common.Identity, input GigInput) (*models.Gig, error)
	Get(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Gig, error)
	Update(ctx context.Context, identity *common.Identity, id uuid.UUID, input GigInput) (*models.Gig, error)
	SetPublished(ctx context.Context, identity *common.Identity, id uuid.UUID, published bool) error
	Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error
	// List returns published gigs; favorites restricts the result to the caller's favourites.
	List(ctx context.Context, identity *common.Identity, favorites bool, filter models.GigFilter) ([]*models.Gig, error)
	Favorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error
	Unfavorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error
	UploadImage(ctx context.Context, identity *common.Identity, id uuid.UUID, upload ImageUpload) (*models.GigImage, error)
}

type gigService struct {
	gigRepo      repositories.GigRepository
	imageRepo    repositories.GigImageRepository
	categoryRepo repositories.CategoryRepository
	userRepo     repositories.UserRepository
	images       ImageStore
}

func NewGigService(gigRepo repositories.GigRepository, imageRepo repositories.GigImageRepository, categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository, images ImageStore) GigService {
	return &gigService{
		gigRepo:      gigRepo,
		imageRepo:    imageRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		images:       images,
	}
}

func (s *gigService) validate(ctx context.Context, input *GigInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	if n := len([]rune(input.Title)); n < minTitleLength || n > maxTitleLength {
		return invalid("title", "must be between %d and %d characters", minTitleLength, maxTitleLength)
	}
	if len([]rune(input.Description)) > maxDescriptionLength {
		return invalid("description", "cannot exceed %d characters", maxDescriptionLength)
	}
	if input.Price != nil && input.Price.IsNegative() {
		return invalid("price", "cannot be negative")
	}
	if input.SubcategoryID == uuid.Nil {
		return invalid("subcategoryId", "is required")
	}
	if _, err := s.categoryRepo.GetSubcategory(ctx, input.SubcategoryID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUnknownCategory
		}
		return err
	}
	return nil
}

func (s *gigService) Create(ctx context.Context, identity *common.Identity, input GigInput) (*models.Gig, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}
	seller, err := s.caller(ctx, identity)
	if err != nil {
		return nil, err
	}

	subcategoryID := input.SubcategoryID
	gig := &models.Gig{
		ID:            uuid.New(),
		SellerID:      seller.ID,
		SubcategoryID: &subcategoryID,
		Title:         input.Title,
		Description:   input.Description,
		Price:         decimal.Zero,
	}
	if input.Price != nil {
		gig.Price = input.Price.Round(2)
	}
	if err := s.gigRepo.Create(ctx, gig); err != nil {
		return nil, fmt.Errorf("failed to create gig: %w", err)
	}
	return gig, nil
}

// Get returns a gig with pre-signed image URLs. Unpublished gigs are visible to their seller only.
func (s *gigService) Get(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	var viewer uuid.UUID
	if identity != nil {
		if user, err := s.userRepo.GetBySubject(ctx, identity.Subject); err == nil {
			viewer = user.ID
		}
	}
	isOwner := viewer == gig.SellerID
	if !visible(gig, viewer) {
		return nil, ErrGigNotFound
	}
	if !isOwner {
		if err := s.gigRepo.IncrementClicks(ctx, id); err != nil {
			log.Printf("WARN: failed to record click on gig %s: %v", id, err)
		}
	}

	images, err := s.imageRepo.ListByGigID(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, image := range images {
		url, err := s.images.URL(ctx, image.ObjectKey, imageURLExpiry)
		if err != nil {
			log.Printf("WARN: failed to presign image %s: %v", image.ObjectKey, err)
			continue
		}
		image.URL = url
	}
	gig.Images = images
	return gig, nil
}

func (s *gigService) Update(ctx context.Context, identity *common.Identity, id uuid.UUID, input GigInput) (*models.Gig, error) {
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}
	gig, err := s.owned(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	subcategoryID := input.SubcategoryID
	gig.SubcategoryID = &subcategoryID
	gig.Title = input.Title
	gig.Description = input.Description
	if input.Price != nil {
		gig.Price = input.Price.Round(2)
	}
	if err := s.gigRepo.Update(ctx, gig); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("failed to update gig: %w", err)
	}
	return gig, nil
}

func (s *gigService) SetPublished(ctx context.Context, identity *common.Identity, id uuid.UUID, published bool) error {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	if err := s.gigRepo.SetPublished(ctx, id, published); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGigNotFound
		}
		return err
	}
	return nil
}

// Delete removes the gig and its stored images. Storage failures are logged and do not block the delete.
func (s *gigService) Delete(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	if _, err := s.owned(ctx, identity, id); err != nil {
		return err
	}
	images, err := s.imageRepo.ListByGigID(ctx, id)
	if err != nil {
		return err
	}
	for _, image := range images {
		if err := s.images.Remove(ctx, image.ObjectKey); err != nil {
			log.Printf("WARN: failed to delete image %s from storage: %v", image.ObjectKey, err)
		}
	}
	if err := s.imageRepo.DeleteAllByGigID(ctx, id); err != nil {
		return err
	}
	if err := s.gigRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGigNotFound
		}
		return err
	}
	return nil
}

func (s *gigService) List(ctx context.Context, identity *common.Identity, favorites bool, filter models.GigFilter) ([]*models.Gig, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.CategoryName = strings.TrimSpace(filter.CategoryName)
	if favorites {
		user, err := s.caller(ctx, identity)
		if errors.Is(err, ErrUserNotStored) {
			return []*models.Gig{}, nil
		}
		if err != nil {
			return nil, err
		}
		filter.FavoritesOf = &user.ID
	}
	return s.gigRepo.ListPublished(ctx, filter)
}

func (s *gigService) Favorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	user, err := s.caller(ctx, identity)
	if err != nil {
		return err
	}
	gig, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !visible(gig, user.ID) {
		return ErrGigNotFound
	}
	return s.gigRepo.AddFavorite(ctx, user.ID, id)
}

func (s *gigService) Unfavorite(ctx context.Context, identity *common.Identity, id uuid.UUID) error {
	user, err := s.caller(ctx, identity)
	if err != nil {
		return err
	}
	return s.gigRepo.RemoveFavorite(ctx, user.ID, id)
}

func (s *gigService) UploadImage(ctx context.Context, identity *common.Identity, id uuid.UUID, upload ImageUpload) (*models.GigImage, error) {
	upload, err := CheckImage(upload)
	if err != nil {
		return nil, err
	}
	if _, err := s.owned(ctx, identity, id); err != nil {
		return nil, err
	}

	key, err := s.images.Put(ctx, id, upload)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	image := &models.GigImage{ID: uuid.New(), GigID: id, ObjectKey: key}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		if delErr := s.images.Remove(ctx, image.ObjectKey); delErr != nil {
			log.Printf("WARN: failed to clean up image %s: %v", image.ObjectKey, delErr)
		}
		return nil, fmt.Errorf("failed to record image: %w", err)
	}
	if url, err := s.images.URL(ctx, image.ObjectKey, imageURLExpiry); err == nil {
		image.URL = url
	}
	return image, nil
}

func (s *gigService) find(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.gigRepo.GetByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrGigNotFound
	}
	return gig, err
}

// visible reports whether userID may see gig. Unpublished gigs are visible to their seller only.
func visible(gig *models.Gig, userID uuid.UUID) bool {
	return gig.Published || (userID != uuid.Nil && userID == gig.SellerID)
}

func (s *gigService) caller(ctx context.Context, identity *common.Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrUserNotStored
	}
	user, err := s.userRepo.GetBySubject(ctx, identity.Subject)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrUserNotStored
	}
	return user, err
}

func (s *gigService) owned(ctx context.Context, identity *common.Identity, id uuid.UUID) (*models.Gig, error) {
	user, err := s.caller(ctx, identity)
	if err != nil {
		return nil, err
	}
	gig, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if gig.SellerID != user.ID {
		return nil, ErrNotOwner
	}
	return gig, nil
}
