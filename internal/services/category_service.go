package services

import (
	"context"
	"strings"

	"github.com/terraincognita07/finora/internal/models"
)

type CategoryRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]models.Category, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	FindByID(ctx context.Context, userID uint, categoryID string) (models.Category, bool, error)
	Create(ctx context.Context, category *models.Category) error
	CreateBatch(ctx context.Context, categories []models.Category) error
	CountReferences(ctx context.Context, userID uint, categoryID string) (int64, error)
	Delete(ctx context.Context, userID uint, categoryID string) (bool, error)
}

type CategoryInput struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Icon string `json:"icon"`
}

type CategoryService struct {
	categories CategoryRepository
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

// EnsureDefaults seeds the default category set for a user that has none.
func (service *CategoryService) EnsureDefaults(ctx context.Context, userID uint) error {
	count, err := service.categories.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := models.DefaultCategories()
	categories := make([]models.Category, 0, len(defaults))
	for _, category := range defaults {
		categories = append(categories, models.Category{
			UserID: userID,
			Name:   category.Name,
			Type:   category.Type,
			Icon:   category.Icon,
		})
	}
	return service.categories.CreateBatch(ctx, categories)
}

func (service *CategoryService) List(ctx context.Context, userID uint) ([]models.Category, error) {
	return service.categories.ListByUser(ctx, userID)
}

func (service *CategoryService) Find(ctx context.Context, userID uint, categoryID string) (models.Category, error) {
	category, found, err := service.categories.FindByID(ctx, userID, strings.TrimSpace(categoryID))
	if err != nil {
		return models.Category{}, err
	}
	if !found {
		return models.Category{}, ErrCategoryNotFound
	}
	return category, nil
}

func (service *CategoryService) Create(ctx context.Context, userID uint, input CategoryInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, ErrCategoryNameRequired
	}
	categoryType, ok := normalizeCategoryType(input.Type)
	if !ok {
		return models.Category{}, ErrCategoryTypeInvalid
	}

	category := models.Category{
		UserID: userID,
		Name:   name,
		Type:   categoryType,
		Icon:   strings.TrimSpace(input.Icon),
	}
	if err := service.categories.Create(ctx, &category); err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// Delete refuses to remove a category still referenced by transactions or
// recurring rules.
func (service *CategoryService) Delete(ctx context.Context, userID uint, categoryID string) error {
	references, err := service.categories.CountReferences(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if references > 0 {
		return ErrCategoryInUse
	}

	deleted, err := service.categories.Delete(ctx, userID, categoryID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCategoryNotFound
	}
	return nil
}
