package db

import (
	"context"

	"github.com/terraincognita07/finora/internal/models"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	database *gorm.DB
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{database: database}
}

func (repo *CategoryRepository) ListByUser(ctx context.Context, userID uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := repo.database.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("type DESC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (repo *CategoryRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := repo.database.WithContext(ctx).Model(&models.Category{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *CategoryRepository) FindByID(ctx context.Context, userID uint, categoryID string) (models.Category, bool, error) {
	var category models.Category
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Limit(1).
		Find(&category)
	if result.Error != nil {
		return models.Category{}, false, result.Error
	}
	return category, result.RowsAffected > 0, nil
}

func (repo *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return repo.database.WithContext(ctx).Create(category).Error
}

func (repo *CategoryRepository) CreateBatch(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return repo.database.WithContext(ctx).Create(&categories).Error
}

func (repo *CategoryRepository) CountReferences(ctx context.Context, userID uint, categoryID string) (int64, error) {
	var transactions int64
	if err := repo.database.WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&transactions).Error; err != nil {
		return 0, err
	}
	var rules int64
	if err := repo.database.WithContext(ctx).Model(&models.RecurringRule{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&rules).Error; err != nil {
		return 0, err
	}
	return transactions + rules, nil
}

func (repo *CategoryRepository) Delete(ctx context.Context, userID uint, categoryID string) (bool, error) {
	result := repo.database.WithContext(ctx).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Delete(&models.Category{})
	return result.RowsAffected > 0, result.Error
}
