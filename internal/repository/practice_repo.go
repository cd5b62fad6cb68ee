package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Opora/internal/model"
)

// PracticeRepo 内容仓储，只读
type PracticeRepo struct {
	db *gorm.DB
}

func NewPracticeRepo(db *gorm.DB) *PracticeRepo {
	return &PracticeRepo{db: db}
}

func (r *PracticeRepo) GetByID(ctx context.Context, id int64) (*model.Practice, error) {
	var practice model.Practice
	err := r.db.WithContext(ctx).First(&practice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &practice, nil
}

// ListActive 取所有启用的练习
func (r *PracticeRepo) ListActive(ctx context.Context) ([]model.Practice, error) {
	var practices []model.Practice
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id").
		Find(&practices).Error
	if err != nil {
		return nil, err
	}
	return practices, nil
}

// ListActiveByCategory 取某分类下启用的练习
func (r *PracticeRepo) ListActiveByCategory(ctx context.Context, categoryCode string) ([]model.Practice, error) {
	var practices []model.Practice
	err := r.db.WithContext(ctx).
		Where("category_code = ? AND is_active = ?", categoryCode, true).
		Order("id").
		Find(&practices).Error
	if err != nil {
		return nil, err
	}
	return practices, nil
}

// ListCategories 取全部分类，按标题排序
func (r *PracticeRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	err := r.db.WithContext(ctx).Order("title").Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *PracticeRepo) GetCategory(ctx context.Context, code string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).First(&category, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
