package repository

import (
	"lifeos_backend/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

// ListEnabled 获取启用的维度，按 order 排序
func (r *CategoryRepository) ListEnabled() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Where("enabled = ?", true).Order("`order` ASC").Find(&categories).Error
	return categories, err
}

// ListAll 获取所有维度（含停用），管理端使用
func (r *CategoryRepository) ListAll() ([]model.Category, error) {
	var categories []model.Category
	err := r.DB.Order("`order` ASC").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var category model.Category
	err := r.DB.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindByCode(code string) (*model.Category, error) {
	var category model.Category
	err := r.DB.Where("code = ?", code).First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) Create(category *model.Category) error {
	return r.DB.Create(category).Error
}

func (r *CategoryRepository) Update(category *model.Category) error {
	return r.DB.Save(category).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Category{}, id).Error
}
