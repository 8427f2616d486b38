package service

import (
	"lifeos_backend/internal/model"
	"lifeos_backend/internal/repository"
	"lifeos_backend/internal/util"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) ListEnabled() ([]model.Category, error) {
	return s.CategoryRepo.ListEnabled()
}

func (s *CategoryService) ListAll() ([]model.Category, error) {
	return s.CategoryRepo.ListAll()
}

func (s *CategoryService) Create(category *model.Category) error {
	_, err := s.CategoryRepo.FindByCode(category.Code)
	if err == nil {
		return util.ErrCategoryCodeTaken
	} else if err != gorm.ErrRecordNotFound {
		return err
	}
	return s.CategoryRepo.Create(category)
}

func (s *CategoryService) Update(id uint, input *model.Category) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(id)
	if err != nil {
		return nil, util.ErrCategoryNotFound
	}

	if input.Name != "" {
		category.Name = input.Name
	}
	if input.Description != "" {
		category.Description = input.Description
	}
	if input.Order != 0 {
		category.Order = input.Order
	}
	category.Enabled = input.Enabled

	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(id uint) error {
	if _, err := s.CategoryRepo.FindByID(id); err != nil {
		return util.ErrCategoryNotFound
	}
	return s.CategoryRepo.Delete(id)
}
