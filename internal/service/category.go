package service

import (
	"blog/internal/models"

	"gorm.io/gorm"
)

// CategoryService 封装分类查询。
type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// List 返回全部分类，不分页。
func (s *CategoryService) List() ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}
