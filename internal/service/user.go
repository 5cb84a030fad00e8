package service

import (
	"errors"
	"time"

	"blog/internal/auth"
	"blog/internal/models"

	"gorm.io/gorm"
)

// UserService 封装用户目录的增删改查。
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// UserSummary 列表接口输出的用户投影，不含密码和 refresh token。
type UserSummary struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Status    int       `json:"status"`
	CreatedAt time.Time `json:"create_at"`
	UpdatedAt time.Time `json:"update_at"`
}

// UserPage 用户分页结果。
type UserPage struct {
	Data []UserSummary `json:"data"`
	PageMeta
}

func (s *UserService) searchQuery(search string) *gorm.DB {
	q := s.db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ?", like, like, like)
	}
	return q
}

// List 按创建时间倒序分页返回用户，search 对姓名和邮箱做子串匹配。
func (s *UserService) List(page, itemsPerPage int, search string) (*UserPage, error) {
	page, itemsPerPage = normalizePage(page, itemsPerPage)

	var total int64
	if err := s.searchQuery(search).Count(&total).Error; err != nil {
		return nil, err
	}

	users := make([]UserSummary, 0, itemsPerPage)
	err := s.searchQuery(search).
		Order("created_at DESC").
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return &UserPage{Data: users, PageMeta: newPageMeta(page, itemsPerPage, total)}, nil
}

// Get 按 ID 查询用户，不存在返回 ErrNotFound。
func (s *UserService) Get(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserInput 管理端创建用户的输入。
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// Create 创建用户，密码哈希后入库。
func (s *UserService) Create(in CreateUserInput) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := models.User{FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Password: hash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUserInput 部分更新的输入，nil 字段不改动。
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Status    *int
}

// Update 部分更新用户字段。
func (s *UserService) Update(id uint, in UpdateUserInput) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	updates := map[string]interface{}{}
	if in.FirstName != nil {
		updates["first_name"] = *in.FirstName
	}
	if in.LastName != nil {
		updates["last_name"] = *in.LastName
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除用户，其文章级联删除。
func (s *UserService) Delete(id uint) error {
	res := s.db.Delete(&models.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateAvatar 仅更新头像路径。
func (s *UserService) UpdateAvatar(id uint, path string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", id).Update("avatar", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
