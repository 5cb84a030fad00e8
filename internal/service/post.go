package service

import (
	"errors"
	"time"

	"blog/internal/models"

	"gorm.io/gorm"
)

// PostService 封装文章目录的业务逻辑。
type PostService struct {
	db *gorm.DB
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db}
}

// PostAuthor 文章接口输出的作者投影。
type PostAuthor struct {
	ID        uint    `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Avatar    *string `json:"avatar"`
}

// PostCategory 文章接口输出的分类投影。
type PostCategory struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// PostDTO 对外输出的文章数据，带浅层作者与分类投影。
type PostDTO struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Thumbnail   string       `json:"thumbnail"`
	Status      int          `json:"status"`
	CreatedAt   time.Time    `json:"create_at"`
	UpdatedAt   time.Time    `json:"update_at"`
	User        PostAuthor   `json:"user"`
	Category    PostCategory `json:"category"`
}

// PostPage 文章分页结果。
type PostPage struct {
	Data []PostDTO `json:"data"`
	PageMeta
}

func toPostDTO(p models.Post) PostDTO {
	return PostDTO{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		User: PostAuthor{
			ID:        p.User.ID,
			FirstName: p.User.FirstName,
			LastName:  p.User.LastName,
			Email:     p.User.Email,
			Avatar:    p.User.Avatar,
		},
		Category: PostCategory{ID: p.Category.ID, Name: p.Category.Name},
	}
}

func authorProjection(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name", "email", "avatar")
}

// CreatePostInput 创建文章的输入。
type CreatePostInput struct {
	Title       string
	Description string
	Thumbnail   string
	CategoryID  uint
}

// Create 创建文章，作者和分类都必须已存在；返回重新读取的完整记录。
func (s *PostService) Create(userID uint, in CreatePostInput) (*PostDTO, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var cat models.Category
	if err := s.db.First(&cat, in.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	post := models.Post{
		Title:       in.Title,
		Description: in.Description,
		Thumbnail:   in.Thumbnail,
		UserID:      user.ID,
		CategoryID:  cat.ID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return s.Get(post.ID)
}

// PostQuery 文章列表的过滤条件。
type PostQuery struct {
	Page         int
	ItemsPerPage int
	Search       string
	CategoryID   uint
}

func (s *PostService) filterQuery(q PostQuery) *gorm.DB {
	tx := s.db.Model(&models.Post{})
	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	// 分类过滤只在显式传入时生效，未传分类返回全部文章。
	if q.CategoryID > 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	return tx
}

// List 按创建时间倒序分页返回文章，search 对标题和描述做子串匹配。
func (s *PostService) List(q PostQuery) (*PostPage, error) {
	page, itemsPerPage := normalizePage(q.Page, q.ItemsPerPage)

	var total int64
	if err := s.filterQuery(q).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []models.Post
	err := s.filterQuery(q).
		Preload("User", authorProjection).
		Preload("Category").
		Order("created_at DESC").
		Offset((page - 1) * itemsPerPage).
		Limit(itemsPerPage).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p))
	}
	return &PostPage{Data: out, PageMeta: newPageMeta(page, itemsPerPage, total)}, nil
}

// Get 按 ID 查询文章，不存在返回 ErrNotFound。
func (s *PostService) Get(id uint) (*PostDTO, error) {
	var post models.Post
	err := s.db.Preload("User", authorProjection).Preload("Category").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	dto := toPostDTO(post)
	return &dto, nil
}

// UpdatePostInput 部分更新的输入，nil 字段不改动。
type UpdatePostInput struct {
	Title       *string
	Description *string
	Thumbnail   *string
	Status      *int
	CategoryID  *uint
}

// Update 部分更新文章字段，分类变更时校验目标分类存在。
func (s *PostService) Update(id uint, in UpdatePostInput) error {
	var post models.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Thumbnail != nil {
		updates["thumbnail"] = *in.Thumbnail
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.CategoryID != nil {
		var cat models.Category
		if err := s.db.First(&cat, *in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}
		updates["category_id"] = *in.CategoryID
	}
	if len(updates) == 0 {
		return nil
	}
	return s.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error
}

// Delete 删除文章，不存在返回 ErrNotFound。
func (s *PostService) Delete(id uint) error {
	res := s.db.Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
