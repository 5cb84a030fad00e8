package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"size:255;not null" json:"-"`
	RefreshToken *string   `gorm:"size:512" json:"-"`
	Avatar       *string   `gorm:"size:255" json:"avatar"`
	Status       int       `gorm:"default:1" json:"status"`
	CreatedAt    time.Time `json:"create_at"`
	UpdatedAt    time.Time `json:"update_at"`
	Posts        []Post    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Thumbnail   string    `gorm:"size:255;not null" json:"thumbnail"`
	Status      int       `gorm:"default:1" json:"status"`
	CreatedAt   time.Time `json:"create_at"`
	UpdatedAt   time.Time `json:"update_at"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	User        User      `json:"user"`
	CategoryID  uint      `gorm:"index;not null" json:"-"`
	Category    Category  `json:"category"`
}

type Category struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:128;uniqueIndex;not null" json:"name"`
	Posts []Post `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
