package service

import (
	"errors"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/models"

	"gorm.io/gorm"
)

// AuthService 封装注册、登录与 refresh token 旋转。
type AuthService struct {
	db  *gorm.DB
	cfg config.Config
}

func NewAuthService(db *gorm.DB, cfg config.Config) *AuthService {
	return &AuthService{db: db, cfg: cfg}
}

// TokenPair 登录或刷新成功后签发的 token 对。
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register 注册新用户，密码只保存 bcrypt 哈希。
func (s *AuthService) Register(firstName, lastName, email, password string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := models.User{FirstName: firstName, LastName: lastName, Email: email, Password: hash}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Login 校验邮箱密码并签发 token 对。
func (s *AuthService) Login(email, password string) (*TokenPair, *models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !auth.VerifyPassword(user.Password, password) {
		return nil, nil, ErrInvalidCredentials
	}
	pair, err := s.issueTokenPair(s.db, &user)
	if err != nil {
		return nil, nil, err
	}
	return pair, &user, nil
}

// Refresh 校验刷新 token 并旋转：每个用户只有最近一次签发的
// refresh token 有效，旧 token 被新 token 覆盖后立即失效。
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := auth.ParseToken(refreshToken, s.cfg.RefreshSecret)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	var pair *TokenPair
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("email = ? AND refresh_token = ?", claims.Email, refreshToken).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidRefreshToken
			}
			return err
		}
		p, err := s.issueTokenPair(tx, &user)
		if err != nil {
			return err
		}
		pair = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// issueTokenPair 签发 token 对并把 refresh token 覆盖写到用户行上。
func (s *AuthService) issueTokenPair(tx *gorm.DB, user *models.User) (*TokenPair, error) {
	at, err := auth.GenerateAccessToken(user.ID, user.Email, s.cfg.JWTSecret, s.cfg.AccessTokenTTLMinutes)
	if err != nil {
		return nil, err
	}
	rt, err := auth.GenerateRefreshToken(user.ID, user.Email, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTLDays)
	if err != nil {
		return nil, err
	}
	if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("refresh_token", rt).Error; err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: at, RefreshToken: rt}, nil
}
