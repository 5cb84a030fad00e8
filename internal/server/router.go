package server

import (
	"net/http"
	"time"

	"blog/internal/auth"
	"blog/internal/config"
	"blog/internal/metrics"
	"blog/internal/mw"
	"blog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRouter 统一初始化 Gin 中间件与 REST API 路由。
func SetupRouter(cfg config.Config, db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(mw.CORS(cfg.Env))
	r.Use(mw.RateLimit(rate.Every(time.Second/20), 40))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authSvc := service.NewAuthService(db, cfg)
	userSvc := service.NewUserService(db)
	postSvc := service.NewPostService(db)
	catSvc := service.NewCategoryService(db)
	h := NewHandler(authSvc, userSvc, postSvc, catSvc)

	// 公开接口：注册、登录、token 旋转、分类列表。
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh-token", h.RefreshToken)
	r.GET("/category", h.ListCategories)

	guard := auth.AuthMiddleware(cfg, db)

	post := r.Group("/post")
	post.Use(guard)
	post.GET("", h.ListPosts)
	post.GET("/:id", h.GetPost)
	post.POST("", mw.Upload("thumbnail", cfg.UploadDir, "thumbnail"), h.CreatePost)
	post.PUT("/:id", mw.Upload("thumbnail", cfg.UploadDir, "thumbnail"), h.UpdatePost)
	post.DELETE("/:id", h.DeletePost)

	users := r.Group("/users")
	users.Use(guard)
	users.GET("", h.ListUsers)
	users.GET("/:id", h.GetUser)
	users.POST("", h.CreateUser)
	users.PUT("/:id", h.UpdateUser)
	users.DELETE("/:id", h.DeleteUser)
	users.POST("/upload-avatar", mw.Upload("avatar", cfg.UploadDir, "avatar"), h.UploadAvatar)

	// 上传的图片按直链公开访问。
	r.Static("/uploads", cfg.UploadDir)

	return r
}
