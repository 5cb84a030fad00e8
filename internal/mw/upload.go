package mw

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blog/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxUploadSize 上传文件大小上限。
const MaxUploadSize = 5 * 1024 * 1024

const uploadedPathKey = "uploadedFilePath"

var allowedExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}

// Upload 返回图片上传校验中间件：校验扩展名与大小，保存到
// <dir>/<subdir>/<uuid><ext>，并把存储路径写入上下文。任何校验失败
// 都在业务 handler 之前以 400 短路。
func Upload(field, dir, subdir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > MaxUploadSize {
			metrics.UploadsTotal.WithLabelValues("too_large").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file size is too large, accepted file size is less than 5 MB"})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxUploadSize)

		file, err := c.FormFile(field)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues("missing").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		ext := strings.ToLower(filepath.Ext(file.Filename))
		if !allowedExts[ext] {
			metrics.UploadsTotal.WithLabelValues("bad_ext").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "wrong extension type, accepted file ext are: .jpg,.png,.jpeg"})
			return
		}
		if file.Size > MaxUploadSize {
			metrics.UploadsTotal.WithLabelValues("too_large").Inc()
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file size is too large, accepted file size is less than 5 MB"})
			return
		}

		target := filepath.Join(dir, subdir)
		if err := os.MkdirAll(target, 0o755); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
			return
		}
		path := filepath.Join(target, uuid.NewString()+ext)
		if err := c.SaveUploadedFile(file, path); err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to store file"})
			return
		}
		metrics.UploadsTotal.WithLabelValues("ok").Inc()
		c.Set(uploadedPathKey, filepath.ToSlash(path))
		c.Next()
	}
}

// UploadedFilePath 读取 Upload 中间件保存的文件路径。
func UploadedFilePath(c *gin.Context) string {
	if v, ok := c.Get(uploadedPathKey); ok {
		if p, ok2 := v.(string); ok2 {
			return p
		}
	}
	return ""
}
