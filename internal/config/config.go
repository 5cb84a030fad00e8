package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                  string
	DatabaseDriver        string
	DatabaseDSN           string
	JWTSecret             string
	RefreshSecret         string
	Env                   string
	UploadDir             string
	AccessTokenTTLMinutes int
	RefreshTokenTTLDays   int
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func Load() Config {
	_ = godotenv.Load()
	return Config{
		Port:                  getenv("APP_PORT", "8080"),
		DatabaseDriver:        getenv("DATABASE_DRIVER", "postgres"),
		DatabaseDSN:           getenv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=blog port=5432 sslmode=disable TimeZone=UTC"),
		JWTSecret:             getenv("JWT_SECRET", "dev-secret-change-me"),
		RefreshSecret:         getenv("REFRESH_SECRET", "dev-refresh-secret-change-me"),
		Env:                   getenv("APP_ENV", "dev"),
		UploadDir:             getenv("UPLOAD_DIR", "./uploads"),
		AccessTokenTTLMinutes: getenvInt("ACCESS_TOKEN_TTL_MINUTES", 15),
		RefreshTokenTTLDays:   getenvInt("REFRESH_TOKEN_TTL_DAYS", 7),
	}
}

// Validate 在启动时拒绝明显不可用的配置，生产环境禁止默认密钥。
func Validate(cfg Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if cfg.DatabaseDSN == "" {
		return fmt.Errorf("database dsn must not be empty")
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return fmt.Errorf("unsupported database driver: %s", cfg.DatabaseDriver)
	}
	if cfg.Env != "dev" {
		if cfg.JWTSecret == "dev-secret-change-me" {
			return fmt.Errorf("default JWT_SECRET is not allowed outside dev")
		}
		if cfg.RefreshSecret == "dev-refresh-secret-change-me" {
			return fmt.Errorf("default REFRESH_SECRET is not allowed outside dev")
		}
	}
	return nil
}
