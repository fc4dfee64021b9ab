package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
)

const (
	StorageDriverLocal = "local"
	StorageDriverS3    = "s3"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	LogLevel      string
	Environment   string
	SentryDSN     string
	UploadDir     string
	UploadURLPath string
	SiteBaseURL   string
	CORSOrigins   []string
	AdminUserName string
	AdminPassword string
	Storage       StorageConfig
}

// StorageConfig 描述上传文件的存储位置，local 写入 UploadDir，s3 写入对象存储。
type StorageConfig struct {
	Driver    string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string
}

// ClientConfig 是 cmsctl 访问内容 API 时使用的配置。
// API 地址只在这里定义一次，所有客户端组件共享。
type ClientConfig struct {
	APIBaseURL  string
	Username    string
	Password    string
	HTTPTimeout time.Duration
	FlashTTL    time.Duration
	DemoMode    bool
}

// LoadDotEnv 读取当前目录下的 .env（若存在），不会覆盖已设置的环境变量。
func LoadDotEnv() {
	_ = godotenv.Load()
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
func Load() (AppConfig, error) {
	port := envString("PORT", "8080")

	listenAddr := envString("LISTEN_ADDR", fmt.Sprintf(":%s", port))

	driver := strings.ToLower(envString("STORAGE_DRIVER", StorageDriverLocal))
	if driver != StorageDriverLocal && driver != StorageDriverS3 {
		return AppConfig{}, eris.Errorf("invalid STORAGE_DRIVER value: %s", driver)
	}

	cfg := AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  envString("DATABASE_PATH", "data/sectioncms.db"),
		SessionSecret: envString("SESSION_SECRET", "sectioncms-dev-secret"),
		GinMode:       envString("GIN_MODE", "release"),
		LogLevel:      envString("LOG_LEVEL", "info"),
		Environment:   envString("APP_ENV", "development"),
		SentryDSN:     envString("SENTRY_DSN", ""),
		UploadDir:     envString("UPLOAD_DIR", "data/uploads"),
		UploadURLPath: envString("UPLOAD_URL_PATH", "/uploads"),
		SiteBaseURL:   strings.TrimRight(envString("SITE_BASE_URL", "http://localhost:"+port), "/"),
		CORSOrigins:   splitList(envString("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		AdminUserName: envString("ADMIN_USERNAME", ""),
		AdminPassword: envString("ADMIN_PASSWORD", ""),
		Storage: StorageConfig{
			Driver:    driver,
			Region:    envString("S3_REGION", "us-east-1"),
			Bucket:    envString("S3_BUCKET", ""),
			AccessKey: envString("S3_ACCESS_KEY", ""),
			SecretKey: envString("S3_SECRET_KEY", ""),
			Endpoint:  envString("S3_ENDPOINT", ""),
		},
	}

	if cfg.Storage.Driver == StorageDriverS3 && cfg.Storage.Bucket == "" {
		return AppConfig{}, eris.New("S3_BUCKET is required when STORAGE_DRIVER=s3")
	}

	return cfg, nil
}

// LoadClient 读取 cmsctl 的配置。
func LoadClient() (ClientConfig, error) {
	timeout, err := envDuration("CMS_HTTP_TIMEOUT", 15*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	flashTTL, err := envDuration("CMS_FLASH_TTL", 5*time.Second)
	if err != nil {
		return ClientConfig{}, err
	}
	demo, err := envBool("CMS_DEMO_MODE", true)
	if err != nil {
		return ClientConfig{}, err
	}

	return ClientConfig{
		APIBaseURL:  strings.TrimRight(envString("CMS_API_URL", "http://localhost:8080"), "/"),
		Username:    envString("CMS_USERNAME", ""),
		Password:    envString("CMS_PASSWORD", ""),
		HTTPTimeout: timeout,
		FlashTTL:    flashTTL,
		DemoMode:    demo,
	}, nil
}

func envString(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	if parsed < 0 {
		return 0, eris.Errorf("invalid %s value: %s", key, raw)
	}
	return parsed, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return parsed, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
