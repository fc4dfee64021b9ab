// Package storage 保存上传文件并返回可公开访问的地址。
package storage

import (
	"context"
	"io"

	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/config"
	"github.com/sirupsen/logrus"
)

// Storage 定义上传文件的存储后端
type Storage interface {
	// Save 把内容写入 key 对应的位置
	Save(ctx context.Context, key string, body io.Reader, contentType string) error

	// Delete 删除 key 对应的文件，不存在时不报错
	Delete(ctx context.Context, key string) error

	// URL 返回文件的访问地址，本地存储返回站内相对路径
	URL(key string) string
}

// New 根据配置选择本地目录或 S3 兼容的对象存储
func New(ctx context.Context, cfg config.AppConfig, logger *logrus.Logger) (Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		logger.WithFields(logrus.Fields{
			"bucket":   cfg.Storage.Bucket,
			"region":   cfg.Storage.Region,
			"endpoint": cfg.Storage.Endpoint,
		}).Info("initializing s3 storage")
		return NewS3Storage(ctx, S3Config{
			Region:    cfg.Storage.Region,
			Bucket:    cfg.Storage.Bucket,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		}, logger)
	case config.StorageDriverLocal, "":
		logger.WithField("dir", cfg.UploadDir).Info("initializing local storage")
		return NewLocalStorage(cfg.UploadDir, cfg.UploadURLPath)
	default:
		return nil, eris.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}
