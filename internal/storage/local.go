package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// LocalStorage 把文件写入本地目录，由路由以静态文件方式对外提供
type LocalStorage struct {
	root    string
	urlPath string
}

// NewLocalStorage 创建本地存储，目录不存在时自动创建
func NewLocalStorage(root, urlPath string) (*LocalStorage, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "data/uploads"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, eris.Wrapf(err, "create upload dir %s", root)
	}

	urlPath = "/" + strings.Trim(strings.TrimSpace(urlPath), "/")
	if urlPath == "/" {
		urlPath = "/uploads"
	}

	return &LocalStorage{root: root, urlPath: urlPath}, nil
}

// Root 返回本地根目录
func (s *LocalStorage) Root() string {
	return s.root
}

// URLPath 返回静态文件挂载路径
func (s *LocalStorage) URLPath() string {
	return s.urlPath
}

// Save 写入文件，先写临时文件再重命名，避免读到半截内容
func (s *LocalStorage) Save(_ context.Context, key string, body io.Reader, _ string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return eris.Wrap(err, "create upload folder")
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".upload-*")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return eris.Wrap(err, "write upload")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close upload")
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return eris.Wrap(err, "move upload")
	}
	return nil
}

// Delete 删除文件
func (s *LocalStorage) Delete(_ context.Context, key string) error {
	target, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return eris.Wrapf(err, "delete %s", key)
	}
	return nil
}

// URL 返回站内路径，例如 /uploads/images/xxx.png
func (s *LocalStorage) URL(key string) string {
	return path.Join(s.urlPath, filepath.ToSlash(key))
}

func (s *LocalStorage) resolve(key string) (string, error) {
	cleaned := path.Clean("/" + filepath.ToSlash(key))
	if cleaned == "/" {
		return "", eris.New("empty storage key")
	}
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))), nil
}
