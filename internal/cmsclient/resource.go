package cmsclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type listEnvelope[T any] struct {
	Items []T `json:"items"`
}

type itemEnvelope[T any] struct {
	Item    T      `json:"item"`
	Message string `json:"message"`
}

// Resource 是某一类可排序内容的远程存储
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource 创建远程存储，path 例如 /api/cms/about/core-values
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: strings.TrimRight(path, "/")}
}

// Path 返回资源路径
func (r *Resource[T]) Path() string {
	return r.path
}

// List 返回全部条目
func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var out listEnvelope[T]
	if err := r.client.do(ctx, http.MethodGet, r.path, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out.Items, nil
}

// Get 返回单个条目
func (r *Resource[T]) Get(ctx context.Context, id uint) (T, error) {
	var out itemEnvelope[T]
	err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, &out)
	return out.Item, err
}

// Create 新建条目
func (r *Resource[T]) Create(ctx context.Context, item T) (T, error) {
	var out itemEnvelope[T]
	err := r.client.do(ctx, http.MethodPost, r.path, item, &out)
	return out.Item, err
}

// Update 整体覆盖条目
func (r *Resource[T]) Update(ctx context.Context, id uint, item T) (T, error) {
	var out itemEnvelope[T]
	err := r.client.do(ctx, http.MethodPut, r.itemPath(id), item, &out)
	return out.Item, err
}

// Delete 删除条目
func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil)
}

// Reorder 按 ids 顺序把排序值重置为 0,1,2...
func (r *Resource[T]) Reorder(ctx context.Context, ids []uint) error {
	return r.client.do(ctx, http.MethodPut, r.path+"/order", map[string][]uint{"ids": ids}, nil)
}

func (r *Resource[T]) itemPath(id uint) string {
	return fmt.Sprintf("%s/%d", r.path, id)
}

// SingletonResource 是全站唯一设置的远程存储
type SingletonResource[T any] struct {
	client *Client
	path   string
}

// NewSingletonResource 创建单例远程存储
func NewSingletonResource[T any](client *Client, path string) *SingletonResource[T] {
	return &SingletonResource[T]{client: client, path: strings.TrimRight(path, "/")}
}

// Get 读取设置
func (r *SingletonResource[T]) Get(ctx context.Context) (T, error) {
	var out itemEnvelope[T]
	err := r.client.do(ctx, http.MethodGet, r.path, nil, &out)
	return out.Item, err
}

// Update 保存设置
func (r *SingletonResource[T]) Update(ctx context.Context, item T) (T, error) {
	var out itemEnvelope[T]
	err := r.client.do(ctx, http.MethodPut, r.path, item, &out)
	return out.Item, err
}
