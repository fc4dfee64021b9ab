// Package resource 实现内容列表与单例设置的客户端控制器：加载、校验、增删改、排序与提示信息。
package resource

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/logging"
	"github.com/sirupsen/logrus"
)

// ErrDemoMode 表示当前展示的是示例数据，不能修改
var ErrDemoMode = errors.New("showing demo content, changes are disabled until the backend is reachable")

// DemoNotice 是进入示例模式时展示的提示
const DemoNotice = "Backend server not available, showing demo content"

// Entry 是控制器管理的条目需要实现的方法，content.Base 提供了除 Required 外的全部实现
type Entry interface {
	Key() uint
	OrderValue() int
	SetOrder(order int)
	Active() bool
	SetActive(active bool)
	Required() []content.Field
}

// Store 是列表数据的远程存储，cmsclient.Resource 实现了该接口
type Store[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, id uint, item T) (T, error)
	Delete(ctx context.Context, id uint) error
}

// Reorderer 是可选能力，支持一次提交完整顺序
type Reorderer interface {
	Reorder(ctx context.Context, ids []uint) error
}

// Options 配置控制器；Fallback 为 nil 时不启用示例数据回退
type Options[T any] struct {
	Name     string
	FlashTTL time.Duration
	Fallback func() []T
	Logger   *logrus.Logger
	Now      func() time.Time
}

// State 是控制器当前状态的快照
type State[T any] struct {
	Items   []T
	Loading bool
	Demo    bool
	Notice  string
	Error   string
	Success string
}

// Controller 管理一类可排序内容的列表
type Controller[T any, P interface {
	*T
	Entry
}] struct {
	mu      sync.Mutex
	store   Store[T]
	opts    Options[T]
	logger  *logrus.Logger
	items   []T
	loading bool
	demo    bool
	flash   *flashBoard
}

// NewController 创建控制器
func NewController[T any, P interface {
	*T
	Entry
}](store Store[T], opts Options[T]) *Controller[T, P] {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Name == "" {
		opts.Name = "item"
	}
	return &Controller[T, P]{
		store:  store,
		opts:   opts,
		logger: logger,
		items:  []T{},
		flash:  newFlashBoard(opts.FlashTTL, opts.Now),
	}
}

// Name 返回内容类别名称
func (c *Controller[T, P]) Name() string {
	return c.opts.Name
}

// State 返回当前状态，Items 为按 Rank 排序后的副本
func (c *Controller[T, P]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State[T]{
		Items:   slices.Clone(c.items),
		Loading: c.loading,
		Demo:    c.demo,
		Error:   c.flash.get(FlashError),
		Success: c.flash.get(FlashSuccess),
	}
	if c.demo {
		state.Notice = DemoNotice
	}
	return state
}

// Items 返回排序后的条目副本
func (c *Controller[T, P]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.items)
}

// Find 按 ID 查找已加载的条目
func (c *Controller[T, P]) Find(id uint) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, item, ok := c.lookup(id)
	return item, ok
}

// Load 重新拉取列表。后端不可用且配置了示例数据时切换到示例模式并返回 nil；
// 其他错误会清空列表、记录错误提示并返回该错误
func (c *Controller[T, P]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	items, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		if errors.Is(err, cmsclient.ErrBackendUnavailable) && c.opts.Fallback != nil {
			c.logger.WithError(err).WithField("section", c.opts.Name).Warn("backend unavailable, using demo content")
			c.items = c.opts.Fallback()
			if c.items == nil {
				c.items = []T{}
			}
			SortByRank[T, P](c.items)
			c.demo = true
			c.flash.clear(FlashError)
			return nil
		}

		c.items = []T{}
		c.demo = false
		c.flash.set(FlashError, fmt.Sprintf("Failed to load %s: %v", c.opts.Name, err))
		return err
	}

	if items == nil {
		items = []T{}
	}
	SortByRank[T, P](items)
	c.items = items
	c.demo = false
	return nil
}

// Create 校验必填字段后新建条目并重新加载
func (c *Controller[T, P]) Create(ctx context.Context, item T) error {
	if err := c.validate(&item); err != nil {
		return err
	}
	P(&item).SetOrder(P(&item).OrderValue())

	if _, err := c.store.Create(ctx, item); err != nil {
		return c.fail("create", err)
	}
	return c.succeed(ctx, fmt.Sprintf("%s created", c.opts.Name))
}

// Update 校验必填字段后整体覆盖条目并重新加载
func (c *Controller[T, P]) Update(ctx context.Context, item T) error {
	if err := c.writable(); err != nil {
		return err
	}
	if err := c.validate(&item); err != nil {
		return err
	}
	P(&item).SetOrder(P(&item).OrderValue())

	if _, err := c.store.Update(ctx, P(&item).Key(), item); err != nil {
		return c.fail("update", err)
	}
	return c.succeed(ctx, fmt.Sprintf("%s updated", c.opts.Name))
}

// Delete 删除条目并重新加载
func (c *Controller[T, P]) Delete(ctx context.Context, id uint) error {
	if err := c.writable(); err != nil {
		return err
	}
	if err := c.store.Delete(ctx, id); err != nil {
		return c.fail("delete", err)
	}
	return c.succeed(ctx, fmt.Sprintf("%s deleted", c.opts.Name))
}

// ToggleActive 切换上线状态，只修改 isActive 字段
func (c *Controller[T, P]) ToggleActive(ctx context.Context, id uint) error {
	item, err := c.loaded(id)
	if err != nil {
		return err
	}

	P(&item).SetActive(!P(&item).Active())
	if _, err := c.store.Update(ctx, id, item); err != nil {
		return c.fail("update", err)
	}

	state := "deactivated"
	if P(&item).Active() {
		state = "activated"
	}
	return c.succeed(ctx, fmt.Sprintf("%s %s", c.opts.Name, state))
}

// SetOrder 把条目的排序值改为 order，负数按 0 处理；值不变时不发请求
func (c *Controller[T, P]) SetOrder(ctx context.Context, id uint, order int) error {
	item, err := c.loaded(id)
	if err != nil {
		return err
	}

	order = max(0, order)
	if P(&item).OrderValue() == order {
		return nil
	}

	P(&item).SetOrder(order)
	if _, err := c.store.Update(ctx, id, item); err != nil {
		return c.fail("reorder", err)
	}
	return c.succeed(ctx, "Order updated")
}

// MoveUp 与前一个条目交换位置，已在首位时不做任何事
func (c *Controller[T, P]) MoveUp(ctx context.Context, id uint) error {
	return c.move(ctx, id, -1)
}

// MoveDown 与后一个条目交换位置，已在末位时不做任何事
func (c *Controller[T, P]) MoveDown(ctx context.Context, id uint) error {
	return c.move(ctx, id, 1)
}

// Reorder 按 ids 的顺序提交完整排序
func (c *Controller[T, P]) Reorder(ctx context.Context, ids []uint) error {
	if err := c.writable(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	return c.applyOrder(ctx, ids)
}

// applyOrder 让 ids 依次获得 0,1,2...；store 不支持整体重排时逐条更新有变化的条目
func (c *Controller[T, P]) applyOrder(ctx context.Context, ids []uint) error {
	if reorderer, ok := c.store.(Reorderer); ok {
		if err := reorderer.Reorder(ctx, ids); err != nil {
			return c.fail("reorder", err)
		}
		return c.succeed(ctx, "Order updated")
	}

	for index, id := range ids {
		item, err := c.loaded(id)
		if err != nil {
			return err
		}
		if P(&item).OrderValue() == index {
			continue
		}
		P(&item).SetOrder(index)
		if _, err := c.store.Update(ctx, id, item); err != nil {
			return c.fail("reorder", err)
		}
	}
	return c.succeed(ctx, "Order updated")
}

func (c *Controller[T, P]) move(ctx context.Context, id uint, direction int) error {
	if err := c.writable(); err != nil {
		return err
	}

	c.mu.Lock()
	index, item, ok := c.lookup(id)
	target := index + direction
	inRange := ok && target >= 0 && target < len(c.items)
	var neighbour T
	var ids []uint
	if inRange {
		neighbour = c.items[target]
		ids = make([]uint, len(c.items))
		for i := range c.items {
			ids[i] = P(&c.items[i]).Key()
		}
		ids[index], ids[target] = ids[target], ids[index]
	}
	c.mu.Unlock()

	if !ok {
		return ErrItemNotLoaded
	}
	if !inRange {
		return nil
	}

	// 排序值相同时提交交换后的完整顺序，只改一个排序值可能越过其他同值条目
	own, other := P(&item).OrderValue(), P(&neighbour).OrderValue()
	if own == other {
		return c.applyOrder(ctx, ids)
	}

	P(&item).SetOrder(other)
	P(&neighbour).SetOrder(own)
	for _, change := range []T{item, neighbour} {
		if _, err := c.store.Update(ctx, P(&change).Key(), change); err != nil {
			return c.fail("reorder", err)
		}
	}
	return c.succeed(ctx, "Order updated")
}

func (c *Controller[T, P]) lookup(id uint) (int, T, bool) {
	for i := range c.items {
		if P(&c.items[i]).Key() == id {
			return i, c.items[i], true
		}
	}
	var zero T
	return -1, zero, false
}

func (c *Controller[T, P]) loaded(id uint) (T, error) {
	var zero T
	if err := c.writable(); err != nil {
		return zero, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, item, ok := c.lookup(id)
	if !ok {
		return zero, ErrItemNotLoaded
	}
	return item, nil
}

func (c *Controller[T, P]) writable() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.demo {
		c.flash.set(FlashError, ErrDemoMode.Error())
		return ErrDemoMode
	}
	return nil
}

func (c *Controller[T, P]) validate(item *T) error {
	if err := ValidateRequired(P(item).Required()); err != nil {
		c.mu.Lock()
		c.flash.set(FlashError, err.Error())
		c.mu.Unlock()
		return err
	}
	return nil
}

func (c *Controller[T, P]) fail(action string, err error) error {
	c.logger.WithError(err).WithFields(logrus.Fields{
		"section": c.opts.Name,
		"action":  action,
	}).Warn("content change failed")

	c.mu.Lock()
	c.flash.set(FlashError, fmt.Sprintf("Failed to %s %s: %v", action, c.opts.Name, err))
	c.mu.Unlock()
	return err
}

// succeed 记录成功提示并重新加载；重新加载失败只体现在错误提示中
func (c *Controller[T, P]) succeed(ctx context.Context, message string) error {
	c.mu.Lock()
	c.flash.set(FlashSuccess, message)
	c.mu.Unlock()

	if err := c.Load(ctx); err != nil {
		c.logger.WithError(err).WithField("section", c.opts.Name).Warn("reload after change failed")
	}
	return nil
}
