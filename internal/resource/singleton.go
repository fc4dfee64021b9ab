package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sectioncms/internal/cmsclient"
	"github.com/sectioncms/internal/content"
	"github.com/sectioncms/internal/logging"
	"github.com/sirupsen/logrus"
)

// Validator 是单例设置需要实现的必填字段声明
type Validator interface {
	Required() []content.Field
}

// SingletonStore 是单例设置的远程存储，cmsclient.SingletonResource 实现了该接口
type SingletonStore[T any] interface {
	Get(ctx context.Context) (T, error)
	Update(ctx context.Context, item T) (T, error)
}

// SingletonOptions 配置单例控制器；Fallback 为 nil 时不启用示例数据回退
type SingletonOptions[T any] struct {
	Name     string
	FlashTTL time.Duration
	Fallback func() T
	Logger   *logrus.Logger
	Now      func() time.Time
}

// SingletonState 是单例控制器的状态快照
type SingletonState[T any] struct {
	Value   T
	Loading bool
	Demo    bool
	Notice  string
	Error   string
	Success string
}

// Singleton 管理全站唯一的一条设置
type Singleton[T any, P interface {
	*T
	Validator
}] struct {
	mu      sync.Mutex
	store   SingletonStore[T]
	opts    SingletonOptions[T]
	logger  *logrus.Logger
	value   T
	loading bool
	demo    bool
	flash   *flashBoard
}

// NewSingleton 创建单例控制器
func NewSingleton[T any, P interface {
	*T
	Validator
}](store SingletonStore[T], opts SingletonOptions[T]) *Singleton[T, P] {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.Name == "" {
		opts.Name = "settings"
	}
	return &Singleton[T, P]{
		store:  store,
		opts:   opts,
		logger: logger,
		flash:  newFlashBoard(opts.FlashTTL, opts.Now),
	}
}

// State 返回当前状态
func (s *Singleton[T, P]) State() SingletonState[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SingletonState[T]{
		Value:   s.value,
		Loading: s.loading,
		Demo:    s.demo,
		Error:   s.flash.get(FlashError),
		Success: s.flash.get(FlashSuccess),
	}
	if s.demo {
		state.Notice = DemoNotice
	}
	return state
}

// Value 返回当前设置
func (s *Singleton[T, P]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Load 读取设置；后端不可用时回退到示例值，其他错误时置为零值并返回错误
func (s *Singleton[T, P]) Load(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	value, err := s.store.Get(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		if errors.Is(err, cmsclient.ErrBackendUnavailable) && s.opts.Fallback != nil {
			s.logger.WithError(err).WithField("section", s.opts.Name).Warn("backend unavailable, using demo content")
			s.value = s.opts.Fallback()
			s.demo = true
			s.flash.clear(FlashError)
			return nil
		}

		var zero T
		s.value = zero
		s.demo = false
		s.flash.set(FlashError, fmt.Sprintf("Failed to load %s: %v", s.opts.Name, err))
		return err
	}

	s.value = value
	s.demo = false
	return nil
}

// Save 校验后保存设置并重新加载
func (s *Singleton[T, P]) Save(ctx context.Context, value T) error {
	s.mu.Lock()
	demo := s.demo
	s.mu.Unlock()
	if demo {
		s.setFlash(FlashError, ErrDemoMode.Error())
		return ErrDemoMode
	}

	if err := ValidateRequired(P(&value).Required()); err != nil {
		s.setFlash(FlashError, err.Error())
		return err
	}

	if _, err := s.store.Update(ctx, value); err != nil {
		s.logger.WithError(err).WithField("section", s.opts.Name).Warn("content change failed")
		s.setFlash(FlashError, fmt.Sprintf("Failed to save %s: %v", s.opts.Name, err))
		return err
	}

	s.setFlash(FlashSuccess, fmt.Sprintf("%s saved", s.opts.Name))
	if err := s.Load(ctx); err != nil {
		s.logger.WithError(err).WithField("section", s.opts.Name).Warn("reload after change failed")
	}
	return nil
}

func (s *Singleton[T, P]) setFlash(kind FlashKind, text string) {
	s.mu.Lock()
	s.flash.set(kind, text)
	s.mu.Unlock()
}
