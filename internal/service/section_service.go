package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"gorm.io/gorm"
)

var (
	// ErrSectionNotFound 在指定的内容条目不存在时返回
	ErrSectionNotFound = errors.New("section item not found")
	// ErrSectionInvalidInput 在输入数据不完整时返回
	ErrSectionInvalidInput = errors.New("invalid section input")
)

// Record 是可排序内容条目需要满足的约束，由 db.Model 与 db.Ordering 组合实现。
type Record interface {
	PrimaryKey() uint
	SetPrimaryKey(id uint)
	CreatedTime() time.Time
	SetCreatedTime(t time.Time)
	OrderValue() int
	SetOrderValue(order int)
	Active() bool
	SetActive(active bool)
}

// SectionSpec 描述某一类内容条目的差异部分：字段清洗、必填校验与关联数据的读写。
// 除 Name 外均可为空。
type SectionSpec[T any] struct {
	Name      string
	Normalize func(item *T) error
	Validate  func(item *T) error
	// Preload 在读取时附加关联查询，例如委员会成员。
	Preload func(query *gorm.DB) *gorm.DB
	// Persist 替换默认的 Save，用于需要同步子表的条目。
	Persist func(tx *gorm.DB, item *T) error
	// Purge 在删除条目前清理关联数据。
	Purge func(tx *gorm.DB, id uint) error
}

// SectionService 负责某一类内容条目的增删改查与排序
// 列表统一按 sort_order 升序、id 升序返回，id 即插入顺序，用于打破排序值相同的情况
type SectionService[T any, P interface {
	*T
	Record
}] struct {
	db   *gorm.DB
	spec SectionSpec[T]
}

// NewSectionService 构造 SectionService
func NewSectionService[T any, P interface {
	*T
	Record
}](gdb *gorm.DB, spec SectionSpec[T]) *SectionService[T, P] {
	if spec.Name == "" {
		spec.Name = "section"
	}
	return &SectionService[T, P]{db: gdb, spec: spec}
}

// Name 返回内容类别名称，用于日志与错误信息。
func (s *SectionService[T, P]) Name() string {
	return s.spec.Name
}

// List 返回条目集合，includeInactive 为 false 时过滤掉下线条目
func (s *SectionService[T, P]) List(includeInactive bool) ([]T, error) {
	query := s.scoped(s.db.Model(new(T)))
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var items []T
	if err := query.Order("sort_order ASC").Order("id ASC").Find(&items).Error; err != nil {
		return nil, eris.Wrapf(err, "list %s", s.spec.Name)
	}
	return items, nil
}

// Get 根据主键获取条目
func (s *SectionService[T, P]) Get(id uint) (*T, error) {
	return s.find(s.db, id)
}

// Create 新建条目；appendOrder 为 true 时忽略传入的排序值并追加到末尾
func (s *SectionService[T, P]) Create(item *T, appendOrder bool) (*T, error) {
	if err := s.prepare(item); err != nil {
		return nil, err
	}

	record := P(item)
	record.SetPrimaryKey(0)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if appendOrder {
			next, err := s.nextOrder(tx)
			if err != nil {
				return err
			}
			record.SetOrderValue(next)
		}
		return s.persist(tx, item)
	})
	if err != nil {
		return nil, eris.Wrapf(err, "create %s", s.spec.Name)
	}

	return s.find(s.db, record.PrimaryKey())
}

// Update 以传入内容整体覆盖指定条目，保留原创建时间
func (s *SectionService[T, P]) Update(id uint, item *T) (*T, error) {
	if err := s.prepare(item); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.find(tx, id)
		if err != nil {
			return err
		}

		record := P(item)
		record.SetPrimaryKey(id)
		record.SetCreatedTime(P(existing).CreatedTime())

		return s.persist(tx, item)
	})
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			return nil, err
		}
		return nil, eris.Wrapf(err, "update %s", s.spec.Name)
	}

	return s.find(s.db, id)
}

// Delete 删除指定条目
func (s *SectionService[T, P]) Delete(id uint) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.find(tx, id)
		if err != nil {
			return err
		}
		if s.spec.Purge != nil {
			if err := s.spec.Purge(tx, id); err != nil {
				return err
			}
		}
		return tx.Delete(existing).Error
	})
	if err != nil {
		if errors.Is(err, ErrSectionNotFound) {
			return err
		}
		return eris.Wrapf(err, "delete %s", s.spec.Name)
	}
	return nil
}

// Reorder 按给定顺序重排排序字段
// 传入的 IDs 会被依次赋值 0,1,2...，未包含的条目保持原排序；重复或不存在的 ID 视为无效输入
func (s *SectionService[T, P]) Reorder(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrSectionInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(new(T)).Where("id IN ?", ids).Count(&count).Error; err != nil {
			return eris.Wrapf(err, "reorder %s", s.spec.Name)
		}
		if count != int64(len(ids)) {
			return fmt.Errorf("%w: unknown %s id in order", ErrSectionInvalidInput, s.spec.Name)
		}

		for index, id := range ids {
			if err := tx.Model(new(T)).Where("id = ?", id).Update("sort_order", index).Error; err != nil {
				return eris.Wrapf(err, "reorder %s", s.spec.Name)
			}
		}
		return nil
	})
}

func (s *SectionService[T, P]) find(tx *gorm.DB, id uint) (*T, error) {
	item := new(T)
	if err := s.scoped(tx).First(item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, eris.Wrapf(err, "get %s", s.spec.Name)
	}
	return item, nil
}

func (s *SectionService[T, P]) prepare(item *T) error {
	if item == nil {
		return fmt.Errorf("%w: empty payload", ErrSectionInvalidInput)
	}

	record := P(item)
	record.SetOrderValue(record.OrderValue())

	if s.spec.Normalize != nil {
		if err := s.spec.Normalize(item); err != nil {
			return err
		}
	}
	if s.spec.Validate != nil {
		if err := s.spec.Validate(item); err != nil {
			return err
		}
	}
	return nil
}

func (s *SectionService[T, P]) persist(tx *gorm.DB, item *T) error {
	if s.spec.Persist != nil {
		return s.spec.Persist(tx, item)
	}
	return tx.Save(item).Error
}

func (s *SectionService[T, P]) scoped(query *gorm.DB) *gorm.DB {
	if s.spec.Preload != nil {
		return s.spec.Preload(query)
	}
	return query
}

func (s *SectionService[T, P]) nextOrder(tx *gorm.DB) (int, error) {
	var maxOrder int
	if err := tx.Model(new(T)).Select("COALESCE(MAX(sort_order), -1)").Scan(&maxOrder).Error; err != nil {
		return 0, eris.Wrapf(err, "resolve %s order", s.spec.Name)
	}
	return maxOrder + 1, nil
}

func requiredField(field string) error {
	return fmt.Errorf("%w: %s is required", ErrSectionInvalidInput, field)
}

func invalidField(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrSectionInvalidInput, field, reason)
}
