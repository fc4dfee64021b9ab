package db

import (
	"time"

	"gorm.io/gorm"
)

// Model 与 gorm.Model 字段一致，额外带上 JSON 标签供 API 直接输出。
type Model struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PrimaryKey 返回主键。
func (m *Model) PrimaryKey() uint {
	return m.ID
}

// SetPrimaryKey 设置主键，整条记录覆盖更新时使用。
func (m *Model) SetPrimaryKey(id uint) {
	m.ID = id
}

// CreatedTime 返回创建时间。
func (m *Model) CreatedTime() time.Time {
	return m.CreatedAt
}

// SetCreatedTime 在覆盖更新时保留原始创建时间。
func (m *Model) SetCreatedTime(t time.Time) {
	m.CreatedAt = t
}

// Ordering 为可排序的内容区块提供排序值与上下线状态。
// SortOrder 越小越靠前，相同时按 ID 升序。
type Ordering struct {
	SortOrder int  `gorm:"default:0;index" json:"order"`
	IsActive  bool `json:"isActive"`
}

// OrderValue 返回排序值。
func (o *Ordering) OrderValue() int {
	return o.SortOrder
}

// SetOrderValue 设置排序值，负数按 0 处理。
func (o *Ordering) SetOrderValue(order int) {
	if order < 0 {
		order = 0
	}
	o.SortOrder = order
}

// Active 返回是否在前台展示。
func (o *Ordering) Active() bool {
	return o.IsActive
}

// SetActive 设置前台展示状态。
func (o *Ordering) SetActive(active bool) {
	o.IsActive = active
}
