// Package content 定义客户端使用的内容区块数据结构，字段与 REST API 的 JSON 一一对应。
package content

import (
	"strconv"
	"time"
)

// Field 是一个需要非空校验的字段
type Field struct {
	Name  string
	Value string
}

// Base 是所有可排序条目共有的字段
type Base struct {
	ID        uint      `json:"id,omitempty"`
	Order     int       `json:"order"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Key 返回条目 ID
func (b *Base) Key() uint { return b.ID }

// OrderValue 返回排序值
func (b *Base) OrderValue() int { return b.Order }

// SetOrder 设置排序值，负数按 0 处理
func (b *Base) SetOrder(order int) {
	if order < 0 {
		order = 0
	}
	b.Order = order
}

// Active 返回是否上线
func (b *Base) Active() bool { return b.IsActive }

// SetActive 设置上线状态
func (b *Base) SetActive(active bool) { b.IsActive = active }

// HeroBanner 页面顶部横幅
type HeroBanner struct {
	Base
	Page     string `json:"page"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
}

// DisplayName 返回列表中展示的名称
func (h *HeroBanner) DisplayName() string { return h.Title }

// Required 返回必填字段
func (h *HeroBanner) Required() []Field {
	return []Field{{Name: "title", Value: h.Title}}
}

// CoreValue 核心价值观
type CoreValue struct {
	Base
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

func (v *CoreValue) DisplayName() string { return v.Title }

func (v *CoreValue) Required() []Field {
	return []Field{{Name: "title", Value: v.Title}}
}

// LeadershipBio 管理层成员简介，BioHTML 由服务端生成
type LeadershipBio struct {
	Base
	Name     string `json:"name"`
	Position string `json:"position"`
	Bio      string `json:"bio"`
	BioHTML  string `json:"bioHtml,omitempty"`
	ImageURL string `json:"imageUrl"`
}

func (l *LeadershipBio) DisplayName() string { return l.Name }

func (l *LeadershipBio) Required() []Field {
	return []Field{{Name: "name", Value: l.Name}, {Name: "position", Value: l.Position}}
}

// StatBlock 投资者关系数据块
type StatBlock struct {
	Base
	Label  string `json:"label"`
	Value  string `json:"value"`
	Suffix string `json:"suffix"`
}

func (s *StatBlock) DisplayName() string { return s.Label }

func (s *StatBlock) Required() []Field {
	return []Field{{Name: "label", Value: s.Label}, {Name: "value", Value: s.Value}}
}

// CommitteeMember 委员会成员
type CommitteeMember struct {
	ID    uint   `json:"id,omitempty"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Order int    `json:"order"`
}

// Committee 委员会及其成员
type Committee struct {
	Base
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Members     []CommitteeMember `json:"members"`
}

func (c *Committee) DisplayName() string { return c.Name }

func (c *Committee) Required() []Field {
	fields := []Field{{Name: "name", Value: c.Name}}
	for i, member := range c.Members {
		fields = append(fields, Field{Name: memberField(i), Value: member.Name})
	}
	return fields
}

func memberField(index int) string {
	return "members[" + strconv.Itoa(index) + "].name"
}

// Regulation 监管文件
type Regulation struct {
	Base
	Title       string `json:"title"`
	Category    string `json:"category"`
	PDFURL      string `json:"pdfUrl"`
	PublishedOn string `json:"publishedOn"`
}

func (r *Regulation) DisplayName() string { return r.Title }

func (r *Regulation) Required() []Field {
	return []Field{{Name: "title", Value: r.Title}, {Name: "pdfUrl", Value: r.PDFURL}}
}

// StockQuote 股价展示设置，全站唯一
type StockQuote struct {
	Symbol         string    `json:"symbol"`
	Exchange       string    `json:"exchange"`
	Currency       string    `json:"currency"`
	RefreshSeconds int       `json:"refreshSeconds"`
	ShowChart      bool      `json:"showChart"`
	ShowVolume     bool      `json:"showVolume"`
	IsActive       bool      `json:"isActive"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (q *StockQuote) Required() []Field {
	return []Field{{Name: "symbol", Value: q.Symbol}, {Name: "exchange", Value: q.Exchange}}
}
