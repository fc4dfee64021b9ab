package db

import "time"

// StockQuoteSettingsID 是股价展示设置的唯一行主键。
const StockQuoteSettingsID = 1

// StockQuoteSettings 股价组件的展示设置，全站只有一行
type StockQuoteSettings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Symbol         string    `gorm:"size:20;not null" json:"symbol"`
	Exchange       string    `gorm:"size:40;not null" json:"exchange"`
	Currency       string    `gorm:"size:10" json:"currency"`
	RefreshSeconds int       `json:"refreshSeconds"`
	ShowChart      bool      `json:"showChart"`
	ShowVolume     bool      `json:"showVolume"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName 返回自定义表名
func (StockQuoteSettings) TableName() string {
	return "stock_quote_settings"
}
