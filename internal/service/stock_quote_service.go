package service

import (
	"errors"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	defaultStockRefreshSeconds = 60
	minStockRefreshSeconds     = 15
)

// ErrStockQuoteInvalidInput 表示股价设置缺少必填项或刷新间隔过短。
var ErrStockQuoteInvalidInput = errors.New("invalid stock quote settings")

// StockQuoteInput 用于更新股价展示设置
// RefreshSeconds 为 0 时使用默认值 60
type StockQuoteInput struct {
	Symbol         string
	Exchange       string
	Currency       string
	RefreshSeconds int
	ShowChart      bool
	ShowVolume     bool
	IsActive       bool
}

// StockQuoteService 读写全站唯一的股价展示设置
type StockQuoteService struct {
	db *gorm.DB
}

// NewStockQuoteService 构造 StockQuoteService
func NewStockQuoteService(gdb *gorm.DB) *StockQuoteService {
	return &StockQuoteService{db: gdb}
}

// DefaultStockQuoteSettings 在尚未保存过设置时返回。
func DefaultStockQuoteSettings() db.StockQuoteSettings {
	return db.StockQuoteSettings{
		ID:             db.StockQuoteSettingsID,
		Currency:       "USD",
		RefreshSeconds: defaultStockRefreshSeconds,
		ShowChart:      true,
	}
}

// Get 读取股价设置，如未设置将返回默认值。
func (s *StockQuoteService) Get() (db.StockQuoteSettings, error) {
	var settings db.StockQuoteSettings
	if err := s.db.First(&settings, db.StockQuoteSettingsID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DefaultStockQuoteSettings(), nil
		}
		return db.StockQuoteSettings{}, eris.Wrap(err, "load stock quote settings")
	}
	return settings, nil
}

// Update 校验并保存股价设置。
func (s *StockQuoteService) Update(input StockQuoteInput) (db.StockQuoteSettings, error) {
	settings := db.StockQuoteSettings{
		ID:             db.StockQuoteSettingsID,
		Symbol:         strings.ToUpper(plainText(input.Symbol)),
		Exchange:       strings.ToUpper(plainText(input.Exchange)),
		Currency:       strings.ToUpper(plainText(input.Currency)),
		RefreshSeconds: input.RefreshSeconds,
		ShowChart:      input.ShowChart,
		ShowVolume:     input.ShowVolume,
		IsActive:       input.IsActive,
	}

	if settings.Symbol == "" {
		return db.StockQuoteSettings{}, eris.Wrap(ErrStockQuoteInvalidInput, "symbol is required")
	}
	if settings.Exchange == "" {
		return db.StockQuoteSettings{}, eris.Wrap(ErrStockQuoteInvalidInput, "exchange is required")
	}
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	if settings.RefreshSeconds == 0 {
		settings.RefreshSeconds = defaultStockRefreshSeconds
	}
	if settings.RefreshSeconds < minStockRefreshSeconds {
		return db.StockQuoteSettings{}, eris.Wrapf(ErrStockQuoteInvalidInput, "refreshSeconds must be at least %d", minStockRefreshSeconds)
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"symbol", "exchange", "currency", "refresh_seconds",
			"show_chart", "show_volume", "is_active", "updated_at",
		}),
	}).Create(&settings).Error; err != nil {
		return db.StockQuoteSettings{}, eris.Wrap(err, "save stock quote settings")
	}

	return s.Get()
}
