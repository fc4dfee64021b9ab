package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sectioncms/internal/service"
)

type stockQuoteRequest struct {
	Symbol         string `json:"symbol"`
	Exchange       string `json:"exchange"`
	Currency       string `json:"currency"`
	RefreshSeconds int    `json:"refreshSeconds"`
	ShowChart      bool   `json:"showChart"`
	ShowVolume     bool   `json:"showVolume"`
	IsActive       bool   `json:"isActive"`
}

func (r stockQuoteRequest) toInput() service.StockQuoteInput {
	return service.StockQuoteInput{
		Symbol:         r.Symbol,
		Exchange:       r.Exchange,
		Currency:       r.Currency,
		RefreshSeconds: r.RefreshSeconds,
		ShowChart:      r.ShowChart,
		ShowVolume:     r.ShowVolume,
		IsActive:       r.IsActive,
	}
}

// GetStockQuote 返回股价展示设置，尚未保存时返回默认值
func (a *API) GetStockQuote(c *gin.Context) {
	settings, err := a.stockQuote.Get()
	if err != nil {
		a.logger.WithError(err).Error("load stock quote settings failed")
		respondError(c, http.StatusInternalServerError, "获取股价设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": settings})
}

// UpdateStockQuote 保存股价展示设置
func (a *API) UpdateStockQuote(c *gin.Context) {
	var payload stockQuoteRequest
	if !bindJSON(c, &payload, "请填写完整的股价设置") {
		return
	}

	settings, err := a.stockQuote.Update(payload.toInput())
	if err != nil {
		if errors.Is(err, service.ErrStockQuoteInvalidInput) {
			respondError(c, http.StatusBadRequest, stockQuoteMessage(err))
			return
		}
		a.logger.WithError(err).Error("save stock quote settings failed")
		respondError(c, http.StatusInternalServerError, "保存股价设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": settings, "message": "股价设置已保存"})
}

func stockQuoteMessage(err error) string {
	msg := err.Error()
	suffix := ": " + service.ErrStockQuoteInvalidInput.Error()
	if idx := strings.Index(msg, suffix); idx > 0 {
		return msg[:idx]
	}
	return msg
}
