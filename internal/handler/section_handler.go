package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sectioncms/internal/service"
	"github.com/sirupsen/logrus"
)

// SectionHandler 为一类可排序内容提供 REST 接口
type SectionHandler[T any, P interface {
	*T
	service.Record
}] struct {
	svc    *service.SectionService[T, P]
	logger *logrus.Logger
	label  string
}

// NewSectionHandler 构造内容区块处理器，label 用于响应中的提示文案
func NewSectionHandler[T any, P interface {
	*T
	service.Record
}](svc *service.SectionService[T, P], logger *logrus.Logger, label string) *SectionHandler[T, P] {
	return &SectionHandler[T, P]{svc: svc, logger: logger, label: label}
}

type reorderRequest struct {
	IDs []uint `json:"ids"`
}

// createDefaults 只用于判断请求体中是否出现了 order 与 isActive
type createDefaults struct {
	Order    *int  `json:"order"`
	IsActive *bool `json:"isActive"`
}

// List 返回全部条目，?active=true 时只返回上线条目
func (h *SectionHandler[T, P]) List(c *gin.Context) {
	includeInactive := strings.TrimSpace(c.Query("active")) != "true"

	items, err := h.svc.List(includeInactive)
	if err != nil {
		h.handleError(c, err, "获取"+h.label+"列表失败")
		return
	}
	if items == nil {
		items = []T{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get 返回单个条目
func (h *SectionHandler[T, P]) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的"+h.label+"ID")
		return
	}

	item, err := h.svc.Get(id)
	if err != nil {
		h.handleError(c, err, "获取"+h.label+"失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// Create 新建条目；请求体未携带 order 时追加到末尾，未携带 isActive 时默认上线
func (h *SectionHandler[T, P]) Create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "读取请求失败")
		return
	}

	item := new(T)
	var defaults createDefaults
	if err := json.Unmarshal(body, item); err != nil {
		respondError(c, http.StatusBadRequest, "请填写完整的"+h.label+"信息")
		return
	}
	if err := json.Unmarshal(body, &defaults); err != nil {
		respondError(c, http.StatusBadRequest, "请填写完整的"+h.label+"信息")
		return
	}
	if defaults.IsActive == nil {
		P(item).SetActive(true)
	}

	created, err := h.svc.Create(item, defaults.Order == nil)
	if err != nil {
		h.handleError(c, err, "创建"+h.label+"失败")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"section": h.svc.Name(),
		"id":      P(created).PrimaryKey(),
	}).Info("section item created")
	c.JSON(http.StatusCreated, gin.H{"item": created, "message": h.label + "创建成功"})
}

// Update 以请求体整体覆盖条目
func (h *SectionHandler[T, P]) Update(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的"+h.label+"ID")
		return
	}

	item := new(T)
	if !bindJSON(c, item, "请填写完整的"+h.label+"信息") {
		return
	}

	updated, err := h.svc.Update(id, item)
	if err != nil {
		h.handleError(c, err, "更新"+h.label+"失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": updated, "message": h.label + "已更新"})
}

// Delete 删除条目
func (h *SectionHandler[T, P]) Delete(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的"+h.label+"ID")
		return
	}

	if err := h.svc.Delete(id); err != nil {
		h.handleError(c, err, "删除"+h.label+"失败")
		return
	}

	h.logger.WithFields(logrus.Fields{"section": h.svc.Name(), "id": id}).Info("section item deleted")
	c.JSON(http.StatusOK, gin.H{"message": h.label + "已删除"})
}

// Reorder 按请求中的 ID 顺序重排
func (h *SectionHandler[T, P]) Reorder(c *gin.Context) {
	var payload reorderRequest
	if !bindJSON(c, &payload, "排序数据格式不正确") {
		return
	}
	if len(payload.IDs) == 0 {
		respondError(c, http.StatusBadRequest, "排序数据不能为空")
		return
	}

	if err := h.svc.Reorder(payload.IDs); err != nil {
		h.handleError(c, err, "更新排序失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "排序已更新"})
}

// Register 在给定路由组下挂载 list/get/create/update/delete/order
func (h *SectionHandler[T, P]) Register(group *gin.RouterGroup, path string) {
	group.GET(path, h.List)
	group.POST(path, h.Create)
	group.PUT(path+"/order", h.Reorder)
	group.GET(path+"/:id", h.Get)
	group.PUT(path+"/:id", h.Update)
	group.DELETE(path+"/:id", h.Delete)
}

func (h *SectionHandler[T, P]) handleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSectionInvalidInput):
		respondError(c, http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, service.ErrSectionNotFound):
		respondError(c, http.StatusNotFound, h.label+"不存在")
	default:
		h.logger.WithError(err).WithField("section", h.svc.Name()).Error(fallback)
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// validationMessage 去掉哨兵错误前缀，只保留字段说明
func validationMessage(err error) string {
	msg := err.Error()
	prefix := service.ErrSectionInvalidInput.Error() + ": "
	if strings.HasPrefix(msg, prefix) {
		return strings.TrimPrefix(msg, prefix)
	}
	return msg
}
