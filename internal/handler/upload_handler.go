package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sectioncms/internal/db"
	"github.com/sectioncms/internal/upload"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/webp"
)

// UploadHandler 返回指定上传类别的处理函数
func (a *API) UploadHandler(kind upload.Kind) gin.HandlerFunc {
	constraint, err := upload.ConstraintFor(kind)
	if err != nil {
		panic(err)
	}

	return func(c *gin.Context) {
		a.handleUpload(c, constraint)
	}
}

func (a *API) handleUpload(c *gin.Context, constraint upload.Constraint) {
	file, err := c.FormFile("file")
	if err != nil {
		uploadError(c, http.StatusBadRequest, "未找到上传的文件")
		return
	}

	if err := constraint.Validate(file.Header.Get("Content-Type"), file.Size); err != nil {
		uploadError(c, uploadStatus(err), uploadMessage(err, constraint))
		return
	}

	src, err := file.Open()
	if err != nil {
		uploadError(c, http.StatusBadRequest, "读取上传文件失败")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, constraint.MaxSize+1))
	if err != nil {
		uploadError(c, http.StatusBadRequest, "读取上传文件失败")
		return
	}

	// 以文件内容为准再校验一次，防止伪造 Content-Type
	detected := mimetype.Detect(data)
	if err := constraint.Validate(detected.String(), int64(len(data))); err != nil {
		uploadError(c, uploadStatus(err), uploadMessage(err, constraint))
		return
	}

	var width, height int
	if constraint.Kind == upload.KindImage {
		if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			width, height = cfg.Width, cfg.Height
		}
	}

	ext := detected.Extension()
	if ext == "" {
		ext = strings.ToLower(path.Ext(file.Filename))
	}
	key := path.Join(constraint.Folder, fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext))
	contentType := upload.BaseMIME(detected.String())

	if err := a.storage.Save(c.Request.Context(), key, bytes.NewReader(data), contentType); err != nil {
		a.logger.WithError(err).WithField("key", key).Error("save upload failed")
		uploadError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	url := a.storage.URL(key)
	record := db.UploadedFile{
		Kind:         string(constraint.Kind),
		Key:          key,
		URL:          url,
		OriginalName: file.Filename,
		ContentType:  contentType,
		Size:         int64(len(data)),
		Width:        width,
		Height:       height,
	}
	if err := a.db.Create(&record).Error; err != nil {
		a.logger.WithError(err).WithField("key", key).Error("record upload failed")
		// 没有记录的文件无法追溯，直接删除
		if delErr := a.storage.Delete(c.Request.Context(), key); delErr != nil {
			a.logger.WithError(delErr).WithField("key", key).Warn("remove unrecorded upload failed")
		}
		uploadError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	a.logger.WithFields(logrus.Fields{
		"kind": constraint.Kind,
		"key":  key,
		"size": record.Size,
	}).Info("file uploaded")

	payload := gin.H{"success": true, constraint.URLField: url}
	if width > 0 && height > 0 {
		payload["width"] = width
		payload["height"] = height
	}
	c.JSON(http.StatusOK, payload)
}

func uploadError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

func uploadStatus(err error) int {
	if errors.Is(err, upload.ErrTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func uploadMessage(err error, constraint upload.Constraint) string {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return fmt.Sprintf("文件大小不能超过 %dMB", constraint.MaxSize>>20)
	case errors.Is(err, upload.ErrEmptyFile):
		return "上传的文件为空"
	case constraint.Kind == upload.KindImage:
		return "只允许上传图片文件"
	default:
		return "只允许上传 PDF 文件"
	}
}
