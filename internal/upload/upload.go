// Package upload 定义图片与 PDF 上传的校验规则，服务端与 cmsctl 共用同一份约束。
package upload

import (
	"errors"
	"fmt"
	"mime"
	"slices"
	"strings"
)

var (
	// ErrUnsupportedType 表示文件类型与上传字段不匹配。
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrTooLarge 表示文件超过该类型允许的大小。
	ErrTooLarge = errors.New("file too large")
	// ErrEmptyFile 表示上传内容为空。
	ErrEmptyFile = errors.New("file is empty")
	// ErrUnknownKind 表示请求了未定义的上传类型。
	ErrUnknownKind = errors.New("unknown upload kind")
)

// Kind 标识上传接口的类别。
type Kind string

const (
	KindImage         Kind = "image"
	KindPDF           Kind = "pdf"
	KindRegulationPDF Kind = "pdf/sast-regulations"
)

const (
	MaxImageSize int64 = 10 << 20
	MaxPDFSize   int64 = 50 << 20
)

// Constraint 描述某一上传类别的 MIME 前缀、大小上限以及响应中的 URL 字段名。
// Excluded 中的类型即使匹配前缀也会被拒绝。
type Constraint struct {
	Kind       Kind
	MIMEPrefix string
	Excluded   []string
	MaxSize    int64
	URLField   string
	Folder     string
}

var constraints = map[Kind]Constraint{
	// SVG 可以携带脚本，且上传文件与 API 同源提供
	KindImage:         {Kind: KindImage, MIMEPrefix: "image/", Excluded: []string{"image/svg+xml"}, MaxSize: MaxImageSize, URLField: "imageUrl", Folder: "images"},
	KindPDF:           {Kind: KindPDF, MIMEPrefix: "application/pdf", MaxSize: MaxPDFSize, URLField: "pdfUrl", Folder: "pdfs"},
	KindRegulationPDF: {Kind: KindRegulationPDF, MIMEPrefix: "application/pdf", MaxSize: MaxPDFSize, URLField: "pdfUrl", Folder: "pdfs/sast-regulations"},
}

// Kinds 按固定顺序返回所有上传类别。
func Kinds() []Kind {
	return []Kind{KindImage, KindPDF, KindRegulationPDF}
}

// ConstraintFor 返回指定类别的约束。
func ConstraintFor(kind Kind) (Constraint, error) {
	c, ok := constraints[kind]
	if !ok {
		return Constraint{}, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return c, nil
}

// Path 返回该类别的上传接口路径。
func (c Constraint) Path() string {
	return "/api/upload/" + string(c.Kind)
}

// Validate 检查 MIME 类型前缀与文件大小，不涉及任何网络请求。
func (c Constraint) Validate(contentType string, size int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}

	base := BaseMIME(contentType)
	if !strings.HasPrefix(base, c.MIMEPrefix) {
		return fmt.Errorf("%w: %s expects %s*, got %q", ErrUnsupportedType, c.Kind, c.MIMEPrefix, base)
	}
	if slices.Contains(c.Excluded, base) {
		return fmt.Errorf("%w: %s does not accept %q", ErrUnsupportedType, c.Kind, base)
	}

	if size > c.MaxSize {
		return fmt.Errorf("%w: max %dMB", ErrTooLarge, c.MaxSize>>20)
	}

	return nil
}

// Validate 是 ConstraintFor + Constraint.Validate 的简写。
func Validate(kind Kind, contentType string, size int64) error {
	c, err := ConstraintFor(kind)
	if err != nil {
		return err
	}
	return c.Validate(contentType, size)
}

// BaseMIME 去掉 charset 等参数并转为小写。
func BaseMIME(contentType string) string {
	trimmed := strings.TrimSpace(contentType)
	if trimmed == "" {
		return ""
	}
	if parsed, _, err := mime.ParseMediaType(trimmed); err == nil {
		return strings.ToLower(parsed)
	}
	return strings.ToLower(strings.TrimSpace(strings.Split(trimmed, ";")[0]))
}

// NormalizeURL 把 /uploads/... 这类相对路径补全为绝对地址，已是绝对地址时原样返回。
func NormalizeURL(baseURL, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") || strings.HasPrefix(trimmed, "//") {
		return trimmed
	}

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}
	return base + trimmed
}
