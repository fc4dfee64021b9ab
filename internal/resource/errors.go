package resource

import (
	"errors"
	"strings"

	"github.com/sectioncms/internal/content"
)

// ErrItemNotLoaded 表示操作的条目不在当前列表中
var ErrItemNotLoaded = errors.New("item is not in the loaded list")

// ValidationError 表示必填字段为空，在发出任何请求之前返回
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return e.Field + " is required"
}

// ValidateRequired 检查必填字段，去除首尾空白后为空即视为缺失
func ValidateRequired(fields []content.Field) error {
	for _, field := range fields {
		if strings.TrimSpace(field.Value) == "" {
			return &ValidationError{Field: field.Name}
		}
	}
	return nil
}
