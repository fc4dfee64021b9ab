package cmsclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBackendUnavailable 表示无法连接后端，或网关返回 502/503/504。
// 只有这一类错误会触发示例数据回退。
var ErrBackendUnavailable = errors.New("backend server not available")

// APIError 是服务端返回的非 2xx 响应
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// Unwrap 让网关类错误可以用 errors.Is(err, ErrBackendUnavailable) 判断
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrBackendUnavailable
	}
	return nil
}

// IsNotFound 判断是否为 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized 判断是否为 401
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return ErrBackendUnavailable.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Is(target error) bool {
	return target == ErrBackendUnavailable
}

func (e *unavailableError) Unwrap() error {
	return e.cause
}
