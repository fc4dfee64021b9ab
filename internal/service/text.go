package service

import (
	"bytes"
	"html"
	"net/url"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps(), gmhtml.WithXHTML()),
	)
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

// plainText 去掉字段中的 HTML 标签与首尾空白，保留 & 等普通字符
func plainText(value string) string {
	cleaned := plainTextPolicy.Sanitize(strings.TrimSpace(value))
	return strings.TrimSpace(html.UnescapeString(cleaned))
}

// renderMarkdown 把 Markdown 渲染为经过过滤的 HTML
func renderMarkdown(markdown string) (string, error) {
	trimmed := strings.TrimSpace(markdown)
	if trimmed == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
		return "", err
	}
	return strings.TrimSpace(richTextPolicy.Sanitize(buf.String())), nil
}

// validLink 允许空值、站内绝对路径以及 http/https 地址
func validLink(raw string) bool {
	if raw == "" || (strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//")) {
		return true
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func validDate(raw string) bool {
	if raw == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, raw)
	return err == nil
}
