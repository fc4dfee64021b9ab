package db

import "gorm.io/gorm"

// UploadedFile 记录每次上传的文件，便于排查内容中引用的地址来源
type UploadedFile struct {
	gorm.Model
	Kind         string `gorm:"size:40;index"`
	Key          string `gorm:"size:300;uniqueIndex"`
	URL          string `gorm:"size:500"`
	OriginalName string `gorm:"size:255"`
	ContentType  string `gorm:"size:100"`
	Size         int64
	Width        int
	Height       int
}

// TableName 返回自定义表名
func (UploadedFile) TableName() string {
	return "uploaded_files"
}
