package cmsclient

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rotisserie/eris"
	"github.com/sectioncms/internal/upload"
)

// UploadResult 是上传成功后的文件地址，URL 已补全为绝对地址
type UploadResult struct {
	URL    string
	Width  int
	Height int
}

type uploadResponse struct {
	Success  bool   `json:"success"`
	ImageURL string `json:"imageUrl"`
	PDFURL   string `json:"pdfUrl"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Error    string `json:"error"`
}

// UploadFile 读取本地文件并上传，类型与大小在发送前校验
func (c *Client) UploadFile(ctx context.Context, kind upload.Kind, path string) (UploadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return UploadResult{}, eris.Wrapf(err, "read %s", path)
	}
	return c.Upload(ctx, kind, filepath.Base(path), data)
}

// Upload 上传文件内容。类型由文件内容识别，不符合约束时直接返回错误，不发起请求
func (c *Client) Upload(ctx context.Context, kind upload.Kind, filename string, data []byte) (UploadResult, error) {
	constraint, err := upload.ConstraintFor(kind)
	if err != nil {
		return UploadResult{}, err
	}

	contentType := upload.BaseMIME(mimetype.Detect(data).String())
	if err := constraint.Validate(contentType, int64(len(data))); err != nil {
		return UploadResult{}, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return UploadResult{}, eris.Wrap(err, "create multipart part")
	}
	if _, err := part.Write(data); err != nil {
		return UploadResult{}, eris.Wrap(err, "write multipart part")
	}
	if err := writer.Close(); err != nil {
		return UploadResult{}, eris.Wrap(err, "close multipart writer")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+constraint.Path(), body)
	if err != nil {
		return UploadResult{}, eris.Wrap(err, "build upload request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out uploadResponse
	if err := c.send(req, &out); err != nil {
		return UploadResult{}, err
	}
	if !out.Success {
		return UploadResult{}, &APIError{StatusCode: http.StatusOK, Message: out.Error}
	}

	raw := out.ImageURL
	if constraint.URLField == "pdfUrl" {
		raw = out.PDFURL
	}
	if strings.TrimSpace(raw) == "" {
		return UploadResult{}, eris.New("upload response did not include a file url")
	}

	return UploadResult{
		URL:    upload.NormalizeURL(c.baseURL, raw),
		Width:  out.Width,
		Height: out.Height,
	}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
