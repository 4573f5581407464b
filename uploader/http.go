package uploader

import (
	"Inkpix/service"
	"Inkpix/types"
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// HTTP 把载荷转发到远端上传接口的能力。
// 响应可以是裸地址字符串，也可以是带 src/url 字段的 JSON。
type HTTP struct {
	Endpoint string
	Client   *http.Client
}

var _ service.Uploader = (*HTTP)(nil)

func NewHTTP(endpoint string) *HTTP {
	return &HTTP{
		Endpoint: endpoint,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (u *HTTP) Upload(ctx context.Context, p service.Payload) (*types.UploadResult, error) {
	var (
		body        bytes.Buffer
		contentType string
	)

	if p.Filename != "" {
		// file 形态：multipart 表单
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("file", p.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(p.Data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		contentType = w.FormDataContentType()
	} else {
		// blob 形态：裸二进制
		body.Write(p.Data)
		contentType = p.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.Endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Origin-Src", p.Src)

	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload endpoint returned %d: %s", resp.StatusCode, raw)
	}

	return parseUploadResponse(raw), nil
}

// parseUploadResponse 兼容两种响应：JSON 对象取 src/url/data.url，
// 其余情况整个响应体视作裸地址
func parseUploadResponse(raw []byte) *types.UploadResult {
	if gjson.ValidBytes(raw) {
		parsed := gjson.ParseBytes(raw)
		if parsed.IsObject() {
			res := &types.UploadResult{}
			for _, key := range []string{"src", "url", "data.url"} {
				if v := parsed.Get(key); v.Exists() {
					res.Src = v.String()
					break
				}
			}
			if extra, ok := parsed.Value().(map[string]any); ok {
				delete(extra, "src")
				if len(extra) > 0 {
					res.Extra = extra
				}
			}
			return res
		}
		if parsed.Type == gjson.String {
			return &types.UploadResult{Src: parsed.String()}
		}
	}
	return &types.UploadResult{Src: strings.TrimSpace(string(raw))}
}
