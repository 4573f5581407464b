package uploader

import (
	"Inkpix/config"
	"Inkpix/pkg/snowflake"
	"Inkpix/service"
	"Inkpix/types"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path"
	"strings"
	"time"

	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss"
	"github.com/aliyun/alibabacloud-oss-go-sdk-v2/oss/credentials"
	_ "golang.org/x/image/webp"
)

// Oss 阿里云 OSS 上传能力
type Oss struct {
	Client     *oss.Client
	BucketName string
	CdnDomain  string
}

var _ service.Uploader = (*Oss)(nil)

func NewOss(cfg *config.OssConfig) *Oss {
	ossCfg := oss.LoadDefaultConfig().
		WithEndpoint(cfg.Endpoint).
		WithRegion(cfg.Region).
		WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.AccessKeySecret,
			),
		)

	return &Oss{
		Client:     oss.NewClient(ossCfg),
		BucketName: cfg.Bucket,
		CdnDomain:  strings.TrimSuffix(cfg.CdnDomain, "/"),
	}
}

func (u *Oss) Upload(ctx context.Context, p service.Payload) (*types.UploadResult, error) {
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("oss: empty payload for %s", p.Src)
	}

	// 读图头取尺寸与格式，失败不阻断上传
	imgCfg, format, derr := image.DecodeConfig(bytes.NewReader(p.Data))

	objectKey := fmt.Sprintf("node/%s/%d%s",
		time.Now().Format("2006/01/02"),
		snowflake.GenID(),
		objectExt(p.Filename, format),
	)

	if _, err := u.Client.PutObject(ctx, &oss.PutObjectRequest{
		Bucket: oss.Ptr(u.BucketName),
		Key:    oss.Ptr(objectKey),
		Body:   bytes.NewReader(p.Data),
	}); err != nil {
		return nil, err
	}

	res := &types.UploadResult{Src: u.CdnDomain + "/" + objectKey}
	if derr == nil {
		res.Extra = map[string]any{
			"width":  imgCfg.Width,
			"height": imgCfg.Height,
		}
	}
	return res, nil
}

// objectExt 优先取原文件扩展名，缺失时由探测到的格式推断
func objectExt(filename, format string) string {
	if ext := path.Ext(filename); ext != "" {
		return ext
	}
	switch strings.ToLower(format) {
	case "jpeg":
		return ".jpg"
	case "":
		return ".bin"
	default:
		return "." + strings.ToLower(format)
	}
}
