package uploader

import (
	"Inkpix/config"
	"Inkpix/pkg/snowflake"
	"Inkpix/service"
	"Inkpix/types"
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio S3 兼容的上传能力
type Minio struct {
	Client    *minio.Client
	Bucket    string
	PublicURL string
}

var _ service.Uploader = (*Minio)(nil)

func NewMinio(cfg *config.MinioConfig) (*Minio, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Minio{
		Client:    client,
		Bucket:    cfg.Bucket,
		PublicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

func (u *Minio) Upload(ctx context.Context, p service.Payload) (*types.UploadResult, error) {
	if len(p.Data) == 0 {
		return nil, fmt.Errorf("minio: empty payload for %s", p.Src)
	}

	objectKey := fmt.Sprintf("node/%s/%d%s",
		time.Now().Format("2006/01/02"),
		snowflake.GenID(),
		objectExt(p.Filename, ""),
	)

	_, err := u.Client.PutObject(ctx, u.Bucket, objectKey,
		bytes.NewReader(p.Data), int64(len(p.Data)),
		minio.PutObjectOptions{ContentType: p.ContentType},
	)
	if err != nil {
		return nil, err
	}

	return &types.UploadResult{Src: u.PublicURL + "/" + objectKey}, nil
}
