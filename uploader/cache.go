package uploader

import (
	"Inkpix/pkg/log"
	"Inkpix/service"
	"Inkpix/types"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const dedupeTTL = 7 * 24 * time.Hour

// Dedupe 按内容摘要做上传去重的装饰器：同一份字节命中缓存时
// 直接复用上次的远程地址，不再打扰底层能力
type Dedupe struct {
	Next  service.Uploader
	Redis *redis.Client
}

var _ service.Uploader = (*Dedupe)(nil)

func NewDedupe(next service.Uploader, rdb *redis.Client) *Dedupe {
	return &Dedupe{Next: next, Redis: rdb}
}

func (u *Dedupe) Upload(ctx context.Context, p service.Payload) (*types.UploadResult, error) {
	if len(p.Data) == 0 {
		return u.Next.Upload(ctx, p)
	}

	sum := sha1.Sum(p.Data)
	key := "inkpix:upload:" + hex.EncodeToString(sum[:])

	if src, err := u.Redis.Get(ctx, key).Result(); err == nil && src != "" {
		log.L.Info("upload dedupe hit", zap.String("src", src))
		return &types.UploadResult{Src: src}, nil
	}

	res, err := u.Next.Upload(ctx, p)
	if err != nil {
		return nil, err
	}
	if res != nil && res.Src != "" {
		if serr := u.Redis.Set(ctx, key, res.Src, dedupeTTL).Err(); serr != nil {
			log.L.Warn("upload dedupe set", zap.Error(serr))
		}
	}
	return res, err
}
