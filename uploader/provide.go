package uploader

import (
	"Inkpix/config"
	"Inkpix/pkg/client"
	"Inkpix/pkg/log"
	"Inkpix/service"

	"go.uber.org/zap"
)

// Provide 按配置装配上传能力，缺省走 OSS，
// 开启 dedupe 时外面再包一层 redis 去重
func Provide(cfg *config.Config) service.Uploader {
	var up service.Uploader

	switch cfg.Upload.Backend {
	case config.BackendMinio:
		m, err := NewMinio(cfg.Minio)
		if err != nil {
			log.L.Fatal("init minio uploader", zap.Error(err))
		}
		up = m
	case config.BackendHTTP:
		up = NewHTTP(cfg.Upload.Endpoint)
	default:
		up = NewOss(cfg.Oss)
	}

	if cfg.Upload.Dedupe && cfg.Redis != nil {
		up = NewDedupe(up, client.NewRedisClient(cfg))
	}
	return up
}
